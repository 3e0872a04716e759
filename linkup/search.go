package linkup

import (
	"context"
	"fmt"
)

type responseShape int

const (
	shapeProbe responseShape = iota // searchResults or sourcedAnswer, told apart by the body
	shapeStructured
	shapeStructuredWithSources
)

// shapeFor maps (outputType, includeSources) to the decoding path. It is
// total: includeSources is ignored unless the output is structured.
func shapeFor(req SearchRequest) responseShape {
	if req.OutputType != OutputStructured {
		return shapeProbe
	}
	if req.IncludeSources {
		return shapeStructuredWithSources
	}
	return shapeStructured
}

// SearchTyped runs a structured search whose payload is decoded into T.
// The schema derived from T replaces req.StructuredOutputSchema.
//
// It returns *StructuredResponseWithSources[T] when req.IncludeSources is set
// and *StructuredResponse[T] otherwise.
// Note: Go does not allow methods with type parameters; use this free function instead.
func SearchTyped[T any](ctx context.Context, c *Client, req SearchRequest) (SearchResponse, error) {
	if req.OutputType != OutputStructured {
		return nil, fmt.Errorf("%w: typed search requires outputType %q, got %q",
			ErrInvalidArgument, OutputStructured, req.OutputType)
	}
	schema, err := SchemaFor[T]()
	if err != nil {
		return nil, err
	}
	req.StructuredOutputSchema = &schema
	if err := req.Validate(); err != nil {
		return nil, err
	}

	body, err := c.post(ctx, c.endpoints.Search, req)
	if err != nil {
		return nil, err
	}
	return decodeStructured[T](body, shapeFor(req) == shapeStructuredWithSources)
}

// SearchStructured calls SearchTyped and returns only the decoded payload.
func SearchStructured[T any](ctx context.Context, c *Client, req SearchRequest) (T, error) {
	var zero T
	resp, err := SearchTyped[T](ctx, c, req)
	if err != nil {
		return zero, err
	}
	switch r := resp.(type) {
	case *StructuredResponse[T]:
		return r.Data, nil
	case *StructuredResponseWithSources[T]:
		return r.Data, nil
	}
	return zero, fmt.Errorf("%w: unexpected response %T", ErrDecoding, resp)
}
