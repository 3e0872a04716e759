package linkup

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// DecodeSearchResult decodes one element of a results array, selecting the
// variant from its "type" field. Unknown or missing tags are errors.
func DecodeSearchResult(raw []byte) (SearchResult, error) {
	root, err := parseObject(raw)
	if err != nil {
		return nil, err
	}
	tag := root.Get("type")
	if !tag.Exists() || tag.Type == gjson.Null {
		return nil, ErrMissingDiscriminator
	}
	switch ResultType(tag.String()) {
	case ResultText:
		var r TextSearchResult
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, fmt.Errorf("%w: text result: %v", ErrDecoding, err)
		}
		return r, nil
	case ResultImage:
		var r ImageSearchResult
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, fmt.Errorf("%w: image result: %v", ErrDecoding, err)
		}
		return r, nil
	default:
		return nil, &UnknownVariantError{Tag: tag.String()}
	}
}

// DecodeSearchResponse decodes a searchResults or sourcedAnswer body.
//
// The API sends no tag for top-level responses, so the variant is inferred
// from which keys are present: "results" wins over "answer". A new API field
// named like either probe would change the outcome; the tests pin both.
func DecodeSearchResponse(raw []byte) (SearchResponse, error) {
	root, err := parseObject(raw)
	if err != nil {
		return nil, err
	}
	switch {
	case root.Get("results").Exists():
		var out SearchResultsResponse
		if err := unmarshalBody(raw, &out); err != nil {
			return nil, err
		}
		return &out, nil
	case root.Get("answer").Exists():
		var out SourcedAnswerResponse
		if err := unmarshalBody(raw, &out); err != nil {
			return nil, err
		}
		return &out, nil
	default:
		return nil, ErrUnrecognizedResponseShape
	}
}

// decodeStructured decodes a structured body. Which variant is built depends
// on the request, because the payload carries no discriminator; a "sources"
// member sent without withSources is dropped.
func decodeStructured[T any](raw []byte, withSources bool) (SearchResponse, error) {
	if withSources {
		var out StructuredResponseWithSources[T]
		if err := unmarshalBody(raw, &out); err != nil {
			return nil, err
		}
		return &out, nil
	}
	var data T
	if err := unmarshalBody(raw, &data); err != nil {
		return nil, err
	}
	return &StructuredResponse[T]{Data: data}, nil
}

func parseObject(raw []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, fmt.Errorf("%w: invalid JSON", ErrDecoding)
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return gjson.Result{}, fmt.Errorf("%w: expected a JSON object", ErrDecoding)
	}
	return root, nil
}

// unmarshalBody keeps errors already classified by nested decoders and marks
// the rest as decoding failures.
func unmarshalBody(raw []byte, v any) error {
	err := json.Unmarshal(raw, v)
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrDecoding) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrDecoding, err)
}
