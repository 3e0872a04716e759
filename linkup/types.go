package linkup

import (
	"encoding/json"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Depth defines Linkup depth parameter.
type Depth string

const (
	DepthStandard Depth = "standard"
	DepthDeep     Depth = "deep"
)

// OutputType defines desired output format.
type OutputType string

const (
	OutputSourcedAnswer OutputType = "sourcedAnswer"
	OutputSearchResults OutputType = "searchResults"
	OutputStructured    OutputType = "structured"
)

const dateLayout = "2006-01-02"

// SearchRequest models the request body for /search.
type SearchRequest struct {
	Q                      string     `json:"q"`
	Depth                  Depth      `json:"depth"`                    // "standard" | "deep"
	OutputType             OutputType `json:"outputType"`               // "sourcedAnswer" | "searchResults" | "structured"
	IncludeImages          bool       `json:"includeImages,omitempty"`
	FromDate               string     `json:"fromDate,omitempty"`       // YYYY-MM-DD
	ToDate                 string     `json:"toDate,omitempty"`         // YYYY-MM-DD
	ExcludeDomains         []string   `json:"excludeDomains,omitempty"` // e.g. ["wikipedia.com"]
	IncludeDomains         []string   `json:"includeDomains,omitempty"` // e.g. ["microsoft.com"]
	IncludeInlineCitations bool       `json:"includeInlineCitations,omitempty"`
	IncludeSources         bool       `json:"includeSources,omitempty"`
	// StructuredOutputSchema is a JSON Schema document serialized as text.
	// It only matters when OutputType is OutputStructured; SearchTyped replaces it.
	StructuredOutputSchema *string `json:"structuredOutputSchema,omitempty"`
}

// Validate checks the request locally before it is sent.
func (r SearchRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Q, validation.Required),
		validation.Field(&r.Depth,
			validation.Required,
			validation.In(DepthStandard, DepthDeep),
		),
		validation.Field(&r.OutputType,
			validation.Required,
			validation.In(OutputSearchResults, OutputSourcedAnswer, OutputStructured),
		),
		validation.Field(&r.FromDate, validation.Date(dateLayout)),
		validation.Field(&r.ToDate, validation.Date(dateLayout)),
		validation.Field(&r.StructuredOutputSchema,
			validation.When(r.OutputType == OutputStructured, validation.Required),
		),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return nil
}

// SearchResponse is one of *SearchResultsResponse, *SourcedAnswerResponse,
// *StructuredResponse[T] or *StructuredResponseWithSources[T].
type SearchResponse interface {
	searchResponse()
}

// SearchResultsResponse is returned for OutputSearchResults.
type SearchResultsResponse struct {
	Results SearchResults `json:"results"`
}

// SourcedAnswerResponse is returned for OutputSourcedAnswer.
type SourcedAnswerResponse struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources"`
}

// StructuredResponse carries a structured payload decoded into T.
type StructuredResponse[T any] struct {
	Data T `json:"data"`
}

// StructuredResponseWithSources carries a structured payload and the results it was built from.
type StructuredResponseWithSources[T any] struct {
	Data    T             `json:"data"`
	Sources SearchResults `json:"sources"`
}

func (*SearchResultsResponse) searchResponse()            {}
func (*SourcedAnswerResponse) searchResponse()            {}
func (*StructuredResponse[T]) searchResponse()            {}
func (*StructuredResponseWithSources[T]) searchResponse() {}

// Source is a citation attached to a sourced answer.
type Source struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// ResultType is the wire discriminator of a SearchResult.
type ResultType string

const (
	ResultText  ResultType = "text"
	ResultImage ResultType = "image"
)

// SearchResult is either a TextSearchResult or an ImageSearchResult.
type SearchResult interface {
	Type() ResultType
	searchResult()
}

// TextSearchResult is a web page hit with extracted content.
type TextSearchResult struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

// ImageSearchResult is an image hit.
type ImageSearchResult struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

func (TextSearchResult) Type() ResultType  { return ResultText }
func (ImageSearchResult) Type() ResultType { return ResultImage }
func (TextSearchResult) searchResult()     {}
func (ImageSearchResult) searchResult()    {}

// MarshalJSON writes the result together with its "type" tag.
func (r TextSearchResult) MarshalJSON() ([]byte, error) {
	type plain TextSearchResult
	return json.Marshal(struct {
		Type ResultType `json:"type"`
		plain
	}{ResultText, plain(r)})
}

// MarshalJSON writes the result together with its "type" tag.
func (r ImageSearchResult) MarshalJSON() ([]byte, error) {
	type plain ImageSearchResult
	return json.Marshal(struct {
		Type ResultType `json:"type"`
		plain
	}{ResultImage, plain(r)})
}

// SearchResults decodes every element through DecodeSearchResult.
type SearchResults []SearchResult

// UnmarshalJSON implements json.Unmarshaler.
func (s *SearchResults) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = nil
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(b, &items); err != nil {
		return fmt.Errorf("%w: results: %v", ErrDecoding, err)
	}
	out := make(SearchResults, 0, len(items))
	for i, item := range items {
		r, err := DecodeSearchResult(item)
		if err != nil {
			return fmt.Errorf("result %d: %w", i, err)
		}
		out = append(out, r)
	}
	*s = out
	return nil
}

// FetchRequest models POST /fetch.
type FetchRequest struct {
	URL            string `json:"url"`
	IncludeRawHTML bool   `json:"includeRawHtml,omitempty"`
	RenderJS       bool   `json:"renderJs,omitempty"`
	ExtractImages  bool   `json:"extractImages,omitempty"`
}

// FetchImage is an image extracted from a fetched page.
type FetchImage struct {
	Alt string `json:"alt"`
	URL string `json:"url"`
}

// FetchResponse models POST /fetch response.
type FetchResponse struct {
	Markdown string       `json:"markdown"`
	RawHTML  *string      `json:"rawHtml,omitempty"`
	Images   []FetchImage `json:"images,omitempty"`
}

// BalanceResponse models GET /credits/balance response.
type BalanceResponse struct {
	Balance float64 `json:"balance"`
}

// ErrorDetail is a field-level validation message.
type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorBody is the "error" member of ErrorEnvelope.
type ErrorBody struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}

// ErrorEnvelope is the body the API sends with non-2xx statuses.
type ErrorEnvelope struct {
	Error      *ErrorBody `json:"error"`
	StatusCode int        `json:"statusCode"`
}
