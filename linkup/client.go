package linkup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

const (
	defaultBaseURL = "https://api.linkup.so/v1/"
	defaultUA      = "linkup-go/0.2 (+github.com/raezil/linkup-go)"

	defaultSearchPath  = "search"
	defaultFetchPath   = "fetch"
	defaultBalancePath = "credits/balance"
)

// Client is a typed HTTP client for the Linkup API.
//
// A Client holds only read-only configuration after NewClient returns and is
// safe for concurrent use.
type Client struct {
	apiKey     string
	baseURL    string
	ua         string
	http       *http.Client
	timeout    time.Duration
	maxRetries int
	minBackoff time.Duration
	maxBackoff time.Duration
	breaker    *gobreaker.Settings
	logger     zerolog.Logger
	endpoints  Endpoints
	transport  Transport
}

// Endpoints holds the paths of the three API operations, relative to the base URL.
type Endpoints struct {
	Search  string
	Fetch   string
	Balance string
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL (useful for testing).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient sets a custom http.Client (e.g., with proxy or custom transport).
// Its Timeout takes precedence over WithTimeout.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.ua = ua }
}

// WithTimeout bounds each HTTP attempt.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRetry configures retry policy for network errors, 429 and 5xx.
func WithRetry(maxRetries int, minBackoff, maxBackoff time.Duration) Option {
	return func(c *Client) {
		if maxRetries >= 0 {
			c.maxRetries = maxRetries
		}
		if minBackoff > 0 {
			c.minBackoff = minBackoff
		}
		if maxBackoff >= c.minBackoff {
			c.maxBackoff = maxBackoff
		}
	}
}

// WithCircuitBreaker trips calls after repeated transport failures or 5xx responses.
func WithCircuitBreaker(st gobreaker.Settings) Option {
	return func(c *Client) {
		if st.Name == "" {
			st.Name = "linkup"
		}
		c.breaker = &st
	}
}

// WithLogger sets the logger used for call and retry events.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithEndpoints overrides endpoint paths. Empty fields keep their default.
func WithEndpoints(e Endpoints) Option {
	return func(c *Client) {
		if e.Search != "" {
			c.endpoints.Search = e.Search
		}
		if e.Fetch != "" {
			c.endpoints.Fetch = e.Fetch
		}
		if e.Balance != "" {
			c.endpoints.Balance = e.Balance
		}
	}
}

// WithTransport replaces the built-in HTTP transport. Base URL, retry, timeout,
// breaker and HTTP client options are then ignored.
func WithTransport(t Transport) Option {
	return func(c *Client) { c.transport = t }
}

// NewClient constructs a Client with sane defaults.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(defaultBaseURL, "/"),
		ua:         defaultUA,
		timeout:    30 * time.Second,
		maxRetries: 3,
		minBackoff: 250 * time.Millisecond,
		maxBackoff: 4 * time.Second,
		logger:     zerolog.Nop(),
		endpoints: Endpoints{
			Search:  defaultSearchPath,
			Fetch:   defaultFetchPath,
			Balance: defaultBalancePath,
		},
	}
	for _, o := range opts {
		o(c)
	}
	if c.transport == nil {
		c.transport = newRestyTransport(c)
	}
	return c
}

// Search calls POST /search and decodes the response variant implied by the
// request: *SearchResultsResponse, *SourcedAnswerResponse, or for structured
// output *StructuredResponse[json.RawMessage] /
// *StructuredResponseWithSources[json.RawMessage].
func (c *Client) Search(ctx context.Context, req SearchRequest) (SearchResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	body, err := c.post(ctx, c.endpoints.Search, req)
	if err != nil {
		return nil, err
	}
	switch shapeFor(req) {
	case shapeStructured:
		return decodeStructured[json.RawMessage](body, false)
	case shapeStructuredWithSources:
		return decodeStructured[json.RawMessage](body, true)
	default:
		return DecodeSearchResponse(body)
	}
}

// Fetch calls POST /fetch and returns the page as markdown.
func (c *Client) Fetch(ctx context.Context, req FetchRequest) (*FetchResponse, error) {
	if req.URL == "" {
		return nil, fmt.Errorf("%w: fetch url is empty", ErrInvalidArgument)
	}
	body, err := c.post(ctx, c.endpoints.Fetch, req)
	if err != nil {
		return nil, err
	}
	var out FetchResponse
	if err := unmarshalBody(body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetBalance calls GET /credits/balance and returns credits balance.
func (c *Client) GetBalance(ctx context.Context) (*BalanceResponse, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	status, body, err := c.transport.Get(ctx, c.endpoints.Balance)
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		return nil, errorFromResponse(status, body)
	}
	var out BalanceResponse
	if err := unmarshalBody(body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// post sends v as JSON and returns the body of a 2xx response.
func (c *Client) post(ctx context.Context, path string, v any) ([]byte, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("linkup: encode request: %w", err)
	}
	status, body, err := c.transport.Post(ctx, path, payload)
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		return nil, errorFromResponse(status, body)
	}
	return body, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
