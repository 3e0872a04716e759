package linkup

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrUnauthorized matches any error produced by a 401 response.
	ErrUnauthorized = errors.New("linkup: unauthorized (check API key)")
	// ErrForbidden matches any error produced by a 403 response.
	ErrForbidden = errors.New("linkup: forbidden")
	// ErrMissingAPIKey is returned before any request when the client has no key.
	ErrMissingAPIKey = errors.New("linkup: API key is empty")
	// ErrInvalidArgument reports a request that cannot be sent as built.
	ErrInvalidArgument = errors.New("linkup: invalid argument")

	// ErrDecoding is the parent of every error raised while decoding a 2xx body.
	ErrDecoding = errors.New("linkup: decoding failed")
	// ErrMissingDiscriminator reports a search result without a "type" field.
	ErrMissingDiscriminator = fmt.Errorf("%w: missing \"type\" discriminator", ErrDecoding)
	// ErrUnrecognizedResponseShape reports a search body with neither "results" nor "answer".
	ErrUnrecognizedResponseShape = fmt.Errorf("%w: unrecognized response shape", ErrDecoding)

	// ErrSchemaDerivation is the parent of every *SchemaError.
	ErrSchemaDerivation = errors.New("linkup: cannot derive schema")
)

// Error codes sent by the API in ErrorBody.Code.
const (
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeNotFound            = "NOT_FOUND"
	CodeBadRequest          = "BAD_REQUEST"
	CodeRateLimited         = "RATE_LIMITED"
	CodeInternalServerError = "INTERNAL_SERVER_ERROR"
	CodeValidationError     = "VALIDATION_ERROR"
)

// APIError is a non-2xx response whose body decoded as an ErrorEnvelope.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Details    []ErrorDetail
	// Suggestion is a remediation hint derived from Code, empty for unknown codes.
	Suggestion string
}

func (e *APIError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Code != "" {
		return fmt.Sprintf("linkup api error: %s: %s (status=%d)", e.Code, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("linkup api error: %s (status=%d)", e.Message, e.StatusCode)
}

// Is lets errors.Is match ErrUnauthorized and ErrForbidden by status.
func (e *APIError) Is(target error) bool {
	return statusIs(e.StatusCode, target)
}

// TransportError is a non-2xx response whose body could not be decoded.
type TransportError struct {
	StatusCode int
	Message    string
	// Body holds at most 1 MiB of the raw response.
	Body []byte
	// Suggestion is a remediation hint derived from StatusCode.
	Suggestion string
}

func (e *TransportError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("linkup: %s (status=%d)", e.Message, e.StatusCode)
}

// Is lets errors.Is match ErrUnauthorized and ErrForbidden by status.
func (e *TransportError) Is(target error) bool {
	return statusIs(e.StatusCode, target)
}

func statusIs(status int, target error) bool {
	switch target {
	case ErrUnauthorized:
		return status == http.StatusUnauthorized
	case ErrForbidden:
		return status == http.StatusForbidden
	}
	return false
}

// UnknownVariantError reports a search result whose "type" is not recognized.
type UnknownVariantError struct {
	Tag string
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("linkup: unknown search result type %q", e.Tag)
}

func (e *UnknownVariantError) Unwrap() error { return ErrDecoding }

// SchemaError reports a Go type that has no JSON Schema representation.
type SchemaError struct {
	Type   string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("linkup: cannot derive schema for %s: %s", e.Type, e.Reason)
}

func (e *SchemaError) Unwrap() error { return ErrSchemaDerivation }

// RecoverySuggestion returns the remediation hint carried by err, if any.
func RecoverySuggestion(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Suggestion
	}
	var tErr *TransportError
	if errors.As(err, &tErr) {
		return tErr.Suggestion
	}
	return ""
}

// errorFromResponse turns a failed response into *APIError, or *TransportError
// when the body is not a usable envelope.
func errorFromResponse(status int, body []byte) error {
	var env ErrorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error != nil && (env.Error.Code != "" || env.Error.Message != "") {
		return &APIError{
			StatusCode: status,
			Code:       env.Error.Code,
			Message:    env.Error.Message,
			Details:    env.Error.Details,
			Suggestion: suggestionForCode(env.Error.Code, env.Error.Details),
		}
	}
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return &TransportError{
		StatusCode: status,
		Message:    fmt.Sprintf("request failed with http %d", status),
		Body:       append([]byte(nil), body...),
		Suggestion: suggestionForStatus(status),
	}
}

const maxErrorBody = 1 << 20 // 1 MiB

func suggestionForCode(code string, details []ErrorDetail) string {
	switch code {
	case CodeUnauthorized:
		return "Check your API key and make sure it has the required permissions."
	case CodeNotFound:
		return "Verify the endpoint URL and the request parameters."
	case CodeBadRequest:
		return "Review the request parameters and try again."
	case CodeRateLimited:
		return "Wait before retrying and check your usage limits."
	case CodeInternalServerError:
		return "The service hit an internal error. Please retry later."
	case CodeValidationError:
		msgs := make([]string, 0, len(details))
		for _, d := range details {
			if d.Message != "" {
				msgs = append(msgs, d.Message)
			}
		}
		if len(msgs) == 0 {
			return "Review the request parameters and try again."
		}
		return strings.Join(msgs, " and ") + "."
	}
	return ""
}

func suggestionForStatus(status int) string {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return "Check your API key and make sure it has the required permissions."
	case http.StatusNotFound:
		return "Verify the endpoint URL and the request parameters."
	case http.StatusBadRequest:
		return "Review the request parameters and try again."
	case http.StatusTooManyRequests:
		return "Wait before retrying and check your usage limits."
	case http.StatusInternalServerError:
		return "The service hit an internal error. Please retry later."
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return "The service is temporarily unavailable. Please retry later."
	}
	return ""
}
