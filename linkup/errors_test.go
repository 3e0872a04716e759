package linkup

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestionForCode(t *testing.T) {
	tests := []struct {
		code    string
		details []ErrorDetail
		want    string
	}{
		{CodeUnauthorized, nil, "API key"},
		{CodeNotFound, nil, "endpoint"},
		{CodeBadRequest, nil, "request parameters"},
		{CodeRateLimited, nil, "usage limits"},
		{CodeInternalServerError, nil, "retry later"},
		{CodeValidationError, []ErrorDetail{{Field: "q", Message: "Query is required"}}, "Query is required."},
		{CodeValidationError, []ErrorDetail{
			{Field: "fromDate", Message: "fromDate must be a date"},
			{Field: "toDate", Message: "toDate must follow fromDate"},
		}, "fromDate must be a date and toDate must follow fromDate."},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Contains(t, suggestionForCode(tt.code, tt.details), tt.want)
		})
	}
	assert.Empty(t, suggestionForCode("TEAPOT", nil))
	assert.Empty(t, suggestionForCode("", nil))
}

func TestSuggestionForStatus(t *testing.T) {
	tests := map[int]string{
		http.StatusUnauthorized:        "API key",
		http.StatusForbidden:           "API key",
		http.StatusNotFound:            "endpoint",
		http.StatusBadRequest:          "request parameters",
		http.StatusTooManyRequests:     "usage limits",
		http.StatusInternalServerError: "retry later",
		http.StatusBadGateway:          "temporarily unavailable",
		http.StatusServiceUnavailable:  "temporarily unavailable",
		http.StatusGatewayTimeout:      "temporarily unavailable",
	}
	for status, want := range tests {
		assert.Contains(t, suggestionForStatus(status), want, "status %d", status)
	}
	assert.Empty(t, suggestionForStatus(http.StatusTeapot))
}

func TestErrorFromResponse(t *testing.T) {
	t.Run("envelope", func(t *testing.T) {
		err := errorFromResponse(404, []byte(`{"error":{"code":"NOT_FOUND","message":"no such route"},"statusCode":404}`))
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 404, apiErr.StatusCode)
		assert.Equal(t, "no such route", apiErr.Message)
		assert.Contains(t, apiErr.Error(), "NOT_FOUND")
	})

	t.Run("unknown code has no suggestion", func(t *testing.T) {
		err := errorFromResponse(418, []byte(`{"error":{"code":"TEAPOT","message":"short and stout"}}`))
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Empty(t, apiErr.Suggestion)
	})

	t.Run("null error member", func(t *testing.T) {
		err := errorFromResponse(502, []byte(`{"error":null,"statusCode":502}`))
		var tErr *TransportError
		require.ErrorAs(t, err, &tErr)
		assert.Equal(t, 502, tErr.StatusCode)
		assert.Contains(t, tErr.Error(), "502")
	})

	t.Run("empty body", func(t *testing.T) {
		err := errorFromResponse(504, nil)
		var tErr *TransportError
		require.ErrorAs(t, err, &tErr)
		assert.Contains(t, tErr.Suggestion, "temporarily unavailable")
		assert.Empty(t, tErr.Body)
	})

	t.Run("body is bounded", func(t *testing.T) {
		big := []byte(strings.Repeat("x", maxErrorBody+10))
		err := errorFromResponse(500, big)
		var tErr *TransportError
		require.ErrorAs(t, err, &tErr)
		assert.Len(t, tErr.Body, maxErrorBody)
	})
}

func TestRecoverySuggestion_Wrapped(t *testing.T) {
	base := &APIError{StatusCode: 429, Code: CodeRateLimited, Suggestion: "wait"}
	wrapped := fmt.Errorf("calling linkup: %w", base)
	assert.Equal(t, "wait", RecoverySuggestion(wrapped))
	assert.Empty(t, RecoverySuggestion(fmt.Errorf("plain")))
	assert.Empty(t, RecoverySuggestion(nil))
}

func TestSentinelHierarchy(t *testing.T) {
	assert.ErrorIs(t, ErrMissingDiscriminator, ErrDecoding)
	assert.ErrorIs(t, ErrUnrecognizedResponseShape, ErrDecoding)
	assert.ErrorIs(t, &UnknownVariantError{Tag: "x"}, ErrDecoding)
	assert.ErrorIs(t, &SchemaError{Type: "T", Reason: "r"}, ErrSchemaDerivation)
	assert.NotErrorIs(t, &SchemaError{}, ErrDecoding)
	assert.ErrorIs(t, &TransportError{StatusCode: 401}, ErrUnauthorized)
	assert.ErrorIs(t, &APIError{StatusCode: 403}, ErrForbidden)
	assert.NotErrorIs(t, &APIError{StatusCode: 500}, ErrForbidden)
}
