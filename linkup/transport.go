package linkup

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

// Transport executes calls against the API and returns the raw outcome.
// Any status is returned as-is; only failures to obtain a response are errors.
// Implementations own authentication, retries and connection reuse.
type Transport interface {
	Post(ctx context.Context, path string, body []byte) (status int, respBody []byte, err error)
	Get(ctx context.Context, path string) (status int, respBody []byte, err error)
}

var errServerStatus = errors.New("linkup: server error status")

// restyTransport is the default Transport.
type restyTransport struct {
	http    *resty.Client
	breaker *gobreaker.CircuitBreaker
	logger  zerolog.Logger
}

func newRestyTransport(c *Client) *restyTransport {
	hc := c.http
	if hc == nil {
		hc = &http.Client{Timeout: c.timeout}
	}
	logger := c.logger.With().Str("component", "transport").Logger()

	rc := resty.NewWithClient(hc).
		SetBaseURL(c.baseURL).
		SetAuthToken(c.apiKey).
		SetHeader("User-Agent", c.ua).
		SetHeader("Accept", "application/json").
		SetLogger(restyLogger{logger}).
		SetRetryCount(c.maxRetries).
		SetRetryWaitTime(c.minBackoff).
		SetRetryMaxWaitTime(c.maxBackoff).
		SetRetryAfter(retryAfter).
		AddRetryCondition(shouldRetry).
		AddRetryHook(func(r *resty.Response, err error) {
			ev := logger.Warn().Err(err)
			if r != nil && r.Request != nil {
				ev = ev.Int("status", r.StatusCode()).
					Str("endpoint", r.Request.URL).
					Int("attempt", r.Request.Attempt)
			}
			ev.Msg("retrying request")
		})

	t := &restyTransport{http: rc, logger: logger}
	if c.breaker != nil {
		st := *c.breaker
		if st.IsSuccessful == nil {
			st.IsSuccessful = func(err error) bool {
				return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
			}
		}
		t.breaker = gobreaker.NewCircuitBreaker(st)
	}
	return t
}

func (t *restyTransport) Post(ctx context.Context, path string, body []byte) (int, []byte, error) {
	return t.do(ctx, http.MethodPost, path, body)
}

func (t *restyTransport) Get(ctx context.Context, path string) (int, []byte, error) {
	return t.do(ctx, http.MethodGet, path, nil)
}

func (t *restyTransport) do(ctx context.Context, method, path string, body []byte) (int, []byte, error) {
	requestID := uuid.NewString()
	start := time.Now()

	req := t.http.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", requestID)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	res, err := t.execute(func() (*resty.Response, error) {
		return req.Execute(method, path)
	})
	if err != nil {
		// Cancellation wins over whatever the HTTP stack reported.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, nil, ctxErr
		}
		return 0, nil, fmt.Errorf("linkup: %s %s: %w", method, path, err)
	}

	t.logger.Debug().
		Str("method", method).
		Str("endpoint", path).
		Str("request_id", requestID).
		Int("status", res.StatusCode()).
		Dur("duration", time.Since(start)).
		Msg("linkup call completed")

	return res.StatusCode(), res.Body(), nil
}

// execute runs fn through the circuit breaker when one is configured. 5xx
// responses count as breaker failures but are still handed back to the caller.
func (t *restyTransport) execute(fn func() (*resty.Response, error)) (*resty.Response, error) {
	if t.breaker == nil {
		return fn()
	}
	var res *resty.Response
	_, err := t.breaker.Execute(func() (interface{}, error) {
		r, err := fn()
		res = r
		if err != nil {
			return nil, err
		}
		if r.StatusCode() >= http.StatusInternalServerError {
			return nil, errServerStatus
		}
		return nil, nil
	})
	if errors.Is(err, errServerStatus) {
		return res, nil
	}
	return res, err
}

func shouldRetry(r *resty.Response, err error) bool {
	if err != nil {
		return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
	}
	if r == nil {
		return false
	}
	return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= http.StatusInternalServerError
}

// retryAfter honors a Retry-After header in seconds. Returning zero lets resty
// fall back to jittered exponential backoff.
func retryAfter(_ *resty.Client, r *resty.Response) (time.Duration, error) {
	if r == nil {
		return 0, nil
	}
	if secs, err := strconv.Atoi(r.Header().Get("Retry-After")); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second, nil
	}
	return 0, nil
}

// restyLogger routes resty's internal messages to zerolog.
type restyLogger struct {
	l zerolog.Logger
}

func (r restyLogger) Errorf(format string, v ...interface{}) { r.l.Error().Msgf(format, v...) }
func (r restyLogger) Warnf(format string, v ...interface{})  { r.l.Warn().Msgf(format, v...) }
func (r restyLogger) Debugf(format string, v ...interface{}) { r.l.Debug().Msgf(format, v...) }
