package social

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

type breakerTransport struct {
	next http.RoundTripper
	cb   *gobreaker.CircuitBreaker
	log  *zap.Logger
}

// NewBreakerTransport wraps next with a circuit breaker that trips after
// maxFailures consecutive transport errors or 5xx responses.
func NewBreakerTransport(name string, maxFailures uint32, timeout time.Duration, next http.RoundTripper, log *zap.Logger) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	if maxFailures == 0 {
		maxFailures = 5
	}

	st := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Info("circuit breaker state",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	}

	return &breakerTransport{
		next: next,
		cb:   gobreaker.NewCircuitBreaker(st),
		log:  log,
	}
}

func (rt *breakerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	res, err := rt.cb.Execute(func() (interface{}, error) {
		resp, err := rt.next.RoundTrip(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= 500 {
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return nil, fmt.Errorf("upstream status %d", resp.StatusCode)
		}
		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			rt.log.Warn("request blocked by circuit breaker", zap.String("host", req.URL.Host))
		}
		return nil, err
	}

	resp, ok := res.(*http.Response)
	if !ok {
		return nil, errors.New("invalid roundtrip result")
	}
	return resp, nil
}
