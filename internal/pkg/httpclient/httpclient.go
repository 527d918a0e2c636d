package httpclient

import (
	"fmt"
	"mint-service/config"
	"net/http"

	circuit "github.com/rubyist/circuitbreaker"
)

const (
	TypeConsecutive = "consecutive"
	TypeRate        = "rate"
)

func InitCircuitBreaker(cfg *config.HttpClientConfig, cbType string) *circuit.Breaker {
	switch cbType {
	case TypeRate:
		return circuit.NewRateBreaker(cfg.ErrorRate, cfg.MinSamples)
	default:
		return circuit.NewConsecutiveBreaker(cfg.Threshold)
	}
}

// InitHttpClient returns a client whose every round trip goes through cb.
// Server errors (5xx) count as failures but are still handed back to the caller.
func InitHttpClient(cfg *config.HttpClientConfig, cb *circuit.Breaker) *http.Client {
	return &http.Client{
		Timeout: cfg.Timeout,
		Transport: &breakerTransport{
			breaker: cb,
			next:    http.DefaultTransport,
		},
	}
}

type breakerTransport struct {
	breaker *circuit.Breaker
	next    http.RoundTripper
}

func (t *breakerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var resp *http.Response
	err := t.breaker.Call(func() error {
		var err error
		resp, err = t.next.RoundTrip(req)
		if err != nil {
			return err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("upstream returned status %d", resp.StatusCode)
		}
		return nil
	}, 0)
	if err != nil && resp != nil && resp.StatusCode >= http.StatusInternalServerError {
		return resp, nil
	}
	if err != nil {
		return nil, err
	}
	return resp, nil
}
