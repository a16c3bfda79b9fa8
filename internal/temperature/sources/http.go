package sources

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker"

	"github.com/i474232898/temperature-heatmap/internal/temperature"
)

// DefaultDatasetURL is the public global temperature document the chart was
// designed around.
const DefaultDatasetURL = "https://raw.githubusercontent.com/freeCodeCamp/ProjectReferenceData/master/global-temperature.json"

// HTTPSource implements temperature.Source for a JSON document served over HTTP.
type HTTPSource struct {
	url     string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewHTTPSource creates a source for url using client for outbound calls.
func NewHTTPSource(client *http.Client, url string) *HTTPSource {
	return NewHTTPSourceWithBackoff(client, url, DefaultBackoff)
}

// NewHTTPSourceWithBackoff is NewHTTPSource with explicit retry settings.
func NewHTTPSourceWithBackoff(client *http.Client, url string, backoff BackoffConfig) *HTTPSource {
	return &HTTPSource{
		url: url,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: backoff,
		},
		circuit: newCircuitBreaker("dataset"),
	}
}

func (s *HTTPSource) Name() string {
	return s.url
}

func (s *HTTPSource) Load(ctx context.Context) (temperature.Dataset, error) {
	buildRequest := func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		return req, nil
	}

	resp, err := doRequestWithResilience(ctx, s.httpCfg, s.circuit, buildRequest)
	if err != nil {
		return temperature.Dataset{}, fmt.Errorf("fetch %s: %w", s.url, err)
	}
	defer resp.Body.Close()

	ds, err := temperature.Decode(resp.Body)
	if err != nil {
		return temperature.Dataset{}, fmt.Errorf("fetch %s: %w", s.url, err)
	}
	return ds, nil
}
