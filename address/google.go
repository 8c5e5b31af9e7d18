package address

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bytedance/sonic"
)

const (
	defaultGeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"
	defaultTimeout    = 30 * time.Second
	maxBodyBytes      = 1 << 20
)

type GoogleConfig struct {
	APIKey string

	// BaseURL overrides the geocoding endpoint. Defaults to the public
	// Google Maps JSON endpoint.
	BaseURL string

	// Timeout is the HTTP request timeout. Defaults to 30 s.
	Timeout time.Duration

	// HTTPClient replaces the default client; Timeout is ignored when set.
	HTTPClient *http.Client
}

// GoogleGeocoder calls the Google Maps Geocoding API.
type GoogleGeocoder struct {
	cfg    GoogleConfig
	client *http.Client
}

var _ Geocoder = (*GoogleGeocoder)(nil)

func NewGoogleGeocoder(cfg GoogleConfig) *GoogleGeocoder {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultGeocodeURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &GoogleGeocoder{cfg: cfg, client: client}
}

// --- wire types ---

type geocodeLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type geocodeResult struct {
	FormattedAddress string `json:"formatted_address"`
	Geometry         struct {
		Location geocodeLocation `json:"location"`
	} `json:"geometry"`
}

type geocodeResponse struct {
	Status       string          `json:"status"`
	Results      []geocodeResult `json:"results"`
	ErrorMessage string          `json:"error_message,omitempty"`
}

func (g *GoogleGeocoder) Geocode(ctx context.Context, address string) (*Response, error) {
	q := url.Values{}
	q.Set("address", address)
	q.Set("key", g.cfg.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.cfg.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrLookupFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrLookupFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP %d", ErrLookupFailed, resp.StatusCode)
	}

	var wire geocodeResponse
	if err := sonic.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", ErrLookupFailed, err)
	}

	out := &Response{
		Status:  wire.Status,
		Results: make([]Result, 0, len(wire.Results)),
	}
	for _, r := range wire.Results {
		out.Results = append(out.Results, Result{
			FormattedAddress: r.FormattedAddress,
			Latitude:         r.Geometry.Location.Lat,
			Longitude:        r.Geometry.Location.Lng,
		})
	}
	return out, nil
}
