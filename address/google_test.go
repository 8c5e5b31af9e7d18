package address

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGoogleGeocoderOK(t *testing.T) {
	var gotAddress, gotKey string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAddress = r.URL.Query().Get("address")
		gotKey = r.URL.Query().Get("key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"results": [{
				"formatted_address": "1600 Amphitheatre Pkwy, Mountain View, CA 94043, USA",
				"geometry": {"location": {"lat": 37.422, "lng": -122.084}}
			}]
		}`))
	}))
	defer ts.Close()

	g := NewGoogleGeocoder(GoogleConfig{APIKey: "maps-key", BaseURL: ts.URL})
	resp, err := g.Geocode(context.Background(), "1600 Amphitheatre Pkwy, Mountain View, CA 94043")
	if err != nil {
		t.Fatalf("Geocode: %v", err)
	}
	if gotKey != "maps-key" {
		t.Errorf("key param = %q", gotKey)
	}
	if gotAddress != "1600 Amphitheatre Pkwy, Mountain View, CA 94043" {
		t.Errorf("address param = %q", gotAddress)
	}
	if resp.Status != StatusOK || len(resp.Results) != 1 {
		t.Fatalf("unexpected response %+v", resp)
	}
	r := resp.Results[0]
	if r.Latitude != 37.422 || r.Longitude != -122.084 {
		t.Errorf("unexpected coordinates %+v", r)
	}
}

func TestGoogleGeocoderZeroResults(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	}))
	defer ts.Close()

	g := NewGoogleGeocoder(GoogleConfig{APIKey: "k", BaseURL: ts.URL})
	_, err := Validate(context.Background(), g, "1 Nowhere, Atlantis, ZZ, 00000")
	if !errors.Is(err, ErrUnverifiableAddress) {
		t.Errorf("got %v, want ErrUnverifiableAddress", err)
	}
}

func TestGoogleGeocoderFailures(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
		"bad json": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":`))
		},
	}
	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			ts := httptest.NewServer(h)
			defer ts.Close()
			g := NewGoogleGeocoder(GoogleConfig{APIKey: "k", BaseURL: ts.URL})
			_, err := g.Geocode(context.Background(), "x")
			if !errors.Is(err, ErrLookupFailed) {
				t.Errorf("got %v, want ErrLookupFailed", err)
			}
		})
	}
}
