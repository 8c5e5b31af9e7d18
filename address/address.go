// Package address validates free-text postal addresses against a
// geocoding service.
package address

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedAddress means fewer than four comma-separated parts were given.
	ErrMalformedAddress = errors.New("address must have street, city, state and zip code")
	// ErrUnverifiableAddress means the lookup succeeded but found no usable match.
	ErrUnverifiableAddress = errors.New("address could not be verified")
	// ErrLookupFailed means the geocoding service could not be reached or answered garbage.
	ErrLookupFailed = errors.New("geocoding lookup failed")
)

const StatusOK = "OK"

// Result is a single geocoding candidate.
type Result struct {
	FormattedAddress string
	Latitude         float64
	Longitude        float64
}

// Response is what a Geocoder returns for a successful round trip. A
// non-OK Status is not a transport failure.
type Response struct {
	Status  string
	Results []Result
}

type Geocoder interface {
	Geocode(ctx context.Context, address string) (*Response, error)
}

// Parts is a structurally complete address.
type Parts struct {
	Street string
	City   string
	State  string
	Zip    string
}

func (p Parts) String() string {
	return fmt.Sprintf("%s, %s, %s %s", p.Street, p.City, p.State, p.Zip)
}

// Split parses "street, city, state, zip". Extra leading parts (suite,
// building) are folded into the street.
func Split(raw string) (Parts, error) {
	var parts []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) < 4 {
		return Parts{}, ErrMalformedAddress
	}
	n := len(parts)
	return Parts{
		Street: strings.Join(parts[:n-3], ", "),
		City:   parts[n-3],
		State:  parts[n-2],
		Zip:    parts[n-1],
	}, nil
}

// Validate checks raw and returns the first geocoding candidate. The
// geocoder is not called for malformed input.
func Validate(ctx context.Context, geocoder Geocoder, raw string) (Result, error) {
	parts, err := Split(raw)
	if err != nil {
		return Result{}, err
	}
	resp, err := geocoder.Geocode(ctx, parts.String())
	if err != nil {
		if errors.Is(err, ErrLookupFailed) {
			return Result{}, err
		}
		return Result{}, fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}
	if resp == nil || resp.Status != StatusOK || len(resp.Results) == 0 {
		return Result{}, ErrUnverifiableAddress
	}
	first := resp.Results[0]
	if strings.TrimSpace(first.FormattedAddress) == "" {
		return Result{}, ErrUnverifiableAddress
	}
	return first, nil
}
