// Package geocode resolves a city name to an administrative address.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNotFound is returned when the geocoder has no answer for a query
var ErrNotFound = errors.New("geocode: no result")

// Place is a geocoded location. Empty strings mean the part is unknown.
type Place struct {
	DisplayName string
	City        string
	State       string
	PostalCode  string
	Country     string
}

// NominatimClient queries an OpenStreetMap Nominatim instance.
type NominatimClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewNominatimClient creates a client for the given base URL.
// Nominatim's usage policy requires an identifying User-Agent.
func NewNominatimClient(baseURL, userAgent string, timeout time.Duration) *NominatimClient {
	return &NominatimClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Geocode looks up query and returns the best match
func (c *NominatimClient) Geocode(ctx context.Context, query string) (*Place, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "jsonv2")
	params.Set("addressdetails", "1")
	params.Set("limit", "1")
	params.Set("accept-language", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("geocode: create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("geocode: read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode: nominatim returned %d: %s", resp.StatusCode, string(body))
	}

	var results []nominatimResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("geocode: parse response: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrNotFound
	}

	r := results[0]
	return &Place{
		DisplayName: r.DisplayName,
		City:        firstNonEmpty(r.Address.City, r.Address.Town, r.Address.Village, r.Address.Municipality),
		State:       firstNonEmpty(r.Address.State, r.Address.Region),
		PostalCode:  r.Address.Postcode,
		Country:     r.Address.Country,
	}, nil
}

type nominatimResult struct {
	DisplayName string           `json:"display_name"`
	Address     nominatimAddress `json:"address"`
}

type nominatimAddress struct {
	City         string `json:"city"`
	Town         string `json:"town"`
	Village      string `json:"village"`
	Municipality string `json:"municipality"`
	State        string `json:"state"`
	Region       string `json:"region"`
	Postcode     string `json:"postcode"`
	Country      string `json:"country"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Structured reports whether the place carries any administrative part
func (p *Place) Structured() bool {
	return p.State != "" || p.PostalCode != "" || p.Country != ""
}

// SplitDisplayName derives state, postal code and country from a
// comma-separated display name such as
// "Austin, Travis County, Texas, 78701, United States".
// The country is the last part, the postal code the second to last when it
// contains a digit, and the state the third to last.
func SplitDisplayName(displayName string) (state, postalCode, country string) {
	parts := strings.Split(displayName, ", ")
	n := len(parts)
	if displayName == "" {
		return "", "", ""
	}

	country = strings.TrimSpace(parts[n-1])
	if n >= 2 && strings.ContainsAny(parts[n-2], "0123456789") {
		postalCode = strings.TrimSpace(parts[n-2])
	}
	if n >= 3 {
		state = strings.TrimSpace(parts[n-3])
	}
	return state, postalCode, country
}
