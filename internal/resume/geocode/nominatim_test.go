package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNominatimClient_Geocode(t *testing.T) {
	var gotQuery, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		gotQuery = r.URL.RawQuery
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"display_name":"Austin, Travis County, Texas, United States","address":{"city":"Austin","state":"Texas","country":"United States"}}]`))
	}))
	defer srv.Close()

	c := NewNominatimClient(srv.URL+"/", "resume-parser-test/1.0", time.Second)
	place, err := c.Geocode(context.Background(), "Austin")
	require.NoError(t, err)

	assert.Equal(t, "Austin", place.City)
	assert.Equal(t, "Texas", place.State)
	assert.Equal(t, "United States", place.Country)
	assert.Empty(t, place.PostalCode)
	assert.True(t, place.Structured())

	assert.Equal(t, "resume-parser-test/1.0", gotUA)
	assert.Contains(t, gotQuery, "q=Austin")
	assert.Contains(t, gotQuery, "format=jsonv2")
	assert.Contains(t, gotQuery, "limit=1")
	assert.Contains(t, gotQuery, "accept-language=en")
}

func TestNominatimClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "empty result", status: http.StatusOK, body: `[]`, wantErr: ErrNotFound},
		{name: "server error", status: http.StatusServiceUnavailable, body: `busy`},
		{name: "bad json", status: http.StatusOK, body: `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			place, err := NewNominatimClient(srv.URL, "ua", time.Second).Geocode(context.Background(), "Nowhere")
			require.Error(t, err)
			assert.Nil(t, place)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestNominatimClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := NewNominatimClient(srv.URL, "ua", 20*time.Millisecond).Geocode(context.Background(), "Austin")
	assert.Error(t, err)
}

func TestSplitDisplayName(t *testing.T) {
	tests := []struct {
		name        string
		display     string
		wantState   string
		wantPostal  string
		wantCountry string
	}{
		{
			name:        "with postcode",
			display:     "Austin, Travis County, Texas, 78701, United States",
			wantState:   "Texas",
			wantPostal:  "78701",
			wantCountry: "United States",
		},
		{
			name:        "without postcode",
			display:     "Pune, Pune District, Maharashtra, India",
			wantState:   "Pune District",
			wantCountry: "India",
		},
		{
			name:        "two parts",
			display:     "Singapore, Singapore",
			wantCountry: "Singapore",
		},
		{
			name:        "single part",
			display:     "Monaco",
			wantCountry: "Monaco",
		},
		{
			name:    "empty",
			display: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, postal, country := SplitDisplayName(tt.display)
			assert.Equal(t, tt.wantState, state)
			assert.Equal(t, tt.wantPostal, postal)
			assert.Equal(t, tt.wantCountry, country)
		})
	}
}
