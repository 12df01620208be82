package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/medflow/resume-parser/pkg/config"
	"github.com/medflow/resume-parser/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParser_LogsComponentOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	cfg := &config.Config{
		Parser: config.ParserConfig{PhoneRegion: "US"},
		Geocoder: config.GeocoderConfig{
			Enabled:   true,
			BaseURL:   srv.URL,
			UserAgent: "resume-parser-test",
			Timeout:   time.Second,
		},
	}

	var buf bytes.Buffer
	p := newParser(cfg, logger.NewWithWriter(&buf, config.ServiceName))

	got := p.Parse(context.Background(), "Lives in Chicago")
	require.NotNil(t, got.Address.Location)

	var line string
	for _, l := range strings.Split(buf.String(), "\n") {
		if strings.Contains(l, "geocoding failed") {
			line = l
		}
	}
	require.NotEmpty(t, line, "geocoder failure was not logged: %s", buf.String())
	assert.Equal(t, 1, strings.Count(line, `"component"`))
	assert.Contains(t, line, `"component":"extract"`)
}
