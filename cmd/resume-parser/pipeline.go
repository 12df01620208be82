package main

import (
	"github.com/medflow/resume-parser/internal/resume/extract"
	"github.com/medflow/resume-parser/internal/resume/geocode"
	"github.com/medflow/resume-parser/internal/resume/nlp"
	"github.com/medflow/resume-parser/pkg/config"
	"github.com/medflow/resume-parser/pkg/logger"
)

// newParser builds the extractor pipeline from the parser and geocoder settings
func newParser(cfg *config.Config, log *logger.Logger) *extract.Parser {
	opts := []extract.Option{extract.WithPhoneRegion(cfg.Parser.PhoneRegion)}

	if cfg.Parser.NLPEnabled {
		opts = append(opts, extract.WithAnalyzer(nlp.NewProseAnalyzer()))
	}

	if cfg.Geocoder.Enabled {
		log.Info().Str("base_url", cfg.Geocoder.BaseURL).Msg("geocoder enabled")
		opts = append(opts, extract.WithGeocoder(
			geocode.NewNominatimClient(cfg.Geocoder.BaseURL, cfg.Geocoder.UserAgent, cfg.Geocoder.Timeout),
		))
	}

	return extract.NewParser(log, opts...)
}
