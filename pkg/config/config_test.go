package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           8000,
			Host:           "0.0.0.0",
			ReadTimeout:    time.Second,
			WriteTimeout:   time.Second,
			RequestTimeout: time.Second,
			Environment:    EnvDevelopment,
		},
		Upload:   UploadConfig{MaxBytes: 10 << 20},
		Parser:   ParserConfig{PhoneRegion: "US"},
		Geocoder: GeocoderConfig{BaseURL: "https://nominatim.openstreetmap.org", UserAgent: defaultUserAgent, Timeout: time.Second},
		Jobs:     JobsConfig{TTL: time.Minute},
		RabbitMQ: RabbitMQConfig{URL: "amqp://localhost:5672/", Exchange: "resume.events"},
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("resume-parser-test-no-file")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8000 {
		t.Errorf("Server.Port = %d, want 8000", cfg.Server.Port)
	}
	if cfg.Upload.MaxBytes != 10<<20 {
		t.Errorf("Upload.MaxBytes = %d, want %d", cfg.Upload.MaxBytes, 10<<20)
	}
	if !cfg.Parser.NLPEnabled {
		t.Error("Parser.NLPEnabled should default to true")
	}
	if cfg.Geocoder.Enabled {
		t.Error("Geocoder.Enabled should default to false")
	}
	if cfg.RabbitMQ.Exchange != "resume.events" {
		t.Errorf("RabbitMQ.Exchange = %q, want resume.events", cfg.RabbitMQ.Exchange)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("MEDFLOW_SERVER_PORT", "9100")
	t.Setenv("MEDFLOW_PARSER_PHONE_REGION", "in")
	t.Setenv("MEDFLOW_JOBS_TTL", "2m")

	cfg, err := Load("resume-parser-test-no-file")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9100 {
		t.Errorf("Server.Port = %d, want 9100", cfg.Server.Port)
	}
	if cfg.Parser.PhoneRegion != "IN" {
		t.Errorf("Parser.PhoneRegion = %q, want IN", cfg.Parser.PhoneRegion)
	}
	if cfg.Jobs.TTL != 2*time.Minute {
		t.Errorf("Jobs.TTL = %v, want 2m", cfg.Jobs.TTL)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:    "development defaults are valid",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: true,
		},
		{
			name:    "unknown environment",
			mutate:  func(c *Config) { c.Server.Environment = "qa" },
			wantErr: true,
		},
		{
			name:    "phone region must be two letters",
			mutate:  func(c *Config) { c.Parser.PhoneRegion = "USA" },
			wantErr: true,
		},
		{
			name: "production geocoder needs a real user agent",
			mutate: func(c *Config) {
				c.Server.Environment = EnvProduction
				c.Geocoder.Enabled = true
			},
			wantErr: true,
		},
		{
			name: "production geocoder with user agent",
			mutate: func(c *Config) {
				c.Server.Environment = EnvProduction
				c.Geocoder.Enabled = true
				c.Geocoder.UserAgent = "medflow-resume-parser/1.0 (ops@medflow.de)"
			},
			wantErr: false,
		},
		{
			name: "production broker cannot be localhost",
			mutate: func(c *Config) {
				c.Server.Environment = EnvProduction
				c.RabbitMQ.Enabled = true
			},
			wantErr: true,
		},
		{
			name: "enabled broker requires url",
			mutate: func(c *Config) {
				c.RabbitMQ.Enabled = true
				c.RabbitMQ.URL = ""
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestServerConfig_Addr(t *testing.T) {
	c := ServerConfig{Host: "127.0.0.1", Port: 8000}
	if got := c.Addr(); got != "127.0.0.1:8000" {
		t.Errorf("Addr() = %q, want 127.0.0.1:8000", got)
	}
}
