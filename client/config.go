package client

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/adamwoolhether/httpreq/internal/validate"
)

// Config is the file-based form of the [Client] options, for services
// that keep their HTTP settings in YAML:
//
//	timeout: 10s
//	userAgent: myapp/1.0
//	throttle:
//	  rps: 10
//	  burst: 5
//	noFollowRedirects: false
//	requestIDHeader: X-Request-ID
//	curlDebug: true
type Config struct {
	Timeout           time.Duration   `yaml:"timeout" validate:"gte=0"`
	UserAgent         string          `yaml:"userAgent"`
	Throttle          *ThrottleConfig `yaml:"throttle"`
	NoFollowRedirects bool            `yaml:"noFollowRedirects"`
	RequestIDHeader   string          `yaml:"requestIDHeader"`
	CurlDebug         bool            `yaml:"curlDebug"`
}

// ThrottleConfig holds the token bucket settings of a [Config].
type ThrottleConfig struct {
	RPS   int `yaml:"rps" validate:"gt=0"`
	Burst int `yaml:"burst" validate:"gt=0"`
}

// Validate checks cfg against its declared constraints.
func (cfg Config) Validate() error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid client config: %w", err)
	}

	return nil
}

// ParseConfig decodes and validates a YAML document into a Config.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decoding client config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadConfig reads the YAML file at path and parses it with [ParseConfig].
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading client config: %w", err)
	}

	return ParseConfig(data)
}
