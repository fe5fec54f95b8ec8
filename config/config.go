// Package config supports configuration of the fluxsign commands.
//
// Values are read from a dotenv file and the process environment, with the
// process environment taking precedence, and are then handed to the signer
// as an explicit Config value.
package config

import (
	"encoding/hex"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/runonflux/fluxsign/log"
	"go-simpler.org/env"
)

// DefaultEnvFile is the dotenv file used when no other path is given.
const DefaultEnvFile = ".env"

// ErrConfiguration is returned when the configuration is missing or unusable.
var ErrConfiguration = errors.New("configuration error")

// Config defines the settings shared by the fluxsign commands.
type Config struct {
	AddressVersion string `env:"ADDRESS_VERSION" default:"00" usage:"hex-encoded version prefix for derived addresses"`
	MessagePrefix  string `env:"MESSAGE_PREFIX" default:"Bitcoin Signed Message:\n" usage:"magic prefix hashed in front of every message"`
	PrivateKey     string `env:"PRIVATE_KEY" usage:"signing key as 64 hex characters or WIF"`
}

// AddressVersionBytes returns the decoded address version prefix.
func (c *Config) AddressVersionBytes() ([]byte, error) {
	version, err := hex.DecodeString(c.AddressVersion)
	if err != nil {
		return nil, errors.Wrapf(
			ErrConfiguration, "ADDRESS_VERSION %q is not valid hex", c.AddressVersion,
		)
	}
	if len(version) == 0 || len(version) > 4 {
		return nil, errors.Wrapf(
			ErrConfiguration, "ADDRESS_VERSION %q must be 1 to 4 bytes", c.AddressVersion,
		)
	}
	return version, nil
}

// Load reads the given dotenv file and the process environment, and returns
// the validated config. A missing file is not an error, as the values may
// all come from the process environment.
func Load(filename string) (*Config, error) {
	src, err := newSource(filename)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := env.Load(cfg, &env.Options{Source: src}); err != nil {
		return nil, errors.Wrapf(ErrConfiguration, "unable to load environment: %s", err)
	}
	if strings.TrimSpace(cfg.PrivateKey) == "" {
		return nil, errors.Wrapf(
			ErrConfiguration, "PRIVATE_KEY is not set in %s or the environment", filename,
		)
	}
	if _, err := cfg.AddressVersionBytes(); err != nil {
		return nil, err
	}
	if cfg.MessagePrefix == "" {
		return nil, errors.Wrap(ErrConfiguration, "MESSAGE_PREFIX must not be empty")
	}
	return cfg, nil
}

// source layers the process environment over the values of a dotenv file.
type source map[string]string

func (s source) LookupEnv(key string) (string, bool) {
	if value, ok := os.LookupEnv(key); ok {
		return value, true
	}
	value, ok := s[key]
	return value, ok
}

func newSource(filename string) (source, error) {
	if filename == "" {
		return source{}, nil
	}
	values, err := godotenv.Read(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Warnf("Env file %q not found, using process environment only", filename)
			return source{}, nil
		}
		return nil, errors.Wrapf(ErrConfiguration, "unable to read env file %q: %s", filename, err)
	}
	log.Debugf("Loaded %d values from env file %q", len(values), filename)
	return source(values), nil
}
