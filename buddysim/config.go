package buddysim

import (
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

// Config ...
type Config struct {
	// Capacity of the simulated address space, 0 asks for it interactively
	Capacity int    `toml:"capacity"`
	LogLevel string `toml:"log_level"`
	Color    bool   `toml:"color"`
}

// DefaultConfig ...
func DefaultConfig() Config {
	return Config{
		Capacity: 0,
		LogLevel: "info",
		Color:    true,
	}
}

// LoadConfig reads a TOML file on top of DefaultConfig, unknown keys are rejected
func LoadConfig(path string) (Config, error) {
	conf := DefaultConfig()
	meta, err := toml.DecodeFile(path, &conf)
	if err != nil {
		return Config{}, errors.Wrapf(err, "load config %s", path)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, errors.Newf("load config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return conf, nil
}

// NewLogger builds a logger writing to out, os.Stderr when out is nil
func (c Config) NewLogger(out io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrap(err, "log level")
	}

	if out == nil {
		out = os.Stderr
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(level)
	return logger, nil
}

// Overrides are command line values applied on top of the config file
type Overrides struct {
	// Capacity and LogLevel are nil when the flag was not given
	Capacity *int
	LogLevel *string
	NoColor  bool
}

// ResolveConfig loads path (DefaultConfig when empty) then applies the overrides
func ResolveConfig(path string, o Overrides) (Config, error) {
	conf := DefaultConfig()
	if path != "" {
		var err error
		conf, err = LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
	}

	if o.Capacity != nil {
		conf.Capacity = *o.Capacity
	}
	if o.LogLevel != nil {
		conf.LogLevel = *o.LogLevel
	}
	if o.NoColor {
		conf.Color = false
	}
	return conf, nil
}
