package cli

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/coursemap/pkg/cache"
	"github.com/matzehuels/coursemap/pkg/errors"
	"github.com/matzehuels/coursemap/pkg/pipeline"
)

// configFile is the file name searched for in the config directory.
const configFile = "config.toml"

// Config is the contents of the coursemap config file. Zero values mean
// "use the default for the map kind".
//
//	mode = "row"
//	heuristic = "majority"
//	precision = 2
//	metrics_file = "/var/lib/node_exporter/coursemap.prom"
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
type Config struct {
	Mode        string      `toml:"mode"`
	Heuristic   string      `toml:"heuristic"`
	Precision   int         `toml:"precision"`
	MetricsFile string      `toml:"metrics_file"`
	Cache       CacheConfig `toml:"cache"`
}

// CacheConfig selects the layout cache backend.
type CacheConfig struct {
	Backend  string `toml:"backend"` // file (default), redis or none
	Dir      string `toml:"dir"`
	RedisURL string `toml:"redis_url"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{Cache: CacheConfig{Backend: cache.BackendFile}}
}

// LoadConfig reads the config file at path. An empty path searches the
// default location, where a missing file is not an error. It returns the
// path that was actually read, or "" when defaults were used.
func LoadConfig(path string) (Config, string, error) {
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return DefaultConfig(), "", nil
		}
		path = filepath.Join(dir, configFile)
	}

	cfg, err := readConfig(path)
	if err != nil {
		if !explicit && stderrors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), "", nil
		}
		return Config{}, "", err
	}
	return cfg, path, nil
}

func readConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	cfg := DefaultConfig()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values that are set.
func (c Config) Validate() error {
	if c.Mode != "" {
		if err := pipeline.ValidateMode(c.Mode); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "config mode")
		}
	}
	if c.Heuristic != "" {
		if err := pipeline.ValidateHeuristic(c.Heuristic); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "config heuristic")
		}
	}
	if c.Precision != 0 {
		if err := pipeline.ValidatePrecision(c.Precision); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "config precision")
		}
	}
	switch c.Cache.Backend {
	case "", cache.BackendFile, cache.BackendNone:
	case cache.BackendRedis:
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache backend redis needs redis_url")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	return nil
}
