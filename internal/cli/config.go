package cli

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"

	lxerrors "github.com/matzehuels/lexgraph/pkg/errors"
	"github.com/matzehuels/lexgraph/pkg/explore"
)

// Database drivers.
const (
	DriverFile  = "file"
	DriverRedis = "redis"
	DriverMongo = "mongo"
)

// Config is the lexgraph config file.
//
//	[database]
//	driver = "redis"
//	redis_addr = "localhost:6379"
//
//	[layout]
//	base_radius = 70
//	expand_seed = true
//
//	[server]
//	addr = ":8080"
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Layout   LayoutConfig   `toml:"layout"`
	Server   ServerConfig   `toml:"server"`
}

// DatabaseConfig selects and configures the lexicon backend.
type DatabaseConfig struct {
	Driver string `toml:"driver"`

	// ConnectAttempts bounds connection attempts to a remote backend.
	ConnectAttempts int `toml:"connect_attempts"`

	// file
	Path string `toml:"path"`

	// redis
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	RedisPrefix   string `toml:"redis_prefix"`

	// mongo
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// LayoutConfig configures node placement. Pointer fields distinguish an
// explicit zero from an absent key.
type LayoutConfig struct {
	BaseRadius float64  `toml:"base_radius"`
	OriginX    *float64 `toml:"origin_x"`
	OriginY    *float64 `toml:"origin_y"`
	ExpandSeed *bool    `toml:"expand_seed"`
}

// ServerConfig configures `lexgraph serve`.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// LoadConfig decodes the TOML file at path and applies defaults. A missing
// file yields the defaults unless required is set. Unknown keys are an
// INVALID_CONFIG error.
func LoadConfig(path string, required bool) (Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !required:
		return cfg.WithDefaults(), nil
	case err != nil:
		return Config{}, lxerrors.Wrap(lxerrors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, lxerrors.New(lxerrors.ErrCodeInvalidConfig, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// WithDefaults returns a copy of c with unset values replaced by defaults.
func (c Config) WithDefaults() Config {
	if c.Database.Driver == "" {
		c.Database.Driver = DriverFile
	}
	if c.Database.ConnectAttempts == 0 {
		c.Database.ConnectAttempts = defaultConnectAttempts
	}
	if c.Layout.BaseRadius == 0 {
		c.Layout.BaseRadius = explore.DefaultBaseRadius
	}
	if c.Layout.OriginX == nil {
		x := explore.DefaultOrigin.X
		c.Layout.OriginX = &x
	}
	if c.Layout.OriginY == nil {
		y := explore.DefaultOrigin.Y
		c.Layout.OriginY = &y
	}
	if c.Layout.ExpandSeed == nil {
		expand := true
		c.Layout.ExpandSeed = &expand
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	return c
}

// Validate checks driver names and layout values.
func (c Config) Validate() error {
	switch c.Database.Driver {
	case DriverFile, DriverRedis, DriverMongo:
	default:
		return lxerrors.New(lxerrors.ErrCodeInvalidConfig, "unknown database driver %q (must be file, redis or mongo)", c.Database.Driver)
	}
	if c.Database.ConnectAttempts < 0 {
		return lxerrors.New(lxerrors.ErrCodeInvalidConfig, "database.connect_attempts must not be negative")
	}
	if c.Layout.BaseRadius <= 0 {
		return lxerrors.New(lxerrors.ErrCodeInvalidConfig, "layout.base_radius must be positive, got %v", c.Layout.BaseRadius)
	}
	return nil
}
