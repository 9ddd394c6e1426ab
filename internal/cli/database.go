package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	lxerrors "github.com/matzehuels/lexgraph/pkg/errors"
	"github.com/matzehuels/lexgraph/pkg/lexicon"
	"github.com/matzehuels/lexgraph/pkg/lexicon/mongodb"
	"github.com/matzehuels/lexgraph/pkg/lexicon/redisdb"
)

// closeTimeout bounds closing a remote backend.
const closeTimeout = 5 * time.Second

// backend is an open lexicon database plus its cleanup. DB is the concrete
// implementation, so optional interfaces such as lexicon.WordIndex stay
// visible to callers.
type backend struct {
	DB    lexicon.Database
	close func() error
}

// Close releases the backend.
func (d *backend) Close() error {
	if d.close == nil {
		return nil
	}
	return d.close()
}

// openDatabase connects to the backend named by cfg.Driver. Remote
// backends are retried up to cfg.ConnectAttempts times.
func openDatabase(ctx context.Context, cfg DatabaseConfig) (*backend, error) {
	logger := loggerFromContext(ctx)
	switch cfg.Driver {
	case DriverFile:
		if cfg.Path == "" {
			return nil, lxerrors.New(lxerrors.ErrCodeInvalidConfig, "database.path (or --db) is required for the file driver")
		}
		m, err := lexicon.LoadFile(cfg.Path)
		if err != nil {
			return nil, err
		}
		return &backend{DB: m}, nil

	case DriverRedis:
		var db *redisdb.DB
		err := retry(ctx, logger, cfg.ConnectAttempts, connectRetryDelay, func() (err error) {
			db, err = redisdb.New(ctx, redisdb.Config{
				Addr:     cfg.RedisAddr,
				Password: cfg.RedisPassword,
				DB:       cfg.RedisDB,
				Prefix:   cfg.RedisPrefix,
			})
			return retryable(err)
		})
		if err != nil {
			return nil, err
		}
		return &backend{DB: db, close: db.Close}, nil

	case DriverMongo:
		var db *mongodb.DB
		err := retry(ctx, logger, cfg.ConnectAttempts, connectRetryDelay, func() (err error) {
			db, err = mongodb.New(ctx, mongodb.Config{
				URI:        cfg.MongoURI,
				Database:   cfg.MongoDatabase,
				Collection: cfg.MongoCollection,
			})
			return retryable(err)
		})
		if err != nil {
			return nil, err
		}
		closeFn := func() error {
			ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
			defer cancel()
			return db.Close(ctx)
		}
		return &backend{DB: db, close: closeFn}, nil
	}
	return nil, lxerrors.New(lxerrors.ErrCodeInvalidConfig, "unknown database driver %q", cfg.Driver)
}

// databaseFlags holds the backend flags shared by every command that reads
// the lexicon. Set flags override the config file.
type databaseFlags struct {
	driver string
	path   string
}

func (f *databaseFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.driver, "driver", "", "lexicon backend: file, redis, mongo (default from config, else file)")
	cmd.Flags().StringVar(&f.path, "db", "", "lexicon TOML file for the file backend")
}

func (f *databaseFlags) apply(cfg *DatabaseConfig) {
	if f.driver != "" {
		cfg.Driver = f.driver
	}
	if f.path != "" {
		cfg.Path = f.path
	}
}

// openFromFlags loads the config, applies flags and opens the backend.
func (c *CLI) openFromFlags(ctx context.Context, f *databaseFlags) (Config, *backend, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return Config{}, nil, err
	}
	f.apply(&cfg.Database)
	if err := cfg.Validate(); err != nil {
		return Config{}, nil, err
	}
	db, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		return Config{}, nil, fmt.Errorf("open %s database: %w", cfg.Database.Driver, err)
	}
	return cfg, db, nil
}
