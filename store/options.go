package store

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/arloliu/candy/compress"
	"github.com/arloliu/candy/format"
	"github.com/arloliu/candy/internal/options"
)

const (
	defaultCompression = format.CompressionS2
	defaultTimeout     = 10 * time.Second
)

type config struct {
	logger      *slog.Logger
	compression format.CompressionType
	timeout     time.Duration
	readOnly    bool
	noSync      bool
}

func defaultConfig() *config {
	return &config{
		logger:      slog.Default(),
		compression: defaultCompression,
		timeout:     defaultTimeout,
	}
}

// Option configures a Store at Open time.
type Option = options.Option[*config]

// WithLogger sets the logger used for store diagnostics. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	})
}

// WithCompression sets the compression applied to records written by the store.
//
// Records are always read with the compression recorded in their own header, so
// a store may hold records written with different settings.
func WithCompression(ct format.CompressionType) Option {
	return options.New(func(c *config) error {
		if _, err := compress.GetCodec(ct); err != nil {
			return fmt.Errorf("store option: %w", err)
		}
		c.compression = ct

		return nil
	})
}

// WithTimeout sets how long Open waits for the file lock. Zero waits forever.
func WithTimeout(d time.Duration) Option {
	return options.New(func(c *config) error {
		if d < 0 {
			return fmt.Errorf("store option: negative timeout %s", d)
		}
		c.timeout = d

		return nil
	})
}

// WithReadOnly opens the database file in read-only mode. Writes fail.
func WithReadOnly() Option {
	return options.NoError(func(c *config) {
		c.readOnly = true
	})
}

// WithNoSync skips fsync after each commit.
// Only use it for tests or data that can be rebuilt.
func WithNoSync() Option {
	return options.NoError(func(c *config) {
		c.noSync = true
	})
}
