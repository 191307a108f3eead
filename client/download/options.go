package download

import (
	"errors"
	"hash"
	"log/slog"
	"strings"
)

// Option defines optional settings for [File].
type Option func(*options) error

type options struct {
	checksum     *digest
	progress     bool
	skipExisting bool
	logger       *slog.Logger
}

// WithChecksum validates the downloaded bytes against expected, the
// hex-encoded digest produced by h (e.g. sha256.New()).
func WithChecksum(h hash.Hash, expected string) Option {
	return func(opts *options) error {
		if h == nil {
			return errors.New("hash must not be nil")
		}

		if expected == "" {
			return errors.New("expected checksum must not be empty")
		}

		opts.checksum = &digest{h: h, want: strings.ToLower(expected)}
		return nil
	}
}

// WithProgress logs transfer progress at most once per second.
func WithProgress() Option {
	return func(opts *options) error {
		opts.progress = true
		return nil
	}
}

// WithSkipExisting makes File return immediately when destPath exists.
func WithSkipExisting() Option {
	return func(opts *options) error {
		opts.skipExisting = true
		return nil
	}
}

// WithLogger sets the logger for progress and cleanup messages.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *options) error {
		if logger == nil {
			return errors.New("logger must not be nil")
		}
		opts.logger = logger
		return nil
	}
}
