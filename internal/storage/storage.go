// Package storage provides the durable key-value stores the resume library is kept in.
// A backend is selected by URL scheme: memory:, file://, sqlite://, postgres:// and redis://.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// ErrNotFound is returned by Get when the key does not exist.
var ErrNotFound = errors.New("key not found")

// KV is a durable key-value store. Put replaces the whole value atomically: a reader sees
// either the previous or the new value, never a partial write.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Error represents a failed storage operation on one backend.
type Error struct {
	Backend string
	Op      string
	Key     string
	Cause   error
}

func (e *Error) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("storage error (%s %s %q): %v", e.Backend, e.Op, e.Key, e.Cause)
	}
	return fmt.Sprintf("storage error (%s %s): %v", e.Backend, e.Op, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// DefaultKeyPrefix namespaces keys in shared backends such as Redis.
const DefaultKeyPrefix = "pro-resume-mentor:"

type options struct {
	keyPrefix string
	logger    *slog.Logger
}

// Option configures Open.
type Option func(*options)

// WithKeyPrefix sets the key prefix used by the Redis backend.
func WithKeyPrefix(prefix string) Option {
	return func(o *options) { o.keyPrefix = prefix }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Open connects to the backend named by rawURL.
func Open(ctx context.Context, rawURL string, opts ...Option) (KV, error) {
	o := options{keyPrefix: DefaultKeyPrefix, logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	scheme, rest, found := strings.Cut(strings.TrimSpace(rawURL), ":")
	if !found {
		return nil, fmt.Errorf("invalid storage url %q: missing scheme", rawURL)
	}

	var (
		kv  KV
		err error
	)
	switch strings.ToLower(scheme) {
	case "memory", "mem":
		kv = NewMemory()
	case "file":
		kv, err = NewFile(strings.TrimPrefix(rest, "//"))
	case "sqlite", "sqlite3":
		kv, err = NewSQLite(ctx, strings.TrimPrefix(rest, "//"))
	case "postgres", "postgresql":
		kv, err = NewPostgres(ctx, rawURL)
	case "redis", "rediss":
		kv, err = NewRedis(ctx, rawURL, o.keyPrefix)
	default:
		return nil, fmt.Errorf("unsupported storage scheme %q", scheme)
	}
	if err != nil {
		return nil, err
	}

	o.logger.Debug("storage opened", "backend", strings.ToLower(scheme))
	return kv, nil
}

// Redact hides the password of a storage URL for logging.
func Redact(rawURL string) string {
	scheme, rest, ok := strings.Cut(rawURL, "://")
	if !ok {
		return rawURL
	}
	at := strings.LastIndex(rest, "@")
	if at < 0 {
		return rawURL
	}
	userinfo := rest[:at]
	if user, _, hasPass := strings.Cut(userinfo, ":"); hasPass {
		return scheme + "://" + user + ":xxxxx" + rest[at:]
	}
	return rawURL
}
