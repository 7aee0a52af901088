package redis

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidDatabase = errors.New("invalid redis database index")
	ErrPingFailed      = errors.New("redis ping failed")
)

func NewInvalidDatabaseError(value string, err error) error {
	return fmt.Errorf("%w: %q: %w", ErrInvalidDatabase, value, err)
}

func NewPingFailedError(err error) error {
	return fmt.Errorf("%w: %w", ErrPingFailed, err)
}

func NewInvalidOptionError(err error) error {
	return fmt.Errorf("redis: %w", err)
}

func NewUnknownOptionsError(kind string, keys []string) error {
	return fmt.Errorf("redis: unknown %s option keys: %s", kind, strings.Join(keys, ", "))
}
