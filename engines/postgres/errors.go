package postgres

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidConnString  = errors.New("invalid postgres connection string")
	ErrPoolCreationFailed = errors.New("failed to create postgres connection pool")
	ErrPingFailed         = errors.New("postgres ping failed")
)

func NewInvalidConnStringError(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidConnString, err)
}

func NewPoolCreationFailedError(err error) error {
	return fmt.Errorf("%w: %w", ErrPoolCreationFailed, err)
}

func NewPingFailedError(err error) error {
	return fmt.Errorf("%w: %w", ErrPingFailed, err)
}

func NewInvalidOptionError(err error) error {
	return fmt.Errorf("postgres: %w", err)
}

func NewUnknownOptionsError(kind string, keys []string) error {
	return fmt.Errorf("postgres: unknown %s option keys: %s", kind, strings.Join(keys, ", "))
}
