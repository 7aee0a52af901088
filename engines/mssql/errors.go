package mssql

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrOpenFailed = errors.New("failed to open mssql connection")
	ErrPingFailed = errors.New("mssql ping failed")
)

func NewOpenFailedError(err error) error {
	return fmt.Errorf("%w: %w", ErrOpenFailed, err)
}

func NewPingFailedError(err error) error {
	return fmt.Errorf("%w: %w", ErrPingFailed, err)
}

func NewInvalidOptionError(err error) error {
	return fmt.Errorf("mssql: %w", err)
}

func NewUnknownOptionsError(kind string, keys []string) error {
	return fmt.Errorf("mssql: unknown %s option keys: %s", kind, strings.Join(keys, ", "))
}
