package mysql

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrOpenFailed = errors.New("failed to open mysql connection")
	ErrPingFailed = errors.New("mysql ping failed")
)

func NewOpenFailedError(err error) error {
	return fmt.Errorf("%w: %w", ErrOpenFailed, err)
}

func NewPingFailedError(err error) error {
	return fmt.Errorf("%w: %w", ErrPingFailed, err)
}

func NewInvalidOptionError(err error) error {
	return fmt.Errorf("mysql: %w", err)
}

func NewUnknownOptionsError(kind string, keys []string) error {
	return fmt.Errorf("mysql: unknown %s option keys: %s", kind, strings.Join(keys, ", "))
}
