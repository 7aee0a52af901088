// Package constants defines the value objects shared across pipeline
// deployments: deployment environments and audit-field defaults.
package constants

import (
	"fmt"
	"strings"
)

// Environment identifies a deployment environment.
type Environment string

const (
	EnvLocal         Environment = "local"
	EnvDevelopment   Environment = "development"
	EnvUAT           Environment = "uat"
	EnvPreproduction Environment = "preproduction"
	EnvProduction    Environment = "production"
)

// Environments returns all defined environments in promotion order.
func Environments() []Environment {
	return []Environment{EnvLocal, EnvDevelopment, EnvUAT, EnvPreproduction, EnvProduction}
}

// String returns the environment name.
func (e Environment) String() string { return string(e) }

// Valid reports whether e is one of the defined environments.
func (e Environment) Valid() bool {
	switch e {
	case EnvLocal, EnvDevelopment, EnvUAT, EnvPreproduction, EnvProduction:
		return true
	}
	return false
}

// ParseEnvironment parses a case-insensitive environment name.
func ParseEnvironment(s string) (Environment, error) {
	e := Environment(strings.ToLower(strings.TrimSpace(s)))
	if !e.Valid() {
		return "", fmt.Errorf("unknown environment %q", s)
	}
	return e, nil
}
