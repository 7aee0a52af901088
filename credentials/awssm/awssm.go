// Package awssm resolves connection identifiers from AWS Secrets
// Manager. Each identifier names a secret holding a JSON document:
//
//	{"DB_HOST": "...", "DB_PORT": 5432, "DB_NAME": "...",
//	 "DB_USERNAME": "...", "DB_PASSWORD": "..."}
package awssm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"

	"github.com/AttawatThan/etlcore/credentials"
)

// API is the Secrets Manager surface the resolver needs. It is satisfied
// by *secretsmanager.Client.
type API interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// Config holds resolver configuration.
type Config struct {
	Region string // AWS region; empty lets the SDK resolve it
	Prefix string // prepended to identifiers to form secret names
}

// Option configures the resolver.
type Option func(*Config)

// WithRegion pins the AWS region.
func WithRegion(region string) Option {
	return func(c *Config) { c.Region = region }
}

// WithPrefix namespaces secret names, e.g. "etl/connections/".
func WithPrefix(prefix string) Option {
	return func(c *Config) { c.Prefix = prefix }
}

// Resolver resolves identifiers against Secrets Manager.
type Resolver struct {
	client API
	prefix string
}

// New loads the default AWS configuration and builds a resolver.
func New(ctx context.Context, opts ...Option) (*Resolver, error) {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return NewWithClient(secretsmanager.NewFromConfig(awsCfg), opts...), nil
}

// NewWithClient builds a resolver around an existing client. Useful for
// tests and for callers that manage AWS configuration themselves.
func NewWithClient(client API, opts ...Option) *Resolver {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Resolver{client: client, prefix: cfg.Prefix}
}

// secretDocument is the stored secret shape.
type secretDocument struct {
	DBHost     string `json:"DB_HOST"`
	DBPort     int    `json:"DB_PORT"`
	DBName     string `json:"DB_NAME"`
	DBUsername string `json:"DB_USERNAME"`
	DBPassword string `json:"DB_PASSWORD"`
}

// Resolve fetches and decodes the secret named by prefix+id.
func (r *Resolver) Resolve(ctx context.Context, id string) (credentials.Params, error) {
	out, err := r.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(r.prefix + id),
	})
	if err != nil {
		var notFound *types.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return credentials.Params{}, credentials.WrapNotFoundError(id, err)
		}
		return credentials.Params{}, fmt.Errorf("get secret value for %q: %w", id, err)
	}

	var doc secretDocument
	if err := json.Unmarshal([]byte(aws.ToString(out.SecretString)), &doc); err != nil {
		return credentials.Params{}, fmt.Errorf("decode secret for %q: %w", id, err)
	}

	return credentials.Params{
		Host:     doc.DBHost,
		Port:     doc.DBPort,
		User:     doc.DBUsername,
		Password: doc.DBPassword,
		Database: doc.DBName,
	}, nil
}
