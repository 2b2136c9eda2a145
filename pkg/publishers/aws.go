package publishers

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// AWSConnection holds the settings shared by the SQS and SNS publishers.
// Static credentials are optional; without them the default chain is used.
type AWSConnection struct {
	Region          string `json:"region" yaml:"region" toml:"region"`
	Endpoint        string `json:"endpoint" yaml:"endpoint" toml:"endpoint"`
	AccessKeyID     string `json:"access_key_id" yaml:"access_key_id" toml:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key" yaml:"secret_access_key" toml:"secret_access_key"`
	SessionToken    string `json:"session_token" yaml:"session_token" toml:"session_token"`
}

func loadAWSConfig(ctx context.Context, conn AWSConnection) (aws.Config, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	opts := []func(*awscfg.LoadOptions) error{awscfg.WithRegion(conn.Region)}
	if conn.AccessKeyID != "" && conn.SecretAccessKey != "" {
		opts = append(opts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(conn.AccessKeyID, conn.SecretAccessKey, conn.SessionToken),
		))
	}

	cfg, err := awscfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return cfg, nil
}

// endpointOverride returns nil when no custom endpoint (e.g. LocalStack) is configured.
func endpointOverride(conn AWSConnection) *string {
	if conn.Endpoint == "" {
		return nil
	}
	return aws.String(conn.Endpoint)
}

func (c AWSConnection) sanitized() AWSConnection {
	c.Region = trim(c.Region)
	c.Endpoint = trim(c.Endpoint)
	c.AccessKeyID = trim(c.AccessKeyID)
	c.SecretAccessKey = trim(c.SecretAccessKey)
	c.SessionToken = trim(c.SessionToken)
	return c
}
