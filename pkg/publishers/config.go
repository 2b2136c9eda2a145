package publishers

import (
	"errors"
	"fmt"
	"strings"
)

// Supported publisher types.
const (
	TypeSQS    = "sqs"
	TypeSNS    = "sns"
	TypePubSub = "pubsub"
	TypeHTTP   = "http"
)

const (
	httpDefaultMethod         = "POST"
	httpDefaultTimeoutSeconds = 5
)

// PublisherConfig is one entry of the publishers file. Exactly the block
// matching Type is read; the others are ignored.
type PublisherConfig struct {
	ID      string                 `json:"id" yaml:"id" toml:"id"`
	Type    string                 `json:"type" yaml:"type" toml:"type"`
	Enabled *bool                  `json:"enabled" yaml:"enabled" toml:"enabled"`
	SQS     *SQSPublisherConfig    `json:"sqs" yaml:"sqs" toml:"sqs"`
	SNS     *SNSPublisherConfig    `json:"sns" yaml:"sns" toml:"sns"`
	PubSub  *PubSubPublisherConfig `json:"pubsub" yaml:"pubsub" toml:"pubsub"`
	HTTP    *HTTPPublisherConfig   `json:"http" yaml:"http" toml:"http"`
}

// SQSPublisherConfig holds AWS SQS specific settings.
type SQSPublisherConfig struct {
	QueueURL      string `json:"uri" yaml:"uri" toml:"uri"`
	AWSConnection `yaml:",inline"`
}

// SNSPublisherConfig holds AWS SNS specific settings.
type SNSPublisherConfig struct {
	TopicARN      string `json:"topic_arn" yaml:"topic_arn" toml:"topic_arn"`
	AWSConnection `yaml:",inline"`
}

// PubSubPublisherConfig holds GCP Pub/Sub settings. Endpoint and
// CredentialsFile are optional.
type PubSubPublisherConfig struct {
	ProjectID       string `json:"project_id" yaml:"project_id" toml:"project_id"`
	Topic           string `json:"topic" yaml:"topic" toml:"topic"`
	CredentialsFile string `json:"credentials_file" yaml:"credentials_file" toml:"credentials_file"`
	Endpoint        string `json:"endpoint" yaml:"endpoint" toml:"endpoint"`
}

// HTTPPublisherConfig holds generic HTTP sink settings.
type HTTPPublisherConfig struct {
	URL            string            `json:"url" yaml:"url" toml:"url"`
	Method         string            `json:"method" yaml:"method" toml:"method"`
	Headers        map[string]string `json:"headers" yaml:"headers" toml:"headers"`
	TimeoutSeconds int               `json:"timeout_seconds" yaml:"timeout_seconds" toml:"timeout_seconds"`
}

// EnabledValue returns the enabled flag, true when unset.
func (cfg PublisherConfig) EnabledValue() bool {
	return cfg.Enabled == nil || *cfg.Enabled
}

// normalize returns a copy with whitespace trimmed and defaults applied.
// Sub-config blocks are copied so the caller's pointers are never mutated.
func (cfg PublisherConfig) normalize() PublisherConfig {
	cfg.ID = trim(cfg.ID)
	cfg.Type = strings.ToLower(trim(cfg.Type))
	if cfg.Enabled == nil {
		enabled := true
		cfg.Enabled = &enabled
	}
	if cfg.SQS != nil {
		c := cfg.SQS.normalize()
		cfg.SQS = &c
	}
	if cfg.SNS != nil {
		c := cfg.SNS.normalize()
		cfg.SNS = &c
	}
	if cfg.PubSub != nil {
		c := cfg.PubSub.normalize()
		cfg.PubSub = &c
	}
	if cfg.HTTP != nil {
		c := cfg.HTTP.normalize()
		cfg.HTTP = &c
	}
	return cfg
}

// validate checks the block selected by Type.
func (cfg PublisherConfig) validate() error {
	if cfg.ID == "" {
		return errors.New("id is required")
	}

	var err error
	switch cfg.Type {
	case "":
		return fmt.Errorf("type is required for publisher %q", cfg.ID)
	case TypeSQS:
		err = requireBlock(cfg.SQS == nil, TypeSQS, func() error { return cfg.SQS.validate() })
	case TypeSNS:
		err = requireBlock(cfg.SNS == nil, TypeSNS, func() error { return cfg.SNS.validate() })
	case TypePubSub:
		err = requireBlock(cfg.PubSub == nil, TypePubSub, func() error { return cfg.PubSub.validate() })
	case TypeHTTP:
		err = requireBlock(cfg.HTTP == nil, TypeHTTP, func() error { return cfg.HTTP.validate() })
	default:
		return fmt.Errorf("unsupported type %q for publisher %q", cfg.Type, cfg.ID)
	}
	if err != nil {
		return fmt.Errorf("publisher %q: %w", cfg.ID, err)
	}
	return nil
}

func requireBlock(missing bool, typ string, check func() error) error {
	if missing {
		return fmt.Errorf("%s config block is required", typ)
	}
	return check()
}

func (c SQSPublisherConfig) normalize() SQSPublisherConfig {
	c.QueueURL = trim(c.QueueURL)
	c.AWSConnection = c.AWSConnection.sanitized()
	return c
}

func (c *SQSPublisherConfig) validate() error {
	switch {
	case c.QueueURL == "":
		return errors.New("sqs.uri is required")
	case c.Region == "":
		return errors.New("sqs.region is required")
	}
	return nil
}

func (c SNSPublisherConfig) normalize() SNSPublisherConfig {
	c.TopicARN = trim(c.TopicARN)
	c.AWSConnection = c.AWSConnection.sanitized()
	return c
}

func (c *SNSPublisherConfig) validate() error {
	switch {
	case c.TopicARN == "":
		return errors.New("sns.topic_arn is required")
	case c.Region == "":
		return errors.New("sns.region is required")
	}
	return nil
}

func (c PubSubPublisherConfig) normalize() PubSubPublisherConfig {
	c.ProjectID = trim(c.ProjectID)
	c.Topic = trim(c.Topic)
	c.CredentialsFile = trim(c.CredentialsFile)
	c.Endpoint = trim(c.Endpoint)
	return c
}

func (c *PubSubPublisherConfig) validate() error {
	if c.ProjectID == "" || c.Topic == "" {
		return errors.New("pubsub.project_id and pubsub.topic are required")
	}
	return nil
}

func (c HTTPPublisherConfig) normalize() HTTPPublisherConfig {
	c.URL = trim(c.URL)
	c.Method = strings.ToUpper(trim(c.Method))
	if c.Method == "" {
		c.Method = httpDefaultMethod
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = httpDefaultTimeoutSeconds
	}

	headers := make(map[string]string, len(c.Headers))
	for k, v := range c.Headers {
		if k, v = trim(k), trim(v); k != "" && v != "" {
			headers[k] = v
		}
	}
	c.Headers = nil
	if len(headers) > 0 {
		c.Headers = headers
	}
	return c
}

func (c *HTTPPublisherConfig) validate() error {
	if c.URL == "" {
		return errors.New("http.url is required")
	}
	return nil
}

func trim(s string) string { return strings.TrimSpace(s) }
