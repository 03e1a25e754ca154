package s3store

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/sagarc03/lakepath"
)

// Config holds the S3 backend settings.
type Config struct {
	Region       string
	Endpoint     string
	UsePathStyle bool
	// BaseURL is the public URL that items are reported under. When empty
	// the bucket URL is derived from the endpoint or region.
	BaseURL string
}

// Connector opens a bucket per connection, with credentials chosen by the
// connection auth variant:
//
//   - AmbientAuth: the default credential chain (env, shared config, IMDS)
//   - AccountKeyAuth: static access key id and secret
//   - SasTokenAuth: temporary credentials "accessKeyId:secretAccessKey:sessionToken"
//   - ServicePrincipalAuth: AssumeRole with ClientID as the role ARN and
//     ClientSecret as the external id
type Connector struct {
	cfg  Config
	base aws.Config
}

// NewConnector loads the ambient AWS configuration once.
func NewConnector(ctx context.Context, cfg Config, optFns ...func(*awsconfig.LoadOptions) error) (*Connector, error) {
	if cfg.Region != "" {
		optFns = append([]func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}, optFns...)
	}
	base, err := awsconfig.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &Connector{cfg: cfg, base: base}, nil
}

// Connect returns a Store for the connection container, used as the bucket.
func (c *Connector) Connect(ctx context.Context, conn lakepath.Connection) (lakepath.Storage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := conn.Validate(); err != nil {
		return nil, err
	}

	awsCfg := c.base.Copy()
	provider, err := CredentialsProvider(conn.Auth, c.base)
	if err != nil {
		return nil, err
	}
	if provider != nil {
		awsCfg.Credentials = aws.NewCredentialsCache(provider)
	}

	endpoint := c.endpoint(conn)
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = c.cfg.UsePathStyle
	})

	return New(client, conn.Container), nil
}

// BaseURL returns the URL that item paths are appended to.
func (c *Connector) BaseURL(conn lakepath.Connection) string {
	if c.cfg.BaseURL != "" {
		return lakepath.JoinURL(c.cfg.BaseURL, conn.Container)
	}
	if endpoint := c.endpoint(conn); endpoint != "" {
		return lakepath.JoinURL(endpoint, conn.Container)
	}
	region := c.base.Region
	if region == "" {
		region = "us-east-1"
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", conn.Container, region)
}

// endpoint prefers the connection account over the configured endpoint.
func (c *Connector) endpoint(conn lakepath.Connection) string {
	if conn.Account != "" {
		return conn.Account
	}
	return c.cfg.Endpoint
}

// CredentialsProvider maps an auth variant to AWS credentials. A nil
// provider means the default chain of base applies.
func CredentialsProvider(auth lakepath.Auth, base aws.Config) (aws.CredentialsProvider, error) {
	switch a := auth.(type) {
	case nil, lakepath.AmbientAuth:
		return nil, nil
	case lakepath.AccountKeyAuth:
		return credentials.NewStaticCredentialsProvider(a.KeyID, a.Secret, ""), nil
	case lakepath.SasTokenAuth:
		parts := strings.SplitN(a.Token, ":", 3)
		if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
			return nil, fmt.Errorf("%w: sas token must have the form accessKeyId:secretAccessKey:sessionToken", lakepath.ErrInvalidInput)
		}
		return credentials.NewStaticCredentialsProvider(parts[0], parts[1], parts[2]), nil
	case lakepath.ServicePrincipalAuth:
		return stscreds.NewAssumeRoleProvider(sts.NewFromConfig(base), a.ClientID, func(o *stscreds.AssumeRoleOptions) {
			o.RoleSessionName = "lakepath"
			if a.ClientSecret != "" {
				o.ExternalID = aws.String(a.ClientSecret)
			}
		}), nil
	default:
		return nil, fmt.Errorf("%w: unsupported auth %s", lakepath.ErrInvalidInput, auth.Kind())
	}
}
