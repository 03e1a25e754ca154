package lakepath

import "fmt"

// AuthKind names the authentication variant of a Connection.
type AuthKind string

const (
	AuthServicePrincipal AuthKind = "ServicePrincipal"
	AuthSasToken         AuthKind = "SasToken"
	AuthAccountKey       AuthKind = "AccountKey"
	AuthAmbient          AuthKind = "AmbientIdentity"
)

// Auth is one of ServicePrincipalAuth, SasTokenAuth, AccountKeyAuth or
// AmbientAuth. Backends switch on the concrete type once, when connecting.
type Auth interface {
	Kind() AuthKind
}

// ServicePrincipalAuth authenticates as a delegated identity.
type ServicePrincipalAuth struct {
	ClientID     string
	ClientSecret string
}

// SasTokenAuth authenticates with a scoped, temporary token.
type SasTokenAuth struct {
	Token string
}

// AccountKeyAuth authenticates with a long-lived account key.
type AccountKeyAuth struct {
	KeyID  string
	Secret string
}

// AmbientAuth uses whatever identity the process already has.
type AmbientAuth struct{}

func (ServicePrincipalAuth) Kind() AuthKind { return AuthServicePrincipal }
func (SasTokenAuth) Kind() AuthKind         { return AuthSasToken }
func (AccountKeyAuth) Kind() AuthKind       { return AuthAccountKey }
func (AmbientAuth) Kind() AuthKind          { return AuthAmbient }

// Connection identifies a data lake container and how to authenticate to it.
type Connection struct {
	// Account is the account or endpoint URI. Empty means the backend default.
	Account   string
	Container string
	Auth      Auth
}

// AuthParams holds the raw credential fields a client can send. Secrets
// have already been resolved from any secret store.
type AuthParams struct {
	ServicePrincipalClientID     string
	ServicePrincipalClientSecret string
	SasToken                     string
	AccountKeyID                 string
	AccountKeySecret             string
}

// NewAuth picks the authentication variant from the supplied fields: a
// service principal wins over a SAS token, which wins over an account key.
// With no credential fields the ambient identity is used.
func NewAuth(p AuthParams) Auth {
	switch {
	case p.ServicePrincipalClientID != "" || p.ServicePrincipalClientSecret != "":
		return ServicePrincipalAuth{ClientID: p.ServicePrincipalClientID, ClientSecret: p.ServicePrincipalClientSecret}
	case p.SasToken != "":
		return SasTokenAuth{Token: p.SasToken}
	case p.AccountKeyID != "" || p.AccountKeySecret != "":
		return AccountKeyAuth{KeyID: p.AccountKeyID, Secret: p.AccountKeySecret}
	default:
		return AmbientAuth{}
	}
}

// Validate checks that the container is a single path segment and that the
// chosen credentials are complete.
func (c Connection) Validate() error {
	if c.Container == "" {
		return fmt.Errorf("validate connection: %w: container is required", ErrInvalidInput)
	}
	if !IsValidSegment(c.Container) {
		return fmt.Errorf("validate connection: %w: invalid container name '%s'", ErrInvalidInput, c.Container)
	}

	switch a := c.Auth.(type) {
	case ServicePrincipalAuth:
		if a.ClientID == "" {
			return fmt.Errorf("validate connection: %w: service principal client id is required", ErrInvalidInput)
		}
	case AccountKeyAuth:
		if a.KeyID == "" || a.Secret == "" {
			return fmt.Errorf("validate connection: %w: account key id and secret are both required", ErrInvalidInput)
		}
	}
	return nil
}

// AuthKindOf returns the kind of the connection auth, AuthAmbient when unset.
func (c Connection) AuthKindOf() AuthKind {
	if c.Auth == nil {
		return AuthAmbient
	}
	return c.Auth.Kind()
}
