package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/sagarc03/lakepath"
)

const (
	paramAccountURI                       = "accountUri"
	paramAccount                          = "account"
	paramContainer                        = "container"
	paramServicePrincipalClientID         = "servicePrincipalClientId"
	paramServicePrincipalClientSecret     = "servicePrincipalClientSecret"
	paramServicePrincipalClientSecretName = "servicePrincipalClientSecretName"
	paramSasToken                         = "sasToken"
	paramSasTokenSecretName               = "sasTokenSecretName"
	paramAccountKeyID                     = "accountKeyId"
	paramAccountKeySecret                 = "accountKeySecret"
	paramAccountKeySecretName             = "accountKeySecretName"
	paramPath                             = "path"
	paramDirectory                        = "directory"
	paramIgnoreDirectoryCase              = "ignoreDirectoryCase"
	paramRecursive                        = "recursive"
	paramOrderBy                          = "orderBy"
	paramOrderByDesc                      = "orderByDesc"
	paramLimit                            = "limit"

	redacted = "***"

	// maxBodyBytes caps the optional JSON parameter body.
	maxBodyBytes = 1 << 20
)

// ConnectionParams are the connection fields a client sends. Secrets may be
// given directly or as the name of a secret held by the server.
type ConnectionParams struct {
	AccountURI                       string `json:"accountUri,omitempty"`
	Container                        string `json:"container,omitempty"`
	ServicePrincipalClientID         string `json:"servicePrincipalClientId,omitempty"`
	ServicePrincipalClientSecret     string `json:"servicePrincipalClientSecret,omitempty"`
	ServicePrincipalClientSecretName string `json:"servicePrincipalClientSecretName,omitempty"`
	SasToken                         string `json:"sasToken,omitempty"`
	SasTokenSecretName               string `json:"sasTokenSecretName,omitempty"`
	AccountKeyID                     string `json:"accountKeyId,omitempty"`
	AccountKeySecret                 string `json:"accountKeySecret,omitempty"`
	AccountKeySecretName             string `json:"accountKeySecretName,omitempty"`
}

// Redacted returns a copy safe to echo back: secret values become "***".
// Secret names are kept.
func (p ConnectionParams) Redacted() ConnectionParams {
	for _, s := range []*string{&p.ServicePrincipalClientSecret, &p.SasToken, &p.AccountKeySecret} {
		if *s != "" {
			*s = redacted
		}
	}
	return p
}

// CheckPathParams are the parameters of checkpathcase.
type CheckPathParams struct {
	ConnectionParams
	Path *string `json:"path,omitempty"`
}

// GetItemsParams are the parameters of getitems.
type GetItemsParams struct {
	ConnectionParams
	Directory           string            `json:"directory"`
	IgnoreDirectoryCase bool              `json:"ignoreDirectoryCase"`
	Recursive           bool              `json:"recursive"`
	OrderBy             string            `json:"orderBy,omitempty"`
	OrderByDesc         bool              `json:"orderByDesc"`
	Limit               int               `json:"limit"`
	Filters             []lakepath.Filter `json:"filters,omitempty"`
}

// Query converts the parameters into a lakepath query.
func (p GetItemsParams) Query() lakepath.ListItemsQuery {
	return lakepath.ListItemsQuery{
		Path:        p.Directory,
		Recursive:   p.Recursive,
		IgnoreCase:  p.IgnoreDirectoryCase,
		OrderBy:     p.OrderBy,
		OrderByDesc: p.OrderByDesc,
		Limit:       p.Limit,
		Filters:     p.Filters,
	}
}

// requestParams looks parameters up in the query string first and then in
// the optional JSON body.
type requestParams struct {
	query map[string][]string
	body  map[string]string
}

func newRequestParams(r *http.Request) (*requestParams, error) {
	p := &requestParams{query: r.URL.Query(), body: map[string]string{}}

	if r.Body == nil || r.Body == http.NoBody {
		return p, nil
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read request body: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return p, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: request body is not a JSON object: %w", lakepath.ErrInvalidInput, err)
	}
	for k, v := range raw {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			p.body[k] = s
			continue
		}
		if string(v) != "null" {
			p.body[k] = string(v)
		}
	}
	return p, nil
}

// lookup returns a parameter and whether it was supplied at all.
func (p *requestParams) lookup(name string) (string, bool) {
	if vs, ok := p.query[name]; ok && len(vs) > 0 {
		return vs[0], true
	}
	v, ok := p.body[name]
	return v, ok
}

func (p *requestParams) get(name string) string {
	v, _ := p.lookup(name)
	return v
}

func (p *requestParams) getBool(name string, def bool) bool {
	v, ok := p.lookup(name)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(v)))
	if err != nil {
		return def
	}
	return b
}

func (p *requestParams) getInt(name string, def int) int {
	v, ok := p.lookup(name)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}

func (p *requestParams) connection() ConnectionParams {
	account := p.get(paramAccountURI)
	if account == "" {
		account = p.get(paramAccount)
	}
	return ConnectionParams{
		AccountURI:                       account,
		Container:                        p.get(paramContainer),
		ServicePrincipalClientID:         p.get(paramServicePrincipalClientID),
		ServicePrincipalClientSecret:     p.get(paramServicePrincipalClientSecret),
		ServicePrincipalClientSecretName: p.get(paramServicePrincipalClientSecretName),
		SasToken:                         p.get(paramSasToken),
		SasTokenSecretName:               p.get(paramSasTokenSecretName),
		AccountKeyID:                     p.get(paramAccountKeyID),
		AccountKeySecret:                 p.get(paramAccountKeySecret),
		AccountKeySecretName:             p.get(paramAccountKeySecretName),
	}
}

func (p *requestParams) checkPath() CheckPathParams {
	params := CheckPathParams{ConnectionParams: p.connection()}
	if v, ok := p.lookup(paramPath); ok {
		params.Path = &v
	} else if v, ok := p.body[paramDirectory]; ok {
		params.Path = &v
	}
	return params
}

func (p *requestParams) getItems() GetItemsParams {
	directory := strings.TrimLeft(p.get(paramDirectory), "/")
	if strings.TrimSpace(directory) == "" {
		directory = "/"
	}

	return GetItemsParams{
		ConnectionParams:    p.connection(),
		Directory:           directory,
		IgnoreDirectoryCase: p.getBool(paramIgnoreDirectoryCase, true),
		Recursive:           p.getBool(paramRecursive, false),
		OrderBy:             p.get(paramOrderBy),
		OrderByDesc:         p.getBool(paramOrderByDesc, false),
		Limit:               p.getInt(paramLimit, 0),
		Filters:             p.filters(),
	}
}

// filters reads every filter[Property]=operator:value query parameter.
// Repeated keys produce one filter per value.
func (p *requestParams) filters() []lakepath.Filter {
	var filters []lakepath.Filter
	for key, values := range p.query {
		if !strings.HasPrefix(key, "filter[") || !strings.HasSuffix(key, "]") {
			continue
		}
		property := key[len("filter[") : len(key)-1]
		for _, v := range values {
			filters = append(filters, lakepath.NewFilter(property, v))
		}
	}
	sortFilters(filters)
	return filters
}

func sortFilters(filters []lakepath.Filter) {
	slices.SortStableFunc(filters, func(a, b lakepath.Filter) int {
		return strings.Compare(a.PropertyName, b.PropertyName)
	})
}
