package clientcli

import (
	"fmt"
	"strings"

	"github.com/sagarc03/lakepath"
)

// Connection selects the account and container a request runs against.
// Secrets are referenced by name so they never leave the server.
type Connection struct {
	Account                          string
	Container                        string
	ServicePrincipalClientID         string
	ServicePrincipalClientSecretName string
	SasTokenSecretName               string
	AccountKeyID                     string
	AccountKeySecretName             string
}

// CheckPathOptions configures a checkpathcase call.
type CheckPathOptions struct {
	Connection
	Path string
}

// FilterOption is one filter[Property]=operator:value query parameter.
type FilterOption struct {
	Property   string
	Expression string
}

// ParseFilter parses a Property=operator:value flag value.
func ParseFilter(s string) (FilterOption, error) {
	property, expression, ok := strings.Cut(s, "=")
	property = strings.TrimSpace(property)
	if !ok || property == "" || expression == "" {
		return FilterOption{}, fmt.Errorf("%w: %q, expected Property=operator:value", ErrInvalidFilter, s)
	}
	return FilterOption{Property: property, Expression: expression}, nil
}

// GetItemsOptions configures a getitems call.
type GetItemsOptions struct {
	Connection
	Directory     string
	Recursive     bool
	CaseSensitive bool // sends ignoreDirectoryCase=false
	OrderBy       string
	OrderByDesc   bool
	Limit         int
	Filters       []FilterOption
}

// CheckPathResult is the outcome of a successful checkpathcase call.
type CheckPathResult struct {
	InvocationID        string `json:"invocation_id"`
	StorageContainerURL string `json:"storage_container_url,omitempty"`
	ValidatedPath       string `json:"validated_path"`
}

// ItemsResult is the outcome of a successful getitems call.
type ItemsResult struct {
	InvocationID        string          `json:"invocation_id"`
	StorageContainerURL string          `json:"storage_container_url,omitempty"`
	CorrectedPath       string          `json:"corrected_path,omitempty"`
	Items               []lakepath.Item `json:"items"`
}

// TotalSize returns the sum of the content lengths of every file.
func (r *ItemsResult) TotalSize() int64 {
	var total int64
	for i := range r.Items {
		total += r.Items[i].ContentLength
	}
	return total
}

// serverResponse mirrors the JSON envelope returned by the server.
type serverResponse struct {
	InvocationID        string          `json:"invocationId"`
	StorageContainerURL string          `json:"storageContainerUrl"`
	Error               string          `json:"error"`
	ValidatedPath       string          `json:"validatedPath"`
	CorrectedFilePath   string          `json:"correctedFilePath"`
	FileCount           int             `json:"fileCount"`
	Files               []lakepath.Item `json:"files"`
}
