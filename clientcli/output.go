package clientcli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/sagarc03/lakepath"
)

// Formatter formats results for output.
type Formatter interface {
	FormatCheckPath(w io.Writer, result *CheckPathResult) error
	FormatItems(w io.Writer, result *ItemsResult) error
	FormatError(w io.Writer, err error) error
	FormatProfileList(w io.Writer, profiles []Profile, defaultName string, showSecrets bool) error
	FormatProfileShow(w io.Writer, profile Profile, isDefault, showSecrets bool) error
}

// NewFormatter returns the appropriate formatter based on flags.
func NewFormatter(jsonOutput, quiet bool) Formatter {
	if jsonOutput {
		return &JSONFormatter{}
	}
	return &HumanFormatter{Quiet: quiet}
}

// HumanFormatter outputs human-readable text.
type HumanFormatter struct {
	Quiet bool
}

// FormatCheckPath prints the validated path. In quiet mode only the path is
// printed so the output can be used in scripts.
func (f *HumanFormatter) FormatCheckPath(w io.Writer, result *CheckPathResult) error {
	if f.Quiet {
		_, _ = fmt.Fprintln(w, result.ValidatedPath)
		return nil
	}
	_, _ = fmt.Fprintf(w, "Validated path: %s\n", result.ValidatedPath)
	if result.StorageContainerURL != "" {
		_, _ = fmt.Fprintf(w, "  Container URL: %s\n", result.StorageContainerURL)
	}
	return nil
}

// FormatItems formats listed items as a table.
func (f *HumanFormatter) FormatItems(w io.Writer, result *ItemsResult) error {
	if !f.Quiet && result.CorrectedPath != "" {
		_, _ = fmt.Fprintf(w, "Directory resolved to: %s\n\n", result.CorrectedPath)
	}

	if len(result.Items) == 0 {
		if !f.Quiet {
			_, _ = fmt.Fprintln(w, "No items found")
		}
		return nil
	}

	if f.Quiet {
		for i := range result.Items {
			_, _ = fmt.Fprintln(w, result.Items[i].FullPath())
		}
		return nil
	}

	maxPathLen := 4 // "PATH"
	for i := range result.Items {
		if n := len(result.Items[i].FullPath()); n > maxPathLen {
			maxPathLen = n
		}
	}
	if maxPathLen > 60 {
		maxPathLen = 60
	}

	_, _ = fmt.Fprintf(w, "%-4s  %-*s  %10s  %s\n", "TYPE", maxPathLen, "PATH", "SIZE", "MODIFIED")
	_, _ = fmt.Fprintf(w, "%s  %s  %s  %s\n", strings.Repeat("-", 4), strings.Repeat("-", maxPathLen), strings.Repeat("-", 10), strings.Repeat("-", 19))

	for i := range result.Items {
		item := &result.Items[i]
		kind, size := "file", humanize.IBytes(uint64(max(item.ContentLength, 0)))
		if item.IsDirectory {
			kind, size = "dir", "-"
		}
		path := item.FullPath()
		if len(path) > maxPathLen {
			path = path[:maxPathLen-3] + "..."
		}
		_, _ = fmt.Fprintf(w, "%-4s  %-*s  %10s  %s\n",
			kind,
			maxPathLen,
			path,
			size,
			item.LastModified.UTC().Format("2006-01-02 15:04:05"),
		)
	}

	_, _ = fmt.Fprintf(w, "\n%s item(s) (%s total)\n",
		humanize.Comma(int64(len(result.Items))),
		humanize.IBytes(uint64(max(result.TotalSize(), 0))),
	)
	return nil
}

// FormatError formats an error as human-readable text.
func (f *HumanFormatter) FormatError(w io.Writer, err error) error {
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
	return nil
}

// FormatProfileList formats a list of profiles as human-readable text.
func (f *HumanFormatter) FormatProfileList(w io.Writer, profiles []Profile, defaultName string, showSecrets bool) error {
	maxNameLen := 4     // "NAME"
	maxEndpointLen := 8 // "ENDPOINT"
	for i := range profiles {
		if len(profiles[i].Name) > maxNameLen {
			maxNameLen = len(profiles[i].Name)
		}
		if len(profiles[i].Endpoint) > maxEndpointLen {
			maxEndpointLen = len(profiles[i].Endpoint)
		}
	}
	maxNameLen = min(maxNameLen, 20)
	maxEndpointLen = min(maxEndpointLen, 50)

	_, _ = fmt.Fprintf(w, "  %-*s  %-*s  %-20s  %s\n", maxNameLen, "NAME", maxEndpointLen, "ENDPOINT", "CONTAINER", "API KEY")
	_, _ = fmt.Fprintf(w, "  %s  %s  %s  %s\n", strings.Repeat("-", maxNameLen), strings.Repeat("-", maxEndpointLen), strings.Repeat("-", 20), strings.Repeat("-", 20))

	for i := range profiles {
		p := &profiles[i]
		marker := " "
		if p.Name == defaultName {
			marker = "*"
		}

		name := p.Name
		if len(name) > maxNameLen {
			name = name[:maxNameLen-3] + "..."
		}

		endpoint := p.Endpoint
		if len(endpoint) > maxEndpointLen {
			endpoint = endpoint[:maxEndpointLen-3] + "..."
		}

		_, _ = fmt.Fprintf(w, "%s %-*s  %-*s  %-20s  %s\n", marker, maxNameLen, name, maxEndpointLen, endpoint, p.Container, maskSecret(p.APIKey, showSecrets))
	}

	return nil
}

// FormatProfileShow formats a single profile as human-readable text.
func (f *HumanFormatter) FormatProfileShow(w io.Writer, profile Profile, isDefault, showSecrets bool) error {
	_, _ = fmt.Fprintf(w, "Name:      %s", profile.Name)
	if isDefault {
		_, _ = fmt.Fprintf(w, " (default)")
	}
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "Endpoint:  %s\n", profile.Endpoint)
	_, _ = fmt.Fprintf(w, "Account:   %s\n", orNotSet(profile.Account))
	_, _ = fmt.Fprintf(w, "Container: %s\n", orNotSet(profile.Container))
	_, _ = fmt.Fprintf(w, "API Key:   %s\n", maskSecret(profile.APIKey, showSecrets))
	return nil
}

// JSONFormatter outputs JSON.
type JSONFormatter struct{}

// FormatCheckPath formats a checkpathcase result as JSON.
func (f *JSONFormatter) FormatCheckPath(w io.Writer, result *CheckPathResult) error {
	return writeJSON(w, result)
}

// FormatItems formats listed items as JSON.
func (f *JSONFormatter) FormatItems(w io.Writer, result *ItemsResult) error {
	out := *result
	if out.Items == nil {
		out.Items = []lakepath.Item{}
	}
	return writeJSON(w, out)
}

// FormatError formats an error as JSON.
func (f *JSONFormatter) FormatError(w io.Writer, err error) error {
	output := struct {
		Error string `json:"error"`
	}{
		Error: err.Error(),
	}
	return writeJSON(w, output)
}

// FormatProfileList formats a list of profiles as JSON.
func (f *JSONFormatter) FormatProfileList(w io.Writer, profiles []Profile, defaultName string, showSecrets bool) error {
	output := struct {
		Profiles []jsonProfile `json:"profiles"`
	}{
		Profiles: make([]jsonProfile, len(profiles)),
	}

	for i := range profiles {
		output.Profiles[i] = newJSONProfile(profiles[i], profiles[i].Name == defaultName, showSecrets)
	}

	return writeJSON(w, output)
}

// FormatProfileShow formats a single profile as JSON.
func (f *JSONFormatter) FormatProfileShow(w io.Writer, profile Profile, isDefault, showSecrets bool) error {
	return writeJSON(w, newJSONProfile(profile, isDefault, showSecrets))
}

type jsonProfile struct {
	Name      string `json:"name"`
	Endpoint  string `json:"endpoint"`
	Account   string `json:"account,omitempty"`
	Container string `json:"container,omitempty"`
	APIKey    string `json:"api_key"`
	Default   bool   `json:"default"`
}

func newJSONProfile(p Profile, isDefault, showSecrets bool) jsonProfile {
	return jsonProfile{
		Name:      p.Name,
		Endpoint:  p.Endpoint,
		Account:   p.Account,
		Container: p.Container,
		APIKey:    maskSecret(p.APIKey, showSecrets),
		Default:   isDefault,
	}
}

// writeJSON writes a value as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func orNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

// maskSecret masks a secret string, showing only first 4 and last 4 characters.
// If showSecrets is true, returns the original value.
// If the secret is too short, returns all asterisks.
func maskSecret(secret string, showSecrets bool) string {
	if showSecrets {
		return secret
	}
	if secret == "" {
		return "(not set)"
	}
	if len(secret) <= 8 {
		return "********"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}
