package keybackend

import (
	"encoding/json"
	"fmt"
	"os"
)

// Secret is a named secret value.
type Secret struct {
	Name  string `json:"name" mapstructure:"name"`
	Value string `json:"value" mapstructure:"value"`
}

// LoadSecretsFromFile loads named secrets from a JSON file.
// The file should contain an array of secrets:
//
//	[
//	  {"name": "lake-sas", "value": "AKIA...:wJalrXUt...:FwoGZX..."},
//	  {"name": "portal", "value": "3f9c..."}
//	]
//
// Returns a map of name to value. Entries missing either field are skipped.
func LoadSecretsFromFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is from trusted config file
	if err != nil {
		return nil, fmt.Errorf("read secrets file: %w", err)
	}

	var secrets []Secret
	if err := json.Unmarshal(data, &secrets); err != nil {
		return nil, fmt.Errorf("parse secrets file: %w", err)
	}

	values := make(map[string]string, len(secrets))
	for _, s := range secrets {
		if s.Name != "" && s.Value != "" {
			values[s.Name] = s.Value
		}
	}

	return values, nil
}
