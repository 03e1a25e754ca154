package keybackend

// SecretsConfig holds configuration for loading named secrets.
type SecretsConfig struct {
	Inline []Secret `mapstructure:"inline"` // Inline secrets from config
	File   string   `mapstructure:"file"`   // Path to JSON file containing secrets
}

// NewSecretStore creates a MapSecretStore from the given configuration.
// It loads secrets from both inline config and file (if specified),
// merging them into a single store. File secrets take precedence over inline
// secrets if there are duplicates.
func NewSecretStore(cfg SecretsConfig) (*MapSecretStore, error) {
	values := make(map[string]string)

	for _, s := range cfg.Inline {
		if s.Name != "" && s.Value != "" {
			values[s.Name] = s.Value
		}
	}

	if cfg.File != "" {
		fileValues, err := LoadSecretsFromFile(cfg.File)
		if err != nil {
			return nil, err
		}
		for k, v := range fileValues {
			values[k] = v
		}
	}

	return NewMapSecretStore(values), nil
}
