package extension

// Config holds the Payable extension configuration.
// Fields can be set programmatically via Option functions or loaded from
// YAML configuration files (under "extensions.payable" or "payable" keys).
type Config struct {
	// Administrator is the identity pinned as the ledger administrator
	// on first start.
	Administrator string `json:"administrator" mapstructure:"administrator" yaml:"administrator"`

	// DisableMigrate prevents auto-migration on start.
	DisableMigrate bool `json:"disable_migrate" mapstructure:"disable_migrate" yaml:"disable_migrate"`

	// RequireConfig requires config to be present in YAML files.
	// If true and no config is found, Register returns an error.
	RequireConfig bool `json:"-" yaml:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{}
}
