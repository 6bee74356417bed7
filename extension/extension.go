// Package extension provides the Forge extension adapter for Payable.
//
// It implements the forge.Extension interface to integrate Payable
// into a Forge application with automatic dependency discovery,
// DI registration, and lifecycle management.
//
// Configuration can be provided programmatically via Option functions
// or via YAML configuration files under "extensions.payable" or "payable" keys.
package extension

import (
	"context"
	"errors"

	"github.com/xraph/forge"
	"github.com/xraph/vessel"

	payable "github.com/xraph/payable"
	"github.com/xraph/payable/store"
	"github.com/xraph/payable/store/memory"
	"github.com/xraph/payable/transfer"
	"github.com/xraph/payable/types"
)

// ExtensionName is the name registered with Forge.
const ExtensionName = "payable"

// ExtensionDescription is the human-readable description.
const ExtensionDescription = "Embeddable invoice ledger with delegated creation and fee-splitting settlement"

// ExtensionVersion is the semantic version.
const ExtensionVersion = "0.1.0"

// Ensure Extension implements forge.Extension at compile time.
var _ forge.Extension = (*Extension)(nil)

// Extension adapts Payable as a Forge extension.
type Extension struct {
	*forge.BaseExtension

	config     Config
	engine     *payable.Ledger
	store      store.Store
	transfers  transfer.Service
	ledgerOpts []payable.Option
}

// New creates a new Payable Forge extension with the given options.
func New(opts ...Option) *Extension {
	e := &Extension{
		BaseExtension: forge.NewBaseExtension(ExtensionName, ExtensionVersion, ExtensionDescription),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Engine returns the underlying Ledger instance.
// This is nil until Register is called.
func (e *Extension) Engine() *payable.Ledger { return e.engine }

// Register implements [forge.Extension]. It loads configuration,
// initializes the ledger engine, and registers it in the DI container.
func (e *Extension) Register(fapp forge.App) error {
	if err := e.BaseExtension.Register(fapp); err != nil {
		return err
	}

	if err := e.loadConfiguration(); err != nil {
		return err
	}

	if e.config.Administrator == "" {
		return errors.New("payable: administrator identity is required; " +
			"set it via WithAdministrator or the 'administrator' config key")
	}

	// Use memory store if no store was provided programmatically.
	if e.store == nil {
		e.store = memory.New()
	}

	// The in-memory bank is the demo fallback; production apps wire a
	// real transfer service.
	if e.transfers == nil {
		e.transfers = transfer.NewBank()
	}

	eng := payable.New(e.store, e.transfers, types.Identity(e.config.Administrator), e.ledgerOpts...)
	e.engine = eng

	return vessel.Provide(fapp.Container(), func() (*payable.Ledger, error) {
		return e.engine, nil
	})
}

// Start implements [forge.Extension].
func (e *Extension) Start(ctx context.Context) error {
	if e.engine == nil {
		return errors.New("payable: extension not initialized")
	}

	if !e.config.DisableMigrate {
		if err := e.engine.Start(ctx); err != nil {
			return err
		}
	}

	e.MarkStarted()
	return nil
}

// Stop implements [forge.Extension].
func (e *Extension) Stop(_ context.Context) error {
	if e.engine != nil {
		if err := e.engine.Stop(); err != nil {
			e.MarkStopped()
			return err
		}
	}
	e.MarkStopped()
	return nil
}

// Health implements [forge.Extension].
func (e *Extension) Health(ctx context.Context) error {
	if e.store == nil {
		return errors.New("payable: store not initialized")
	}
	return e.store.Ping(ctx)
}

// --- Config Loading (mirrors grove/shield extension pattern) ---

// loadConfiguration loads config from YAML files or programmatic sources.
func (e *Extension) loadConfiguration() error {
	programmaticConfig := e.config

	// Try loading from config file.
	fileConfig, configLoaded := e.tryLoadFromConfigFile()

	if !configLoaded {
		if programmaticConfig.RequireConfig {
			return errors.New("payable: configuration is required but not found in config files; " +
				"ensure 'extensions.payable' or 'payable' key exists in your config")
		}

		e.config = programmaticConfig
	} else {
		// Config loaded from YAML -- merge with programmatic options.
		e.config = e.mergeConfigurations(fileConfig, programmaticConfig)
	}

	e.Logger().Debug("payable: configuration loaded",
		forge.F("administrator", e.config.Administrator),
		forge.F("disable_migrate", e.config.DisableMigrate),
	)

	return nil
}

// tryLoadFromConfigFile attempts to load config from YAML files.
func (e *Extension) tryLoadFromConfigFile() (Config, bool) {
	cm := e.App().Config()
	var cfg Config

	// Try "extensions.payable" first (namespaced pattern).
	if cm.IsSet("extensions.payable") {
		if err := cm.Bind("extensions.payable", &cfg); err == nil {
			e.Logger().Debug("payable: loaded config from file",
				forge.F("key", "extensions.payable"),
			)
			return cfg, true
		}
		e.Logger().Warn("payable: failed to bind extensions.payable config",
			forge.F("error", "bind failed"),
		)
	}

	// Try legacy "payable" key.
	if cm.IsSet("payable") {
		if err := cm.Bind("payable", &cfg); err == nil {
			e.Logger().Debug("payable: loaded config from file",
				forge.F("key", "payable"),
			)
			return cfg, true
		}
		e.Logger().Warn("payable: failed to bind payable config",
			forge.F("error", "bind failed"),
		)
	}

	return Config{}, false
}

// mergeConfigurations merges YAML config with programmatic options.
// YAML config takes precedence; programmatic values fill gaps.
func (e *Extension) mergeConfigurations(yamlConfig, programmaticConfig Config) Config {
	if programmaticConfig.DisableMigrate {
		yamlConfig.DisableMigrate = true
	}

	if yamlConfig.Administrator == "" && programmaticConfig.Administrator != "" {
		yamlConfig.Administrator = programmaticConfig.Administrator
	}

	return yamlConfig
}
