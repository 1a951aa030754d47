// Package config provides configuration management for the decimalog CLI.
//
// The configuration supplies the logging.Options used by every command.
// Library users call logging.Setup directly and do not need this package.
//
// # Configuration File
//
// The default configuration file location is ~/.config/decimalog/config.yaml
// ($DECIMALOG_CONFIG_DIR overrides the directory):
//
//	version: 1
//	folder: ~/.local/state/decimalog/logs
//	filename: app
//	level: INFO
//	class_length: 20
//	color: auto
//
// Every key can also be set from the environment with the DECIMALOG_ prefix,
// e.g. DECIMALOG_LEVEL=debug. Command-line flags take precedence over both.
//
// # Loading Configuration
//
//	config.Init()
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	log, err := logging.Setup(cfg.Options())
//
// Load validates the result; see [Validate] for the individual checks.
package config
