// Package config provides configuration handling for the gitsplit
// application.
//
// This package manages all configuration parameters for gitsplit:
// defaults, environment variables, and validation of the flag
// combinations the CLI binds into it. It ensures configuration values
// are consistent and valid before they are used by the application.
//
// # Core Components
//
// - Config: Main configuration type that holds all gitsplit settings
// - Mode: The single operation an invocation performs
// - VersionInfo: Type for version, commit, and build date information
//
// # Configuration Sources
//
// Configuration values are loaded with the following precedence:
//
// 1. Command-line flags (highest priority)
// 2. Environment variables
// 3. Default values (lowest priority)
//
// # Environment Variables
//
// The following environment variables are supported:
//
//	GITSPLIT_REPO_PATH   Path to the repository (default: current directory)
//	GITSPLIT_QUIET       Hide informational messages
//	GITSPLIT_DEBUG       Enable debug logging
//	GITSPLIT_LOG_FILE    Path to the debug log file
package config
