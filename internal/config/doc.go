// Package config loads dockit-offert settings.
//
// Settings come from three layers, later layers winning:
//
//  1. config.yaml in the platform config directory
//  2. environment variables (a .env file in the working directory is loaded
//     first, without overriding variables that are already set)
//  3. command-line flags, applied by the caller
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/dockit-offert/config.yaml or $HOME/.config/dockit-offert/config.yaml
//   - macOS: $HOME/.config/dockit-offert/config.yaml
//   - Windows: %LOCALAPPDATA%\dockit-offert\config.yaml
//
// # Example
//
//	version: 1
//	api:
//	  base_url: http://localhost:8000
//	  timeout: 30s
//	export:
//	  dir: ~/Dokument/offerter
//	  print_command: lp
//	company:
//	  name: Dockit El & Data AB
//
// # Environment
//
//	DOCKIT_API_BASE       api.base_url
//	DOCKIT_API_KEY        api.api_key
//	DOCKIT_API_TIMEOUT    api.timeout (Go duration, e.g. 10s)
//	DOCKIT_EXPORT_DIR     export.dir
//	DOCKIT_PRINT_COMMAND  export.print_command
//
// The API key is better kept in the environment or .env than in config.yaml.
package config
