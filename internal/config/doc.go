// Package config loads mamba's TOML configuration.
//
// # Configuration Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/mamba/config.toml
//  3. If the file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing or empty, use defaults
//
// # TOML Format
//
//	endpoint = "https://script.google.com/macros/s/.../exec"
//	users = ["Dikshansh"]
//	debounce_ms = 300
//	debounce_mode = "shared"      # or "keyed"
//	request_timeout_seconds = 15
//	requests_per_second = 5       # negative disables pacing
//	log_file = "~/.local/state/mamba/mamba.log"
//	log_level = "info"
//
// Every field is optional. Tilde expansion is performed on log_file.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, TOML syntax errors and invalid values (unknown
// debounce_mode, negative debounce_ms). A missing file is not an error.
package config
