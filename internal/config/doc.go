// Package config loads trendintel client settings.
//
// # Resolution Order
//
//  1. Built-in defaults (Default)
//  2. The TOML file at the given path, or ~/.config/trendintel/config.toml
//  3. TRENDINTEL_* environment variables (VITE_API_URL is accepted for the API URL)
//
// A missing config file is not an error. Empty or non-positive values in the
// file keep the default. LoadDotenv can be called first to populate the
// environment from a .env file.
//
// # TOML Format
//
//	api_url = "http://localhost:8000"
//	poll_interval = "5s"
//	cooldown = "5s"
//	feed_limit = 50
//	reports_limit = 20
//	request_timeout = "10s"
//	cache_dir = "~/.local/share/trendintel"
//	log_file = "~/.local/share/trendintel/trendintel.log"
//	log_level = "info"
//
// Every field is optional. Tilde expansion is applied to paths.
package config
