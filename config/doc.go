// Package config loads application configuration from a YAML file, a .env
// file and prefixed environment variables using Viper.
//
//	var cfg cli.Config
//	err := config.LoadConfig("gofetch", &cfg, config.WithConfigFile(path))
//
// GOFETCH_FETCH_TIMEOUT=5s overrides fetch.timeout from the file.
package config
