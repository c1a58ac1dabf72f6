// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package loads a .env file on first use (a missing file is not an error)
// and uses caarlos0/env for parsing environment variables into struct fields.
//
//	type APIConfig struct {
//		BaseURL string `env:"STOREFRONT_API_BASE_URL" envDefault:"http://localhost:8001/api"`
//	}
//
//	var cfg APIConfig
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
package config
