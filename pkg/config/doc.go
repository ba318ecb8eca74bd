// Package config loads typed configuration from the environment.
//
// Values come from process environment variables, optionally seeded from
// .env files with github.com/joho/godotenv, and are parsed into structs with
// github.com/caarlos0/env/v11 field tags. Every guardkit package that needs
// settings exports its own env-tagged Config; a service composes them:
//
//	type Config struct {
//		Log       logger.Config
//		HTTP      httpserver.Config
//		IPLimit   ratelimit.Config `envPrefix:"IP_"`
//		CSRF      csrf.Config
//	}
//
//	cfg := Config{IPLimit: ratelimit.DefaultConfig()}
//	if err := config.LoadInto(&cfg); err != nil {
//		return err
//	}
//
// Load and LoadInto never cache. Each call re-reads the environment, so two
// policies of the same Config type under different prefixes stay independent.
//
// Errors wrap ErrLoadingEnvFile, ErrParsingConfig or ErrNilPointer and can be
// checked with errors.Is.
package config
