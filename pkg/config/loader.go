package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var defaultEnvLoaded sync.Once

// Load parses the process environment into a new T.
//
// With no files, the .env file in the working directory is loaded once per
// process if it exists. Named files must exist. Variables already present in
// the environment are never overwritten by file values.
//
//	type Config struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	cfg, err := config.Load[Config]()
func Load[T any](files ...string) (T, error) {
	var v T
	err := LoadInto(&v, files...)
	return v, err
}

// LoadInto is Load for a value that already carries defaults. Fields whose
// variable is unset and that have no envDefault tag keep their current value,
// so callers can start from a package's DefaultConfig.
func LoadInto[T any](v *T, files ...string) error {
	if v == nil {
		return ErrNilPointer
	}
	if err := loadEnvFiles(files); err != nil {
		return err
	}
	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad is Load that panics on failure. Use it only in main.
func MustLoad[T any](files ...string) T {
	v, err := Load[T](files...)
	if err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
	return v
}

func loadEnvFiles(files []string) error {
	if len(files) == 0 {
		defaultEnvLoaded.Do(func() {
			// The default file is optional.
			_ = godotenv.Load()
		})
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}
