// Package config loads and validates jsonxsd's CLI configuration: a
// small struct populated by cobra flags and viper (flag > env > config
// file), validated with go-playground/validator before any render
// starts.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// CLI is the validated global configuration shared by every
// subcommand: the locale and concurrency settings collected from
// flags, JSONXSD_ environment variables, and an optional config file.
// Per-invocation paths (input file, output directory) stay as cobra
// positional args and are not part of this struct.
type CLI struct {
	Locale  string `mapstructure:"locale" validate:"required,oneof=en ru"`
	Workers int    `mapstructure:"workers" validate:"gte=0"`
}

// Load reads jsonxsd's configuration from viper (already populated by
// cobra flag bindings, JSONXSD_ env vars, and an optional config
// file) and validates it.
func Load(v *viper.Viper) (*CLI, error) {
	cfg := &CLI{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		var sb strings.Builder
		for _, fieldErr := range err.(validator.ValidationErrors) {
			sb.WriteString(fmt.Sprintf("validation failed on %q tag for field %q\n", fieldErr.Tag(), fieldErr.Field()))
		}
		return nil, fmt.Errorf("invalid configuration:\n%s", sb.String())
	}
	return cfg, nil
}

// LocaleTag parses cfg.Locale into a language.Tag for the format
// recognizer.
func (cfg *CLI) LocaleTag() (language.Tag, error) {
	return language.Parse(cfg.Locale)
}
