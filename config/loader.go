// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix starts every environment variable Load reads.
const EnvPrefix = "IKSOLVE_"

var sections = []string{"solver", "line_search"}

// Load reads the YAML document data (which may be empty), overrides it with
// IKSOLVE_* environment variables and validates the result on top of
// Defaults.
//
// Errors: ErrInvalidTuning, or the wrapped parser error.
func Load(data []byte) (*Tuning, error) {
	k := koanf.New(".")

	if len(data) > 0 {
		if err := k.Load(rawbytes.Provider(data), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: parse yaml: %w", err)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}

	// keys no source sets keep their default
	t := Defaults()
	if err := k.Unmarshal("", &t); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// envKey maps IKSOLVE_SECTION_FIELD_NAME to section.field_name. Variables
// outside a known section are ignored.
func envKey(s string) string {
	name := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for _, sec := range sections {
		if field, ok := strings.CutPrefix(name, sec+"_"); ok && field != "" {
			return sec + "." + field
		}
	}
	return ""
}
