// Package settings loads and validates the operator-supplied remap
// configuration.
package settings

import (
	"fmt"
	"os"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/imgremap/imgremap/pkg/errdefs"
	"github.com/imgremap/imgremap/pkg/remap"
)

// Settings is the remap configuration. Rules is the preferred, ordered
// form. Repos is the legacy map form; because map iteration order is
// unspecified it is converted to a deterministic order, see remap.FromMap.
type Settings struct {
	Rules remap.Rules    `json:"rules,omitempty" yaml:"rules,omitempty"`
	Repos map[string]any `json:"repos,omitempty" yaml:"repos,omitempty"`
}

// LoadFile reads settings from a YAML (or JSON, it is a YAML subset) file.
func LoadFile(path string) (Settings, error) {
	var s Settings
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("unable to read settings file: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, errdefs.Newf(errdefs.ErrInvalidParameter, "unable to parse settings file %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// Validate checks the configured rules. An empty mapping is allowed and
// acts as a pass-through, but a rule with an empty source would match every
// reference and is rejected.
func (s Settings) Validate() error {
	for _, rule := range s.Rules {
		if rule.Source == "" {
			return errdefs.Newf(errdefs.ErrInvalidParameter,
				"remap rule with empty source (destination %q)", rule.Destination)
		}
	}
	for source := range s.Repos {
		if source == "" {
			return errdefs.Newf(errdefs.ErrInvalidParameter, "repos entry with empty source")
		}
	}
	return nil
}

// EffectiveRules returns the ordered rule list to apply. Explicit rules win
// over the legacy repos map. Scalar repos values are coerced to strings so
// YAML inputs like unquoted host:port values keep working.
func (s Settings) EffectiveRules() remap.Rules {
	if len(s.Rules) > 0 {
		return s.Rules
	}
	return remap.FromMap(cast.ToStringMapString(s.Repos))
}
