package settings_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imgremap/imgremap/pkg/errdefs"
	"github.com/imgremap/imgremap/pkg/remap"
	"github.com/imgremap/imgremap/pkg/settings"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile_Rules(t *testing.T) {
	path := writeSettings(t, `
rules:
  - source: quay.io
    destination: quay.mirror.example.com
  - source: docker.io
    destination: hub.mirror.example.com
`)

	s, err := settings.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, remap.Rules{
		{Source: "quay.io", Destination: "quay.mirror.example.com"},
		{Source: "docker.io", Destination: "hub.mirror.example.com"},
	}, s.EffectiveRules())
}

func TestLoadFile_LegacyRepos(t *testing.T) {
	path := writeSettings(t, `
repos:
  gcr.io: gcr.mirror.example.com
  k8s.gcr.io: k8s.mirror.example.com
`)

	s, err := settings.LoadFile(path)
	require.NoError(t, err)
	// map form is ordered deterministically, longest source first
	assert.Equal(t, remap.Rules{
		{Source: "k8s.gcr.io", Destination: "k8s.mirror.example.com"},
		{Source: "gcr.io", Destination: "gcr.mirror.example.com"},
	}, s.EffectiveRules())
}

func TestLoadFile_Invalid(t *testing.T) {
	path := writeSettings(t, `
rules:
  - source: ""
    destination: mirror.example.com
`)

	_, err := settings.LoadFile(path)
	assert.ErrorIs(t, err, errdefs.ErrInvalidParameter)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := settings.LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate_EmptyMappingAllowed(t *testing.T) {
	var s settings.Settings
	assert.NoError(t, s.Validate())
	assert.Empty(t, s.EffectiveRules())
}

func TestEffectiveRules_RulesWinOverRepos(t *testing.T) {
	s := settings.Settings{
		Rules: remap.Rules{{Source: "quay.io", Destination: "a.example.com"}},
		Repos: map[string]any{"quay.io": "b.example.com"},
	}
	assert.Equal(t, remap.Rules{{Source: "quay.io", Destination: "a.example.com"}}, s.EffectiveRules())
}
