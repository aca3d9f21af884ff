package webdispatch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("overrides defaults", func(t *testing.T) {
		cfg, err := LoadConfig(strings.NewReader(`
appNamespace: Shop
fallbackNamespaces: [Core, Shared]
cacheSize: 64
recoverPanics: false
`))

		require.NoError(t, err)
		assert.Equal(t, Config{
			AppNamespace:       "Shop",
			FallbackNamespaces: []string{"Core", "Shared"},
			CacheSize:          64,
			RecoverPanics:      false,
		}, cfg)
		assert.Equal(t, []string{"Shop", "Core", "Shared"}, cfg.Roots())
	})

	t.Run("empty document keeps defaults", func(t *testing.T) {
		cfg, err := LoadConfig(strings.NewReader(""))

		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		_, err := LoadConfig(strings.NewReader("appNamespcae: Shop\n"))
		assert.Error(t, err)
	})

	t.Run("rejects negative cache size", func(t *testing.T) {
		_, err := LoadConfig(strings.NewReader("cacheSize: -1\n"))
		assert.ErrorContains(t, err, "cacheSize")
	})

	t.Run("rejects invalid namespaces", func(t *testing.T) {
		for _, doc := range []string{
			"fallbackNamespaces: [Shop.Core]\n",
			"fallbackNamespaces: ['Vendor\\Shop']\n",
			"fallbackNamespaces: ['Vendor//Shop']\n",
			"appNamespace: /Shop\n",
		} {
			_, err := LoadConfig(strings.NewReader(doc))
			assert.ErrorContains(t, err, "invalid namespace", doc)
		}
	})

	t.Run("accepts nested namespaces", func(t *testing.T) {
		cfg, err := LoadConfig(strings.NewReader("appNamespace: Vendor/Shop\nfallbackNamespaces: [core]\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"Vendor/Shop", "core"}, cfg.Roots())
	})
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "webdispatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("appNamespace: Shop\n"), 0o600))

	cfg, err := LoadConfigFile(path)

	require.NoError(t, err)
	assert.Equal(t, "Shop", cfg.AppNamespace)
	assert.True(t, cfg.RecoverPanics)

	_, err = LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfig_NewRegistry(t *testing.T) {
	reg := Config{FallbackNamespaces: []string{"Core"}}.NewRegistry()
	reg.Register("Core.Error", nopConstructor)

	typ, ok := reg.Resolve("Error", "Controller", Category)

	require.True(t, ok)
	assert.Equal(t, "Core/Controller/ErrorController", typ.Name)
}
