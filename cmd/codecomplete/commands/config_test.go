package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/codecomplete/config"
	"gopkg.in/yaml.v3"
)

func defaultConfig(t *testing.T) *config.Config {
	t.Helper()
	v := viper.New()
	config.SetDefaults(v)
	cfg, err := config.LoadWithViper(v)
	require.NoError(t, err)
	return cfg
}

func TestMarshalConfig(t *testing.T) {
	cfg := defaultConfig(t)

	t.Run("toml", func(t *testing.T) {
		data, err := marshalConfig(cfg, "toml")
		require.NoError(t, err)

		var decoded config.Config
		require.NoError(t, toml.Unmarshal(data, &decoded))
		assert.Equal(t, "sourcekit-lsp", decoded.Service.Command)
		assert.Contains(t, string(data), "[service]")
	})

	t.Run("json", func(t *testing.T) {
		data, err := marshalConfig(cfg, "json")
		require.NoError(t, err)

		var decoded map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Contains(t, decoded, "service")
		assert.Contains(t, decoded, "sdk")
	})

	t.Run("yaml", func(t *testing.T) {
		data, err := marshalConfig(cfg, "yaml")
		require.NoError(t, err)

		var decoded config.Config
		require.NoError(t, yaml.Unmarshal(data, &decoded))
		assert.Equal(t, ".build/debug.yaml", decoded.Build.Manifest)
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := marshalConfig(cfg, "ini")
		assert.Error(t, err)
	})
}

func TestRunConfigWhere(t *testing.T) {
	project := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(project)
	require.NoError(t, os.WriteFile(filepath.Join(project, config.ProjectConfigName), []byte("[service\n"), 0644))

	var out bytes.Buffer
	configWhereCmd.SetOut(&out)
	t.Cleanup(func() { configWhereCmd.SetOut(nil) })

	require.NoError(t, runConfigWhere(configWhereCmd, nil))

	assert.Contains(t, out.String(), config.UserConfigName+" (missing)")
	assert.Contains(t, out.String(), config.ProjectConfigName+" (unreadable: ")
	assert.NotContains(t, out.String(), "(loaded)")
}
