package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Setenv("RUN_ADDRESS", "")
	t.Setenv("DATABASE_URI", "postgres://localhost/revisions")

	cfg := MustLoad()

	require.NotNil(t, cfg)
	assert.Equal(t, "postgres://localhost/revisions", cfg.DB.DatabaseURI)
	assert.Equal(t, DefaultShortDateFormat, cfg.Date.ShortFormat)
	assert.Equal(t, DefaultTimezone, cfg.Date.Timezone)
	assert.Equal(t, DefaultEntityTypesFile, cfg.EntityTypes.File)
}

func TestMustLoad_FromEnv(t *testing.T) {
	viper.Reset()
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("RUN_ADDRESS", ":9090")
	t.Setenv("DATE_TIMEZONE", "Europe/Berlin")
	t.Setenv("SUPERUSERS", "1, 2,x")

	cfg := MustLoad()

	assert.Equal(t, EnvProd, cfg.Env)
	assert.Equal(t, ":9090", cfg.Server.RunAddress)
	assert.Equal(t, "Europe/Berlin", cfg.Date.Timezone)
	assert.Equal(t, []int{1, 2}, cfg.Access.Superusers)
}

func TestLoadEntityTypes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "entity_types.yaml")
	content := `
entity_types:
  - id: node
    label: Content
    bundles: [article, page]
    ownership: true
    revision_log: true
    links:
      canonical: /node/{node}
      revision: /node/{node}/revisions/{node_revision}/view
      version-history: /node/{node}/revisions
  - id: " block "
    label: Block
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	types, err := LoadEntityTypes(path)
	require.NoError(t, err)
	require.Len(t, types, 2)

	node := types[0]
	assert.Equal(t, "node", node.ID)
	assert.Equal(t, []string{"article", "page"}, node.Bundles)
	assert.True(t, node.Ownership)
	assert.True(t, node.RevisionLog)
	assert.Equal(t, "/node/{node}/revisions", node.Links["version-history"])

	assert.Equal(t, "block", types[1].ID)
	assert.False(t, types[1].RevisionLog)
	assert.Empty(t, types[1].Links)
}

func TestLoadEntityTypes_MissingFile(t *testing.T) {
	_, err := LoadEntityTypes(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
