package modules

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstalledModuleMetadata(t *testing.T) {
	env := newManagerEnv(t, map[string]map[string]string{
		"monitoring": {MetadataFileName: "Name: monitoring\nVersion: 2.1.0\n"},
		"graphite":   nil,
	})
	m := env.manager

	metadata, err := m.InstalledModuleMetadata("monitoring")
	require.NoError(t, err)
	assert.Equal(t, "2.1.0", metadata.Version)

	again, err := m.InstalledModuleMetadata("monitoring")
	require.NoError(t, err)
	assert.Same(t, metadata, again)
	assert.Equal(t, MetadataCacheStats{Hits: 1, Misses: 1, ItemCount: 1}, m.MetadataCacheStats())

	// no module.info is the default record and not cached
	metadata, err = m.InstalledModuleMetadata("graphite")
	require.NoError(t, err)
	assert.Equal(t, DefaultVersion, metadata.Version)
	assert.Equal(t, 1, m.MetadataCacheStats().ItemCount)

	_, err = m.InstalledModuleMetadata("director")
	assert.ErrorIs(t, err, ErrModuleNotInstalled)
	_, err = m.InstalledModuleMetadata("not-valid")
	assert.ErrorIs(t, err, ErrInvalidModuleName)
}

func TestInstalledModuleMetadataSeesEdits(t *testing.T) {
	env := newManagerEnv(t, map[string]map[string]string{
		"monitoring": {MetadataFileName: "Version: 2.1.0\n"},
	})
	path := filepath.Join(env.modulesDir, "monitoring", MetadataFileName)

	metadata, err := env.manager.InstalledModuleMetadata("monitoring")
	require.NoError(t, err)
	assert.Equal(t, "2.1.0", metadata.Version)

	require.NoError(t, os.WriteFile(path, []byte("Version: 2.2.0\n"), 0644))
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))

	metadata, err = env.manager.InstalledModuleMetadata("monitoring")
	require.NoError(t, err)
	assert.Equal(t, "2.2.0", metadata.Version)
}

func TestInstalledModuleMetadataOfLoadedModule(t *testing.T) {
	env := newManagerEnv(t, map[string]map[string]string{
		"monitoring": {MetadataFileName: "Version: 2.1.0\n"},
	})
	require.NoError(t, env.manager.LoadModule("monitoring", ""))

	d, ok := env.manager.GetModule("monitoring")
	require.True(t, ok)

	metadata, err := env.manager.InstalledModuleMetadata("monitoring")
	require.NoError(t, err)
	assert.Same(t, d.Metadata(), metadata)
	assert.Equal(t, MetadataCacheStats{}, env.manager.MetadataCacheStats())
}

func TestNewMetadataCacheDefaults(t *testing.T) {
	c := newMetadataCache(0, 0)
	assert.NotNil(t, c.cache)
	assert.Equal(t, MetadataCacheStats{}, c.stats())
}
