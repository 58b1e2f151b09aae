package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "test-token")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-token", cfg.DiscordToken)
	assert.Equal(t, "#FFD61A", cfg.EmbedColor)
	assert.Equal(t, "you", cfg.StatusName)
	assert.Equal(t, 10*time.Minute, cfg.PermissionCacheTTL)
	assert.True(t, cfg.InitSlashCommands)
}

func TestLoadOwnerList(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "test-token")
	t.Setenv("OWNER_IDS", "111,222")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsOwner("111"))
	assert.True(t, cfg.IsOwner("222"))
	assert.False(t, cfg.IsOwner("333"))
}

func TestColorParsing(t *testing.T) {
	cfg := &Config{EmbedColor: "#FF3333"}
	assert.Equal(t, 0xFF3333, cfg.Color())

	cfg.EmbedColor = "0x00FF00"
	assert.Equal(t, 0x00FF00, cfg.Color())

	cfg.EmbedColor = "not-a-color"
	assert.Equal(t, defaultEmbedColor, cfg.Color())
}
