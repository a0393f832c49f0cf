package configwatcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"rental_coach_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchConfigReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("grading:\n  threshold: 0.61\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan float64, 4)
	require.NoError(t, WatchConfig(ctx, file, func(cfg *config.Config) {
		got <- cfg.Grading.Threshold
	}))

	require.NoError(t, os.WriteFile(file, []byte("grading:\n  threshold: 0.7\n"), 0o644))

	select {
	case th := <-got:
		assert.InDelta(t, 0.7, th, 1e-9)
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded")
	}
}

func TestWatchConfigMissingDir(t *testing.T) {
	err := WatchConfig(context.Background(), filepath.Join(t.TempDir(), "nope", "config.yaml"), func(*config.Config) {})
	assert.Error(t, err)
}
