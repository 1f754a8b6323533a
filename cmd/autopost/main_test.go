package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog_autopost/internal/domain"
)

func TestStatusError(t *testing.T) {
	assert.NoError(t, statusError(domain.RunPosted))

	var exitErr *exitError
	require.True(t, errors.As(statusError(domain.RunSkippedAlreadyPosted), &exitErr))
	assert.Equal(t, 10, exitErr.code)

	require.True(t, errors.As(statusError(domain.RunSkippedNoContent), &exitErr))
	assert.Equal(t, 11, exitErr.code)
}

func TestFixedDay(t *testing.T) {
	kst := time.FixedZone("KST", 9*60*60)

	now, err := fixedDay("2026-03-14", kst)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-14", now().Format(domain.DateLayout))
	assert.Equal(t, kst, now().Location())

	_, err = fixedDay("14/03/2026", kst)
	assert.Error(t, err)
}

func TestIndexCmd_FileBackend(t *testing.T) {
	dir := t.TempDir()
	postsDir := filepath.Join(dir, "posts")
	require.NoError(t, os.MkdirAll(postsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(postsDir, "index.json"),
		[]byte(`["daily-2026-01-02.json", "daily-2026-01-01.json"]`), 0o644))

	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath,
		[]byte("log_level: error\ntimezone: UTC\nstorage:\n  posts_dir: "+postsDir+"\n"), 0o644))

	cmd := indexCmd(&configPath)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "daily-2026-01-02.json\ndaily-2026-01-01.json\n", out.String())
}
