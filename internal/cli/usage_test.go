package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HartBrook/promptsmith/internal/config"
	"github.com/HartBrook/promptsmith/internal/usage"
)

func TestNewUsageCmd_Flags(t *testing.T) {
	cmd := NewUsageCmd()

	for _, flag := range []string{"clear", "limit", "verbose"} {
		f := cmd.Flags().Lookup(flag)
		require.NotNil(t, f, "flag %q should exist", flag)
	}

	limit, _ := cmd.Flags().GetInt("limit")
	assert.Equal(t, 20, limit)
}

func TestUsageLog_PersistRoundTrip(t *testing.T) {
	dir := t.TempDir()
	paths := config.NewPathsWithOverrides(dir, filepath.Join(dir, "templates"))

	log := usage.NewLog(8)
	rec := usage.NewRecord("report")
	rec.Tokens = 42
	rec.Optimized = true
	rec.OriginalTokens = 99
	rec.Applied = []string{"whitespace-normalize", "truncate"}
	rec.Latency = 3 * time.Millisecond
	rec.Model = "test-model"
	log.Record(rec)

	require.NoError(t, saveUsageLog(paths, log))

	loaded := loadUsageLog(paths, 8)
	records := loaded.List()
	require.Len(t, records, 1)
	assert.Equal(t, rec.ID, records[0].ID)
	assert.Equal(t, "report", records[0].Template)
	assert.Equal(t, 42, records[0].Tokens)
	assert.Equal(t, 99, records[0].OriginalTokens)
	assert.Equal(t, []string{"whitespace-normalize", "truncate"}, records[0].Applied)
	assert.Equal(t, "test-model", records[0].Model)
}

func TestLoadUsageLog_MissingFile(t *testing.T) {
	dir := t.TempDir()
	paths := config.NewPathsWithOverrides(dir, filepath.Join(dir, "templates"))

	log := loadUsageLog(paths, 8)
	assert.Zero(t, log.Len())
}

func TestLoadUsageLog_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	paths := config.NewPathsWithOverrides(dir, filepath.Join(dir, "templates"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, usageFileName), []byte("not json"), 0644))

	log := loadUsageLog(paths, 8)
	assert.Zero(t, log.Len())
}

func TestLoadUsageLog_RespectsCapacity(t *testing.T) {
	dir := t.TempDir()
	paths := config.NewPathsWithOverrides(dir, filepath.Join(dir, "templates"))

	log := usage.NewLog(16)
	for i := 0; i < 10; i++ {
		log.Record(usage.NewRecord("report"))
	}
	require.NoError(t, saveUsageLog(paths, log))

	// A smaller capacity on reload keeps only the most recent records.
	loaded := loadUsageLog(paths, 4)
	assert.Equal(t, 4, loaded.Len())
}
