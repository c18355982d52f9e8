package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wordstats/internal/core/domain"
)

func TestRootCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0)
	for _, cmd := range rootCmd.Commands() {
		names = append(names, cmd.Name())
	}

	for _, want := range []string{"serve", "upload", "files", "stats", "show", "download", "delete", "settings", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	for _, name := range []string{"config", "data-dir", "verbose"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
}

// ==================== upload ====================

func TestUploadCmd_RequiresArgs(t *testing.T) {
	_, err := executeCommand(t, "upload")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg(s)")
}

func TestUploadCmd_UploadsFiles(t *testing.T) {
	stores, cleanup := setupTestServices()
	defer cleanup()

	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(a, []byte("alpha beta"), 0o600))
	require.NoError(t, os.WriteFile(b, []byte("beta"), 0o600))

	out, err := executeCommand(t, "upload", a, b)
	require.NoError(t, err)
	assert.Contains(t, out, "Uploaded a.txt as file 1")
	assert.Contains(t, out, "Uploaded b.txt as file 2")
	assert.Equal(t, 2, stores.blobs.Len())
}

func TestUploadCmd_ReportsFailuresAndContinues(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.txt")
	good := filepath.Join(dir, "good.txt")
	require.NoError(t, os.WriteFile(bad, []byte{0xff, 0xfe}, 0o600))
	require.NoError(t, os.WriteFile(good, []byte("fine"), 0o600))

	out, err := executeCommand(t, "upload", bad, filepath.Join(dir, "missing.txt"), good)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDecode)
	assert.Contains(t, err.Error(), "missing.txt")
	assert.Contains(t, out, "Uploaded good.txt as file 1")
}

// ==================== files ====================

func TestFilesCmd_Empty(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand(t, "files")
	require.NoError(t, err)
	assert.Contains(t, out, "No files found.")
}

func TestFilesCmd_ListAndFilter(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	seedFile(t, "one.txt", "alpha")
	seedFile(t, "two.txt", "beta")

	out, err := executeCommand(t, "files")
	require.NoError(t, err)
	assert.Contains(t, out, "one.txt")
	assert.Contains(t, out, "two.txt")
	assert.Contains(t, out, "Total: 2 files")

	out, err = executeCommand(t, "files", "2")
	require.NoError(t, err)
	assert.NotContains(t, out, "one.txt")
	assert.Contains(t, out, "two.txt")

	out, err = executeCommand(t, "files", "99")
	require.NoError(t, err)
	assert.Contains(t, out, "No files found.")
}

func TestFilesCmd_InvalidID(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCommand(t, "files", "abc")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), `invalid file id "abc"`)
}

// ==================== stats ====================

func TestStatsCmd_Global(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	seedFile(t, "one.txt", "test alpha")
	seedFile(t, "two.txt", "test")

	out, err := executeCommand(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "WORD")
	assert.Contains(t, out, "100.00")
	assert.Contains(t, out, "50.00")
	assert.NotContains(t, out, "IN FILE")
}

func TestStatsCmd_Scoped(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	seedFile(t, "one.txt", "test alpha")
	seedFile(t, "two.txt", "test beta")

	out, err := executeCommand(t, "stats", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "IN FILE")
	assert.Contains(t, out, "alpha")
	assert.NotContains(t, out, "beta")
}

func TestStatsCmd_UnknownFile(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCommand(t, "stats", "7")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStatsCmd_Empty(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "No words found.")
}

// ==================== show / download / delete ====================

func TestShowCmd_PrintsContent(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	seedFile(t, "note.txt", "Show test content.")

	out, err := executeCommand(t, "show", "1")
	require.NoError(t, err)
	assert.Equal(t, "Show test content.", out)
}

func TestShowCmd_ContentMissing(t *testing.T) {
	stores, cleanup := setupTestServices()
	defer cleanup()

	stores.files.PutFile(domain.File{ID: 1, Name: "ghost.txt"})

	_, err := executeCommand(t, "show", "1")
	assert.ErrorIs(t, err, domain.ErrContentMissing)
}

func TestDownloadCmd_WritesFile(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	seedFile(t, "report.txt", "Download test content.")
	out := filepath.Join(t.TempDir(), "saved.txt")

	stdout, err := executeCommand(t, "download", "1", "-o", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Saved "+out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "Download test content.", string(data))
}

func TestDownloadCmd_Stdout(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	seedFile(t, "report.txt", "raw")

	out, err := executeCommand(t, "download", "1", "-o", "-")
	require.NoError(t, err)
	assert.Equal(t, "raw", out)
}

func TestDownloadCmd_NotFound(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCommand(t, "download", "5", "-o", "-")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteCmd(t *testing.T) {
	stores, cleanup := setupTestServices()
	defer cleanup()

	seedFile(t, "a.txt", "alpha")

	out, err := executeCommand(t, "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted file 1")
	assert.Zero(t, stores.blobs.Len())

	_, err = executeCommand(t, "delete", "1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ==================== settings ====================

func TestSettingsShowCmd(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand(t, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, domain.DefaultAddr)
	assert.Contains(t, out, "unlimited")
}

func TestSettingsInitCmd(t *testing.T) {
	stores, cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand(t, "settings", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Settings saved.")
	assert.Equal(t, domain.DefaultAddr, stores.config.GetString("server.addr"))
}

// ==================== wiring ====================

func TestNotConfigured(t *testing.T) {
	SetServices(&Services{})
	defer SetServices(nil)

	for _, args := range [][]string{{"files"}, {"stats"}, {"show", "1"}, {"delete", "1"}, {"serve"}} {
		_, err := executeCommand(t, args...)
		assert.ErrorIs(t, err, errNotConfigured, args)
	}
}

func TestParseFileID(t *testing.T) {
	id, err := parseFileID("12")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	for _, bad := range []string{"", "0", "-3", "1.5", "x"} {
		_, err := parseFileID(bad)
		assert.Error(t, err, bad)
	}
}

func TestResolveStorageDirs(t *testing.T) {
	s := domain.DefaultAppSettings()
	resolveStorageDirs(&s)
	assert.Equal(t, "data", filepath.Base(s.Storage.DataDir))
	assert.Equal(t, "media", filepath.Base(s.Storage.MediaDir))

	s.Storage.DataDir = "/custom"
	resolveStorageDirs(&s)
	assert.Equal(t, "/custom", s.Storage.DataDir)
}

func TestDefaultWiring_UsesDataDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dataDir := filepath.Join(t.TempDir(), "db")
	defer func() {
		settingsService = nil
		appSettings = domain.AppSettings{}
		uploadService, fileService, statsService = nil, nil, nil
		rootCmd.PersistentFlags().Set("data-dir", "")
		rootCmd.PersistentFlags().Lookup("data-dir").Changed = false
	}()

	out, err := executeCommand(t, "--data-dir", dataDir, "files")
	require.NoError(t, err)
	assert.Contains(t, out, "No files found.")
	assert.FileExists(t, filepath.Join(dataDir, "wordstats.db"))
	assert.DirExists(t, filepath.Join(home, ".wordstats", "media", "uploaded_texts"))
}
