package app

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Cyclone1070/bioview/internal/config"
	"github.com/Cyclone1070/bioview/internal/tool/backup"
	"github.com/Cyclone1070/bioview/internal/tool/charset"
	"github.com/Cyclone1070/bioview/internal/tool/file"
	"github.com/Cyclone1070/bioview/internal/tool/fsutil"
	"github.com/Cyclone1070/bioview/internal/tool/readme"
	"github.com/Cyclone1070/bioview/internal/tool/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	dir        string
	cfg        *config.Config
	state      *config.State
	dispatcher *Dispatcher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Files.FallbackEncoding = "windows-1252"
	cfg.Files.ListFile = filepath.Join(dir, "cfg", config.DefaultListFile)
	cfg.Files.TemplateDir = filepath.Join(dir, "cfg", "templates")

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	fs := fsutil.NewOSFileSystem()

	state, err := config.LoadState(fs, filepath.Join(dir, "cfg", config.StateFile))
	require.NoError(t, err)

	loader, err := file.NewLoader(fs, cfg, logger)
	require.NoError(t, err)

	d := NewDispatcher(logger)
	_, err = NewService(Deps{
		Config:  cfg,
		State:   state,
		FS:      fs,
		Loader:  loader,
		Rotator: backup.NewRotator(fs, logger),
		Creator: readme.NewCreator(fs, logger),
		Scanner: scan.NewScanner(fs, cfg, logger),
		Tracker: fsutil.NewChecksumTracker(),
		Logger:  logger,
	}, d)
	require.NoError(t, err)

	return &testEnv{dir: dir, cfg: cfg, state: state, dispatcher: d}
}

func (e *testEnv) write(t *testing.T, rel string, data []byte) string {
	t.Helper()
	path := filepath.Join(e.dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func nextEvent(t *testing.T, d *Dispatcher) Event {
	t.Helper()
	select {
	case ev := <-d.Events():
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("no event received")
		return Event{}
	}
}

func TestService_RegistersAllActions(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, []string{
		ActionCheckModified,
		ActionCreateReadme,
		ActionListBackups,
		ActionListReadmes,
		ActionLoadReadme,
		ActionSaveReadme,
		ActionScanReadmes,
		ActionSearchReadmes,
	}, env.dispatcher.Names())
}

func TestService_LoadReadme(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("UTF-16 With BOM", func(t *testing.T) {
		path := env.write(t, "p1/readme.txt", []byte{0xFF, 0xFE, 'h', 0, 'i', 0, '\r', 0, '\n', 0})

		res, err := Call[*LoadReadmeResponse](ctx, env.dispatcher, ActionLoadReadme, map[string]any{"path": path})

		require.NoError(t, err)
		assert.Equal(t, "hi\n", res.Text)
		assert.Equal(t, charset.UTF16, res.Encoding)
		assert.False(t, res.Fallback)
		assert.Equal(t, []string{path}, env.state.MRU())
	})

	t.Run("Invalid UTF-8 Uses Fallback", func(t *testing.T) {
		path := env.write(t, "p2/readme.txt", []byte("caf\xe9"))

		res, err := Call[*LoadReadmeResponse](ctx, env.dispatcher, ActionLoadReadme, map[string]any{"path": path})

		require.NoError(t, err)
		assert.Equal(t, "café", res.Text)
		assert.True(t, res.Fallback)
		assert.Equal(t, "windows-1252", res.DecodedWith)
	})

	t.Run("Missing Path Fails", func(t *testing.T) {
		_, err := env.dispatcher.Dispatch(ctx, ActionLoadReadme, map[string]any{})
		assert.ErrorIs(t, err, ErrPathRequired)
	})
}

func TestService_SaveAndCheckModified(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	path := env.write(t, "p/readme.txt", []byte("one\n"))

	_, err := env.dispatcher.Dispatch(ctx, ActionLoadReadme, map[string]any{"path": path})
	require.NoError(t, err)

	mod, err := Call[*CheckModifiedResponse](ctx, env.dispatcher, ActionCheckModified, map[string]any{"path": path, "text": "one\n"})
	require.NoError(t, err)
	assert.False(t, mod.Modified)

	mod, err = Call[*CheckModifiedResponse](ctx, env.dispatcher, ActionCheckModified, map[string]any{"path": path, "text": "two\n"})
	require.NoError(t, err)
	assert.True(t, mod.Modified)

	saved, err := Call[*SaveReadmeResponse](ctx, env.dispatcher, ActionSaveReadme, map[string]any{"path": path, "text": "two\n"})
	require.NoError(t, err)
	// Written today, so no backup is due.
	assert.False(t, saved.Rotated)
	assert.Equal(t, 4, saved.Bytes)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two\n", string(data))

	ev := nextEvent(t, env.dispatcher)
	assert.Equal(t, EventFileSaved, ev.Kind)
	assert.Equal(t, path, ev.Path)

	mod, err = Call[*CheckModifiedResponse](ctx, env.dispatcher, ActionCheckModified, map[string]any{"path": path, "text": "two\n"})
	require.NoError(t, err)
	assert.False(t, mod.Modified)
}

func TestService_SaveRotatesOldFile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	path := env.write(t, "p/readme.txt", []byte("old\n"))
	yesterday := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(path, yesterday, yesterday))

	saved, err := Call[*SaveReadmeResponse](ctx, env.dispatcher, ActionSaveReadme, map[string]any{"path": path, "text": "new\n"})
	require.NoError(t, err)
	assert.True(t, saved.Rotated)

	backups, err := Call[*ListBackupsResponse](ctx, env.dispatcher, ActionListBackups, map[string]any{"path": path})
	require.NoError(t, err)
	require.Len(t, backups.Members, 1)
	assert.Equal(t, 1, backups.Members[0].Index)

	data, err := os.ReadFile(backup.BackupPath(path, 1))
	require.NoError(t, err)
	assert.Equal(t, "old\n", string(data))
}

func TestService_CreateReadme(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.write(t, "proj/data.csv", []byte("a,b\n"))
	env.write(t, "proj/raw/sample.fastq", []byte("@r1\n"))
	projDir := filepath.Join(env.dir, "proj")

	res, err := Call[*CreateReadmeResponse](ctx, env.dispatcher, ActionCreateReadme, map[string]any{
		"dir":    projDir,
		"policy": "template-files",
	})

	require.NoError(t, err)
	want := filepath.Join(projDir, config.DefaultReadmeName)
	assert.Equal(t, want, res.Path)
	assert.Equal(t, readme.TemplateWithFileList, res.Policy)

	data, err := os.ReadFile(want)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasPrefix(text, "This readme.txt file was generated on "))
	assert.Contains(t, text, "data.csv\n")
	assert.Contains(t, text, "raw\n")
	assert.Contains(t, text, "Processing")

	ev := nextEvent(t, env.dispatcher)
	assert.Equal(t, EventFileCreated, ev.Kind)
	assert.Equal(t, want, ev.Path)

	listed, err := Call[*ListReadmesResponse](ctx, env.dispatcher, ActionListReadmes, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{want}, listed.Files)

	t.Run("Existing File Is Kept", func(t *testing.T) {
		_, err := env.dispatcher.Dispatch(ctx, ActionCreateReadme, map[string]any{"path": want})
		assert.ErrorIs(t, err, readme.ErrFileExists)

		after, err := os.ReadFile(want)
		require.NoError(t, err)
		assert.Equal(t, text, string(after))
	})

	t.Run("Overwrite Replaces", func(t *testing.T) {
		_, err := env.dispatcher.Dispatch(ctx, ActionCreateReadme, map[string]any{"path": want, "overwrite": true})
		require.NoError(t, err)

		after, err := os.ReadFile(want)
		require.NoError(t, err)
		assert.NotContains(t, string(after), "data.csv")
	})
}

func TestService_CreateReadme_RelativeDir(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	projDir := filepath.Join(env.dir, "proj")
	require.NoError(t, os.MkdirAll(projDir, 0o755))
	prevDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(projDir))
	t.Cleanup(func() { _ = os.Chdir(prevDir) })
	want := filepath.Join(projDir, config.DefaultReadmeName)

	res, err := Call[*CreateReadmeResponse](ctx, env.dispatcher, ActionCreateReadme, map[string]any{"dir": "."})

	require.NoError(t, err)
	assert.Equal(t, want, res.Path)

	listed, err := Call[*ListReadmesResponse](ctx, env.dispatcher, ActionListReadmes, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{want}, listed.Files)

	// Loading by a relative path records the absolute one
	_, err = Call[*LoadReadmeResponse](ctx, env.dispatcher, ActionLoadReadme, map[string]any{"path": config.DefaultReadmeName})
	require.NoError(t, err)
	assert.Equal(t, []string{want}, env.state.MRU())

	data, err := os.ReadFile(want)
	require.NoError(t, err)
	modified, err := Call[*CheckModifiedResponse](ctx, env.dispatcher, ActionCheckModified, map[string]any{
		"path": want,
		"text": string(data),
	})
	require.NoError(t, err)
	assert.False(t, modified.Modified)
}

func TestService_LoadDuringAsyncScan(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	var files []string
	for _, name := range []string{"a", "b", "c", "d"} {
		files = append(files, env.write(t, "data/"+name+"/readme.txt", []byte(name+"\n")))
	}
	root := filepath.Join(env.dir, "data")

	_, err := Call[*ScanReadmesResponse](ctx, env.dispatcher, ActionScanReadmes, map[string]any{"root": root, "async": true})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			_, err := env.dispatcher.Dispatch(ctx, ActionLoadReadme, map[string]any{"path": path})
			assert.NoError(t, err)
		}(files[i%len(files)])
	}
	wg.Wait()

	ev := nextEvent(t, env.dispatcher)
	assert.Equal(t, EventScanDone, ev.Kind)
	assert.Equal(t, files, ev.Files)

	assert.Equal(t, root, env.state.WorkFolder())
	mru := env.state.MRU()
	assert.Len(t, mru, len(files))
	assert.ElementsMatch(t, files, mru)

	reloaded, err := config.LoadState(fsutil.NewOSFileSystem(), env.state.Path())
	require.NoError(t, err)
	assert.Equal(t, root, reloaded.WorkFolder())
	assert.ElementsMatch(t, files, reloaded.MRU())
}

func TestService_ScanReadmes(t *testing.T) {
	ctx := context.Background()

	t.Run("Sync Stores List And Work Folder", func(t *testing.T) {
		env := newTestEnv(t)
		a := env.write(t, "data/a/readme.txt", []byte("alpha beta\n"))
		b := env.write(t, "data/b/README_run2.txt", []byte("beta\n"))
		env.write(t, "data/b/notes.txt", []byte("beta\n"))
		root := filepath.Join(env.dir, "data")

		res, err := Call[*ScanReadmesResponse](ctx, env.dispatcher, ActionScanReadmes, map[string]any{"root": root})

		require.NoError(t, err)
		assert.Equal(t, []string{a, b}, res.Files)
		assert.False(t, res.Started)
		assert.Equal(t, root, env.state.WorkFolder())

		listed, err := Call[*ListReadmesResponse](ctx, env.dispatcher, ActionListReadmes, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{a, b}, listed.Files)

		found, err := Call[*SearchReadmesResponse](ctx, env.dispatcher, ActionSearchReadmes, map[string]any{"terms": []string{"ALPHA", "beta"}})
		require.NoError(t, err)
		require.Len(t, found.Matches, 1)
		assert.Equal(t, a, found.Matches[0].Path)
	})

	t.Run("Async Emits Scan Done", func(t *testing.T) {
		env := newTestEnv(t)
		a := env.write(t, "data/readme.txt", []byte("x\n"))
		require.NoError(t, env.state.SetWorkFolder(filepath.Join(env.dir, "data")))

		res, err := Call[*ScanReadmesResponse](ctx, env.dispatcher, ActionScanReadmes, map[string]any{"async": true})
		require.NoError(t, err)
		assert.True(t, res.Started)

		ev := nextEvent(t, env.dispatcher)
		assert.Equal(t, EventScanDone, ev.Kind)
		assert.NoError(t, ev.Err)
		assert.Equal(t, []string{a}, ev.Files)

		listed, err := scan.LoadList(fsutil.NewOSFileSystem(), env.cfg.Files.ListFile)
		require.NoError(t, err)
		assert.Equal(t, []string{a}, listed)
	})

	t.Run("No Work Folder Fails", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.dispatcher.Dispatch(ctx, ActionScanReadmes, nil)

		assert.ErrorIs(t, err, ErrNoWorkFolder)
	})
}

func TestService_ListReadmes_NoListFile(t *testing.T) {
	env := newTestEnv(t)

	res, err := Call[*ListReadmesResponse](context.Background(), env.dispatcher, ActionListReadmes, nil)

	require.NoError(t, err)
	assert.Empty(t, res.Files)
	assert.Equal(t, env.cfg.Files.ListFile, res.ListFile)
}
