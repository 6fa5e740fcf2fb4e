package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/intake/internal/common"
	"github.com/Veraticus/intake/internal/model"
	"github.com/Veraticus/intake/internal/storage"
)

// testEnv isolates a command run from the user's home and config.
type testEnv struct {
	t      *testing.T
	dbPath string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("INTAKE_DATABASE_PATH", "")
	t.Setenv("INTAKE_DATABASE_DRIVER", "")
	return &testEnv{t: t, dbPath: filepath.Join(home, "intake.db")}
}

// run executes the CLI with args against the env's database, feeding stdin.
func (e *testEnv) run(stdin string, args ...string) (string, error) {
	e.t.Helper()
	viper.Reset()
	appConfig = nil

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--db", e.dbPath, "--log-level", "error"}, args...))

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func (e *testEnv) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run("", args...)
	require.NoError(e.t, err, out)
	return out
}

// submission reads a submission straight from the env's database.
func (e *testEnv) submission(slug string) model.SubmissionWithCategory {
	e.t.Helper()
	store, err := storage.NewSQLiteStorage(e.dbPath)
	require.NoError(e.t, err)
	defer func() { _ = store.Close() }()

	submissions, err := store.ListSubmissions(context.Background())
	require.NoError(e.t, err)
	for _, sub := range submissions {
		if sub.Slug == slug {
			return sub
		}
	}
	e.t.Fatalf("submission %q not found", slug)
	return model.SubmissionWithCategory{}
}

func findCommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, sub := range cmd.Commands() {
		if sub.Name() == name {
			return sub
		}
	}
	return nil
}

func TestRootCmd_Structure(t *testing.T) {
	root := newRootCmd()

	for _, name := range []string{"categories", "submissions", "migrate", "seed", "console", "version"} {
		assert.NotNil(t, findCommand(root, name), "%s command should exist", name)
	}
	for _, flag := range []string{"config", "log-level", "log-format", "db", "driver"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), "--%s flag should exist", flag)
	}

	categories := findCommand(root, "categories")
	for _, name := range []string{"list", "add", "update", "delete"} {
		assert.NotNil(t, findCommand(categories, name), "categories %s should exist", name)
	}

	console := findCommand(root, "console")
	require.NotNil(t, console)
	assert.NotNil(t, console.Flag("log-file"))
	assert.Equal(t, "", console.Flag("log-file").DefValue)

	add := findCommand(findCommand(root, "submissions"), "add")
	require.NotNil(t, add)
	assert.Equal(t, "draft", add.Flag("status").DefValue)
	assert.Equal(t, "1", add.Flag("quota").DefValue)
}

func TestVersionCmd(t *testing.T) {
	env := newTestEnv(t)
	out := env.mustRun("version")
	assert.Equal(t, "intake dev\n", out)
}

func TestInitConfig_InvalidDriver(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run("", "--driver", "postgres", "categories", "list")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestInitConfig_EnvOverridesDefault(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("INTAKE_LOGGING_FORMAT", "xml")

	_, err := env.run("", "version")
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestMigrateCmd(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("migrate", "--status")
	assert.Contains(t, out, "Current version: 0")
	assert.Contains(t, out, "Migrations pending")

	out = env.mustRun("migrate")
	assert.Contains(t, out, "Database migrated to version 2")

	out = env.mustRun("migrate", "--status")
	assert.Contains(t, out, "Current version: 2")
	assert.Contains(t, out, "Schema is up to date")

	_, err := os.Stat(env.dbPath)
	assert.NoError(t, err)
}

func TestMigrateCmd_MemoryDriver(t *testing.T) {
	env := newTestEnv(t)
	out := env.mustRun("--driver", "memory", "migrate")
	assert.Contains(t, out, "nothing to migrate")

	_, err := os.Stat(env.dbPath)
	assert.True(t, os.IsNotExist(err))
}

func TestErrorText(t *testing.T) {
	err := userError("create category", common.ErrDuplicateSlug)
	assert.ErrorIs(t, err, common.ErrDuplicateSlug)
	assert.Equal(t, "failed to create category: That name produces a slug that is already in use; choose another name.", errorText(err))

	assert.Equal(t, assert.AnError.Error(), errorText(assert.AnError))
	assert.NoError(t, userError("noop", nil))
}
