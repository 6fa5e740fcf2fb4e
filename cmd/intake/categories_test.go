package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/intake/internal/common"
)

func TestCategoriesCmd(t *testing.T) {
	cmd := categoriesCmd()
	assert.Contains(t, cmd.Aliases, "category")

	update := findCommand(cmd, "update")
	require.NotNil(t, update)
	assert.NotNil(t, update.Flag("name"))
	assert.NotNil(t, update.Flag("description"))

	del := findCommand(cmd, "delete")
	require.NotNil(t, del)
	assert.Equal(t, "f", del.Flag("force").Shorthand)
}

func TestCategories_AddAndList(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("categories", "list")
	assert.Contains(t, out, "No categories found")

	out = env.mustRun("categories", "add", "  Jalur Reguler ", "--description", "General intake")
	assert.Contains(t, out, `Created category "Jalur Reguler" (slug: jalur-reguler`)
	env.mustRun("categories", "add", "Jalur Prestasi")

	out = env.mustRun("categories", "list")
	assert.Contains(t, out, "jalur-reguler")
	assert.Contains(t, out, "General intake")
	assert.Contains(t, out, "(no description)")
	assert.Less(t, strings.Index(out, "Jalur Prestasi"), strings.Index(out, "Jalur Reguler"), "most recent first")

	out = env.mustRun("categories", "list", "--search", "GENERAL")
	assert.Contains(t, out, "Jalur Reguler")
	assert.NotContains(t, out, "Jalur Prestasi")
}

func TestCategories_AddDuplicateSlug(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("categories", "add", "Jalur Reguler")

	_, err := env.run("", "categories", "add", "jalur  REGULER!")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrDuplicateSlug)
	assert.Contains(t, errorText(err), "already in use")
}

func TestCategories_AddRejectsShortName(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run("", "categories", "add", "A")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Contains(t, errorText(err), "name: must be at least 2 characters")
}

func TestCategories_Update(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("categories", "add", "Jalur Reguler", "--description", "General intake")

	_, err := env.run("", "categories", "update", "jalur-reguler")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must specify --name or --description")

	out := env.mustRun("categories", "update", "jalur-reguler", "--name", "Jalur Umum")
	assert.Contains(t, out, `Updated category "Jalur Umum"`)

	out = env.mustRun("categories", "list")
	assert.Contains(t, out, "jalur-umum")
	assert.Contains(t, out, "General intake", "description is kept when not given")

	env.mustRun("categories", "update", "Jalur Umum", "--description", "")
	out = env.mustRun("categories", "list")
	assert.Contains(t, out, "(no description)")

	_, err = env.run("", "categories", "update", "missing", "--name", "Other")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestCategories_Delete(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("categories", "add", "Jalur Reguler")
	env.mustRun("submissions", "add", "Gelombang Satu", "--category", "jalur-reguler")

	out, err := env.run("n\n", "categories", "delete", "jalur-reguler")
	require.NoError(t, err)
	assert.Contains(t, out, `1 submission(s) reference "Jalur Reguler"`)
	assert.Contains(t, out, "Deletion canceled")

	out, err = env.run("y\n", "categories", "delete", "jalur-reguler")
	require.NoError(t, err)
	assert.Contains(t, out, `Deleted category "Jalur Reguler"`)

	out = env.mustRun("submissions", "list")
	assert.Contains(t, out, "Gelombang Satu")
	assert.Contains(t, out, "category unavailable")

	_, err = env.run("", "categories", "delete", "jalur-reguler", "--force")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
