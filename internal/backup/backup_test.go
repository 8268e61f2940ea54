package backup

import (
	"testing"

	"github.com/hack-pad/hackpadfs/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptstock/gostock/internal/config"
	"github.com/promptstock/gostock/internal/prompts"
	"github.com/promptstock/gostock/internal/store"
)

func seededStore(t *testing.T) (store.Store, *prompts.Repository, *config.Config) {
	t.Helper()
	s := store.NewMemStore()
	repo := prompts.NewRepository(s)
	cfg := config.New(s)

	work, err := repo.AddFolder("Work")
	require.NoError(t, err)
	_, err = repo.AddPrompt("A", "alpha", prompts.RootFolder)
	require.NoError(t, err)
	_, err = repo.AddPrompt("W", "inside", work.ID)
	require.NoError(t, err)
	require.NoError(t, cfg.SetAPIToken("tok"))

	return s, repo, cfg
}

func TestExportWriteReadRoundTrip(t *testing.T) {
	_, repo, cfg := seededStore(t)

	a, err := Export(repo, cfg, 1234)
	require.NoError(t, err)
	assert.Equal(t, Version, a.Version)
	assert.Equal(t, int64(1234), a.ExportTime)
	assert.Equal(t, "tok", a.APIToken)
	assert.Len(t, a.Prompts, 2)
	assert.Len(t, a.Folders, 1)

	fs, err := mem.NewFS()
	require.NoError(t, err)
	require.NoError(t, a.Write(fs, "backup.json"))

	got, err := Read(fs, "backup.json")
	require.NoError(t, err)
	assert.Equal(t, a, got)
}

func TestImportRestoresIntoEmptyStore(t *testing.T) {
	_, repo, cfg := seededStore(t)
	a, err := Export(repo, cfg, 1234)
	require.NoError(t, err)

	dst := store.NewMemStore()
	dstRepo := prompts.NewRepository(dst)
	dstCfg := config.New(dst)

	n, err := Import(dst, dstCfg, a)
	require.NoError(t, err)
	assert.Equal(t, 4, n, "1 folder + 2 prompts + token")

	ps, err := dstRepo.ListPrompts()
	require.NoError(t, err)
	assert.Len(t, ps, 2)

	fs, err := dstRepo.ListFolders()
	require.NoError(t, err)
	require.Len(t, fs, 1)
	assert.Equal(t, "Work", fs[0].Name)

	token, err := dstCfg.APIToken()
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
}

func TestImportUpsertsExistingIDs(t *testing.T) {
	s, repo, cfg := seededStore(t)
	a, err := Export(repo, cfg, 1234)
	require.NoError(t, err)

	// Tweak a title and re-import into the same store.
	a.Prompts[0].Title = "renamed"
	_, err = Import(s, cfg, a)
	require.NoError(t, err)

	ps, err := repo.ListPrompts()
	require.NoError(t, err)
	require.Len(t, ps, 2, "import by id replaces, never duplicates")

	var titles []string
	for _, p := range ps {
		titles = append(titles, p.Title)
	}
	assert.Contains(t, titles, "renamed")
}

func TestParseRejectsInvalidArchives(t *testing.T) {
	_, err := Parse([]byte(`not json`))
	require.ErrorIs(t, err, ErrInvalidArchive)

	_, err = Parse([]byte(`{"prompts":[]}`))
	require.ErrorIs(t, err, ErrInvalidArchive, "missing version/exportTime")
}
