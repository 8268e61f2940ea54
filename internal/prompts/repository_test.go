package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptstock/gostock/internal/store"
)

// newTestRepo returns a repository over a fresh MemStore with a ticking
// fake clock so updatedAt comparisons are deterministic.
func newTestRepo(t *testing.T) (*Repository, store.Store) {
	t.Helper()
	s := store.NewMemStore()
	r := NewRepository(s)
	var clock int64 = 1000
	r.now = func() int64 {
		clock++
		return clock
	}
	return r, s
}

func promptOrders(t *testing.T, r *Repository, folderID string) map[string]int {
	t.Helper()
	ps, err := r.PromptsInFolder(folderID)
	require.NoError(t, err)
	out := make(map[string]int, len(ps))
	for _, p := range ps {
		out[p.ID] = p.Order
	}
	return out
}

// =============================================================================
// Folder CRUD
// =============================================================================

func TestAddFolderAssignsSequentialOrders(t *testing.T) {
	r, _ := newTestRepo(t)

	a, err := r.AddFolder("Work")
	require.NoError(t, err)
	b, err := r.AddFolder("Home")
	require.NoError(t, err)

	assert.Equal(t, 0, a.Order)
	assert.Equal(t, 1, b.Order)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, a.CreatedAt, a.UpdatedAt)

	folders, err := r.ListFolders()
	require.NoError(t, err)
	require.Len(t, folders, 2)
	assert.Equal(t, "Work", folders[0].Name)
	assert.Equal(t, "Home", folders[1].Name)
}

func TestRenameFolder(t *testing.T) {
	r, _ := newTestRepo(t)

	f, err := r.AddFolder("Wrk")
	require.NoError(t, err)

	require.NoError(t, r.RenameFolder(f.ID, "Work"))

	folders, err := r.ListFolders()
	require.NoError(t, err)
	require.Len(t, folders, 1)
	assert.Equal(t, "Work", folders[0].Name)
	assert.Greater(t, folders[0].UpdatedAt, f.UpdatedAt)
	assert.Equal(t, f.CreatedAt, folders[0].CreatedAt)
}

func TestRenameFolderAbsentIsNoOp(t *testing.T) {
	r, _ := newTestRepo(t)
	require.NoError(t, r.RenameFolder("missing", "whatever"))
}

func TestDeleteFolderCascades(t *testing.T) {
	r, _ := newTestRepo(t)

	work, err := r.AddFolder("Work")
	require.NoError(t, err)
	_, err = r.AddPrompt("X", "x", work.ID)
	require.NoError(t, err)
	_, err = r.AddPrompt("Y", "y", work.ID)
	require.NoError(t, err)
	keep, err := r.AddPrompt("Keep", "k", RootFolder)
	require.NoError(t, err)

	require.NoError(t, r.DeleteFolder(work.ID))

	folders, err := r.ListFolders()
	require.NoError(t, err)
	assert.Empty(t, folders)

	ps, err := r.ListPrompts()
	require.NoError(t, err)
	require.Len(t, ps, 1, "only the root prompt survives the cascade")
	assert.Equal(t, keep.ID, ps[0].ID)
}

// =============================================================================
// Prompt CRUD
// =============================================================================

func TestAddPromptOrdersArePerSiblingGroup(t *testing.T) {
	r, _ := newTestRepo(t)

	work, err := r.AddFolder("Work")
	require.NoError(t, err)

	rootA, err := r.AddPrompt("A", "a", RootFolder)
	require.NoError(t, err)
	rootB, err := r.AddPrompt("B", "b", RootFolder)
	require.NoError(t, err)
	inWork, err := r.AddPrompt("W", "w", work.ID)
	require.NoError(t, err)

	assert.Equal(t, 0, rootA.Order)
	assert.Equal(t, 1, rootB.Order)
	assert.Equal(t, 0, inWork.Order, "each sibling group numbers independently")
}

func TestUpdatePromptPartialMerge(t *testing.T) {
	r, _ := newTestRepo(t)

	p, err := r.AddPrompt("Title", "Content", RootFolder)
	require.NoError(t, err)

	title := "New Title"
	require.NoError(t, r.UpdatePrompt(p.ID, PromptUpdate{Title: &title}))

	ps, err := r.ListPrompts()
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, "New Title", ps[0].Title)
	assert.Equal(t, "Content", ps[0].Content, "unset fields stay untouched")
	assert.Equal(t, p.CreatedAt, ps[0].CreatedAt)
	assert.Greater(t, ps[0].UpdatedAt, p.UpdatedAt)
}

func TestUpdatePromptAbsentIsNoOp(t *testing.T) {
	r, _ := newTestRepo(t)
	title := "x"
	require.NoError(t, r.UpdatePrompt("missing", PromptUpdate{Title: &title}))
}

func TestDeletePrompt(t *testing.T) {
	r, _ := newTestRepo(t)

	p, err := r.AddPrompt("A", "a", RootFolder)
	require.NoError(t, err)
	require.NoError(t, r.DeletePrompt(p.ID))
	require.NoError(t, r.DeletePrompt(p.ID), "double delete is a no-op")

	n, err := r.CountPrompts()
	require.NoError(t, err)
	assert.Zero(t, n)
}

// =============================================================================
// Moves and Reorders
// =============================================================================

func TestMovePromptAppendsToDestination(t *testing.T) {
	r, _ := newTestRepo(t)

	work, err := r.AddFolder("Work")
	require.NoError(t, err)
	a, err := r.AddPrompt("A", "a", RootFolder)
	require.NoError(t, err)
	b, err := r.AddPrompt("B", "b", RootFolder)
	require.NoError(t, err)
	c, err := r.AddPrompt("C", "c", RootFolder)
	require.NoError(t, err)

	require.NoError(t, r.MovePrompt(b.ID, work.ID))

	inWork := promptOrders(t, r, work.ID)
	assert.Equal(t, map[string]int{b.ID: 0}, inWork)

	// Source group keeps its gap until the next reorder touches it.
	root := promptOrders(t, r, RootFolder)
	assert.Equal(t, map[string]int{a.ID: 0, c.ID: 2}, root)
}

func TestMovePromptWithinSameGroupAppendsToEnd(t *testing.T) {
	r, _ := newTestRepo(t)

	a, err := r.AddPrompt("A", "a", RootFolder)
	require.NoError(t, err)
	b, err := r.AddPrompt("B", "b", RootFolder)
	require.NoError(t, err)

	require.NoError(t, r.MovePrompt(a.ID, RootFolder))

	root := promptOrders(t, r, RootFolder)
	assert.Equal(t, map[string]int{b.ID: 1, a.ID: 2}, root)
}

func TestReorderPromptsRenumbersContiguously(t *testing.T) {
	r, _ := newTestRepo(t)

	a, err := r.AddPrompt("A", "a", RootFolder)
	require.NoError(t, err)
	b, err := r.AddPrompt("B", "b", RootFolder)
	require.NoError(t, err)
	c, err := r.AddPrompt("C", "c", RootFolder)
	require.NoError(t, err)

	// Final order C, A, B.
	group, err := r.PromptsInFolder(RootFolder)
	require.NoError(t, err)
	reordered := []Prompt{group[2], group[0], group[1]}
	require.NoError(t, r.ReorderPrompts(reordered))

	root := promptOrders(t, r, RootFolder)
	assert.Equal(t, map[string]int{c.ID: 0, a.ID: 1, b.ID: 2}, root)
}

func TestReorderPromptsClosesGaps(t *testing.T) {
	r, _ := newTestRepo(t)

	a, err := r.AddPrompt("A", "a", RootFolder)
	require.NoError(t, err)
	b, err := r.AddPrompt("B", "b", RootFolder)
	require.NoError(t, err)
	c, err := r.AddPrompt("C", "c", RootFolder)
	require.NoError(t, err)
	require.NoError(t, r.DeletePrompt(b.ID))

	group, err := r.PromptsInFolder(RootFolder)
	require.NoError(t, err)
	require.NoError(t, r.ReorderPrompts(group))

	root := promptOrders(t, r, RootFolder)
	assert.Equal(t, map[string]int{a.ID: 0, c.ID: 1}, root)
}

func TestReorderLeavesUntouchedSiblingsTimestamps(t *testing.T) {
	r, _ := newTestRepo(t)

	a, err := r.AddPrompt("A", "a", RootFolder)
	require.NoError(t, err)
	b, err := r.AddPrompt("B", "b", RootFolder)
	require.NoError(t, err)
	c, err := r.AddPrompt("C", "c", RootFolder)
	require.NoError(t, err)

	// Swap B and C; A keeps position 0 and must keep its updatedAt.
	group, err := r.PromptsInFolder(RootFolder)
	require.NoError(t, err)
	require.NoError(t, r.ReorderPrompts([]Prompt{group[0], group[2], group[1]}))

	ps, err := r.ListPrompts()
	require.NoError(t, err)
	byID := make(map[string]Prompt, len(ps))
	for _, p := range ps {
		byID[p.ID] = p
	}
	assert.Equal(t, a.UpdatedAt, byID[a.ID].UpdatedAt, "unmoved sibling keeps updatedAt")
	assert.Greater(t, byID[b.ID].UpdatedAt, b.UpdatedAt)
	assert.Greater(t, byID[c.ID].UpdatedAt, c.UpdatedAt)
}

func TestReorderPromptsRejectsMixedGroups(t *testing.T) {
	r, _ := newTestRepo(t)

	work, err := r.AddFolder("Work")
	require.NoError(t, err)
	a, err := r.AddPrompt("A", "a", RootFolder)
	require.NoError(t, err)
	w, err := r.AddPrompt("W", "w", work.ID)
	require.NoError(t, err)

	err = r.ReorderPrompts([]Prompt{*a, *w})
	require.ErrorIs(t, err, ErrMixedSiblings)
}

func TestReorderFolders(t *testing.T) {
	r, _ := newTestRepo(t)

	a, err := r.AddFolder("A")
	require.NoError(t, err)
	b, err := r.AddFolder("B")
	require.NoError(t, err)

	folders, err := r.ListFolders()
	require.NoError(t, err)
	require.NoError(t, r.ReorderFolders([]Folder{folders[1], folders[0]}))

	folders, err = r.ListFolders()
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID, a.ID}, []string{folders[0].ID, folders[1].ID})
	assert.Equal(t, 0, folders[0].Order)
	assert.Equal(t, 1, folders[1].Order)
}

// =============================================================================
// Search
// =============================================================================

func TestSearchAll(t *testing.T) {
	r, _ := newTestRepo(t)

	_, err := r.AddFolder("Stock Research")
	require.NoError(t, err)
	_, err = r.AddPrompt("Summarize", "Summarize the article", RootFolder)
	require.NoError(t, err)
	_, err = r.AddPrompt("Translate", "Translate to French", RootFolder)
	require.NoError(t, err)

	res, err := r.SearchAll("SUMMAR")
	require.NoError(t, err)
	require.Len(t, res.Prompts, 1)
	assert.Equal(t, "Summarize", res.Prompts[0].Title)
	assert.Empty(t, res.Folders)

	res, err = r.SearchAll("stock")
	require.NoError(t, err)
	assert.Empty(t, res.Prompts)
	require.Len(t, res.Folders, 1)

	res, err = r.SearchAll("french")
	require.NoError(t, err)
	require.Len(t, res.Prompts, 1, "content is searched too")
}
