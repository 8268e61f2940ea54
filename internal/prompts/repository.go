package prompts

import (
	"errors"
	"fmt"
	"time"

	"github.com/promptstock/gostock/internal/store"
)

// ErrMixedSiblings is returned by the reorder operations when the given
// records do not all belong to the same sibling group.
var ErrMixedSiblings = errors.New("reorder requires a single sibling group")

// Repository is the hierarchy layer over the record store. It holds no
// state of its own; callers re-read after mutations instead of caching
// here, since another execution context may write the same store.
type Repository struct {
	store store.Store
	now   func() int64
}

// NewRepository creates a repository over the given store.
func NewRepository(s store.Store) *Repository {
	return &Repository{
		store: s,
		now:   func() int64 { return time.Now().UnixMilli() },
	}
}

// =============================================================================
// Folders
// =============================================================================

// ListFolders returns all folders sorted ascending by order.
func (r *Repository) ListFolders() ([]Folder, error) {
	raws, err := r.store.GetAll(store.TableFolders)
	if err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}
	folders, err := store.DecodeAll[Folder](raws)
	if err != nil {
		return nil, fmt.Errorf("failed to decode folders: %w", err)
	}
	SortFolders(folders)
	return folders, nil
}

// AddFolder creates a folder appended to the end of the folder list.
func (r *Repository) AddFolder(name string) (*Folder, error) {
	folders, err := r.ListFolders()
	if err != nil {
		return nil, err
	}
	maxOrder := -1
	for _, f := range folders {
		if f.Order > maxOrder {
			maxOrder = f.Order
		}
	}

	now := r.now()
	folder := Folder{
		ID:        store.NewID(),
		Name:      name,
		Order:     maxOrder + 1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.store.Insert(store.TableFolders, folder); err != nil {
		return nil, fmt.Errorf("failed to add folder: %w", err)
	}
	return &folder, nil
}

// RenameFolder updates a folder's name. A missing id is a silent no-op;
// the UI may race with a delete from another tab.
func (r *Repository) RenameFolder(id, name string) error {
	raw, err := r.store.GetByID(store.TableFolders, id)
	if err != nil {
		return fmt.Errorf("failed to load folder: %w", err)
	}
	if raw == nil {
		return nil
	}
	folder, err := store.FromJSON[Folder](raw)
	if err != nil {
		return fmt.Errorf("failed to decode folder: %w", err)
	}
	folder.Name = name
	folder.UpdatedAt = r.now()
	if err := r.store.Upsert(store.TableFolders, folder); err != nil {
		return fmt.Errorf("failed to rename folder: %w", err)
	}
	return nil
}

// DeleteFolder removes a folder and every prompt inside it. Prompts go
// first so that a crash mid-delete leaves orphans pointing at a missing
// folder (cleaned up by RepairDanglingReferences) rather than a folder
// whose contents half-vanished.
func (r *Repository) DeleteFolder(id string) error {
	raws, err := r.store.GetByIndex(store.TablePrompts, store.IndexFolderID, id)
	if err != nil {
		return fmt.Errorf("failed to list folder contents: %w", err)
	}
	contained, err := store.DecodeAll[Prompt](raws)
	if err != nil {
		return fmt.Errorf("failed to decode folder contents: %w", err)
	}
	for _, p := range contained {
		if err := r.store.Remove(store.TablePrompts, p.ID); err != nil {
			return fmt.Errorf("failed to delete prompt %s: %w", p.ID, err)
		}
	}
	if err := r.store.Remove(store.TableFolders, id); err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}
	return nil
}

// ReorderFolders rewrites each folder's order to its position in the
// given sequence. The slice must be the complete folder set.
func (r *Repository) ReorderFolders(folders []Folder) error {
	now := r.now()
	for i := range folders {
		if folders[i].Order == i {
			continue
		}
		folders[i].Order = i
		folders[i].UpdatedAt = now
		if err := r.store.Upsert(store.TableFolders, folders[i]); err != nil {
			return fmt.Errorf("failed to reorder folder %s: %w", folders[i].ID, err)
		}
	}
	return nil
}

// =============================================================================
// Prompts
// =============================================================================

// ListPrompts returns all prompts sorted ascending by order. Callers
// group by folder as needed.
func (r *Repository) ListPrompts() ([]Prompt, error) {
	raws, err := r.store.GetAll(store.TablePrompts)
	if err != nil {
		return nil, fmt.Errorf("failed to list prompts: %w", err)
	}
	ps, err := store.DecodeAll[Prompt](raws)
	if err != nil {
		return nil, fmt.Errorf("failed to decode prompts: %w", err)
	}
	SortPrompts(ps)
	return ps, nil
}

// PromptsInFolder returns the sibling group for a folder (RootFolder for
// ungrouped prompts), sorted ascending by order.
func (r *Repository) PromptsInFolder(folderID string) ([]Prompt, error) {
	raws, err := r.store.GetByIndex(store.TablePrompts, store.IndexFolderID, folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list prompts in folder: %w", err)
	}
	ps, err := store.DecodeAll[Prompt](raws)
	if err != nil {
		return nil, fmt.Errorf("failed to decode prompts: %w", err)
	}
	SortPrompts(ps)
	return ps, nil
}

// CountPrompts returns the number of stored prompts.
func (r *Repository) CountPrompts() (int, error) {
	raws, err := r.store.GetAll(store.TablePrompts)
	if err != nil {
		return 0, fmt.Errorf("failed to count prompts: %w", err)
	}
	return len(raws), nil
}

// AddPrompt creates a prompt appended to the end of its sibling group.
func (r *Repository) AddPrompt(title, content, folderID string) (*Prompt, error) {
	siblings, err := r.PromptsInFolder(folderID)
	if err != nil {
		return nil, err
	}
	maxOrder := -1
	for _, p := range siblings {
		if p.Order > maxOrder {
			maxOrder = p.Order
		}
	}

	now := r.now()
	prompt := Prompt{
		ID:        store.NewID(),
		Title:     title,
		Content:   content,
		FolderID:  folderID,
		Order:     maxOrder + 1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.store.Insert(store.TablePrompts, prompt); err != nil {
		return nil, fmt.Errorf("failed to add prompt: %w", err)
	}
	return &prompt, nil
}

// UpdatePrompt merges the provided fields and refreshes updatedAt. A
// missing id is a silent no-op.
func (r *Repository) UpdatePrompt(id string, upd PromptUpdate) error {
	raw, err := r.store.GetByID(store.TablePrompts, id)
	if err != nil {
		return fmt.Errorf("failed to load prompt: %w", err)
	}
	if raw == nil {
		return nil
	}
	prompt, err := store.FromJSON[Prompt](raw)
	if err != nil {
		return fmt.Errorf("failed to decode prompt: %w", err)
	}
	if upd.Title != nil {
		prompt.Title = *upd.Title
	}
	if upd.Content != nil {
		prompt.Content = *upd.Content
	}
	if upd.FolderID != nil {
		prompt.FolderID = *upd.FolderID
	}
	if upd.Order != nil {
		prompt.Order = *upd.Order
	}
	prompt.UpdatedAt = r.now()
	if err := r.store.Upsert(store.TablePrompts, prompt); err != nil {
		return fmt.Errorf("failed to update prompt: %w", err)
	}
	return nil
}

// MovePrompt reassigns a prompt to a folder (RootFolder to ungroup) and
// appends it to the end of the destination sibling group. The source
// group keeps its gap until the next reorder touches it.
func (r *Repository) MovePrompt(id, folderID string) error {
	dest, err := r.PromptsInFolder(folderID)
	if err != nil {
		return err
	}
	maxOrder := -1
	for _, p := range dest {
		if p.ID == id {
			continue // moving within the same group still appends to the end
		}
		if p.Order > maxOrder {
			maxOrder = p.Order
		}
	}
	order := maxOrder + 1
	return r.UpdatePrompt(id, PromptUpdate{FolderID: &folderID, Order: &order})
}

// DeletePrompt removes a prompt; no-op when absent.
func (r *Repository) DeletePrompt(id string) error {
	if err := r.store.Remove(store.TablePrompts, id); err != nil {
		return fmt.Errorf("failed to delete prompt: %w", err)
	}
	return nil
}

// ReorderPrompts rewrites each prompt's order to its position in the
// given sequence. The slice must be a complete sibling group; passing a
// subset would break the 0..N-1 contiguity of the group.
func (r *Repository) ReorderPrompts(ps []Prompt) error {
	for i := 1; i < len(ps); i++ {
		if ps[i].FolderID != ps[0].FolderID {
			return ErrMixedSiblings
		}
	}
	now := r.now()
	for i := range ps {
		if ps[i].Order == i {
			continue
		}
		ps[i].Order = i
		ps[i].UpdatedAt = now
		if err := r.store.Upsert(store.TablePrompts, ps[i]); err != nil {
			return fmt.Errorf("failed to reorder prompt %s: %w", ps[i].ID, err)
		}
	}
	return nil
}
