package prompts

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/promptstock/gostock/internal/store"
)

// LegacyPrompt is the shape of a record in the old flat localStorage
// list. Early versions had no order field, so it is optional.
type LegacyPrompt struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Order     *int   `json:"order"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

// ParseLegacy decodes the legacy flat-list JSON. Records that fail to
// decode individually are logged and skipped rather than aborting the
// whole migration.
func ParseLegacy(data []byte) ([]LegacyPrompt, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("failed to parse legacy list: %w", err)
	}
	out := make([]LegacyPrompt, 0, len(raws))
	for i, raw := range raws {
		var p LegacyPrompt
		if err := json.Unmarshal(raw, &p); err != nil {
			slog.Warn("skipping unreadable legacy record", "index", i, "err", err)
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// MigrateLegacy imports the legacy flat list into the prompt table. It is
// a no-op when the store already holds prompts, so re-running it on every
// startup is safe. Returns the number of records imported.
func (r *Repository) MigrateLegacy(legacy []LegacyPrompt) (int, error) {
	count, err := r.CountPrompts()
	if err != nil {
		return 0, err
	}
	if count > 0 {
		slog.Debug("legacy migration skipped, store already populated", "prompts", count)
		return 0, nil
	}
	if len(legacy) == 0 {
		return 0, nil
	}

	now := r.now()
	migrated := 0
	for i, old := range legacy {
		prompt := Prompt{
			ID:        old.ID,
			Title:     old.Title,
			Content:   old.Content,
			FolderID:  RootFolder,
			Order:     i,
			CreatedAt: old.CreatedAt,
			UpdatedAt: old.UpdatedAt,
		}
		if old.Order != nil {
			prompt.Order = *old.Order
		}
		if prompt.ID == "" {
			prompt.ID = store.NewID()
		}
		if prompt.CreatedAt == 0 {
			prompt.CreatedAt = now
		}
		if prompt.UpdatedAt == 0 {
			prompt.UpdatedAt = prompt.CreatedAt
		}
		if err := r.store.Insert(store.TablePrompts, prompt); err != nil {
			slog.Warn("failed to migrate legacy record", "id", prompt.ID, "err", err)
			continue
		}
		migrated++
	}
	slog.Info("legacy migration done", "migrated", migrated, "total", len(legacy))
	return migrated, nil
}

// RepairDanglingReferences moves every prompt whose folder no longer
// exists back to the root group, appended at the end. Idempotent: a
// second run finds nothing to repair. Returns the number repaired.
func (r *Repository) RepairDanglingReferences() (int, error) {
	folders, err := r.ListFolders()
	if err != nil {
		return 0, err
	}
	known := make(map[string]bool, len(folders))
	for _, f := range folders {
		known[f.ID] = true
	}

	ps, err := r.ListPrompts()
	if err != nil {
		return 0, err
	}
	rootMax := -1
	for _, p := range ps {
		if p.FolderID == RootFolder && p.Order > rootMax {
			rootMax = p.Order
		}
	}

	repaired := 0
	for _, p := range ps {
		if p.FolderID == RootFolder || known[p.FolderID] {
			continue
		}
		rootMax++
		folderID := RootFolder
		order := rootMax
		if err := r.UpdatePrompt(p.ID, PromptUpdate{FolderID: &folderID, Order: &order}); err != nil {
			return repaired, err
		}
		slog.Warn("repaired dangling folder reference", "prompt", p.ID, "folder", p.FolderID)
		repaired++
	}
	return repaired, nil
}
