// Package backup exports and imports the whole store as a versioned JSON
// archive, the same envelope the extension's import/export screen
// produces. Files go through a hackpadfs.FS so the native CLI writes to
// the OS filesystem and the WASM build writes to IndexedDB.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hack-pad/hackpadfs"

	"github.com/promptstock/gostock/internal/config"
	"github.com/promptstock/gostock/internal/prompts"
	"github.com/promptstock/gostock/internal/store"
)

// Version is the archive format version this build writes.
const Version = "1.0"

// ErrInvalidArchive is returned when the file is not a GoStock backup.
var ErrInvalidArchive = errors.New("invalid backup archive")

// Archive is the backup envelope. Optional sections are omitted when the
// corresponding export toggle was off.
type Archive struct {
	Version    string           `json:"version"`
	ExportTime int64            `json:"exportTime"`
	APIToken   string           `json:"apiToken,omitempty"`
	Prompts    []prompts.Prompt `json:"prompts,omitempty"`
	Folders    []prompts.Folder `json:"folders,omitempty"`
}

// Export materializes an archive from the current store state.
func Export(repo *prompts.Repository, cfg *config.Config, exportTime int64) (*Archive, error) {
	ps, err := repo.ListPrompts()
	if err != nil {
		return nil, err
	}
	fs, err := repo.ListFolders()
	if err != nil {
		return nil, err
	}
	token, err := cfg.APIToken()
	if err != nil {
		return nil, err
	}
	return &Archive{
		Version:    Version,
		ExportTime: exportTime,
		APIToken:   token,
		Prompts:    ps,
		Folders:    fs,
	}, nil
}

// Write serializes the archive to a file on the given filesystem.
func (a *Archive) Write(fs hackpadfs.FS, path string) error {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode archive: %w", err)
	}
	if err := hackpadfs.WriteFullFile(fs, path, data, 0644); err != nil {
		return fmt.Errorf("failed to write archive: %w", err)
	}
	return nil
}

// Read loads and validates an archive file.
func Read(fs hackpadfs.FS, path string) (*Archive, error) {
	content, err := hackpadfs.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive: %w", err)
	}
	return Parse(content)
}

// Parse decodes and validates archive bytes.
func Parse(data []byte) (*Archive, error) {
	var a Archive
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArchive, err)
	}
	if a.Version == "" || a.ExportTime == 0 {
		return nil, fmt.Errorf("%w: missing version or export time", ErrInvalidArchive)
	}
	return &a, nil
}

// Import merges an archive into the store: folders and prompts are
// upserted by id (existing records with the same id are replaced), the
// API token is restored when present. Per-record failures are logged and
// skipped. Returns the number of records imported.
func Import(s store.Store, cfg *config.Config, a *Archive) (int, error) {
	imported := 0
	for _, f := range a.Folders {
		if err := s.Upsert(store.TableFolders, f); err != nil {
			slog.Warn("failed to import folder", "id", f.ID, "err", err)
			continue
		}
		imported++
	}
	for _, p := range a.Prompts {
		if err := s.Upsert(store.TablePrompts, p); err != nil {
			slog.Warn("failed to import prompt", "id", p.ID, "err", err)
			continue
		}
		imported++
	}
	if a.APIToken != "" {
		if err := cfg.SetAPIToken(a.APIToken); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}
