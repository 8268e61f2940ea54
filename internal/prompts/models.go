// Package prompts implements the prompt/folder hierarchy over the record
// store: ordering of sibling groups, moves between folders, cascading
// deletes, and the one-time legacy migration and repair passes.
package prompts

import "sort"

// RootFolder is the folder id of ungrouped prompts. Legacy records stored
// it as JSON null, which decodes to the empty string.
const RootFolder = ""

// Prompt is the user-managed record the extension organizes.
type Prompt struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	FolderID  string `json:"folderId"`
	Order     int    `json:"order"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

// Folder is a named grouping of prompts. Folders are siblings of each
// other; they do not nest.
type Folder struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Order     int    `json:"order"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

// PromptUpdate carries a partial edit. Nil fields are left unchanged.
// A non-nil FolderID pointing at RootFolder moves the prompt to the root
// group.
type PromptUpdate struct {
	Title    *string
	Content  *string
	FolderID *string
	Order    *int
}

// SortPrompts orders prompts the way the UI lists them: ascending order,
// ties broken by creation time then id.
func SortPrompts(ps []Prompt) {
	sort.SliceStable(ps, func(i, j int) bool {
		if ps[i].Order != ps[j].Order {
			return ps[i].Order < ps[j].Order
		}
		if ps[i].CreatedAt != ps[j].CreatedAt {
			return ps[i].CreatedAt < ps[j].CreatedAt
		}
		return ps[i].ID < ps[j].ID
	})
}

// SortFolders orders folders ascending by order, ties broken by creation
// time then id.
func SortFolders(fs []Folder) {
	sort.SliceStable(fs, func(i, j int) bool {
		if fs[i].Order != fs[j].Order {
			return fs[i].Order < fs[j].Order
		}
		if fs[i].CreatedAt != fs[j].CreatedAt {
			return fs[i].CreatedAt < fs[j].CreatedAt
		}
		return fs[i].ID < fs[j].ID
	})
}
