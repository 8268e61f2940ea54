// Package dnd resolves drag-and-drop gestures into persistence intents.
// Resolve is pure: it never touches storage and never fails. Malformed
// or ambiguous input resolves to NoOp.
package dnd

import "github.com/promptstock/gostock/internal/prompts"

// DropZone classifies the region a drag gesture ended over.
type DropZone int

const (
	// ZoneNone is an unclassified drop; always resolves to NoOp.
	ZoneNone DropZone = iota
	// ZoneFolderBody is a folder's explicit "move into me" band.
	ZoneFolderBody
	// ZoneRootList is the ungrouped area at the root of the list.
	ZoneRootList
	// ZoneSibling is a drop onto a sibling row (prompt or folder).
	ZoneSibling
)

// ParseZone maps the wire names used by UI callers onto DropZone values.
// Unknown names map to ZoneNone, which resolves to NoOp.
func ParseZone(s string) DropZone {
	switch s {
	case "folder-body":
		return ZoneFolderBody
	case "root-list":
		return ZoneRootList
	case "sibling":
		return ZoneSibling
	default:
		return ZoneNone
	}
}

// MutationKind names the outcome of a resolved drop.
type MutationKind int

const (
	NoOp MutationKind = iota
	Reparent
	ReorderPrompts
	ReorderFolders
)

func (k MutationKind) String() string {
	switch k {
	case Reparent:
		return "reparent"
	case ReorderPrompts:
		return "reorder-prompts"
	case ReorderFolders:
		return "reorder-folders"
	default:
		return "noop"
	}
}

// Snapshot is the fully materialized state the UI holds at drag time.
// The resolver treats it as read-only.
type Snapshot struct {
	Folders []prompts.Folder
	Prompts []prompts.Prompt
}

// Drop describes a completed drag gesture.
type Drop struct {
	DraggedID string
	TargetID  string
	Zone      DropZone
}

// Mutation is the intent a resolved drop produces. Exactly one of the
// kind-specific fields is meaningful, per Kind.
type Mutation struct {
	Kind MutationKind

	// Reparent
	PromptID string
	FolderID string // destination; prompts.RootFolder for the root group

	// ReorderPrompts / ReorderFolders: the complete sibling group in its
	// final order, ready for the repository's reorder call.
	Prompts []prompts.Prompt
	Folders []prompts.Folder
}

// Resolve maps a drop onto one of {Reparent, ReorderPrompts,
// ReorderFolders, NoOp}. It is deterministic and total: any input that
// does not match an unambiguous rule yields NoOp.
func Resolve(snap Snapshot, drop Drop) Mutation {
	if drop.DraggedID == "" || drop.DraggedID == drop.TargetID {
		return Mutation{Kind: NoOp}
	}

	dragPrompt, isPrompt := findPrompt(snap.Prompts, drop.DraggedID)
	_, isFolder := findFolder(snap.Folders, drop.DraggedID)
	if !isPrompt && !isFolder {
		return Mutation{Kind: NoOp}
	}

	switch drop.Zone {
	case ZoneFolderBody:
		// Only prompts can enter a folder; folders do not nest.
		if !isPrompt {
			return Mutation{Kind: NoOp}
		}
		if _, ok := findFolder(snap.Folders, drop.TargetID); !ok {
			return Mutation{Kind: NoOp}
		}
		return Mutation{Kind: Reparent, PromptID: dragPrompt.ID, FolderID: drop.TargetID}

	case ZoneRootList:
		if !isPrompt {
			return Mutation{Kind: NoOp}
		}
		return Mutation{Kind: Reparent, PromptID: dragPrompt.ID, FolderID: prompts.RootFolder}

	case ZoneSibling:
		if isFolder {
			if _, ok := findFolder(snap.Folders, drop.TargetID); !ok {
				return Mutation{Kind: NoOp}
			}
			folders := append([]prompts.Folder(nil), snap.Folders...)
			prompts.SortFolders(folders)
			from := folderIndex(folders, drop.DraggedID)
			to := folderIndex(folders, drop.TargetID)
			if from == to {
				return Mutation{Kind: NoOp}
			}
			return Mutation{Kind: ReorderFolders, Folders: arrayMove(folders, from, to)}
		}

		target, ok := findPrompt(snap.Prompts, drop.TargetID)
		if !ok || target.FolderID != dragPrompt.FolderID {
			// A prompt hovering over another folder's row without hitting
			// that folder's explicit drop band is ambiguous: do nothing.
			return Mutation{Kind: NoOp}
		}
		siblings := siblingGroup(snap.Prompts, dragPrompt.FolderID)
		from := promptIndex(siblings, drop.DraggedID)
		to := promptIndex(siblings, drop.TargetID)
		if from == to {
			return Mutation{Kind: NoOp}
		}
		return Mutation{Kind: ReorderPrompts, Prompts: arrayMove(siblings, from, to)}

	default:
		return Mutation{Kind: NoOp}
	}
}

// Apply persists the intent through the repository. NoOp applies nothing.
func (m Mutation) Apply(repo *prompts.Repository) error {
	switch m.Kind {
	case Reparent:
		return repo.MovePrompt(m.PromptID, m.FolderID)
	case ReorderPrompts:
		return repo.ReorderPrompts(m.Prompts)
	case ReorderFolders:
		return repo.ReorderFolders(m.Folders)
	default:
		return nil
	}
}

// arrayMove removes the element at from and reinserts it at to, shifting
// the elements in between by one slot.
func arrayMove[T any](list []T, from, to int) []T {
	out := append([]T(nil), list...)
	if from < 0 || from >= len(out) || to < 0 || to >= len(out) {
		return out
	}
	moved := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]T{moved}, out[to:]...)...)
	return out
}

func findPrompt(ps []prompts.Prompt, id string) (prompts.Prompt, bool) {
	for _, p := range ps {
		if p.ID == id {
			return p, true
		}
	}
	return prompts.Prompt{}, false
}

func findFolder(fs []prompts.Folder, id string) (prompts.Folder, bool) {
	for _, f := range fs {
		if f.ID == id {
			return f, true
		}
	}
	return prompts.Folder{}, false
}

func promptIndex(ps []prompts.Prompt, id string) int {
	for i, p := range ps {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func folderIndex(fs []prompts.Folder, id string) int {
	for i, f := range fs {
		if f.ID == id {
			return i
		}
	}
	return -1
}

// siblingGroup extracts the sorted sibling group for a folder id.
func siblingGroup(ps []prompts.Prompt, folderID string) []prompts.Prompt {
	var group []prompts.Prompt
	for _, p := range ps {
		if p.FolderID == folderID {
			group = append(group, p)
		}
	}
	prompts.SortPrompts(group)
	return group
}
