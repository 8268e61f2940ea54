//go:build js && wasm

package main

import (
	"context"
	"encoding/json"
	"syscall/js"
	"time"

	"github.com/hack-pad/hackpadfs"
	"github.com/hack-pad/hackpadfs/indexeddb"

	"github.com/promptstock/gostock/internal/backup"
	"github.com/promptstock/gostock/internal/config"
	"github.com/promptstock/gostock/internal/dnd"
	"github.com/promptstock/gostock/internal/prompts"
	"github.com/promptstock/gostock/internal/store"
)

// Version info
const Version = "1.0.0"

// snapshotFile is where the store snapshot lives inside the IndexedDB fs.
const snapshotFile = "gostock.json"

// Global state. The browser build keeps the store in memory and persists
// snapshots to IndexedDB; every exported call runs on the JS event loop,
// so there is no parallel mutation within one page.
var (
	db   store.Store
	repo *prompts.Repository
	cfg  *config.Config
	idb  hackpadfs.FS
)

func main() {
	js.Global().Set("GoStock", js.ValueOf(map[string]interface{}{
		"version":        js.FuncOf(getVersion),
		"init":           js.FuncOf(initStore),
		"persist":        js.FuncOf(persist),
		"listPrompts":    js.FuncOf(listPrompts),
		"listFolders":    js.FuncOf(listFolders),
		"addPrompt":      js.FuncOf(addPrompt),
		"updatePrompt":   js.FuncOf(updatePrompt),
		"deletePrompt":   js.FuncOf(deletePrompt),
		"movePrompt":     js.FuncOf(movePrompt),
		"addFolder":      js.FuncOf(addFolder),
		"renameFolder":   js.FuncOf(renameFolder),
		"deleteFolder":   js.FuncOf(deleteFolder),
		"resolveDrop":    js.FuncOf(resolveDrop),
		"searchAll":      js.FuncOf(searchAll),
		"getConfig":      js.FuncOf(getConfig),
		"setConfig":      js.FuncOf(setConfig),
		"exportData":     js.FuncOf(exportData),
		"importData":     js.FuncOf(importData),
		"migrateLegacy":  js.FuncOf(migrateLegacy),
		"repairDangling": js.FuncOf(repairDangling),
	}))

	println("[GoStock] WASM Ready v" + Version)
	select {}
}

func getVersion(this js.Value, args []js.Value) interface{} {
	return Version
}

// initStore opens the store and restores the latest snapshot from
// IndexedDB when one exists. Must be called before any other API.
// Args: [] (uses the default "gostock" database)
func initStore(this js.Value, args []js.Value) interface{} {
	fs, err := indexeddb.NewFS(context.Background(), "gostock", indexeddb.Options{})
	if err != nil {
		return errorResult("failed to create idb fs: " + err.Error())
	}
	idb = fs

	db = store.NewMemStore()
	repo = prompts.NewRepository(db)
	cfg = config.New(db)

	if a, err := backup.Read(idb, snapshotFile); err == nil {
		if _, err := backup.Import(db, cfg, a); err != nil {
			return errorResult("failed to restore snapshot: " + err.Error())
		}
	}

	// Repair runs every session before the UI's first read; a crashed
	// cascade in a previous session may have left orphans behind.
	if _, err := repo.RepairDanglingReferences(); err != nil {
		return errorResult("repair failed: " + err.Error())
	}

	return successResult("store initialized")
}

// persist writes a snapshot of the whole store to IndexedDB.
func persist(this js.Value, args []js.Value) interface{} {
	if !ready() {
		return errorResult("store not initialized")
	}
	a, err := backup.Export(repo, cfg, time.Now().UnixMilli())
	if err != nil {
		return errorResult("export failed: " + err.Error())
	}
	if err := a.Write(idb, snapshotFile); err != nil {
		return errorResult("persist failed: " + err.Error())
	}
	return successResult("persisted")
}

// migrateLegacy imports the old flat localStorage list, read by the JS
// side and passed in as its raw JSON. No-op when prompts already exist.
// Args: [legacyJSON string]
func migrateLegacy(this js.Value, args []js.Value) interface{} {
	if !ready() {
		return errorResult("store not initialized")
	}
	if len(args) < 1 {
		return errorResult("requires 1 arg: legacyJSON (string)")
	}
	legacy, err := prompts.ParseLegacy([]byte(args[0].String()))
	if err != nil {
		return errorResult("invalid legacy data: " + err.Error())
	}
	n, err := repo.MigrateLegacy(legacy)
	if err != nil {
		return errorResult("migration failed: " + err.Error())
	}
	return jsonResult(map[string]interface{}{"migrated": n})
}

// repairDangling reattaches prompts whose folder no longer exists.
func repairDangling(this js.Value, args []js.Value) interface{} {
	if !ready() {
		return errorResult("store not initialized")
	}
	n, err := repo.RepairDanglingReferences()
	if err != nil {
		return errorResult("repair failed: " + err.Error())
	}
	return jsonResult(map[string]interface{}{"repaired": n})
}

func listPrompts(this js.Value, args []js.Value) interface{} {
	if !ready() {
		return errorResult("store not initialized")
	}
	ps, err := repo.ListPrompts()
	if err != nil {
		return errorResult(err.Error())
	}
	return jsonResult(ps)
}

func listFolders(this js.Value, args []js.Value) interface{} {
	if !ready() {
		return errorResult("store not initialized")
	}
	fs, err := repo.ListFolders()
	if err != nil {
		return errorResult(err.Error())
	}
	return jsonResult(fs)
}

// addPrompt: [title string, content string, folderId string ("" = root)]
func addPrompt(this js.Value, args []js.Value) interface{} {
	if !ready() {
		return errorResult("store not initialized")
	}
	if len(args) < 3 {
		return errorResult("requires 3 args: title, content, folderId")
	}
	p, err := repo.AddPrompt(args[0].String(), args[1].String(), args[2].String())
	if err != nil {
		return errorResult(err.Error())
	}
	return jsonResult(p)
}

// updatePrompt: [id string, updatesJSON string]
// updatesJSON carries only the fields to change, e.g. {"title":"New"}.
func updatePrompt(this js.Value, args []js.Value) interface{} {
	if !ready() {
		return errorResult("store not initialized")
	}
	if len(args) < 2 {
		return errorResult("requires 2 args: id, updatesJSON")
	}
	var upd struct {
		Title    *string `json:"title"`
		Content  *string `json:"content"`
		FolderID *string `json:"folderId"`
		Order    *int    `json:"order"`
	}
	if err := json.Unmarshal([]byte(args[1].String()), &upd); err != nil {
		return errorResult("invalid updates json: " + err.Error())
	}
	err := repo.UpdatePrompt(args[0].String(), prompts.PromptUpdate{
		Title:    upd.Title,
		Content:  upd.Content,
		FolderID: upd.FolderID,
		Order:    upd.Order,
	})
	if err != nil {
		return errorResult(err.Error())
	}
	return successResult("updated")
}

// deletePrompt: [id string]
func deletePrompt(this js.Value, args []js.Value) interface{} {
	if !ready() {
		return errorResult("store not initialized")
	}
	if len(args) < 1 {
		return errorResult("requires 1 arg: id")
	}
	if err := repo.DeletePrompt(args[0].String()); err != nil {
		return errorResult(err.Error())
	}
	return successResult("deleted")
}

// movePrompt: [id string, folderId string ("" = root)]
func movePrompt(this js.Value, args []js.Value) interface{} {
	if !ready() {
		return errorResult("store not initialized")
	}
	if len(args) < 2 {
		return errorResult("requires 2 args: id, folderId")
	}
	if err := repo.MovePrompt(args[0].String(), args[1].String()); err != nil {
		return errorResult(err.Error())
	}
	return successResult("moved")
}

// addFolder: [name string]
func addFolder(this js.Value, args []js.Value) interface{} {
	if !ready() {
		return errorResult("store not initialized")
	}
	if len(args) < 1 {
		return errorResult("requires 1 arg: name")
	}
	f, err := repo.AddFolder(args[0].String())
	if err != nil {
		return errorResult(err.Error())
	}
	return jsonResult(f)
}

// renameFolder: [id string, name string]
func renameFolder(this js.Value, args []js.Value) interface{} {
	if !ready() {
		return errorResult("store not initialized")
	}
	if len(args) < 2 {
		return errorResult("requires 2 args: id, name")
	}
	if err := repo.RenameFolder(args[0].String(), args[1].String()); err != nil {
		return errorResult(err.Error())
	}
	return successResult("renamed")
}

// deleteFolder: [id string]. Cascades to the folder's prompts.
func deleteFolder(this js.Value, args []js.Value) interface{} {
	if !ready() {
		return errorResult("store not initialized")
	}
	if len(args) < 1 {
		return errorResult("requires 1 arg: id")
	}
	if err := repo.DeleteFolder(args[0].String()); err != nil {
		return errorResult(err.Error())
	}
	return successResult("deleted")
}

// resolveDrop resolves a completed drag gesture and applies the result.
// Args: [draggedId string, targetId string, zone string]
// zone is one of "folder-body", "root-list", "sibling".
func resolveDrop(this js.Value, args []js.Value) interface{} {
	if !ready() {
		return errorResult("store not initialized")
	}
	if len(args) < 3 {
		return errorResult("requires 3 args: draggedId, targetId, zone")
	}

	fs, err := repo.ListFolders()
	if err != nil {
		return errorResult(err.Error())
	}
	ps, err := repo.ListPrompts()
	if err != nil {
		return errorResult(err.Error())
	}

	m := dnd.Resolve(dnd.Snapshot{Folders: fs, Prompts: ps}, dnd.Drop{
		DraggedID: args[0].String(),
		TargetID:  args[1].String(),
		Zone:      dnd.ParseZone(args[2].String()),
	})
	if err := m.Apply(repo); err != nil {
		return errorResult(err.Error())
	}
	return jsonResult(map[string]interface{}{"kind": m.Kind.String()})
}

// searchAll: [query string]
func searchAll(this js.Value, args []js.Value) interface{} {
	if !ready() {
		return errorResult("store not initialized")
	}
	if len(args) < 1 {
		return errorResult("requires 1 arg: query")
	}
	res, err := repo.SearchAll(args[0].String())
	if err != nil {
		return errorResult(err.Error())
	}
	return jsonResult(res)
}

// getConfig: [key string]
func getConfig(this js.Value, args []js.Value) interface{} {
	if !ready() {
		return errorResult("store not initialized")
	}
	if len(args) < 1 {
		return errorResult("requires 1 arg: key")
	}
	v, err := cfg.Get(args[0].String())
	if err != nil {
		return errorResult(err.Error())
	}
	return jsonResult(map[string]interface{}{"value": v})
}

// setConfig: [key string, value string]
func setConfig(this js.Value, args []js.Value) interface{} {
	if !ready() {
		return errorResult("store not initialized")
	}
	if len(args) < 2 {
		return errorResult("requires 2 args: key, value")
	}
	if err := cfg.Set(args[0].String(), args[1].String()); err != nil {
		return errorResult(err.Error())
	}
	return successResult("saved")
}

// exportData returns the backup archive as a JSON string.
func exportData(this js.Value, args []js.Value) interface{} {
	if !ready() {
		return errorResult("store not initialized")
	}
	a, err := backup.Export(repo, cfg, time.Now().UnixMilli())
	if err != nil {
		return errorResult(err.Error())
	}
	return jsonResult(a)
}

// importData: [archiveJSON string]
func importData(this js.Value, args []js.Value) interface{} {
	if !ready() {
		return errorResult("store not initialized")
	}
	if len(args) < 1 {
		return errorResult("requires 1 arg: archiveJSON")
	}
	a, err := backup.Parse([]byte(args[0].String()))
	if err != nil {
		return errorResult(err.Error())
	}
	n, err := backup.Import(db, cfg, a)
	if err != nil {
		return errorResult(err.Error())
	}
	return jsonResult(map[string]interface{}{"imported": n})
}

func ready() bool {
	return repo != nil
}

// Helper: Create error result
func errorResult(msg string) interface{} {
	result := map[string]interface{}{
		"error": msg,
	}
	jsonBytes, _ := json.Marshal(result)
	return string(jsonBytes)
}

// Helper: Create success result
func successResult(msg string) interface{} {
	result := map[string]interface{}{
		"success": msg,
	}
	jsonBytes, _ := json.Marshal(result)
	return string(jsonBytes)
}

// Helper: Marshal a payload result
func jsonResult(v interface{}) interface{} {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		return errorResult("failed to encode result: " + err.Error())
	}
	return string(jsonBytes)
}
