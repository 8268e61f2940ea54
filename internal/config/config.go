// Package config persists the small key-value settings collaborators
// outside the hierarchy core keep in the store's config table: the stock
// API token and the prompt selected for stock queries.
package config

import (
	"fmt"
	"strings"

	"github.com/promptstock/gostock/internal/store"
)

// Well-known config keys.
const (
	KeyAPIToken            = "api_token"
	KeySelectedStockPrompt = "selected_stock_prompt"
)

// Entry is a single config record. The record store keys on "id".
type Entry struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// Config reads and writes the config table.
type Config struct {
	store store.Store
}

// New creates a Config over the given store.
func New(s store.Store) *Config {
	return &Config{store: s}
}

// Get returns the value for a key, or "" when unset.
func (c *Config) Get(key string) (string, error) {
	raw, err := c.store.GetByID(store.TableConfig, key)
	if err != nil {
		return "", fmt.Errorf("failed to read config %q: %w", key, err)
	}
	if raw == nil {
		return "", nil
	}
	entry, err := store.FromJSON[Entry](raw)
	if err != nil {
		return "", fmt.Errorf("failed to decode config %q: %w", key, err)
	}
	return entry.Value, nil
}

// Set stores a value under a key, replacing any previous value.
func (c *Config) Set(key, value string) error {
	if err := c.store.Upsert(store.TableConfig, Entry{ID: key, Value: value}); err != nil {
		return fmt.Errorf("failed to write config %q: %w", key, err)
	}
	return nil
}

// APIToken returns the stored stock API token, "" when unset.
func (c *Config) APIToken() (string, error) {
	return c.Get(KeyAPIToken)
}

// SetAPIToken stores the stock API token.
func (c *Config) SetAPIToken(token string) error {
	return c.Set(KeyAPIToken, token)
}

// HasAPIToken reports whether a non-blank token is stored.
func (c *Config) HasAPIToken() (bool, error) {
	token, err := c.APIToken()
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(token) != "", nil
}

// SelectedStockPrompt returns the id of the prompt used for stock
// queries, "" when none is selected.
func (c *Config) SelectedStockPrompt() (string, error) {
	return c.Get(KeySelectedStockPrompt)
}

// SetSelectedStockPrompt stores the id of the prompt used for stock
// queries.
func (c *Config) SetSelectedStockPrompt(promptID string) error {
	return c.Set(KeySelectedStockPrompt, promptID)
}
