package store

import (
	"encoding/json"
	"fmt"
	"taskflow/internal/kanban/models"
)

// Storage keys
const (
	DataKey     = "kanbanData"
	DarkModeKey = "darkMode"
)

// Gateway loads and saves the whole tree and the dark mode preference
type Gateway struct {
	storage Storage
}

func NewGateway(storage Storage) *Gateway {
	return &Gateway{storage: storage}
}

// Load returns the saved tree, or the default tree when nothing is saved yet
func (g *Gateway) Load() (models.KanbanData, error) {
	value, ok, err := g.storage.GetItem(DataKey)
	if err != nil {
		return models.KanbanData{}, err
	}
	if !ok {
		return models.DefaultData(), nil
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(value), &raw); err != nil {
		return models.KanbanData{}, fmt.Errorf("error reading saved board data: %w", err)
	}
	if err := checkShape(raw); err != nil {
		return models.KanbanData{}, fmt.Errorf("error reading saved board data: %w", err)
	}

	var data models.KanbanData
	if err := json.Unmarshal([]byte(value), &data); err != nil {
		return models.KanbanData{}, fmt.Errorf("error reading saved board data: %w", err)
	}
	return normalize(data), nil
}

// Save overwrites the stored tree
func (g *Gateway) Save(data models.KanbanData) error {
	content, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("error encoding board data: %w", err)
	}
	return g.storage.SetItem(DataKey, string(content))
}

// DarkMode reports the saved preference; anything unreadable counts as off
func (g *Gateway) DarkMode() (bool, error) {
	value, ok, err := g.storage.GetItem(DarkModeKey)
	if err != nil || !ok {
		return false, err
	}
	var dark bool
	if err := json.Unmarshal([]byte(value), &dark); err != nil {
		return false, fmt.Errorf("error reading dark mode: %w", err)
	}
	return dark, nil
}

func (g *Gateway) SetDarkMode(dark bool) error {
	content, _ := json.Marshal(dark)
	return g.storage.SetItem(DarkModeKey, string(content))
}

func (g *Gateway) Close() error {
	return g.storage.Close()
}
