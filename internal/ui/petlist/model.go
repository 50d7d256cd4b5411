package petlist

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pawshelter/petcare/internal/api"
	"github.com/pawshelter/petcare/internal/cache"
	"github.com/pawshelter/petcare/internal/config"
	"github.com/pawshelter/petcare/internal/router"
	"github.com/pawshelter/petcare/internal/ui/messages"
)

// CacheKey names the cached public pet list.
const CacheKey = "all"

// Model is the pet list view used by the home page and the admin pets page.
type Model struct {
	list    list.Model
	title   string
	client  *api.Client
	cache   *cache.DB
	cfg     config.Config
	loading bool
	width   int
	height  int
}

// New creates a pet list titled title.
func New(title string, cfg config.Config, client *api.Client, db *cache.DB) Model {
	l := list.New(nil, Delegate{}, 0, 0)
	l.Title = title + " (loading...)"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)

	return Model{
		list:    l,
		title:   title,
		client:  client,
		cache:   db,
		cfg:     cfg,
		loading: true,
	}
}

// Init loads the pet list.
func (m Model) Init() tea.Cmd {
	return m.loadPets(false)
}

// SetSize updates the viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.list.SetSize(w, h)
}

// Filtering reports whether the filter input has focus.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// Len returns the number of pets shown.
func (m Model) Len() int {
	return len(m.list.Items())
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.PetsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = m.title + " - error: " + msg.Err.Error()
			return m, nil
		}
		items := make([]list.Item, 0, len(msg.Pets))
		for i, p := range msg.Pets {
			items = append(items, PetItem{Pet: p, Index: i})
		}
		cmd := m.list.SetItems(items)
		m.list.Title = m.title
		if msg.Stale {
			m.list.Title += " (offline)"
		}
		return m, cmd

	case tea.KeyMsg:
		if m.Filtering() {
			break
		}
		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(PetItem); ok {
				return m, messages.Navigate(router.PetPath(item.Pet.ID))
			}
		case "r", "ctrl+r":
			m.loading = true
			m.list.Title = m.title + " (refreshing...)"
			return m, m.loadPets(true)
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the pet list.
func (m Model) View() string {
	return m.list.View()
}

func (m Model) loadPets(force bool) tea.Cmd {
	client := m.client
	db := m.cache
	cfg := m.cfg
	return func() tea.Msg {
		cached, fresh, err := db.LoadPetList(CacheKey, cfg.PetListTTL)
		if err != nil {
			slog.Warn("reading pet cache", "err", err)
		}
		if !force && fresh && len(cached) > 0 {
			return messages.PetsLoadedMsg{Pets: cached}
		}
		return fetchAndCache(client, db, cached)
	}
}

func fetchAndCache(client *api.Client, db *cache.DB, fallback []api.Pet) messages.PetsLoadedMsg {
	pets, err := client.ListPets(context.Background())
	if err != nil {
		if len(fallback) > 0 {
			slog.Info("serving stale pet list", "err", err)
			return messages.PetsLoadedMsg{Pets: fallback, Stale: true}
		}
		return messages.PetsLoadedMsg{Err: err}
	}
	if err := db.PutPetList(CacheKey, pets); err != nil {
		slog.Warn("caching pet list", "err", err)
	}
	return messages.PetsLoadedMsg{Pets: pets}
}
