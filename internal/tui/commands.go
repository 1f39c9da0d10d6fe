package tui

import (
	"context"

	"github.com/Veraticus/travel-mate/internal/model"
	"github.com/Veraticus/travel-mate/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

func loadState(ctx context.Context, storage service.Storage) tea.Cmd {
	return func() tea.Msg {
		state, err := storage.Load(ctx)
		return stateLoadedMsg{state: state, err: err}
	}
}

// saveState writes a copy of state, so edits made while the write runs are
// not part of it.
func saveState(ctx context.Context, storage service.Storage, state *model.AppState, revision int, quit bool) tea.Cmd {
	snapshot := state.Clone()
	return func() tea.Msg {
		return savedMsg{
			err:      storage.Save(ctx, snapshot),
			revision: revision,
			quit:     quit,
		}
	}
}
