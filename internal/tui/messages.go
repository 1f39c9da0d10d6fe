package tui

import "github.com/Veraticus/travel-mate/internal/model"

// stateLoadedMsg carries the workspace read from storage.
type stateLoadedMsg struct {
	err   error
	state *model.AppState
}

// savedMsg reports the result of writing revision to storage.
type savedMsg struct {
	err      error
	revision int
	quit     bool
}
