package session

import (
	"strings"

	"github.com/aretw0/pathrace/pkg/domain"
	"github.com/aretw0/pathrace/pkg/playback"
)

// Action is a playback control verb.
type Action string

const (
	ActionGoTo  Action = "goto"
	ActionPlay  Action = "play"
	ActionPause Action = "pause"
	ActionReset Action = "reset"
	ActionSpeed Action = "speed"
)

// ParseAction resolves a control verb, case-insensitively.
func ParseAction(s string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	switch a {
	case ActionGoTo, ActionPlay, ActionPause, ActionReset, ActionSpeed:
		return a, nil
	}
	return "", &domain.InvalidRequestError{Field: "action", Reason: "must be one of goto, play, pause, reset, speed", Value: s}
}

// NeedsValue reports whether the action takes a numeric argument.
func (a Action) NeedsValue() bool {
	return a == ActionGoTo || a == ActionSpeed
}

// PanelSummary is the per-algorithm part of a View, without cell data.
type PanelSummary struct {
	Name       string         `json:"name"`
	Step       int            `json:"step"`
	MaxStep    int            `json:"max_step"`
	Visited    int            `json:"visited"`
	Frontier   int            `json:"frontier"`
	PathLength int            `json:"path_length"`
	Done       bool           `json:"done"`
	Metrics    domain.Metrics `json:"metrics"`
	Error      string         `json:"error,omitempty"`
}

// View is the JSON-friendly cursor state of a session.
type View struct {
	ID      string                `json:"id"`
	Step    int                   `json:"step"`
	MaxStep int                   `json:"max_step"`
	Speed   int                   `json:"speed"`
	Status  domain.PlaybackStatus `json:"status"`
	Panels  []PanelSummary        `json:"panels"`
}

func newView(id string, engine *playback.Engine) *View {
	f := engine.Frame()
	return Summarize(id, &f)
}

// Summarize reduces a frame to a View.
func Summarize(id string, f *playback.Frame) *View {
	v := &View{
		ID:      id,
		Step:    f.Step,
		MaxStep: f.Max,
		Speed:   f.Speed,
		Status:  f.Status,
		Panels:  make([]PanelSummary, len(f.Panels)),
	}
	for i, p := range f.Panels {
		v.Panels[i] = PanelSummary{
			Name:       p.Name,
			Step:       p.StepIndex,
			MaxStep:    p.MaxIndex,
			Visited:    p.Visited,
			Frontier:   p.Frontier,
			PathLength: p.PathLength,
			Done:       p.Done,
			Metrics:    p.Metrics,
			Error:      p.Error,
		}
	}
	return v
}
