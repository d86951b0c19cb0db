// Package screen holds the controllers behind every screen of the front-end.
//
// All screens share one shape: idle → loading → {success, error}; from success, Edit enters an
// editing sub-state with its own submitting → {success → viewing, error → editing} cycle;
// from error, Refresh returns to loading.
package screen

import (
	ut "github.com/go-playground/universal-translator"

	"github.com/trezcool/carnet/core"
)

type (
	// Navigator moves between screens.
	Navigator interface {
		Back()
	}

	// Alerter shows modal messages to the user.
	Alerter interface {
		Alert(title, message string)
		Confirm(title, message string) bool
	}

	// Deps are the collaborators shared by all screens.
	Deps struct {
		Navigator  Navigator
		Alerter    Alerter
		Translator ut.Translator
		Logger     core.Logger
		Page       core.Page
	}
)

type Mode int

const (
	Viewing Mode = iota
	Editing
	Submitting
)

func (m Mode) String() string {
	switch m {
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	default:
		return "viewing"
	}
}

func (d Deps) back() {
	if d.Navigator != nil {
		d.Navigator.Back()
	}
}

func (d Deps) alert(title, msg string) {
	if d.Alerter != nil && msg != "" {
		d.Alerter.Alert(title, msg)
	}
}

func (d Deps) confirm(title, msg string) bool {
	if d.Alerter == nil {
		return false
	}
	return d.Alerter.Confirm(title, msg)
}

func (d Deps) logError(msg string, err error) {
	if d.Logger != nil {
		d.Logger.Error(msg, err)
	}
}
