package keymap

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Resolver dispatches key presses to viewer actions.
type Resolver struct {
	actions  map[string]Action
	bindings []Binding
}

// NewResolver creates a resolver from bindings. A key bound twice resolves
// to the last binding.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		actions:  make(map[string]Action),
		bindings: bindings,
	}
	for _, b := range bindings {
		for _, key := range b.Keys {
			r.actions[key] = b.Action
		}
	}
	return r
}

// Action returns the action bound to msg, or "" when the key is unbound.
func (r *Resolver) Action(msg tea.KeyMsg) Action {
	return r.actions[msg.String()]
}

// Help returns one "key description" entry per binding, in binding order.
// Each entry shows the first key still resolving to the binding's action;
// bindings whose keys were all taken over are left out.
func (r *Resolver) Help() []string {
	var help []string
	for _, b := range r.bindings {
		for _, key := range b.Keys {
			if r.actions[key] == b.Action {
				help = append(help, keyLabel(key)+" "+strings.ToLower(b.Description))
				break
			}
		}
	}
	return help
}

func keyLabel(key string) string {
	if key == " " {
		return "space"
	}
	return key
}
