// Where: internal/infra/interaction/selector.go
// What: Interactive confirmation using the huh library.
// Why: Give terminal users a keyboard-driven yes/no prompt.
package interaction

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

var runConfirmPrompt = func(title string, confirmed *bool) error {
	return huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(confirmed).
		Run()
}

// HuhPrompter implements Prompter using the huh TUI library.
type HuhPrompter struct{}

func (p HuhPrompter) Confirm(title string) (bool, error) {
	var confirmed bool
	if err := runConfirmPrompt(title, &confirmed); err != nil {
		return false, fmt.Errorf("prompt confirm: %w", err)
	}
	return confirmed, nil
}
