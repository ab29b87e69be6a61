// Where: internal/infra/ui/ui.go
// What: UserInterface used by usecases for progress and results.
// Why: Usecases report through an interface so tests can capture output.
package ui

import "io"

// KeyValue is a key/value pair rendered inside a block.
type KeyValue struct {
	Key   string
	Value any
}

// UserInterface exposes high-level output helpers used by usecases.
type UserInterface interface {
	Info(msg string)
	Warn(msg string)
	Error(msg string)
	Success(msg string)
	Block(emoji, title string, rows []KeyValue)
}

// NewUI returns a UserInterface writing to out.
func NewUI(out io.Writer, emojiEnabled bool) UserInterface {
	return consoleUI{console: NewWithEmoji(out, emojiEnabled)}
}

type consoleUI struct {
	console *Console
}

func (u consoleUI) Info(msg string) {
	u.console.Info(msg)
}

func (u consoleUI) Warn(msg string) {
	u.console.Warn(msg)
}

func (u consoleUI) Error(msg string) {
	u.console.Error(msg)
}

func (u consoleUI) Success(msg string) {
	u.console.Success(msg)
}

func (u consoleUI) Block(emoji, title string, rows []KeyValue) {
	u.console.BlockStart(emoji, title)
	for _, kv := range rows {
		u.console.Item(kv.Key, kv.Value)
	}
	u.console.BlockEnd()
}
