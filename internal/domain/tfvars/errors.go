// Where: internal/domain/tfvars/errors.go
// What: Structural parse errors.
// Why: Let callers branch on the failure kind with errors.As.
package tfvars

import "fmt"

// MissingListError reports that `<name> = [` does not appear in the input.
type MissingListError struct {
	Name string
}

func (e *MissingListError) Error() string {
	return fmt.Sprintf("no '%s = [' assignment found", e.Name)
}

// UnbalancedBracketsError reports a list or record without its closing bracket.
type UnbalancedBracketsError struct {
	Name   string
	Offset int
	Closer rune
}

func (e *UnbalancedBracketsError) Error() string {
	return fmt.Sprintf("no matching '%c' found for %s (offset %d)", e.Closer, e.Name, e.Offset)
}

// MalformedListError reports a list field whose items are neither quoted strings nor integers.
type MalformedListError struct {
	Field string
	Item  string
}

func (e *MalformedListError) Error() string {
	return fmt.Sprintf("field %s: list item %q is not an integer", e.Field, e.Item)
}
