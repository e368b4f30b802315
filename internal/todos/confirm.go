// ABOUTME: Confirmation port used before destructive todo removals.
// ABOUTME: The CLI prompts on stdin; the MCP server always confirms.
package todos

// Confirmer decides whether a destructive action may proceed.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a plain function to Confirmer.
type ConfirmFunc func(prompt string) bool

// Confirm calls f.
func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// AlwaysConfirm approves every request.
var AlwaysConfirm Confirmer = ConfirmFunc(func(string) bool { return true })
