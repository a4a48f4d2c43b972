// Package suggest provides prefix completions over the process snapshot for the line editor.
package suggest

// ICompleter defines the interface for process completion engines
type ICompleter interface {
	// Complete returns "<pid> - <name>" for every process whose name or pid
	// starts with input, in snapshot order
	Complete(input string) []string

	// Stats returns statistics about the indexed snapshot
	Stats() map[string]int
}
