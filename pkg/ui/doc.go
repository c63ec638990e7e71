// Package ui prints relink's user-facing output: one progress line per
// extension and a list of failed link operations at the end of a run.
//
// Output is styled on color terminals and plain otherwise (pipes, NO_COLOR,
// dumb terminals). Diagnostics go through pkg/logging, not through here.
package ui
