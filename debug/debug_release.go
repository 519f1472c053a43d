//go:build !debug

package debug

// Debug is true when the process is built with the debug tag; it gates
// expensive internal assertions and keeps full file paths in stack traces.
const Debug = false
