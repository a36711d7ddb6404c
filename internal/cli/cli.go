// Package cli implements the align command-line interface.
//
// The command reads lines of tab separated text and writes them through an
// [align.Proxy], so each column is padded to the widest cell seen so far.
// Special line prefixes declare headers, draw rules, or mark comments, and
// the declared headers are repeated at every page break.
//
// # Configuration
//
// Settings come from defaults, an optional YAML or TOML config file, and
// flags, in order of increasing precedence. A state file keeps the learned
// column widths between runs.
//
// # Logging
//
// Logs go to stderr through charmbracelet/log. Use --verbose (-v) for debug
// output. The logger travels in the command's context.
package cli
