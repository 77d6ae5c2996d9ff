// Package ui renders the one-shot terminal output of the dockit-offert
// subcommands: a command header, a success or failure box, and a confirmation
// prompt. The interactive form lives in package tui.
//
// Output goes through a Printer so commands can be pointed at a buffer in
// tests:
//
//	p := ui.NewPrinter(cmd.OutOrStdout())
//	p.PrintHeader("Utkast", "dockit-offert draft", []ui.Detail{{Key: "API", Value: base}})
//	p.PrintSuccess("Utkast beräknat", []ui.Detail{{Key: "Att betala", Value: total}})
//
// Logging stays silent unless DOCKIT_LOG_LEVEL is set, so these boxes are the
// only thing a user sees on stdout.
package ui
