// Package tui is the interactive quote form.
//
// The form is one screen: customer fields, the line table, an action bar,
// the draft/save result, a lookup box and an optional print preview. All
// display state lives in a session.State; the Bubble Tea model owns the text
// inputs and feeds their values into a quote.Form.
//
// # Actions
//
// Every network action is split into a Begin step run inside Update, a
// tea.Cmd that calls the API, and a result message that Update folds back in
// with the matching Finish step:
//
//	ctrl+r  health    -> healthMsg
//	ctrl+d  draft     -> draftMsg
//	ctrl+s  save      -> saveMsg
//	ctrl+f  lookup    -> lookupMsg
//	ctrl+p  print     -> printMsg
//
// An action whose own request is in flight ignores its key. Different actions
// run concurrently.
//
// # Layout
//
// Every frame is wrapped by renderContainer, which draws the title bar with
// the API health and the help footer. Content is laid out top to bottom and
// clipped to the terminal height.
//
// # Logging
//
// Log lines would paint over the screen, so the command that starts the
// program routes zap output to a file (see logging.InitializeForTUI).
package tui
