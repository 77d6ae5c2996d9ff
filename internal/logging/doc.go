// Package logging provides structured logging for dockit-offert.
//
// This package wraps a global zap logger. Logging is silent unless
// DOCKIT_LOG_LEVEL is set, so CLI output and the terminal form stay clean by
// default.
//
// # Log Levels
//
//   - Debug: request ids, response sizes, form actions
//   - Info: API calls and their outcome
//   - Warn: non-fatal issues (unreadable config, failed print command)
//   - Error: failures that end a command
//
// # Output
//
// Logs go to stderr, or to the file named by DOCKIT_LOG_FILE. The terminal
// form always logs to a file because anything written to the terminal would
// paint over the screen:
//
//	DOCKIT_LOG_LEVEL=debug DOCKIT_LOG_FILE=/tmp/offert.log dockit-offert
//
// # API Logging
//
// The quote API client logs each call with its request id, which is also
// sent to the backend in X-Request-ID:
//
//	logging.LogAPIRequest("POST", "/quotes/draft", requestID)
//	logging.LogAPIResponse("POST", "/quotes/draft", requestID, 200, elapsed)
package logging
