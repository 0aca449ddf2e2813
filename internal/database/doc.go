// Package database persists run history in a local SQLite database.
//
// The history stores one summary row per tool invocation so that `siteaudit
// history` can answer "what did I audit and when" across sessions. Detailed
// output stays in the per-run files; the database is deliberately just an
// index over them.
package database
