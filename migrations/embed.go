// Package migrations holds the goose SQL migrations for the planner schema:
// destinations, the per-kind catalog tables, user preferences and package
// history. cmd/api applies them on start when MIGRATE_ON_START is set, and
// integration tests apply them from TestMain.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
