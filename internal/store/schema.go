package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table names.
const (
	verificationEventsTable = "verification_events"
	syncEventsTable         = "sync_events"
	problemEventsTable      = "problem_events"
)

// eventColumns returns the base columns shared by all event tables:
// id, a global sequence number and a UTC timestamp.
func eventColumns(extra ...*schema.Column) []*schema.Column {
	return append([]*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
	}, extra...)
}

// eventTable builds a table with the base event columns and indexes on
// sequence, timestamp and the named extra columns.
func eventTable(name string, cols []*schema.Column, indexed ...string) *schema.Table {
	t := &schema.Table{
		Name:       name,
		Columns:    cols,
		PrimaryKey: []*schema.Column{cols[0]},
	}
	for _, c := range append([]string{"sequence", "timestamp"}, indexed...) {
		for _, col := range cols {
			if col.Name == c {
				t.Indexes = append(t.Indexes, &schema.Index{
					Name:    name + "_" + c,
					Columns: []*schema.Column{col},
				})
			}
		}
	}
	return t
}

var (
	// VerificationEventsTable records every verification attempt outcome.
	VerificationEventsTable = eventTable(verificationEventsTable, eventColumns(
		&schema.Column{Name: "attempt_id", Type: field.TypeString},
		&schema.Column{Name: "handle", Type: field.TypeString},
		&schema.Column{Name: "problem_id", Type: field.TypeString},
		&schema.Column{Name: "time_spent_minutes", Type: field.TypeInt},
		&schema.Column{Name: "flow", Type: field.TypeString},
		&schema.Column{Name: "kind", Type: field.TypeString},
		&schema.Column{Name: "message", Type: field.TypeString, Size: 2147483647},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64},
	), "handle", "problem_id", "kind")

	// SyncEventsTable records every sync attempt outcome.
	SyncEventsTable = eventTable(syncEventsTable, eventColumns(
		&schema.Column{Name: "attempt_id", Type: field.TypeString},
		&schema.Column{Name: "handle", Type: field.TypeString},
		&schema.Column{Name: "kind", Type: field.TypeString},
		&schema.Column{Name: "message", Type: field.TypeString, Size: 2147483647},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64},
	), "handle")

	// ProblemEventsTable records every acquired recommendation.
	ProblemEventsTable = eventTable(problemEventsTable, eventColumns(
		&schema.Column{Name: "handle", Type: field.TypeString},
		&schema.Column{Name: "problem_id", Type: field.TypeString},
		&schema.Column{Name: "name", Type: field.TypeString},
		&schema.Column{Name: "rating", Type: field.TypeInt},
		&schema.Column{Name: "tags", Type: field.TypeJSON, Nullable: true},
	), "handle")

	// Tables holds all event tables for migration.
	Tables = []*schema.Table{
		VerificationEventsTable,
		SyncEventsTable,
		ProblemEventsTable,
	}
)
