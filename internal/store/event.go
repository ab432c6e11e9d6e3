package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo with ent's SQL builder and the global
// sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

var _ EventRepo = (*eventRepo)(nil)

// insert assigns the next sequence and appends one row to table.
func (r *eventRepo) insert(ctx context.Context, table string, cols []string, vals []any) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(table).
		Columns(append([]string{"sequence", "timestamp"}, cols...)...).
		Values(append([]any{seqNum, time.Now().UTC()}, vals...)...).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}
	return nil
}

func (r *eventRepo) AppendVerification(ctx context.Context, data VerificationEventData) error {
	err := r.insert(ctx, verificationEventsTable,
		[]string{"attempt_id", "handle", "problem_id", "time_spent_minutes", "flow", "kind", "message", "latency_ms"},
		[]any{data.AttemptID, data.Handle, data.ProblemID, data.TimeSpentMinutes, data.Flow, data.Kind, data.Message, data.LatencyMs},
	)
	if err != nil {
		return fmt.Errorf("save verification event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendSync(ctx context.Context, data SyncEventData) error {
	err := r.insert(ctx, syncEventsTable,
		[]string{"attempt_id", "handle", "kind", "message", "latency_ms"},
		[]any{data.AttemptID, data.Handle, data.Kind, data.Message, data.LatencyMs},
	)
	if err != nil {
		return fmt.Errorf("save sync event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendProblem(ctx context.Context, data ProblemEventData) error {
	tags, err := json.Marshal(data.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}
	err = r.insert(ctx, problemEventsTable,
		[]string{"handle", "problem_id", "name", "rating", "tags"},
		[]any{data.Handle, data.ProblemID, data.Name, data.Rating, string(tags)},
	)
	if err != nil {
		return fmt.Errorf("save problem event: %w", err)
	}
	return nil
}

// selectEvents builds a query over table with opts applied.
func selectEvents(table string, opts QueryOpts, cols ...string) (string, []any) {
	t := entsql.Dialect(dialect.SQLite).Table(table)
	columns := []string{t.C("sequence"), t.C("timestamp")}
	for _, c := range cols {
		columns = append(columns, t.C(c))
	}

	sel := entsql.Dialect(dialect.SQLite).Select(columns...).From(t)

	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT(t.C("sequence"), opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT(t.C("sequence"), opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE(t.C("timestamp"), opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE(t.C("timestamp"), opts.To.UTC()))
	}
	if opts.Handle != "" {
		preds = append(preds, entsql.EQ(t.C("handle"), opts.Handle))
	}
	if opts.Kind != "" && table != problemEventsTable {
		preds = append(preds, entsql.EQ(t.C("kind"), opts.Kind))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}

	sel.OrderBy(entsql.Desc(t.C("sequence")))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	return sel.Query()
}

func (r *eventRepo) QueryVerifications(ctx context.Context, opts QueryOpts) ([]VerificationEvent, error) {
	query, args := selectEvents(verificationEventsTable, opts,
		"attempt_id", "handle", "problem_id", "time_spent_minutes", "flow", "kind", "message", "latency_ms")

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query verification events: %w", err)
	}
	defer rows.Close()

	var events []VerificationEvent
	for rows.Next() {
		var e VerificationEvent
		if err := rows.Scan(&e.Sequence, &e.Timestamp,
			&e.AttemptID, &e.Handle, &e.ProblemID, &e.TimeSpentMinutes,
			&e.Flow, &e.Kind, &e.Message, &e.LatencyMs); err != nil {
			return nil, fmt.Errorf("scan verification event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepo) QuerySyncs(ctx context.Context, opts QueryOpts) ([]SyncEvent, error) {
	query, args := selectEvents(syncEventsTable, opts,
		"attempt_id", "handle", "kind", "message", "latency_ms")

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sync events: %w", err)
	}
	defer rows.Close()

	var events []SyncEvent
	for rows.Next() {
		var e SyncEvent
		if err := rows.Scan(&e.Sequence, &e.Timestamp,
			&e.AttemptID, &e.Handle, &e.Kind, &e.Message, &e.LatencyMs); err != nil {
			return nil, fmt.Errorf("scan sync event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepo) RecentProblems(ctx context.Context, opts QueryOpts) ([]ProblemEvent, error) {
	query, args := selectEvents(problemEventsTable, opts,
		"handle", "problem_id", "name", "rating", "tags")

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query problem events: %w", err)
	}
	defer rows.Close()

	var events []ProblemEvent
	for rows.Next() {
		var (
			e    ProblemEvent
			tags sql.NullString
		)
		if err := rows.Scan(&e.Sequence, &e.Timestamp,
			&e.Handle, &e.ProblemID, &e.Name, &e.Rating, &tags); err != nil {
			return nil, fmt.Errorf("scan problem event: %w", err)
		}
		if tags.Valid && tags.String != "" {
			if err := json.Unmarshal([]byte(tags.String), &e.Tags); err != nil {
				return nil, fmt.Errorf("unmarshal tags: %w", err)
			}
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepo) Stats(ctx context.Context, handle string) (Stats, error) {
	var st Stats

	t := entsql.Dialect(dialect.SQLite).Table(verificationEventsTable)
	query, args := entsql.Dialect(dialect.SQLite).
		Select(
			entsql.Count("*"),
			"COALESCE(SUM(CASE WHEN "+t.C("kind")+" = 'success' THEN 1 ELSE 0 END), 0)",
			"COALESCE(SUM(CASE WHEN "+t.C("kind")+" = 'success' THEN "+t.C("time_spent_minutes")+" ELSE 0 END), 0)",
		).
		From(t).
		Where(entsql.EQ(t.C("handle"), handle)).
		Query()
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&st.Attempts, &st.Solved, &st.TotalMinutes); err != nil {
		return Stats{}, fmt.Errorf("query verification stats: %w", err)
	}

	syncs, err := r.QuerySyncs(ctx, QueryOpts{Handle: handle, Kind: "success", Limit: 1})
	if err != nil {
		return Stats{}, err
	}
	if len(syncs) > 0 {
		st.LastSync = syncs[0].Timestamp
	}
	return st, nil
}
