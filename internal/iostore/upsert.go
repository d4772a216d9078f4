package iostore

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/herbolive/herbdb/internal/iometrics"
	"github.com/herbolive/herbdb/pkg/plant"
	"github.com/herbolive/herbdb/pkg/store"
	"github.com/jmoiron/sqlx"
)

// UpsertMany saves records in batches. Each batch is one transaction on
// a dedicated connection. When a batch fails it is rolled back and its
// records are saved one by one, each in its own transaction, so that only
// broken records are lost. These become failures of the report. An error
// is returned only when the database cannot be reached or the context is
// done.
func (s *Store) UpsertMany(
	ctx context.Context,
	recs []plant.Record,
) (*store.Report, error) {
	res := &store.Report{}

	for start := 0; start < len(recs); start += s.batchSize {
		end := min(start+s.batchSize, len(recs))
		rep, err := s.upsertBatch(ctx, recs[start:end])
		if err != nil {
			return res, err
		}
		res.Add(rep, start)
	}

	s.metrics.AddUpserts(iometrics.UpsertInserted, res.Inserted)
	s.metrics.AddUpserts(iometrics.UpsertUpdated, res.Updated)
	s.metrics.AddUpserts(iometrics.UpsertFailed, len(res.Failures))
	return res, nil
}

func (s *Store) upsertBatch(
	ctx context.Context,
	recs []plant.Record,
) (*store.Report, error) {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return nil, TransactionError("connect", err)
	}
	defer conn.Close()

	res, err := s.commit(ctx, conn, recs)
	if err == nil {
		return res, nil
	}
	if ctx.Err() != nil {
		return nil, TransactionError("batch", ctx.Err())
	}
	if len(recs) > 1 {
		slog.Warn("Batch upsert failed, retrying records one by one",
			"size", len(recs),
			"error", err,
		)
	}

	res = &store.Report{}
	for i := range recs {
		rep, err := s.commit(ctx, conn, recs[i:i+1])
		if err == nil {
			res.Add(rep, 0)
			continue
		}
		if ctx.Err() != nil {
			return nil, TransactionError("record", ctx.Err())
		}

		key := plant.IdentityKey(recs[i])
		slog.Error("Cannot save record",
			"index", i,
			"key", key,
			"name", plant.LookupName(recs[i]),
			"error", MalformedRecordError(key, err),
		)
		res.Failures = append(res.Failures, store.Failure{
			Index:  i,
			Key:    key,
			Error:  err.Error(),
			Record: recs[i],
		})
	}
	return res, nil
}

// commit upserts records in one transaction. Counts are returned only
// when the transaction is committed.
func (s *Store) commit(
	ctx context.Context,
	conn *sqlx.Conn,
	recs []plant.Record,
) (*store.Report, error) {
	tx, err := conn.BeginTxx(ctx, nil)
	if err != nil {
		return nil, TransactionError("begin", err)
	}

	res := &store.Report{}
	for _, r := range recs {
		inserted, err := s.upsert(ctx, tx, r)
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				slog.Error("Cannot roll back transaction",
					"error", TransactionError("rollback", rbErr),
				)
			}
			return nil, err
		}
		if inserted {
			res.Inserted++
		} else {
			res.Updated++
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, TransactionError("commit", err)
	}
	return res, nil
}

// upsert updates the row matching the record by genus and species, or by
// common name when no such row exists. Stored values are kept for empty
// fields of the record. A record that matches nothing is inserted.
func (s *Store) upsert(
	ctx context.Context,
	tx *sqlx.Tx,
	r plant.Record,
) (bool, error) {
	vals, err := encode(r)
	if err != nil {
		return false, err
	}

	ub := s.flavor.NewUpdateBuilder()
	ub.Update(table)
	assigns := make([]string, len(s.columns))
	for i, col := range s.columns {
		assigns[i] = fmt.Sprintf("%s = COALESCE(%s, %s)", col, ub.Var(vals[i]), col)
	}
	ub.Set(assigns...)
	ub.Where(fmt.Sprintf(
		"id = COALESCE("+
			"(SELECT id FROM %[1]s WHERE genus = %[2]s AND species = %[3]s ORDER BY id LIMIT 1), "+
			"(SELECT id FROM %[1]s WHERE common_name = %[4]s ORDER BY id LIMIT 1))",
		table,
		ub.Var(nullString(r.Genus)),
		ub.Var(nullString(r.Species)),
		ub.Var(nullString(r.CommonName)),
	))

	query, args := ub.Build()
	sqlRes, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	n, err := sqlRes.RowsAffected()
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	ib := s.flavor.NewInsertBuilder()
	ib.InsertInto(table)
	ib.Cols(s.columns...)
	ib.Values(vals...)
	query, args = ib.Build()
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return false, err
	}
	return true, nil
}

// UpdateFields writes the given fields of a record to the row with id.
// Empty fields are written as NULL.
func (s *Store) UpdateFields(
	ctx context.Context,
	id int64,
	rec plant.Record,
	fields plant.FieldSet,
) error {
	if len(fields) == 0 {
		return nil
	}

	ub := s.flavor.NewUpdateBuilder()
	ub.Update(table)
	var assigns []string
	for _, f := range fields.Fields() {
		v, err := encodeValue(rec.Get(f))
		if err != nil {
			return UpdateFieldsError(id, err)
		}
		assigns = append(assigns, ub.Assign(string(f), v))
	}
	ub.Set(assigns...)
	ub.Where(ub.Equal("id", id))

	query, args := ub.Build()
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return UpdateFieldsError(id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return UpdateFieldsError(id, store.ErrNotFound)
	}
	return nil
}

// encode converts a record to column values in storage order.
func encode(r plant.Record) ([]any, error) {
	res := make([]any, len(plant.Fields))
	for i, spec := range plant.Fields {
		v, err := encodeValue(r.Get(spec.Name))
		if err != nil {
			return nil, fmt.Errorf("cannot encode %s: %w", spec.Name, err)
		}
		res[i] = v
	}
	return res, nil
}

// encodeValue stores empty values as NULL, lists as JSON arrays and flags
// as 1 or 0.
func encodeValue(v plant.Value) (any, error) {
	switch v.Kind {
	case plant.KindScalar:
		return nullString(v.Str), nil
	case plant.KindList:
		s, err := plant.EncodeList(v.Items)
		if err != nil {
			return nil, err
		}
		return nullString(s), nil
	case plant.KindFlag:
		return v.Flag.SQLValue(), nil
	}
	return nil, nil
}

func nullString(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return s
}
