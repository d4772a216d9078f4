package iostore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/herbolive/herbdb/pkg/plant"
	"github.com/herbolive/herbdb/pkg/store"
	"github.com/huandu/go-sqlbuilder"
)

// FindByID returns the row with the given id.
func (s *Store) FindByID(ctx context.Context, id int64) (store.Row, error) {
	sb := s.selectRows()
	sb.Where(sb.Equal("id", id))
	sb.Limit(1)
	return s.one(ctx, "find by id", sb)
}

// FindByName returns the row with the lowest id among rows with the exact
// genus and species.
func (s *Store) FindByName(
	ctx context.Context,
	genus, species string,
) (store.Row, error) {
	if genus == "" || species == "" {
		return nil, store.ErrNotFound
	}
	sb := s.selectRows()
	sb.Where(sb.Equal("genus", genus), sb.Equal("species", species))
	sb.OrderBy("id")
	sb.Limit(1)
	return s.one(ctx, "find by name", sb)
}

// FindByCommonName returns the row with the lowest id that contains substr
// in its common name, ignoring case.
func (s *Store) FindByCommonName(
	ctx context.Context,
	substr string,
) (store.Row, error) {
	substr = strings.TrimSpace(substr)
	if substr == "" {
		return nil, store.ErrNotFound
	}
	sb := s.selectRows()
	sb.Where(likeExpr(sb, "common_name", like(substr)))
	sb.OrderBy("id")
	sb.Limit(1)
	return s.one(ctx, "find by common name", sb)
}

// List returns a page of rows ordered by common name and the number of all
// matching rows.
func (s *Store) List(ctx context.Context, q store.Query) ([]store.Row, int, error) {
	cb := s.flavor.NewSelectBuilder()
	cb.Select("COUNT(*)").From(table)
	s.matchText(cb, q.Text)
	query, args := cb.Build()

	var total int
	if err := s.db.GetContext(ctx, &total, query, args...); err != nil {
		return nil, 0, QueryError("count", err)
	}

	sb := s.selectRows()
	s.matchText(sb, q.Text)
	sb.OrderBy("common_name", "id")
	if q.PerPage > 0 {
		sb.Limit(q.PerPage)
		sb.Offset(q.Offset())
	}
	query, args = sb.Build()

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, 0, QueryError("list", err)
	}
	defer rows.Close()

	var res []store.Row
	for rows.Next() {
		row := make(store.Row)
		if err = rows.MapScan(row); err != nil {
			return nil, 0, QueryError("list", err)
		}
		res = append(res, fromDB(row))
	}
	if err = rows.Err(); err != nil {
		return nil, 0, QueryError("list", err)
	}
	return res, total, nil
}

func (s *Store) selectRows() *sqlbuilder.SelectBuilder {
	sb := s.flavor.NewSelectBuilder()
	sb.Select(append([]string{"id"}, s.columns...)...)
	sb.From(table)
	return sb
}

func (s *Store) matchText(sb *sqlbuilder.SelectBuilder, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	pattern := like(text)
	sb.Where(sb.Or(
		likeExpr(sb, "common_name", pattern),
		likeExpr(sb, "genus || ' ' || species", pattern),
		likeExpr(sb, "family", pattern),
	))
}

func (s *Store) one(
	ctx context.Context,
	op string,
	sb *sqlbuilder.SelectBuilder,
) (store.Row, error) {
	query, args := sb.Build()
	row := make(store.Row)
	err := s.db.QueryRowxContext(ctx, query, args...).MapScan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, QueryError(op, err)
	}
	return fromDB(row), nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// like returns a pattern that matches s as a literal substring. It is
// used with likeExpr.
func like(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

// likeExpr compares a lowered column expression with a pattern made by
// like.
func likeExpr(sb *sqlbuilder.SelectBuilder, col, pattern string) string {
	return fmt.Sprintf(`LOWER(%s) LIKE %s ESCAPE '\'`, col, sb.Var(pattern))
}

// fromDB marks a storage row with its provenance.
func fromDB(row store.Row) store.Row {
	row["source"] = string(plant.SourceDB)
	return row
}
