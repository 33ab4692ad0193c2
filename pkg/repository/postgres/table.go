package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/cybersoft/talentmatch/pkg/apperr"
)

// DB is the subset of *pgxpool.Pool the repositories use.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Schema describes how one entity maps onto one table.
type Schema[T any] struct {
	Table string
	// Noun is used in error details, e.g. "Candidate".
	Noun string
	// Identity is the generated key column, empty when the key is supplied by the caller.
	Identity string
	// Key lists the lookup columns for Get and Delete, in argument order.
	Key []string
	// Columns lists the insertable columns, in the order Values returns them.
	Columns []string
	OrderBy string

	// Values returns the insert arguments for Columns.
	Values func(T) ([]any, error)
	// Scan reads one row of Identity (if any) followed by Columns.
	Scan func(pgx.Row) (T, error)
	// WithIdentity stores the generated identity on the inserted value.
	WithIdentity func(T, int64) T
}

func (s Schema[T]) selectColumns() string {
	cols := s.Columns
	if s.Identity != "" {
		cols = append([]string{s.Identity}, cols...)
	}
	return strings.Join(cols, ", ")
}

// Page limits a list query. A zero Limit returns every row.
type Page struct {
	Limit  int
	Offset int
}

// Cond is an equality filter on one column.
type Cond struct {
	Column string
	Value  any
}

// Table implements create/get/list/delete for one Schema. Every call runs in
// its own transaction and under the configured timeout.
type Table[T any] struct {
	db      DB
	schema  Schema[T]
	timeout time.Duration
}

func NewTable[T any](db DB, schema Schema[T], timeout time.Duration) *Table[T] {
	return &Table[T]{db: db, schema: schema, timeout: timeout}
}

func (t *Table[T]) Insert(ctx context.Context, v T) (T, error) {
	args, err := t.schema.Values(v)
	if err != nil {
		return v, apperr.Wrap(apperr.ErrPersistence, err, "An error occurred while inserting data into the database")
	}

	placeholders := make([]string, len(args))
	for i := range args {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		t.schema.Table, strings.Join(t.schema.Columns, ", "), strings.Join(placeholders, ", "))

	err = t.inTx(ctx, "An error occurred while inserting data into the database", func(ctx context.Context, tx pgx.Tx) error {
		if t.schema.Identity == "" {
			_, err := tx.Exec(ctx, query, args...)
			return err
		}
		var id int64
		if err := tx.QueryRow(ctx, query+" RETURNING "+t.schema.Identity, args...).Scan(&id); err != nil {
			return err
		}
		if t.schema.WithIdentity != nil {
			v = t.schema.WithIdentity(v, id)
		}
		return nil
	})
	return v, err
}

func (t *Table[T]) Get(ctx context.Context, key ...any) (T, error) {
	var out T
	where, err := t.keyClause(key)
	if err != nil {
		return out, err
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s", t.schema.selectColumns(), t.schema.Table, where)

	err = t.inTx(ctx, "An error occurred while fetching data", func(ctx context.Context, tx pgx.Tx) error {
		v, err := t.schema.Scan(tx.QueryRow(ctx, query, key...))
		if errors.Is(err, pgx.ErrNoRows) {
			return t.notFound(key)
		}
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}

// List returns every matching row; never nil.
func (t *Table[T]) List(ctx context.Context, page Page, conds ...Cond) ([]T, error) {
	var (
		sb   strings.Builder
		args []any
	)
	fmt.Fprintf(&sb, "SELECT %s FROM %s", t.schema.selectColumns(), t.schema.Table)
	for i, c := range conds {
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		args = append(args, c.Value)
		fmt.Fprintf(&sb, "%s = $%d", c.Column, len(args))
	}
	if t.schema.OrderBy != "" {
		sb.WriteString(" ORDER BY " + t.schema.OrderBy)
	}
	if page.Limit > 0 {
		args = append(args, page.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}
	if page.Offset > 0 {
		args = append(args, page.Offset)
		fmt.Fprintf(&sb, " OFFSET $%d", len(args))
	}
	query := sb.String()

	out := make([]T, 0)
	err := t.inTx(ctx, "An error occurred while fetching data", func(ctx context.Context, tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			v, err := t.schema.Scan(rows)
			if err != nil {
				return err
			}
			out = append(out, v)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (t *Table[T]) Delete(ctx context.Context, key ...any) error {
	where, err := t.keyClause(key)
	if err != nil {
		return err
	}
	query := fmt.Sprintf("DELETE FROM %s WHERE %s", t.schema.Table, where)

	return t.inTx(ctx, "An error occurred while deleting data from the database", func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, query, key...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return t.notFound(key)
		}
		return nil
	})
}

func (t *Table[T]) keyClause(key []any) (string, error) {
	if len(key) != len(t.schema.Key) {
		return "", fmt.Errorf("%s: expected %d key values, got %d", t.schema.Table, len(t.schema.Key), len(key))
	}
	parts := make([]string, len(key))
	for i, col := range t.schema.Key {
		parts[i] = fmt.Sprintf("%s = $%d", col, i+1)
	}
	return strings.Join(parts, " AND "), nil
}

func (t *Table[T]) notFound(key []any) error {
	parts := make([]string, len(key))
	for i, col := range t.schema.Key {
		parts[i] = fmt.Sprintf("%s %v", col, key[i])
	}
	return apperr.New(apperr.ErrNotFound, fmt.Sprintf("%s with %s not found", t.schema.Noun, strings.Join(parts, " and ")))
}

// inTx runs fn in a transaction. The transaction is rolled back on every path
// that does not reach Commit, which also returns the connection to the pool.
func (t *Table[T]) inTx(ctx context.Context, detail string, fn func(context.Context, pgx.Tx) error) error {
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	tx, err := t.db.Begin(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return apperr.Wrap(apperr.ErrTimeout, err, "Database operation timed out")
		}
		return apperr.Wrap(apperr.ErrConnection, err, "Error connecting to the Database")
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback(context.WithoutCancel(ctx))
		}
	}()

	if err := fn(ctx, tx); err != nil {
		return classify(err, detail)
	}
	if err := tx.Commit(ctx); err != nil {
		return classify(err, detail)
	}
	committed = true
	return nil
}

func classify(err error, detail string) error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperr.Wrap(apperr.ErrTimeout, err, "Database operation timed out")
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return apperr.Wrap(apperr.ErrConflict, err, "Record already exists")
		case "23503":
			return apperr.Wrap(apperr.ErrValidation, err, "Referenced record does not exist")
		}
	}
	return apperr.Wrap(apperr.ErrPersistence, err, detail)
}
