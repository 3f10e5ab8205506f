package db

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/jackc/pgconn"
	"github.com/jmoiron/sqlx"
)

type NamedPreparer interface {
	PrepareNamed(query string) (*sqlx.NamedStmt, error)
}

type NamedPreparerContext interface {
	PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
}

// GetNamed is like sqlx.Get but for named statements.
func GetNamed(p NamedPreparer, dest interface{}, query string, arg interface{}) error {
	st, err := p.PrepareNamed(query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer st.Close()
	return st.Get(dest, arg)
}

// GetNamedContext is like sqlx.GetContext but for named statements.
func GetNamedContext(ctx context.Context, p NamedPreparerContext, dest interface{}, query string, arg interface{}) error {
	st, err := p.PrepareNamedContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer st.Close()
	return st.GetContext(ctx, dest, arg)
}

// SelectNamed is like sqlx.Select but for named statements.
// The arg can be an array. Every element of the array is executed and the
// results are appended to dest.
func SelectNamed(p NamedPreparer, dest interface{}, query string, args interface{}) error {
	st, err := p.PrepareNamed(query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer st.Close()
	return selectNamed(func(dst, arg interface{}) error { return st.Select(dst, arg) }, dest, args)
}

// SelectNamedContext is like sqlx.SelectContext but for named statements.
// The arg can be an array. Every element of the array is executed and the
// results are appended to dest.
func SelectNamedContext(ctx context.Context, p NamedPreparerContext, dest interface{}, query string, args interface{}) error {
	st, err := p.PrepareNamedContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer st.Close()
	return selectNamed(func(dst, arg interface{}) error { return st.SelectContext(ctx, dst, arg) }, dest, args)
}

func selectNamed(sel func(dest, arg interface{}) error, dest, args interface{}) error {
	v := reflect.ValueOf(args)
	if v.Kind() != reflect.Slice {
		return sel(dest, args)
	}

	dv := reflect.ValueOf(dest)
	if dv.Kind() != reflect.Ptr || dv.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("expected dest to be a pointer to a slice")
	}

	collected := dv.Elem()
	for i := 0; i < v.Len(); i++ {
		part := reflect.New(dv.Elem().Type())
		if err := sel(part.Interface(), v.Index(i).Interface()); err != nil {
			return err
		}
		collected = reflect.AppendSlice(collected, part.Elem())
	}
	dv.Elem().Set(collected)
	return nil
}

// RunInTransaction runs the given callback in a transaction. The transaction
// is rolled back if the callback returns an error, committed otherwise.
func RunInTransaction(ctx context.Context, db *sqlx.DB, cb func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	if err := cb(tx); err != nil {
		return err
	}
	return tx.Commit()
}

const (
	pgErrUniqueViolation     = "23505"
	pgErrForeignKeyViolation = "23503"
)

// IsDuplicate reports whether err is a Postgres unique constraint violation.
func IsDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation
}

// IsMissingReference reports whether err is a Postgres foreign key violation.
func IsMissingReference(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrForeignKeyViolation
}
