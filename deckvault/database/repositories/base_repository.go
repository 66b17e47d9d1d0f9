package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

const (
	defaultQueryTimeout = 30 * time.Second

	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// BaseRepository provides common repository functionality
type BaseRepository struct {
	db             *bun.DB
	defaultTimeout time.Duration
}

// NewBaseRepository creates a new base repository
func NewBaseRepository(db *bun.DB) *BaseRepository {
	return &BaseRepository{
		db:             db,
		defaultTimeout: defaultQueryTimeout,
	}
}

// RepositoryError represents a repository-level error
type RepositoryError struct {
	Operation string
	Entity    string
	Err       error
}

func (re *RepositoryError) Error() string {
	return fmt.Sprintf("repository error during %s for %s: %v", re.Operation, re.Entity, re.Err)
}

func (re *RepositoryError) Unwrap() error {
	return re.Err
}

// NotFoundError represents an entity not found error
type NotFoundError struct {
	Entity string
	ID     interface{}
}

func (nfe *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %v not found", nfe.Entity, nfe.ID)
}

// ConflictError represents a data conflict error
type ConflictError struct {
	Entity string
	Field  string
	Value  interface{}
}

func (ce *ConflictError) Error() string {
	return fmt.Sprintf("%s with %s %v already exists", ce.Entity, ce.Field, ce.Value)
}

// ReferencedError represents a delete rejected by a foreign-key reference
type ReferencedError struct {
	Entity string
	ID     interface{}
}

func (re *ReferencedError) Error() string {
	return fmt.Sprintf("%s with ID %v is still referenced and cannot be deleted", re.Entity, re.ID)
}

// CopyLimitError signals the maximum-copies-per-card rule
type CopyLimitError struct {
	DeckID int64
	CardID int64
	Limit  int64
}

func (cle *CopyLimitError) Error() string {
	return fmt.Sprintf("deck %d already holds %d copies of card %d", cle.DeckID, cle.Limit, cle.CardID)
}

// EmptyUpdateError signals an update payload with no fields to apply
type EmptyUpdateError struct {
	Entity string
}

func (eue *EmptyUpdateError) Error() string {
	return fmt.Sprintf("no fields to update for %s", eue.Entity)
}

// WithTimeout creates a context with the default timeout
func (br *BaseRepository) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, br.defaultTimeout)
}

// HandleError standardizes error handling across repositories. Constraint
// violations surfaced by the engine are translated into the conflict taxonomy
// so that check-then-insert races still produce a proper conflict.
func (br *BaseRepository) HandleError(operation, entity string, err error) error {
	return br.HandleErrorWithID(operation, entity, "unknown", err)
}

// HandleErrorWithID standardizes error handling with specific ID
func (br *BaseRepository) HandleErrorWithID(operation, entity string, id interface{}, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return &NotFoundError{Entity: entity, ID: id}
	}

	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		switch pgErr.Field('C') {
		case pgUniqueViolation:
			return &ConflictError{Entity: entity, Field: pgErr.Field('n'), Value: id}
		case pgForeignKeyViolation:
			return &ReferencedError{Entity: entity, ID: id}
		}
	}

	return &RepositoryError{
		Operation: operation,
		Entity:    entity,
		Err:       err,
	}
}

// Transaction executes a function within a database transaction
func (br *BaseRepository) Transaction(ctx context.Context, fn func(context.Context, bun.Tx) error) error {
	timeoutCtx, cancel := br.WithTimeout(ctx)
	defer cancel()

	return br.db.RunInTx(timeoutCtx, nil, fn)
}

// Exists checks if a record exists
func (br *BaseRepository) Exists(ctx context.Context, entity string, query *bun.SelectQuery) (bool, error) {
	timeoutCtx, cancel := br.WithTimeout(ctx)
	defer cancel()

	exists, err := query.Exists(timeoutCtx)
	return exists, br.HandleError("exists", entity, err)
}

// GetDB returns the underlying database connection
func (br *BaseRepository) GetDB() *bun.DB {
	return br.db
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}

// IsConflict checks if an error is a ConflictError
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// IsReferenced checks if an error is a ReferencedError
func IsReferenced(err error) bool {
	var re *ReferencedError
	return errors.As(err, &re)
}

// IsCopyLimit checks if an error is a CopyLimitError
func IsCopyLimit(err error) bool {
	var cle *CopyLimitError
	return errors.As(err, &cle)
}

// IsEmptyUpdate checks if an error is an EmptyUpdateError
func IsEmptyUpdate(err error) bool {
	var eue *EmptyUpdateError
	return errors.As(err, &eue)
}

// IsRepositoryError checks if an error is a RepositoryError
func IsRepositoryError(err error) bool {
	var re *RepositoryError
	return errors.As(err, &re)
}
