// Package repository provides data access layer implementations for the application.
package repository

import (
	"errors"

	"videotube/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListOptions is a normalized page request. SortColumn must already be a
// whitelisted column name; it is never taken from user input directly.
type ListOptions struct {
	Offset     int
	Limit      int
	SortColumn string
	Desc       bool
}

// paginate applies ordering and the skip/limit window. table qualifies the
// sort column so the options work on joined queries.
func paginate(db *gorm.DB, table string, opts ListOptions) *gorm.DB {
	column := opts.SortColumn
	if column == "" {
		column = "created_at"
	}
	db = db.Order(clause.OrderByColumn{
		Column: clause.Column{Table: table, Name: column},
		Desc:   opts.Desc,
	})
	// Ties on the sort column are broken by id so pages never overlap.
	db = db.Order(clause.OrderByColumn{Column: clause.Column{Table: table, Name: "id"}})
	if opts.Limit > 0 {
		db = db.Offset(opts.Offset).Limit(opts.Limit)
	}
	return db
}

// profile restricts a preloaded user to its public projection.
func profile(db *gorm.DB) *gorm.DB {
	return db.Select(models.ProfileColumns)
}

// mapError converts a store error to an AppError. resource and id describe
// the looked-up entity for not-found messages.
func mapError(err error, resource string, id uuid.UUID) error {
	if err == nil {
		return nil
	}
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return models.NewNotFoundError(resource, id)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return models.NewConflictError(resource + " already exists")
	default:
		return models.NewInternalError(err)
	}
}

// internal wraps unexpected store errors; AppErrors pass through.
func internal(err error) error {
	if err == nil {
		return nil
	}
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return models.NewInternalError(err)
}
