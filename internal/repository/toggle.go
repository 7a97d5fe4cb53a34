package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ToggleOutcome reports what a toggle did to the relationship.
type ToggleOutcome string

const (
	ToggleAdded   ToggleOutcome = "added"
	ToggleRemoved ToggleOutcome = "removed"
)

// toggleRow flips the existence of a relationship row identified by its
// natural key. An existing row is always deleted. Otherwise beforeInsert, when
// set, runs in the same transaction and can veto the insert. The insert relies
// on the unique index over the key, so concurrent toggles for one pair
// serialize on the index and never leave a duplicate row. On return row holds
// the inserted or the deleted record.
func toggleRow[T any](ctx context.Context, db *gorm.DB, row *T, naturalKey map[string]any, beforeInsert func(tx *gorm.DB) error) (ToggleOutcome, error) {
	var outcome ToggleOutcome
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		removed, err := deleteExisting(tx, row, naturalKey)
		if err != nil {
			return err
		}
		if removed {
			outcome = ToggleRemoved
			return nil
		}

		if beforeInsert != nil {
			if err := beforeInsert(tx); err != nil {
				return err
			}
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(row)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			outcome = ToggleAdded
			return nil
		}

		// A concurrent toggle inserted the pair first; this toggle undoes it.
		if _, err := deleteExisting(tx, row, naturalKey); err != nil {
			return err
		}
		outcome = ToggleRemoved
		return nil
	})
	if err != nil {
		return "", internal(err)
	}
	return outcome, nil
}

// deleteExisting removes the row matching naturalKey and copies it into row.
func deleteExisting[T any](tx *gorm.DB, row *T, naturalKey map[string]any) (bool, error) {
	var existing T
	err := tx.Where(naturalKey).Take(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := tx.Delete(&existing).Error; err != nil {
		return false, err
	}
	*row = existing
	return true, nil
}
