package database

import (
	"context"
	"fmt"
	"iter"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"github.com/mrlokans/catalogdb/internal/entities"
)

// DefaultBatchSize is used when Load is given a non-positive batch size.
const DefaultBatchSize = 500

// sqliteMaxVariables is SQLite's default limit on bound parameters in one
// statement. Every row of a multi-row INSERT binds one parameter per column.
const sqliteMaxVariables = 32766

var schemaCache sync.Map

// LoadCounts reports how many rows a load committed.
type LoadCounts struct {
	Books   int `json:"books"`
	Reviews int `json:"reviews"`
}

// Load replaces the contents of the books and reviews tables with the given
// row sequences. Both tables are dropped, recreated and filled inside a single
// transaction: an error from either sequence or from an insert rolls
// everything back and leaves the previous contents in place.
func (d *Database) Load(
	ctx context.Context,
	books iter.Seq2[entities.BookRow, error],
	reviews iter.Seq2[entities.ReviewRow, error],
	batchSize int,
) (LoadCounts, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	var counts LoadCounts
	err := d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := resetTables(tx); err != nil {
			return err
		}

		n, err := insertAll(ctx, tx, books, batchSize)
		if err != nil {
			return fmt.Errorf("load books: %w", err)
		}
		counts.Books = n

		n, err = insertAll(ctx, tx, reviews, batchSize)
		if err != nil {
			return fmt.Errorf("load reviews: %w", err)
		}
		counts.Reviews = n

		return nil
	})
	if err != nil {
		return LoadCounts{}, err
	}
	return counts, nil
}

// resetTables drops and recreates the row tables.
func resetTables(tx *gorm.DB) error {
	migrator := tx.Migrator()
	if err := migrator.DropTable(&entities.BookRow{}, &entities.ReviewRow{}); err != nil {
		return fmt.Errorf("drop tables: %w", err)
	}
	if err := migrator.CreateTable(&entities.BookRow{}, &entities.ReviewRow{}); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

// rowsPerStatement caps batchSize so one INSERT of T rows stays within
// sqliteMaxVariables.
func rowsPerStatement[T any](tx *gorm.DB, batchSize int) (int, error) {
	sch, err := schema.Parse(new(T), &schemaCache, tx.NamingStrategy)
	if err != nil {
		return 0, fmt.Errorf("parse schema: %w", err)
	}
	return min(batchSize, sqliteMaxVariables/len(sch.DBNames)), nil
}

// insertAll drains rows into the table in batches of at most batchSize.
func insertAll[T any](ctx context.Context, tx *gorm.DB, rows iter.Seq2[T, error], batchSize int) (int, error) {
	batchSize, err := rowsPerStatement[T](tx, batchSize)
	if err != nil {
		return 0, err
	}

	batch := make([]T, 0, batchSize)
	total := 0

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := tx.Create(&batch).Error; err != nil {
			return fmt.Errorf("insert rows %d-%d: %w", total+1, total+len(batch), err)
		}
		total += len(batch)
		batch = batch[:0]
		return nil
	}

	for row, err := range rows {
		if err != nil {
			return total, err
		}
		batch = append(batch, row)
		if len(batch) == batchSize {
			if err := flush(); err != nil {
				return total, err
			}
		}
	}
	if err := flush(); err != nil {
		return total, err
	}
	return total, nil
}
