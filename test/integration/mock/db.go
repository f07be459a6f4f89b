// Package mock holds the stand-ins the scenario suite runs the API against.
package mock

import (
	"fmt"
	"sort"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	dbOnce sync.Once
	shared *Db
)

// Db is an in-memory SQLite database shared by every scenario of a run.
type Db struct {
	DbConn *gorm.DB
	tables map[string]any
	// names is the deletion order; tables are independent, so sorted is fine.
	names []string
}

// NewDb opens the database on first use and migrates the given tables,
// keyed by table name. Later calls return the same Db.
func NewDb(name string, tables map[string]any) *Db {
	dbOnce.Do(func() {
		d, err := openDb(name, tables)
		if err != nil {
			panic(fmt.Sprintf("scenario database: %v", err))
		}
		shared = d
	})
	return shared
}

func openDb(name string, tables map[string]any) (*Db, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	// The API server and the steps share one connection so they see the
	// same memory database without lock contention.
	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	d := &Db{DbConn: conn, tables: tables}
	models := make([]any, 0, len(tables))
	for name, m := range tables {
		d.names = append(d.names, name)
		models = append(models, m)
	}
	sort.Strings(d.names)

	if err := conn.AutoMigrate(models...); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return d, d.Reset()
}

// Reset empties every table.
func (d *Db) Reset() error {
	return d.DbConn.Transaction(func(tx *gorm.DB) error {
		for _, name := range d.names {
			if err := tx.Exec(fmt.Sprintf("DELETE FROM %q", name)).Error; err != nil {
				return fmt.Errorf("reset %s: %w", name, err)
			}
		}
		return nil
	})
}

// Count returns how many rows of table match every column value in where.
func (d *Db) Count(table string, where map[string]any) (int64, error) {
	m, ok := d.tables[table]
	if !ok {
		return 0, fmt.Errorf("table '%s' is not part of the scenario database", table)
	}

	query := d.DbConn.Model(m)
	for column, value := range where {
		query = query.Where(fmt.Sprintf("%q = ?", column), value)
	}

	var n int64
	err := query.Count(&n).Error
	return n, err
}
