// Package migration runs and tracks schema migrations.
//
// Migration files register themselves from init():
//
//	func init() {
//	    migration.Register("20260101000000_create_users_table", &CreateUsersTable{})
//	}
//
// Names carry a timestamp prefix so lexical order is chronological order.
// The CLI exposes the runner as `showroom migrate`, `migrate:rollback` and
// `migrate:status`.
package migration

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/showroom/pkg/logger"
)

// Migration is one reversible schema change.
type Migration interface {
	Up(db *gorm.DB) error
	Down(db *gorm.DB) error
}

// ledgerRow tracks one applied migration. Batch groups the migrations applied
// by a single `migrate` invocation so Rollback can undo exactly that set.
type ledgerRow struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (ledgerRow) TableName() string { return "showroom_migrations" }

type entry struct {
	name string
	m    Migration
}

var registered []entry

// Register adds a migration under the given timestamp-prefixed name.
func Register(name string, m Migration) {
	registered = append(registered, entry{name: name, m: m})
}

// Runner applies registered migrations against one database.
type Runner struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Runner { return &Runner{db: db} }

func (r *Runner) ensureLedger() error {
	return r.db.AutoMigrate(&ledgerRow{})
}

// applied returns the names already in the ledger.
func (r *Runner) applied() (map[string]ledgerRow, error) {
	var rows []ledgerRow
	if err := r.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]ledgerRow, len(rows))
	for _, row := range rows {
		out[row.Name] = row
	}
	return out, nil
}

func (r *Runner) lastBatch() int {
	var agg struct{ Max int }
	r.db.Model(&ledgerRow{}).Select("MAX(batch) as max").Scan(&agg)
	return agg.Max
}

// Run applies every registered migration missing from the ledger, oldest
// first, all under one batch number.
func (r *Runner) Run() error {
	if err := r.ensureLedger(); err != nil {
		return fmt.Errorf("migration: ensure ledger: %w", err)
	}
	done, err := r.applied()
	if err != nil {
		return fmt.Errorf("migration: read ledger: %w", err)
	}

	var todo []entry
	for _, e := range registered {
		if _, ok := done[e.name]; !ok {
			todo = append(todo, e)
		}
	}
	sort.Slice(todo, func(i, j int) bool { return todo[i].name < todo[j].name })

	if len(todo) == 0 {
		fmt.Println("Nothing to migrate.")
		return nil
	}

	batch := r.lastBatch() + 1
	for _, e := range todo {
		logger.Info("migration: applying", "name", e.name, "batch", batch)
		fmt.Printf("  Migrating: %s\n", e.name)

		if err := e.m.Up(r.db); err != nil {
			return fmt.Errorf("migration: %s up: %w", e.name, err)
		}
		if err := r.db.Create(&ledgerRow{Name: e.name, Batch: batch}).Error; err != nil {
			return fmt.Errorf("migration: record %s: %w", e.name, err)
		}

		fmt.Printf("  Migrated:  %s\n", e.name)
	}

	logger.Info("migration: complete", "applied", len(todo), "batch", batch)
	return nil
}

// Rollback reverses the most recent batch, newest migration first.
func (r *Runner) Rollback() error {
	if err := r.ensureLedger(); err != nil {
		return fmt.Errorf("migration: ensure ledger: %w", err)
	}

	batch := r.lastBatch()
	if batch == 0 {
		fmt.Println("Nothing to roll back.")
		return nil
	}

	var rows []ledgerRow
	if err := r.db.Where("batch = ?", batch).Order("id desc").Find(&rows).Error; err != nil {
		return err
	}

	byName := make(map[string]Migration, len(registered))
	for _, e := range registered {
		byName[e.name] = e.m
	}

	for _, row := range rows {
		m, ok := byName[row.Name]
		if !ok {
			return fmt.Errorf("migration: cannot roll back %s: not registered", row.Name)
		}

		logger.Info("migration: reverting", "name", row.Name)
		fmt.Printf("  Rolling back: %s\n", row.Name)

		if err := m.Down(r.db); err != nil {
			return fmt.Errorf("migration: %s down: %w", row.Name, err)
		}
		if err := r.db.Delete(&row).Error; err != nil {
			return err
		}

		fmt.Printf("  Rolled back:  %s\n", row.Name)
	}
	return nil
}

// Status prints every registered migration with its ledger state.
func (r *Runner) Status() error {
	if err := r.ensureLedger(); err != nil {
		return err
	}
	done, err := r.applied()
	if err != nil {
		return err
	}

	fmt.Printf("%-60s  %-8s  %s\n", "Migration", "Status", "Batch")
	fmt.Println(strings.Repeat("-", 80))
	for _, e := range registered {
		if row, ok := done[e.name]; ok {
			fmt.Printf("%-60s  %-8s  %d\n", e.name, "Ran", row.Batch)
		} else {
			fmt.Printf("%-60s  %-8s  -\n", e.name, "Pending")
		}
	}
	return nil
}
