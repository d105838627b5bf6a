package migration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migration is one versioned schema change.
type Migration struct {
	Version string
	Name    string
	Up      func(*gorm.DB) error
	Down    func(*gorm.DB) error
}

// MigrationRecord marks a migration as applied.
type MigrationRecord struct {
	Version   string    `gorm:"primaryKey"`
	Name      string    `gorm:"not null"`
	AppliedAt time.Time `gorm:"not null"`
}

// Status reports whether a registered migration has been applied.
type Status struct {
	Version string
	Name    string
	Applied bool
}

// Migrator applies registered migrations in order, recording each one.
type Migrator struct {
	db         *gorm.DB
	log        *zap.Logger
	migrations []*Migration
}

func NewMigrator(db *gorm.DB, log *zap.Logger) *Migrator {
	return &Migrator{
		db:  db,
		log: log,
	}
}

// Register adds migrations in the order they should run.
func (m *Migrator) Register(migrations ...*Migration) {
	m.migrations = append(m.migrations, migrations...)
}

func (m *Migrator) ensureVersionTable(ctx context.Context) error {
	return m.db.WithContext(ctx).AutoMigrate(&MigrationRecord{})
}

// GetAppliedVersions returns the set of recorded versions.
func (m *Migrator) GetAppliedVersions(ctx context.Context) (map[string]bool, error) {
	if err := m.ensureVersionTable(ctx); err != nil {
		return nil, fmt.Errorf("failed to create migration table: %w", err)
	}

	var records []MigrationRecord
	if err := m.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get applied migrations: %w", err)
	}

	versions := make(map[string]bool, len(records))
	for _, record := range records {
		versions[record.Version] = true
	}
	return versions, nil
}

// Up applies every pending migration, each in its own transaction, and
// returns how many ran.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	applied, err := m.GetAppliedVersions(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, mr := range m.migrations {
		if applied[mr.Version] {
			continue
		}

		err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := mr.Up(tx); err != nil {
				return err
			}
			return tx.Create(&MigrationRecord{
				Version:   mr.Version,
				Name:      mr.Name,
				AppliedAt: time.Now(),
			}).Error
		})
		if err != nil {
			return count, fmt.Errorf("failed to apply migration %s: %w", mr.Name, err)
		}

		m.log.Info("applied migration", zap.String("version", mr.Version), zap.String("name", mr.Name))
		count++
	}
	return count, nil
}

// Down reverts the most recently applied migration. It returns false when
// nothing was applied.
func (m *Migrator) Down(ctx context.Context) (bool, error) {
	if err := m.ensureVersionTable(ctx); err != nil {
		return false, fmt.Errorf("failed to create migration table: %w", err)
	}

	var last MigrationRecord
	err := m.db.WithContext(ctx).Order("applied_at DESC").Order("version DESC").First(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var target *Migration
	for _, mr := range m.migrations {
		if mr.Version == last.Version {
			target = mr
			break
		}
	}
	if target == nil {
		return false, fmt.Errorf("applied migration %s is not registered", last.Version)
	}

	err = m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := target.Down(tx); err != nil {
			return err
		}
		return tx.Delete(&last).Error
	})
	if err != nil {
		return false, fmt.Errorf("failed to revert migration %s: %w", target.Name, err)
	}

	m.log.Info("reverted migration", zap.String("version", target.Version), zap.String("name", target.Name))
	return true, nil
}

// Status lists registered migrations in registration order.
func (m *Migrator) Status(ctx context.Context) ([]Status, error) {
	applied, err := m.GetAppliedVersions(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make([]Status, 0, len(m.migrations))
	for _, mr := range m.migrations {
		statuses = append(statuses, Status{
			Version: mr.Version,
			Name:    mr.Name,
			Applied: applied[mr.Version],
		})
	}
	return statuses, nil
}
