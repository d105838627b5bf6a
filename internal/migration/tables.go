package migration

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"propdesk/internal/schema"
)

// TableMigrations returns one migration per entity, creating its table under
// the configured name.
func TableMigrations(catalog *schema.Catalog) []*Migration {
	entities := catalog.Entities()
	migrations := make([]*Migration, 0, len(entities))

	for i, entity := range entities {
		table := entity.Table
		model := entity.Model()

		migrations = append(migrations, &Migration{
			Version: fmt.Sprintf("%04d", i+1),
			Name:    "create_" + strings.ToLower(entity.Label) + "_table",
			Up: func(db *gorm.DB) error {
				return db.Table(table).AutoMigrate(model)
			},
			Down: func(db *gorm.DB) error {
				return db.Migrator().DropTable(table)
			},
		})
	}
	return migrations
}
