package schema

import (
	"fmt"
	"sync"

	GORMSchema "gorm.io/gorm/schema"
)

// Table is the column layout of a GORM model.
type Table struct {
	*GORMSchema.Schema
	Columns []string
}

// TableFromModel parses model the way GORM would when creating its table.
func TableFromModel(model interface{}) (*Table, error) {
	modelSchema, err := GORMSchema.Parse(model, &sync.Map{}, GORMSchema.NamingStrategy{})
	if err != nil {
		return nil, fmt.Errorf("failed to parse model: %w", err)
	}

	columns := make([]string, 0, len(modelSchema.DBNames))
	columns = append(columns, modelSchema.DBNames...)

	return &Table{Schema: modelSchema, Columns: columns}, nil
}

// HasColumn reports whether the model maps a field to column.
func (t *Table) HasColumn(column string) bool {
	_, ok := t.FieldsByDBName[column]
	return ok
}

// PrimaryKey returns the primary key column, or "" when there is none.
func (t *Table) PrimaryKey() string {
	if t.PrioritizedPrimaryField == nil {
		return ""
	}
	return t.PrioritizedPrimaryField.DBName
}

// Check fails when entity names a column the model does not have, or when
// its primary key differs from the model's.
func Check(entity Entity, model interface{}) error {
	table, err := TableFromModel(model)
	if err != nil {
		return err
	}

	if pk := table.PrimaryKey(); pk != entity.PrimaryKey {
		return fmt.Errorf("%s: primary key is %q, model has %q", entity.Label, entity.PrimaryKey, pk)
	}

	for _, fields := range [][]Field{entity.AddFields, entity.UpdateFields} {
		for _, f := range fields {
			if !table.HasColumn(f.Column) {
				return fmt.Errorf("%s: column %q not found in model", entity.Label, f.Column)
			}
		}
	}
	return nil
}
