package store

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidIdentifier is returned when a table or column name is not a plain
// SQL identifier. Identifiers are interpolated, never bound, so this check is
// what keeps them out of reach of operator input.
var ErrInvalidIdentifier = errors.New("invalid SQL identifier")

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidIdentifier reports whether name can be interpolated into a statement.
func ValidIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

func checkIdentifiers(names ...string) error {
	for _, name := range names {
		if !ValidIdentifier(name) {
			return fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
		}
	}
	return nil
}

// SelectAll builds SELECT * FROM table.
func SelectAll(table string) (string, error) {
	if err := checkIdentifiers(table); err != nil {
		return "", err
	}
	return fmt.Sprintf("SELECT * FROM %s", table), nil
}

// SelectWhere builds a single-column equality filter.
func SelectWhere(table, column string) (string, error) {
	if err := checkIdentifiers(table, column); err != nil {
		return "", err
	}
	return fmt.Sprintf("SELECT * FROM %s WHERE %s = ?", table, column), nil
}

// Insert builds an insert with one placeholder per column.
func Insert(table string, columns []string) (string, error) {
	if len(columns) == 0 {
		return "", fmt.Errorf("insert into %s: no columns", table)
	}
	if err := checkIdentifiers(append([]string{table}, columns...)...); err != nil {
		return "", err
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(columns, ", "), placeholders), nil
}

// UpdateColumn builds a single-column update keyed on the primary key.
func UpdateColumn(table, column, primaryKey string) (string, error) {
	if err := checkIdentifiers(table, column, primaryKey); err != nil {
		return "", err
	}
	return fmt.Sprintf("UPDATE %s SET %s = ? WHERE %s = ?", table, column, primaryKey), nil
}

// DeleteWhere builds a delete keyed on the primary key.
func DeleteWhere(table, primaryKey string) (string, error) {
	if err := checkIdentifiers(table, primaryKey); err != nil {
		return "", err
	}
	return fmt.Sprintf("DELETE FROM %s WHERE %s = ?", table, primaryKey), nil
}
