package crud

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"propdesk/internal/prompt"
	"propdesk/internal/schema"
	"propdesk/internal/store"
	"propdesk/internal/validate"
)

const (
	invalidChoice  = "Invalid choice. Please try again."
	invalidInput   = "Invalid input."
	operationError = "Operation failed."
)

// Store is the part of the gateway the engine needs.
type Store interface {
	Query(ctx context.Context, stmt string, args ...any) ([]store.Row, error)
	Exec(ctx context.Context, stmt string, args ...any) (int64, error)
}

// Engine runs the generic view/search/add/update/delete operations. Store
// failures are logged and reported to the operator; only input errors are
// returned, since they mean the session cannot continue.
type Engine struct {
	store   Store
	prompt  *prompt.Prompter
	catalog *schema.Catalog
	log     *zap.Logger
}

func New(s Store, p *prompt.Prompter, catalog *schema.Catalog, log *zap.Logger) *Engine {
	return &Engine{
		store:   s,
		prompt:  p,
		catalog: catalog,
		log:     log,
	}
}

// View prints every row of table.
func (e *Engine) View(ctx context.Context, table string) error {
	stmt, err := store.SelectAll(table)
	if err != nil {
		return err
	}

	rows, err := e.store.Query(ctx, stmt)
	if err != nil {
		e.reportFailure("view", table, err)
		return nil
	}

	if len(rows) == 0 {
		e.prompt.Printf("No data found in %s.\n", table)
		return nil
	}
	e.printRows(rows)
	return nil
}

// Search returns the rows of table whose column equals value.
func (e *Engine) Search(ctx context.Context, table, column string, value any) ([]store.Row, error) {
	stmt, err := store.SelectWhere(table, column)
	if err != nil {
		return nil, err
	}
	return e.store.Query(ctx, stmt, value)
}

// SearchApartments offers the apartment filters, reads a value for the chosen
// one and prints the matches. The value is validated before the store is
// touched.
func (e *Engine) SearchApartments(ctx context.Context) error {
	filters := e.catalog.ApartmentFilters
	options := make([]string, 0, len(filters)+1)
	for _, f := range filters {
		options = append(options, f.Label)
	}
	options = append(options, "Cancel")

	choice, err := e.prompt.DisplayMenu(ctx, options)
	if err != nil {
		return err
	}
	if choice == len(filters)+1 {
		return nil
	}
	if choice < 1 || choice > len(filters) {
		e.prompt.Println(invalidChoice)
		return nil
	}

	filter := filters[choice-1]
	raw, err := e.prompt.ValidateInput(ctx, filter.Prompt, filter.Kind.Func(), invalidInput)
	if err != nil {
		return err
	}

	table := e.catalog.Apartment.Table
	rows, err := e.Search(ctx, table, filter.Column, bindValue(filter.Kind, raw))
	if err != nil {
		e.reportFailure("search", table, err)
		return nil
	}

	if len(rows) == 0 {
		e.prompt.Println("No matching apartments found.")
		return nil
	}
	e.printRows(rows)
	return nil
}

// Add prompts for every field of entity in order and inserts one row. If the
// input ends part way through, nothing is written.
func (e *Engine) Add(ctx context.Context, entity schema.Entity) error {
	columns := make([]string, 0, len(entity.AddFields))
	values := make([]any, 0, len(entity.AddFields))

	for _, f := range entity.AddFields {
		raw, err := e.prompt.ValidateInput(ctx, f.Prompt, f.Kind.Func(), f.ErrorMessage)
		if err != nil {
			return err
		}
		columns = append(columns, f.Column)
		values = append(values, bindValue(f.Kind, raw))
	}

	stmt, err := store.Insert(entity.Table, columns)
	if err != nil {
		return err
	}

	if _, err := e.store.Exec(ctx, stmt, values...); err != nil {
		e.reportFailure("add", entity.Table, err)
		return nil
	}

	e.log.Info("record added", zap.String("table", entity.Table))
	e.prompt.Printf("%s details added successfully.\n", entity.Label)
	return nil
}

// Update changes one column of the row whose primary key is key. The
// operator picks the column from a menu and enters a single new value.
func (e *Engine) Update(ctx context.Context, entity schema.Entity, key string) error {
	options := make([]string, 0, len(entity.UpdateFields))
	for _, f := range entity.UpdateFields {
		options = append(options, "Update "+f.Column)
	}

	choice, err := e.prompt.DisplayMenu(ctx, options)
	if err != nil {
		return err
	}
	if choice < 1 || choice > len(entity.UpdateFields) {
		e.prompt.Println(invalidChoice)
		return nil
	}

	f := entity.UpdateFields[choice-1]
	raw, err := e.prompt.ValidateInput(ctx, f.Prompt, f.Kind.Func(), f.ErrorMessage)
	if err != nil {
		return err
	}

	stmt, err := store.UpdateColumn(entity.Table, f.Column, entity.PrimaryKey)
	if err != nil {
		return err
	}

	affected, err := e.store.Exec(ctx, stmt, bindValue(f.Kind, raw), bindValue(validate.KindInteger, key))
	if err != nil {
		e.reportFailure("update", entity.Table, err)
		return nil
	}

	e.log.Info("record updated",
		zap.String("table", entity.Table),
		zap.String("column", f.Column),
		zap.Int64("rows_affected", affected))
	e.prompt.Printf("%s updated successfully.\n", f.Column)
	return nil
}

// Delete removes the row with the primary key the operator enters. There is
// no existence check; a missing key deletes nothing.
func (e *Engine) Delete(ctx context.Context, entity schema.Entity) error {
	key, err := e.prompt.ValidateInput(
		ctx,
		fmt.Sprintf("Enter %s of the record to delete: ", entity.PrimaryKey),
		validate.Integer,
		invalidInput,
	)
	if err != nil {
		return err
	}

	stmt, err := store.DeleteWhere(entity.Table, entity.PrimaryKey)
	if err != nil {
		return err
	}

	affected, err := e.store.Exec(ctx, stmt, bindValue(validate.KindInteger, key))
	if err != nil {
		e.reportFailure("delete", entity.Table, err)
		return nil
	}

	e.log.Info("record deleted", zap.String("table", entity.Table), zap.Int64("rows_affected", affected))
	e.prompt.Printf("Record deleted from %s.\n", entity.Table)
	return nil
}

func (e *Engine) printRows(rows []store.Row) {
	for _, row := range rows {
		e.prompt.Println(row.String())
	}
}

func (e *Engine) reportFailure(op, table string, err error) {
	e.log.Error("operation failed", zap.String("op", op), zap.String("table", table), zap.Error(err))
	e.prompt.Println(operationError)
}

// bindValue converts validated integer input to int64 so drivers with strict
// parameter typing accept it. Digit strings too long for int64 are bound as
// text and left to the store to reject.
func bindValue(kind validate.Kind, raw string) any {
	if kind == validate.KindInteger {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return n
		}
	}
	return raw
}
