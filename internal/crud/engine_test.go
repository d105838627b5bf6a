package crud

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"propdesk/internal/config"
	"propdesk/internal/prompt"
	"propdesk/internal/schema"
	"propdesk/internal/store"
	"propdesk/internal/validate"
)

var testTables = config.Tables{Apartment: "ApartmentUnit", Tenant: "TenantOwner", Parking: "Parking"}

func setupTestGateway(t *testing.T) *store.Gateway {
	t.Helper()

	cfg := &config.Config{DBType: "sqlite", DBDatabase: ":memory:"}
	gw, err := store.Connect(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = gw.Close() })

	for _, e := range schema.NewCatalog(testTables).Entities() {
		require.NoError(t, gw.DB().Table(e.Table).AutoMigrate(e.Model()))
	}
	return gw
}

func newTestEngine(s Store, input string) (*Engine, *bytes.Buffer) {
	var out bytes.Buffer
	p := prompt.New(strings.NewReader(input), &out)
	return New(s, p, schema.NewCatalog(testTables), zap.NewNop()), &out
}

// recordingStore counts round trips and can be told to fail.
type recordingStore struct {
	queries int
	execs   int
	err     error
}

func (r *recordingStore) Query(ctx context.Context, stmt string, args ...any) ([]store.Row, error) {
	r.queries++
	return nil, r.err
}

func (r *recordingStore) Exec(ctx context.Context, stmt string, args ...any) (int64, error) {
	r.execs++
	return 0, r.err
}

func countRows(t *testing.T, gw *store.Gateway, table string) int {
	t.Helper()
	stmt, err := store.SelectAll(table)
	require.NoError(t, err)
	rows, err := gw.Query(context.Background(), stmt)
	require.NoError(t, err)
	return len(rows)
}

func TestAddThenViewApartment(t *testing.T) {
	gw := setupTestGateway(t)
	ctx := context.Background()
	catalog := schema.NewCatalog(testTables)

	engine, out := newTestEngine(gw, "101\n1\n2\n1\n850\nOwned\nOccupied\n")
	require.NoError(t, engine.Add(ctx, catalog.Apartment))
	assert.Contains(t, out.String(), "Apartment details added successfully.")

	rows, err := engine.Search(ctx, catalog.Apartment.Table, "unit_number", int64(101))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "(101, 1, 2, 1, 850, Owned, Occupied)", rows[0].String())

	out.Reset()
	require.NoError(t, engine.View(ctx, catalog.Apartment.Table))
	assert.Equal(t, "(101, 1, 2, 1, 850, Owned, Occupied)\n", out.String())
}

func TestAddReprompts(t *testing.T) {
	gw := setupTestGateway(t)
	catalog := schema.NewCatalog(testTables)

	engine, out := newTestEngine(gw, "-4\nA1\n4\nSedan Blue\nSedanBlue\nFree\n")
	require.NoError(t, engine.Add(context.Background(), catalog.Parking))

	output := out.String()
	assert.Equal(t, 2, strings.Count(output, "Invalid number."))
	assert.Equal(t, 1, strings.Count(output, "Invalid details."))
	assert.Equal(t, 1, countRows(t, gw, catalog.Parking.Table))
}

func TestAddAbandonedInsertsNothing(t *testing.T) {
	gw := setupTestGateway(t)
	catalog := schema.NewCatalog(testTables)

	engine, _ := newTestEngine(gw, "101\n1\n2\n")
	err := engine.Add(context.Background(), catalog.Apartment)
	assert.ErrorIs(t, err, prompt.ErrInputClosed)
	assert.Zero(t, countRows(t, gw, catalog.Apartment.Table))
}

func TestAddKeepsContactDigitsAsText(t *testing.T) {
	gw := setupTestGateway(t)
	ctx := context.Background()
	catalog := schema.NewCatalog(testTables)

	engine, _ := newTestEngine(gw, "Alice\n0123456\n2024-01-01\n2024-12-31\nBob\nPaid\n")
	require.NoError(t, engine.Add(ctx, catalog.Tenant))

	rows, err := engine.Search(ctx, catalog.Tenant.Table, "name", "Alice")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	contact, _ := rows[0].Get("contact_info")
	assert.Equal(t, "0123456", contact)
	id, _ := rows[0].Get("tenant_id")
	assert.Equal(t, int64(1), id)
}

func TestUpdateSingleField(t *testing.T) {
	gw := setupTestGateway(t)
	ctx := context.Background()
	catalog := schema.NewCatalog(testTables)

	_, err := gw.Exec(ctx,
		"INSERT INTO TenantOwner (tenant_id, name, contact_info, lease_start_date, lease_end_date, emergency_contact, rent_payment_history) VALUES (?, ?, ?, ?, ?, ?, ?)",
		5, "Alice", "5550100", "2024-01-01", "2024-12-31", "Bob", "Paid")
	require.NoError(t, err)

	before, err := plainEngine(t, gw).Search(ctx, catalog.Tenant.Table, "tenant_id", int64(5))
	require.NoError(t, err)
	require.Len(t, before, 1)

	e, out := newTestEngine(gw, "5\nCarol\n")
	require.NoError(t, e.Update(ctx, catalog.Tenant, "5"))
	assert.Contains(t, out.String(), "5. Update emergency_contact")
	assert.Contains(t, out.String(), "emergency_contact updated successfully.")

	after, err := e.Search(ctx, catalog.Tenant.Table, "tenant_id", int64(5))
	require.NoError(t, err)
	require.Len(t, after, 1)

	for i, column := range after[0].Columns {
		if column == "emergency_contact" {
			assert.Equal(t, "Carol", after[0].Values[i])
			continue
		}
		assert.Equal(t, before[0].Values[i], after[0].Values[i], column)
	}
}

func plainEngine(t *testing.T, gw *store.Gateway) *Engine {
	t.Helper()
	e, _ := newTestEngine(gw, "")
	return e
}

func TestUpdateInvalidChoiceChangesNothing(t *testing.T) {
	rec := &recordingStore{}
	catalog := schema.NewCatalog(testTables)

	e, out := newTestEngine(rec, "9\n")
	require.NoError(t, e.Update(context.Background(), catalog.Parking, "1"))
	assert.Contains(t, out.String(), "Invalid choice. Please try again.")
	assert.Zero(t, rec.execs)
}

func TestDeleteThenView(t *testing.T) {
	gw := setupTestGateway(t)
	ctx := context.Background()
	catalog := schema.NewCatalog(testTables)

	for _, space := range []int{11, 12, 13} {
		_, err := gw.Exec(ctx, "INSERT INTO Parking (parking_space_number, vehicle_details, availability_status) VALUES (?, ?, ?)", space, "Car", "Taken")
		require.NoError(t, err)
	}

	e, out := newTestEngine(gw, "3\n42\n")
	require.NoError(t, e.Delete(ctx, catalog.Parking))
	assert.Contains(t, out.String(), "Enter parking_id of the record to delete: ")
	assert.Contains(t, out.String(), "Record deleted from Parking.")
	assert.Equal(t, 2, countRows(t, gw, catalog.Parking.Table))

	out.Reset()
	require.NoError(t, e.View(ctx, catalog.Parking.Table))
	assert.NotContains(t, out.String(), "(3, 13")
	assert.Contains(t, out.String(), "(1, 11, Car, Taken)")

	// deleting a key that does not exist is a silent no-op
	out.Reset()
	require.NoError(t, e.Delete(ctx, catalog.Parking))
	assert.Contains(t, out.String(), "Record deleted from Parking.")
	assert.Equal(t, 2, countRows(t, gw, catalog.Parking.Table))
}

func TestViewEmptyTable(t *testing.T) {
	gw := setupTestGateway(t)

	e, out := newTestEngine(gw, "")
	require.NoError(t, e.View(context.Background(), "Parking"))
	assert.Equal(t, "No data found in Parking.\n", out.String())
}

func TestSearchApartments(t *testing.T) {
	gw := setupTestGateway(t)
	ctx := context.Background()

	for _, unit := range [][]any{
		{101, 1, 2, 1, 850, "Owned", "Occupied"},
		{102, 1, 3, 2, 1100, "Rented", "Vacant"},
		{201, 2, 2, 1, 860, "Rented", "Occupied"},
	} {
		_, err := gw.Exec(ctx, "INSERT INTO ApartmentUnit (unit_number, floor_number, bedrooms, bathrooms, square_footage, rent_ownership_details, occupancy_status) VALUES (?, ?, ?, ?, ?, ?, ?)", unit...)
		require.NoError(t, err)
	}

	e, out := newTestEngine(gw, "2\n2\n5\nVacant\n1\n9\n6\n")

	require.NoError(t, e.SearchApartments(ctx))
	assert.Contains(t, out.String(), "(101, 1, 2, 1, 850, Owned, Occupied)")
	assert.Contains(t, out.String(), "(201, 2, 2, 1, 860, Rented, Occupied)")
	assert.NotContains(t, out.String(), "(102,")

	out.Reset()
	require.NoError(t, e.SearchApartments(ctx))
	assert.Contains(t, out.String(), "(102, 1, 3, 2, 1100, Rented, Vacant)")

	out.Reset()
	require.NoError(t, e.SearchApartments(ctx))
	assert.Contains(t, out.String(), "No matching apartments found.")

	out.Reset()
	require.NoError(t, e.SearchApartments(ctx))
	assert.Contains(t, out.String(), "6. Cancel")
	assert.NotContains(t, out.String(), "Enter floor number")
}

func TestSearchRejectsOutOfDomainValueBeforeStore(t *testing.T) {
	rec := &recordingStore{}

	e, out := newTestEngine(rec, "2\nabc\n")
	err := e.SearchApartments(context.Background())
	assert.ErrorIs(t, err, prompt.ErrInputClosed)
	assert.Contains(t, out.String(), "Invalid input.")
	assert.Zero(t, rec.queries)
}

func TestStoreFailureIsReported(t *testing.T) {
	rec := &recordingStore{err: errors.New("connection reset")}
	catalog := schema.NewCatalog(testTables)

	e, out := newTestEngine(rec, "7\n")
	require.NoError(t, e.View(context.Background(), "Parking"))
	require.NoError(t, e.Delete(context.Background(), catalog.Parking))

	assert.Equal(t, 2, strings.Count(out.String(), "Operation failed."))
	assert.NotContains(t, out.String(), "Record deleted")
	assert.Equal(t, 1, rec.queries)
	assert.Equal(t, 1, rec.execs)
}

func TestBindValue(t *testing.T) {
	assert.Equal(t, int64(850), bindValue(validate.KindInteger, "850"))
	assert.Equal(t, "0850", bindValue(validate.KindDigits, "0850"))
	assert.Equal(t, "Owned", bindValue(validate.KindAlphanumeric, "Owned"))
	assert.Equal(t, "99999999999999999999", bindValue(validate.KindInteger, "99999999999999999999"))
}
