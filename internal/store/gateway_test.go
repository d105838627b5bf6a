package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"

	"propdesk/internal/config"
)

func newMockGateway(t *testing.T) (*Gateway, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := mysql.New(mysql.Config{
		Conn:                      mockDB,
		SkipInitializeWithVersion: true,
	})

	gw, err := Open(context.Background(), dialector, false, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	return gw, mock
}

func newSQLiteGateway(t *testing.T) *Gateway {
	t.Helper()

	cfg := &config.Config{DBType: "sqlite", DBDatabase: ":memory:"}
	gw, err := Connect(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = gw.Close() })

	require.NoError(t, gw.DB().Table("Parking").AutoMigrate(&Parking{}))
	return gw
}

func TestExecCommits(t *testing.T) {
	gw, mock := newMockGateway(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM Parking WHERE parking_id = ?")).
		WithArgs("3").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	affected, err := gw.Exec(context.Background(), "DELETE FROM Parking WHERE parking_id = ?", "3")
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecRollsBackOnFailure(t *testing.T) {
	gw, mock := newMockGateway(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO Parking (parking_space_number) VALUES (?)")).
		WithArgs("12").
		WillReturnError(errors.New("duplicate key"))
	mock.ExpectRollback()

	_, err := gw.Exec(context.Background(), "INSERT INTO Parking (parking_space_number) VALUES (?)", "12")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryClosesCursor(t *testing.T) {
	gw, mock := newMockGateway(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM ApartmentUnit WHERE bedrooms = ?")).
		WithArgs("2").
		WillReturnRows(sqlmock.NewRows([]string{"unit_number", "occupancy_status"}).
			AddRow(int64(101), []byte("Occupied")).
			AddRow(int64(102), []byte("Vacant"))).
		RowsWillBeClosed()

	rows, err := gw.Query(context.Background(), "SELECT * FROM ApartmentUnit WHERE bedrooms = ?", "2")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "(101, Occupied)", rows[0].String())

	status, ok := rows[1].Get("occupancy_status")
	require.True(t, ok)
	assert.Equal(t, "Vacant", status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryFailure(t *testing.T) {
	gw, mock := newMockGateway(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM Parking")).
		WillReturnError(errors.New("table missing"))

	rows, err := gw.Query(context.Background(), "SELECT * FROM Parking")
	assert.Error(t, err)
	assert.Nil(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteRoundTrip(t *testing.T) {
	gw := newSQLiteGateway(t)
	ctx := context.Background()

	affected, err := gw.Exec(ctx, "INSERT INTO Parking (parking_space_number, vehicle_details, availability_status) VALUES (?, ?, ?)", "7", "Sedan", "Taken")
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	rows, err := gw.Query(ctx, "SELECT * FROM Parking")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"parking_id", "parking_space_number", "vehicle_details", "availability_status"}, rows[0].Columns)
	assert.Equal(t, "(1, 7, Sedan, Taken)", rows[0].String())

	affected, err = gw.Exec(ctx, "DELETE FROM Parking WHERE parking_id = ?", "99")
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestClosedGateway(t *testing.T) {
	gw := newSQLiteGateway(t)
	require.NoError(t, gw.Close())
	require.NoError(t, gw.Close())

	_, err := gw.Query(context.Background(), "SELECT * FROM Parking")
	assert.ErrorIs(t, err, ErrNotConnected)

	_, err = gw.Exec(context.Background(), "DELETE FROM Parking")
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestDialector(t *testing.T) {
	for _, dbType := range []string{"mysql", "mariadb", "postgres", "postgresql", "sqlite"} {
		d, err := Dialector(&config.Config{DBType: dbType, DBDatabase: "Apartment"})
		require.NoError(t, err, dbType)
		assert.NotNil(t, d)
	}

	_, err := Dialector(&config.Config{DBType: "oracle"})
	assert.Error(t, err)
}
