package db

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/photoapp/internal/models"
)

func newMock(t *testing.T) (*Gateway, sqlmock.Sqlmock) {
	t.Helper()
	sdb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sdb.Close() })
	return NewGateway(sdb, DialectMySQL), mock
}

var userCols = []string{"userid", "email", "lastname", "firstname", "bucketfolder"}
var assetCols = []string{"assetid", "userid", "assetname", "bucketkey"}

func TestUserListOrderedNewestFirst(t *testing.T) {
	g, mock := newMock(t)
	mock.ExpectQuery(`SELECT userid, email, lastname, firstname, bucketfolder FROM users ORDER BY userid DESC`).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(int64(2), "b@x.com", "Roe", "Rick", "f2").
			AddRow(int64(1), "a@x.com", "Doe", "Jane", "f1"))

	users, err := NewUserRepo(g).List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, int64(2), users[0].ID)
	assert.Equal(t, models.User{ID: 1, Email: "a@x.com", LastName: "Doe", FirstName: "Jane", BucketFolder: "f1"}, users[1])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserListEmpty(t *testing.T) {
	g, mock := newMock(t)
	mock.ExpectQuery(`FROM users ORDER BY userid DESC`).WillReturnRows(sqlmock.NewRows(userCols))

	users, err := NewUserRepo(g).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestUserGetNotFound(t *testing.T) {
	g, mock := newMock(t)
	mock.ExpectQuery(`FROM users WHERE userid = \?`).WithArgs(int64(42)).WillReturnRows(sqlmock.NewRows(userCols))

	_, err := NewUserRepo(g).Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNextIDOnEmptyTableIsOne(t *testing.T) {
	g, mock := newMock(t)
	mock.ExpectQuery(`SELECT COALESCE\(MAX\(userid\), 0\) \+ 1 FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"next"}).AddRow(int64(1)))

	id, err := NewUserRepo(g).NextID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}

func TestUserInsert(t *testing.T) {
	g, mock := newMock(t)
	u := models.User{ID: 7, Email: "a@x.com", LastName: "Doe", FirstName: "Jane", BucketFolder: "f7"}
	mock.ExpectExec(`INSERT INTO users \(userid, email, lastname, firstname, bucketfolder\) VALUES \(\?, \?, \?, \?, \?\)`).
		WithArgs(u.ID, u.Email, u.LastName, u.FirstName, u.BucketFolder).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewUserRepo(g).Insert(context.Background(), u))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserInsertZeroRows(t *testing.T) {
	g, mock := newMock(t)
	mock.ExpectExec(`INSERT INTO users`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := NewUserRepo(g).Insert(context.Background(), models.User{ID: 1})
	assert.ErrorIs(t, err, ErrNoRowsAffected)
}

func TestAssetInsertDuplicateKey(t *testing.T) {
	g, mock := newMock(t)
	mock.ExpectExec(`INSERT INTO assets`).WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	err := NewAssetRepo(g).Insert(context.Background(), models.Asset{ID: 1})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAssetGetByKey(t *testing.T) {
	g, mock := newMock(t)
	mock.ExpectQuery(`FROM assets WHERE bucketkey = \?`).WithArgs("f/k.jpg").
		WillReturnRows(sqlmock.NewRows(assetCols).AddRow(int64(3), int64(1), "photo.png", "f/k.jpg"))

	a, err := NewAssetRepo(g).GetByKey(context.Background(), "f/k.jpg")
	require.NoError(t, err)
	assert.Equal(t, "photo.png", a.AssetName)
}

func TestAssetCountPropagatesError(t *testing.T) {
	g, mock := newMock(t)
	boom := errors.New("connection reset")
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM assets`).WillReturnError(boom)

	_, err := NewAssetRepo(g).Count(context.Background())
	assert.ErrorIs(t, err, boom)
}
