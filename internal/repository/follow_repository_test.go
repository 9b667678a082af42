package repository

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/warbler-api/internal/models"
	"gorm.io/gorm"
)

func TestFollowRepository_Exists(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFollowRepository(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `follows` WHERE user_following_id = \\? AND user_being_followed_id = \\?").
		WithArgs(1, 2).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.Exists(1, 2)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowRepository_ExistsPropagatesErrors(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFollowRepository(db)
	boom := errors.New("connection reset")

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `follows`").WillReturnError(boom)

	exists, err := repo.Exists(1, 2)
	assert.ErrorIs(t, err, boom)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowRepository_CreateDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFollowRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `follows`").
		WithArgs(2, 1).
		WillReturnError(&mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry '2-1' for key 'PRIMARY'"})
	mock.ExpectRollback()

	err := repo.Create(&models.Follow{FollowerID: 1, FollowedID: 2})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowRepository_DeleteReportsMissingEdge(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFollowRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `follows` WHERE user_following_id = \\? AND user_being_followed_id = \\?").
		WithArgs(1, 2).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	removed, err := repo.Delete(1, 2)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
