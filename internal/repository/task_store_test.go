package repository

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aokitrading/fulfillment-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var errConnLost = errors.New("connection lost")

func newMockStore(t *testing.T) (TaskStore, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewTaskStore(db), mock
}

func TestUpdateDocumentFulfillment_StoreFailurePropagates(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `documents`").WillReturnError(errConnLost)
	mock.ExpectRollback()

	err := store.UpdateDocumentFulfillment(1, map[string]interface{}{
		"fulfill_status": models.TaskStatusAssigned,
	})

	assert.ErrorIs(t, err, errConnLost)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateDocumentFulfillment_MissingRow(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `documents`").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := store.UpdateDocumentFulfillment(999, map[string]interface{}{
		"fulfill_status": models.TaskStatusAssigned,
	})

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindDocument_StoreFailurePropagates(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT (.+) FROM `documents`").WillReturnError(errConnLost)

	_, err := store.FindDocument(1)

	assert.ErrorIs(t, err, errConnLost)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateConsultationFulfillment_StoreFailurePropagates(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `overseas_consultations`").WillReturnError(errConnLost)
	mock.ExpectRollback()

	err := store.UpdateConsultationFulfillment(1, map[string]interface{}{
		"expected_date": nil,
	})

	assert.ErrorIs(t, err, errConnLost)
	assert.NoError(t, mock.ExpectationsWereMet())
}
