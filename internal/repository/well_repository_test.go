package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWellRepository_SetPhotoPath(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewWellRepository(db)
	wellID := uuid.New()

	mock.ExpectExec(`UPDATE wells SET photo_path = \$2`).
		WithArgs(wellID, "wells/2026/03/"+wellID.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SetPhotoPath(context.Background(), wellID, "wells/2026/03/"+wellID.String())

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWellRepository_ClearPhotoPath(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewWellRepository(db)
	wellID := uuid.New()

	// NULL, not an empty string, or readers would resolve a bucket-root URL.
	mock.ExpectExec(`UPDATE wells SET photo_path = NULL`).
		WithArgs(wellID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.ClearPhotoPath(context.Background(), wellID)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
