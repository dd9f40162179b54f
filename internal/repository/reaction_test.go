package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReactionListByContentItem(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := NewReactionRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT * FROM "reactions" WHERE content_item_id = $1 ORDER BY count DESC, name ASC`)).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "content_item_id", "name", "count"}).
			AddRow(1, 7, "fire", 10).
			AddRow(2, 7, "heart", 2))

	reactions, err := repo.ListByContentItem(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, reactions, 2)
	assert.Equal(t, "fire", reactions[0].Name)
	assert.Equal(t, uint(10), reactions[0].Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReactionIncrementUpsertsAndReadsBack(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := NewReactionRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "reactions"`)).
		WithArgs(7, "fire", 1, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()
	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT * FROM "reactions" WHERE content_item_id = $1 AND name = $2 ORDER BY "reactions"."id" LIMIT $3`)).
		WithArgs(7, "fire", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "content_item_id", "name", "count"}).
			AddRow(1, 7, "fire", 5))

	reaction, err := repo.Increment(context.Background(), 7, "fire")

	require.NoError(t, err)
	assert.Equal(t, uint(5), reaction.Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
