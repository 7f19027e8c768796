package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"mediaapi/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguagePostgres_ListBySalesChannel(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewLanguagePostgres(db)
	ctx := context.Background()

	t.Run("with term", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM language").
			WithArgs("sc-1", "de%").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		rows := sqlmock.NewRows([]string{"id", "name", "locale", "parent_id", "created_at"}).
			AddRow("lang-1", "Deutsch", "de-DE", "", time.Now()).
			AddRow("lang-2", "Deutsch (CH)", "de-CH", "lang-1", time.Now())

		mock.ExpectQuery("SELECT (.+) FROM language l JOIN sales_channel_language").
			WithArgs("sc-1", "de%", 25, 0).
			WillReturnRows(rows)

		res, err := repo.ListBySalesChannel(ctx,
			repository.LanguageFilter{SalesChannelID: "sc-1", Term: "DE"},
			repository.PageQuery{Limit: 25, Offset: 0})

		require.NoError(t, err)
		assert.Equal(t, 2, res.Total)
		assert.Len(t, res.Items, 2)
		assert.Equal(t, "lang-1", res.Items[1].ParentID)
	})

	t.Run("without term", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM language").
			WithArgs("sc-1", "").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery("SELECT (.+) FROM language l JOIN sales_channel_language").
			WithArgs("sc-1", "", 10, 20).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "locale", "parent_id", "created_at"}))

		res, err := repo.ListBySalesChannel(ctx,
			repository.LanguageFilter{SalesChannelID: "sc-1"},
			repository.PageQuery{Limit: 10, Offset: 20})

		require.NoError(t, err)
		assert.Equal(t, 0, res.Total)
		assert.Empty(t, res.Items)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLanguagePostgres_FindByAccessKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewLanguagePostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM sales_channel WHERE access_key = ?").
		WithArgs("SWSCKEY").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "access_key", "language_id"}).
			AddRow("sc-1", "Storefront", "SWSCKEY", "lang-1"))

	sc, err := repo.FindByAccessKey(ctx, "SWSCKEY")
	require.NoError(t, err)
	assert.Equal(t, "sc-1", sc.ID)
	assert.Equal(t, "lang-1", sc.DefaultLanguageID)

	mock.ExpectQuery("SELECT (.+) FROM sales_channel WHERE access_key = ?").
		WithArgs("unknown").
		WillReturnError(sql.ErrNoRows)

	_, err = repo.FindByAccessKey(ctx, "unknown")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off\_now\\`, escapeLike(`50% off_now\`))
}
