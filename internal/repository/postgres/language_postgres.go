package postgres

import (
	"context"
	"database/sql"
	"strings"

	"mediaapi/internal/model"
	"mediaapi/internal/repository"
)

// LanguagePostgres reads languages and sales channels from PostgreSQL.
type LanguagePostgres struct {
	db *sql.DB
}

// NewLanguagePostgres creates a new LanguagePostgres repository.
func NewLanguagePostgres(db *sql.DB) *LanguagePostgres {
	return &LanguagePostgres{db: db}
}

var (
	_ repository.LanguageRepository     = (*LanguagePostgres)(nil)
	_ repository.SalesChannelRepository = (*LanguagePostgres)(nil)
)

// ListBySalesChannel returns the languages assigned to a sales channel ordered by name.
func (r *LanguagePostgres) ListBySalesChannel(ctx context.Context, f repository.LanguageFilter, pq repository.PageQuery) (*repository.PageResult[model.Language], error) {
	term := ""
	if f.Term != "" {
		term = escapeLike(strings.ToLower(f.Term)) + "%"
	}

	const qCount = `
		SELECT COUNT(*)
		FROM language l
		JOIN sales_channel_language scl ON scl.language_id = l.id
		WHERE scl.sales_channel_id = $1
		  AND ($2 = '' OR lower(l.name) LIKE $2 OR lower(l.locale) LIKE $2)
	`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, f.SalesChannelID, term).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT l.id, l.name, l.locale, COALESCE(l.parent_id::text, ''), l.created_at
		FROM language l
		JOIN sales_channel_language scl ON scl.language_id = l.id
		WHERE scl.sales_channel_id = $1
		  AND ($2 = '' OR lower(l.name) LIKE $2 OR lower(l.locale) LIKE $2)
		ORDER BY l.name ASC, l.id ASC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.QueryContext(ctx, qList, f.SalesChannelID, term, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Language, 0)
	for rows.Next() {
		var l model.Language
		if err := rows.Scan(&l.ID, &l.Name, &l.Locale, &l.ParentID, &l.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Language]{Items: items, Total: total}, nil
}

// FindByAccessKey resolves the sales channel owning a store-api access key.
func (r *LanguagePostgres) FindByAccessKey(ctx context.Context, key string) (*model.SalesChannel, error) {
	const q = `
		SELECT id, name, access_key, language_id
		FROM sales_channel
		WHERE access_key = $1
	`
	var sc model.SalesChannel
	if err := r.db.QueryRowContext(ctx, q, key).Scan(&sc.ID, &sc.Name, &sc.AccessKey, &sc.DefaultLanguageID); err != nil {
		return nil, err
	}
	return &sc, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
