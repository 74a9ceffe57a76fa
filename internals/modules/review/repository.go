package review

import (
	"context"

	"github.com/iffarurrahat/matrimony-server-mern-project/pkg/utils"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type repository struct {
	db     *pgxpool.Pool
	logger *zerolog.Logger
}

func NewRepository(db *pgxpool.Pool, logger *zerolog.Logger) *repository {
	return &repository{
		db:     db,
		logger: logger,
	}
}

func (r *repository) List(ctx context.Context) ([]Review, error) {
	const op string = "repo.review.list"

	rows, err := r.db.Query(ctx,
		`SELECT id, COALESCE(name, ''), COALESCE(photo_url, ''), rating, COALESCE(comment, ''), created_at
		FROM reviews ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, utils.WrapRepoError(op, err, false, r.logger)
	}
	defer rows.Close()

	var reviews []Review
	for rows.Next() {
		var rv Review
		if err := rows.Scan(&rv.ID, &rv.Name, &rv.PhotoURL, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, utils.WrapRepoError(op, err, false, r.logger)
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, utils.WrapRepoError(op, err, false, r.logger)
	}

	return reviews, nil
}
