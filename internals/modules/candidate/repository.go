package candidate

import (
	"context"
	"errors"

	"github.com/iffarurrahat/matrimony-server-mern-project/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
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

func (r *repository) Insert(ctx context.Context, cmd CreateCandidateCmd) (uuid.UUID, error) {
	const op string = "repo.candidate.insert"

	id := uuid.New()

	_, err := r.db.Exec(ctx,
		`INSERT INTO candidates (id, host_email, profile, created_at)
		VALUES ($1, $2, $3, now())`,
		id, cmd.HostEmail, cmd.Profile,
	)
	if err != nil {
		return uuid.UUID{}, utils.WrapRepoError(op, err, false, r.logger)
	}

	return id, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Candidate, error) {
	const op string = "repo.candidate.get_by_id"

	row := r.db.QueryRow(ctx,
		`SELECT id, host_email, profile, created_at FROM candidates WHERE id = $1`,
		id,
	)

	var c Candidate
	err := row.Scan(&c.ID, &c.HostEmail, &c.Profile, &c.CreatedAt)
	if err == nil {
		return &c, nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	return nil, utils.WrapRepoError(op, err, false, r.logger)
}

func (r *repository) List(ctx context.Context) ([]Candidate, error) {
	const op string = "repo.candidate.list"

	rows, err := r.db.Query(ctx,
		`SELECT id, host_email, profile, created_at FROM candidates ORDER BY created_at`,
	)
	if err != nil {
		return nil, utils.WrapRepoError(op, err, false, r.logger)
	}

	return r.collect(op, rows)
}

func (r *repository) ListByHost(ctx context.Context, hostEmail string) ([]Candidate, error) {
	const op string = "repo.candidate.list_by_host"

	rows, err := r.db.Query(ctx,
		`SELECT id, host_email, profile, created_at FROM candidates WHERE host_email = $1 ORDER BY created_at`,
		hostEmail,
	)
	if err != nil {
		return nil, utils.WrapRepoError(op, err, false, r.logger)
	}

	return r.collect(op, rows)
}

func (r *repository) collect(op string, rows pgx.Rows) ([]Candidate, error) {
	defer rows.Close()

	var candidates []Candidate
	for rows.Next() {
		var c Candidate
		if err := rows.Scan(&c.ID, &c.HostEmail, &c.Profile, &c.CreatedAt); err != nil {
			return nil, utils.WrapRepoError(op, err, false, r.logger)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, utils.WrapRepoError(op, err, false, r.logger)
	}

	return candidates, nil
}
