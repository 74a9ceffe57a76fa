package account

import (
	"context"
	"errors"

	"github.com/iffarurrahat/matrimony-server-mern-project/pkg/utils"

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

const accountColumns = `email, COALESCE(name, ''), COALESCE(photo_url, ''), COALESCE(role, ''), COALESCE(status, ''), created_at, updated_at`

func scanAccount(row pgx.Row) (*Account, error) {
	var a Account
	err := row.Scan(&a.Email, &a.Name, &a.PhotoURL, &a.Role, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*Account, error) {
	const op string = "repo.account.get_by_email"

	row := r.db.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = $1`,
		email,
	)

	a, err := scanAccount(row)
	if err == nil {
		return a, nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		// a miss is not an error, it is an answer
		return nil, nil
	}

	return nil, utils.WrapRepoError(op, err, false, r.logger)
}

func (r *repository) List(ctx context.Context) ([]Account, error) {
	const op string = "repo.account.list"

	rows, err := r.db.Query(ctx,
		`SELECT `+accountColumns+` FROM accounts ORDER BY created_at`,
	)
	if err != nil {
		return nil, utils.WrapRepoError(op, err, false, r.logger)
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, utils.WrapRepoError(op, err, false, r.logger)
		}
		accounts = append(accounts, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, utils.WrapRepoError(op, err, false, r.logger)
	}

	return accounts, nil
}

// MergeExisting overwrites supplied fields on the record keyed by email and
// stamps updated_at, in one statement. Returns false when no record matched.
func (r *repository) MergeExisting(ctx context.Context, email string, patch Patch) (*Account, bool, error) {
	const op string = "repo.account.merge_existing"

	row := r.db.QueryRow(ctx,
		`UPDATE accounts SET
			email      = COALESCE($2, email),
			name       = COALESCE($3, name),
			photo_url  = COALESCE($4, photo_url),
			role       = COALESCE($5, role),
			status     = COALESCE($6, status),
			updated_at = now()
		WHERE email = $1
		RETURNING `+accountColumns,
		email, patch.Email, patch.Name, patch.PhotoURL, patch.Role, patch.Status,
	)

	a, err := scanAccount(row)
	if err == nil {
		return a, true, nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}

	return nil, false, utils.WrapRepoError(op, err, false, r.logger)
}

// InsertIfAbsent creates the record and stamps created_at. A body-supplied
// email is the stored identity, falling back to the path email. The unique
// index on email arbitrates concurrent first-time registrations: exactly one
// insert wins, the rest report false without touching the existing row.
func (r *repository) InsertIfAbsent(ctx context.Context, email string, patch Patch) (*Account, bool, error) {
	const op string = "repo.account.insert_if_absent"

	row := r.db.QueryRow(ctx,
		`INSERT INTO accounts (email, name, photo_url, role, status, created_at)
		VALUES (COALESCE($2, $1), $3, $4, $5, $6, now())
		ON CONFLICT (email) DO NOTHING
		RETURNING `+accountColumns,
		email, patch.Email, patch.Name, patch.PhotoURL, patch.Role, patch.Status,
	)

	a, err := scanAccount(row)
	if err == nil {
		return a, true, nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}

	return nil, false, utils.WrapRepoError(op, err, false, r.logger)
}

// Upsert is the privileged write path: insert when absent, merge when
// present, updated_at stamped either way.
func (r *repository) Upsert(ctx context.Context, email string, patch Patch) (*Account, error) {
	const op string = "repo.account.upsert"

	row := r.db.QueryRow(ctx,
		`INSERT INTO accounts AS a (email, name, photo_url, role, status, created_at, updated_at)
		VALUES (COALESCE($2, $1), $3, $4, $5, $6, now(), now())
		ON CONFLICT (email) DO UPDATE SET
			email      = COALESCE($2, a.email),
			name       = COALESCE(EXCLUDED.name, a.name),
			photo_url  = COALESCE(EXCLUDED.photo_url, a.photo_url),
			role       = COALESCE(EXCLUDED.role, a.role),
			status     = COALESCE(EXCLUDED.status, a.status),
			updated_at = now()
		RETURNING `+accountColumns,
		email, patch.Email, patch.Name, patch.PhotoURL, patch.Role, patch.Status,
	)

	a, err := scanAccount(row)
	if err == nil {
		return a, nil
	}

	return nil, utils.WrapRepoError(op, err, false, r.logger)
}
