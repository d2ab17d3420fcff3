// Package profilespgxstore provides database access for profiles.
package profilespgxstore

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/luminahq/lumina/core/repositories/profilesrepo"
	"github.com/luminahq/lumina/infrastructure/postgresdb"
	"github.com/luminahq/lumina/sdk/logger"
)

type Store struct {
	log  *logger.Logger
	pool *postgresdb.Pool
}

func NewStore(log *logger.Logger, pool *postgresdb.Pool) *Store {
	return &Store{
		log:  log,
		pool: pool,
	}
}

// Get retrieves the preferences row for the user.
func (s *Store) Get(ctx context.Context, userID string) (profilesrepo.Profile, error) {
	query := `SELECT user_id, theme, avatar_seed, created_at, updated_at
		FROM profiles
		WHERE user_id = @user_id`

	args := pgx.NamedArgs{
		"user_id": userID,
	}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return profilesrepo.Profile{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[profilesrepo.Profile])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profilesrepo.Profile{}, profilesrepo.ErrProfileNotFound
		}
		return profilesrepo.Profile{}, postgresdb.HandlePgError(err)
	}

	return record, nil
}

// Upsert inserts or updates the preferences row. Nil fields keep the stored
// value on update and the column default on insert.
func (s *Store) Upsert(ctx context.Context, userID string, input profilesrepo.UpsertProfile) (profilesrepo.Profile, error) {
	query := `INSERT INTO profiles (user_id, theme, avatar_seed)
		VALUES (@user_id, COALESCE(@theme, 'indigo'), COALESCE(@avatar_seed, 'default'))
		ON CONFLICT (user_id) DO UPDATE SET
			theme = COALESCE(@theme, profiles.theme),
			avatar_seed = COALESCE(@avatar_seed, profiles.avatar_seed),
			updated_at = NOW()
		RETURNING *`

	args := pgx.NamedArgs{
		"user_id":     userID,
		"theme":       input.Theme,
		"avatar_seed": input.AvatarSeed,
	}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return profilesrepo.Profile{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[profilesrepo.Profile])
	if err != nil {
		return profilesrepo.Profile{}, postgresdb.HandlePgError(err)
	}

	return record, nil
}
