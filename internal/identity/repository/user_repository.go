package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"video_share_service/internal/identity/domain"
)

// UserRepository persists the mirrored identity accounts.
type UserRepository interface {
	Migrate(ctx context.Context) error
	Upsert(ctx context.Context, u *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Exists(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
}

type userRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Migrate(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id                TEXT PRIMARY KEY,
			email             TEXT NOT NULL DEFAULT '',
			username          TEXT NOT NULL DEFAULT '',
			display_name      TEXT NOT NULL DEFAULT '',
			avatar            TEXT NOT NULL DEFAULT '',
			channel_name      TEXT NOT NULL DEFAULT '',
			subscribers_count INTEGER NOT NULL DEFAULT 0,
			created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("create users table failed: %v", err)
	}
	return nil
}

func (r *userRepository) Upsert(ctx context.Context, u *domain.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, email, username, display_name, avatar, channel_name)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			email        = EXCLUDED.email,
			username     = EXCLUDED.username,
			display_name = EXCLUDED.display_name,
			avatar       = EXCLUDED.avatar,
			channel_name = EXCLUDED.channel_name,
			updated_at   = now()`,
		u.ID, u.Email, u.Username, u.DisplayName, u.Avatar, u.ChannelName)
	if err != nil {
		return fmt.Errorf("upsert user [%s] failed: %v", u.ID, err)
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, username, display_name, avatar, channel_name,
		       subscribers_count, created_at, updated_at
		FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Email, &u.Username, &u.DisplayName, &u.Avatar,
			&u.ChannelName, &u.SubscribersCount, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user [%s] failed: %v", id, err)
	}
	return nil
}
