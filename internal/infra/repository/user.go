package repository

import (
	"context"
	"errors"
	"time"

	"ec-checkout/internal/domain/user"
	"ec-checkout/internal/infra"
	"ec-checkout/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(dbtx db.DBTX) *UserRepository {
	return &UserRepository{db: dbtx}
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT u.id, u.email, u.created_at,
		       COALESCE(p.name, ''), COALESCE(p.zipcode, ''), COALESCE(p.prefecture, ''),
		       COALESCE(p.city, ''), COALESCE(p.address1, ''), COALESCE(p.address2, '')
		FROM users u
		LEFT JOIN user_profiles p ON p.user_id = u.id
		WHERE u.id = $1`, id)

	var (
		uid       uuid.UUID
		email     string
		createdAt time.Time
		profile   user.Profile
	)
	err := row.Scan(&uid, &email, &createdAt,
		&profile.Name, &profile.Zipcode, &profile.Prefecture,
		&profile.City, &profile.Address1, &profile.Address2)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}

	emailVO, err := user.NewEmail(email)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid email on user record", err)
	}

	return user.ReconstructUser(uid, emailVO, profile, createdAt), nil
}
