package users

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scopophobic/vinciUI/internal/tiers"
)

// creates a new user repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// creates the users table if it doesn't exist
func (r *Repository) Initialize(ctx context.Context) error {
	_, err := r.db.Exec(ctx, schemaUsers)
	return err
}

// inserts the user row for an externally-authenticated identity if it does
// not exist yet, refreshing the stored email either way
func (r *Repository) Ensure(ctx context.Context, id, email string) (*User, error) {
	var user User

	err := r.db.QueryRow(ctx, queryEnsure, id, email).Scan(
		&user.ID,
		&user.Email,
		&user.Provider,
		&user.ProviderID,
		&user.Name,
		&user.AvatarURL,
		&user.Tier,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &user, nil
}

// finds a user by OAuth provider or creates a new one
func (r *Repository) FindOrCreateByProvider(
	ctx context.Context,
	provider, providerID, email, name, avatarURL string,
) (*User, error) {
	var user User

	err := r.db.QueryRow(
		ctx,
		queryFindOrCreateByProvider,
		provider,
		providerID,
		email,
		name,
		avatarURL,
	).Scan(
		&user.ID,
		&user.Email,
		&user.Provider,
		&user.ProviderID,
		&user.Name,
		&user.AvatarURL,
		&user.Tier,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &user, nil
}

// finds a user by their ID
func (r *Repository) FindByID(ctx context.Context, userID string) (*User, error) {
	var user User

	err := r.db.QueryRow(ctx, queryFindByID, userID).Scan(
		&user.ID,
		&user.Email,
		&user.Provider,
		&user.ProviderID,
		&user.Name,
		&user.AvatarURL,
		&user.Tier,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &user, nil
}

// returns the tier stored for the user. Users with no row yet are on the
// free tier; any stored value that is not a known tier also maps to free.
func (r *Repository) TierFor(ctx context.Context, userID string) (tiers.Tier, error) {
	var stored string

	err := r.db.QueryRow(ctx, queryTierFor, userID).Scan(&stored)
	if err != nil {
		if err == pgx.ErrNoRows {
			return tiers.TierFree, nil
		}

		return tiers.TierFree, err
	}

	tier := tiers.Tier(stored)
	if !tiers.Valid(tier) {
		return tiers.TierFree, nil
	}

	return tier, nil
}
