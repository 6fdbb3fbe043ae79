package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/recouvrement-service/internal/domain"
)

// UserRepository defines persistence access for back-office users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	SetActive(ctx context.Context, id int64, active bool) error
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO utilisateurs (nom, prenom, email, mot_de_passe, role, telephone, id_agence, actif)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id_utilisateur, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		user.Nom,
		user.Prenom,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Telephone,
		user.AgenceID,
		user.Actif,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE utilisateurs
        SET nom=$1, prenom=$2, email=$3, mot_de_passe=$4, role=$5, telephone=$6, id_agence=$7, actif=$8, updated_at=NOW()
        WHERE id_utilisateur=$9`

	cmd, err := r.pool.Exec(ctx, query,
		user.Nom,
		user.Prenom,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Telephone,
		user.AgenceID,
		user.Actif,
		user.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	const query = `
        SELECT id_utilisateur, nom, prenom, email, mot_de_passe, role, telephone, id_agence, actif, created_at, updated_at
        FROM utilisateurs WHERE id_utilisateur=$1`

	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
        SELECT id_utilisateur, nom, prenom, email, mot_de_passe, role, telephone, id_agence, actif, created_at, updated_at
        FROM utilisateurs WHERE email=$1`

	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) SetActive(ctx context.Context, id int64, active bool) error {
	const query = `UPDATE utilisateurs SET actif=$1, updated_at=NOW() WHERE id_utilisateur=$2`

	cmd, err := r.pool.Exec(ctx, query, active, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) scanOne(row pgx.Row) (*domain.User, error) {
	var user domain.User
	var telephone *string
	if err := row.Scan(
		&user.ID,
		&user.Nom,
		&user.Prenom,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&telephone,
		&user.AgenceID,
		&user.Actif,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if telephone != nil {
		user.Telephone = *telephone
	}
	return &user, nil
}
