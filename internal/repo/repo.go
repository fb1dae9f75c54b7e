// Package repo stores operators and the plant catalog in Postgres.
package repo

import (
	"context"
	"database/sql"

	"github.com/cockroachdb/errors"
)

// ErrReadOnly is returned by repositories that cannot create users.
var ErrReadOnly = errors.New("user repository is read-only")

type Repository interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	GetBylogin(ctx context.Context, login string) (int, string, error)
}

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserDB(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	return id, errors.Wrap(err, "creating user")
}

// GetBylogin returns the id and password hash of login, or zero values
// when there is no such user.
func (r *PostgresUserRepository) GetBylogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"

	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, "", nil
		}
		return 0, "", errors.Wrap(err, "looking up user")
	}
	return id, hash, nil
}

// StaticUsers is the single operator configured without a database.
type StaticUsers struct {
	Login        string
	PasswordHash string
}

func (s StaticUsers) CreateUser(context.Context, string, string, string) (int, error) {
	return 0, ErrReadOnly
}

func (s StaticUsers) GetBylogin(_ context.Context, login string) (int, string, error) {
	if s.Login == "" || login != s.Login {
		return 0, "", nil
	}
	return 1, s.PasswordHash, nil
}
