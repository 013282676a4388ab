package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/editorial-backoffice/internal/database"
	"github.com/editorial-backoffice/internal/models"
)

const userColumns = `id, email, tiers_service_ident, role, permissions,
	created_at, last_connection_at, updated_at, updated_by`

// userRepo is the concrete implementation of UserRepository
type userRepo struct {
	db *database.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *database.DB) UserRepository {
	return &userRepo{db: db}
}

// GetByEmail retrieves a user by email
func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)
	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return user, err
}

// Insert persists a new user and reports the assigned id.
func (r *userRepo) Insert(ctx context.Context, user *models.User) (WriteResult, error) {
	query := `
		INSERT INTO users (email, tiers_service_ident, role, permissions,
			created_at, last_connection_at, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		user.Email, user.TiersServiceIdent, user.Role, pq.Array(user.Permissions),
		user.CreatedAt, user.LastConnectionAt, user.UpdatedAt, user.UpdatedBy,
	).Scan(&id)
	if err != nil {
		return WriteResult{}, fmt.Errorf("insert user: %w", err)
	}
	return WriteResult{ID: id, OK: true}, nil
}

// Update applies the given column values to one user row.
func (r *userRepo) Update(ctx context.Context, id int64, fields map[string]interface{}) (WriteResult, error) {
	if perms, ok := fields["permissions"].([]string); ok {
		fields["permissions"] = pq.Array(perms)
	}

	query, args, err := psql.Update("users").
		SetMap(fields).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return WriteResult{}, fmt.Errorf("build update: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return WriteResult{}, fmt.Errorf("update user: %w", err)
	}
	affected, _ := res.RowsAffected()
	return WriteResult{ID: id, OK: affected > 0}, nil
}

// DeleteByEmail removes one user row by email.
func (r *userRepo) DeleteByEmail(ctx context.Context, email string) (WriteResult, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE email = $1`, email)
	if err != nil {
		return WriteResult{}, fmt.Errorf("delete user: %w", err)
	}
	affected, _ := res.RowsAffected()
	return WriteResult{OK: affected > 0}, nil
}

// ListAll returns every user in creation order.
func (r *userRepo) ListAll(ctx context.Context) ([]*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users ORDER BY created_at`, userColumns)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func scanUser(row rowScanner) (*models.User, error) {
	var user models.User
	var lastConnection sql.NullTime

	err := row.Scan(
		&user.ID, &user.Email, &user.TiersServiceIdent, &user.Role,
		pq.Array(&user.Permissions),
		&user.CreatedAt, &lastConnection, &user.UpdatedAt, &user.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if lastConnection.Valid {
		user.LastConnectionAt = &lastConnection.Time
	}
	return &user, nil
}
