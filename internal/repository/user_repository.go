package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User mirrors the 'users' table. The password hash never leaves the server.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Names        string    `json:"names"`
	Avatar       *string   `json:"avatar"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserPatch carries the optional fields of a partial user update. A nil
// pointer means "leave unchanged". Password changes are deliberately not
// part of the patch, matching the update endpoint's contract.
type UserPatch struct {
	Email  *string
	Names  *string
	Avatar *string
	Role   *string
}

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

var ErrUserNotFound = errors.New("user not found")

const userCols = "id,email,names,avatar,role,password_hash,created_at,updated_at"

// Create inserts a user with a fresh UUID and returns the stored row.
func (r *UserRepo) Create(ctx context.Context, email, names string, avatar *string, role, passwordHash string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	id := uuid.NewString()
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (id, email, names, avatar, role, password_hash) VALUES (?,?,?,?,?,?)",
		id, email, names, avatar, role, passwordHash)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return nil, ErrConflict
		}
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// EmailExists is the inverted existence gate used at registration time: the
// insert must only proceed when no user carries the email yet.
func (r *UserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return queryExists(ctx, r.DB, "SELECT 1 FROM users WHERE email = ? LIMIT 1", email)
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanOne(ctx, "SELECT "+userCols+" FROM users WHERE email = ? LIMIT 1", email)
}

// GetByID fetches a user by id, returning ErrUserNotFound when absent.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*User, error) {
	return r.scanOne(ctx, "SELECT "+userCols+" FROM users WHERE id = ? LIMIT 1", id)
}

func (r *UserRepo) scanOne(ctx context.Context, q string, arg any) (*User, error) {
	var u User
	err := r.DB.QueryRowContext(ctx, q, arg).Scan(
		&u.ID, &u.Email, &u.Names, &u.Avatar, &u.Role, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns every user ordered by creation time.
func (r *UserRepo) List(ctx context.Context) ([]*User, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+userCols+" FROM users ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*User
	for rows.Next() {
		u := new(User)
		if err := rows.Scan(&u.ID, &u.Email, &u.Names, &u.Avatar, &u.Role, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies the non-nil patch fields to the user and returns the
// refreshed row. Omitted fields keep their current values.
func (r *UserRepo) Update(ctx context.Context, id string, p UserPatch) (*User, error) {
	sets := make([]string, 0, 4)
	args := make([]any, 0, 5)
	if p.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, strings.ToLower(strings.TrimSpace(*p.Email)))
	}
	if p.Names != nil {
		sets = append(sets, "names = ?")
		args = append(args, *p.Names)
	}
	if p.Avatar != nil {
		sets = append(sets, "avatar = ?")
		args = append(args, *p.Avatar)
	}
	if p.Role != nil {
		sets = append(sets, "role = ?")
		args = append(args, *p.Role)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}
	sets = append(sets, "updated_at = UTC_TIMESTAMP()")
	args = append(args, id)
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return nil, ErrConflict
		}
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// RowsAffected is 0 both for a missing row and for a no-op update,
		// so confirm with a read before reporting not found.
		return r.GetByID(ctx, id)
	}
	return r.GetByID(ctx, id)
}

// Delete removes a user by id. No audit entry is written for users.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// DeleteAll wipes the users table. Destructive administrative reset.
func (r *UserRepo) DeleteAll(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM users")
	return err
}
