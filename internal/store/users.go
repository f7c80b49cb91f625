package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type User struct {
	ID              string     `json:"id"`
	FullName        string     `json:"fullName"`
	PhoneNumber     string     `json:"phoneNumber"`
	PasswordHash    []byte     `json:"-"`
	Role            Role       `json:"role"`
	Status          string     `json:"status"`
	Email           NullString `json:"email"`
	ProfileImageURL NullString `json:"profileImageUrl"`
	BusinessName    NullString `json:"businessName"`
	CreatedByID     NullString `json:"createdById"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

type UsersStore struct {
	db *pgxpool.Pool
}

const userColumns = `id, full_name, phone_number, password, role, status, email, profile_image_url, business_name, created_by_id, created_at, updated_at`

func scanUser(row pgx.Row, user *User) error {
	return row.Scan(
		&user.ID,
		&user.FullName,
		&user.PhoneNumber,
		&user.PasswordHash,
		&user.Role,
		&user.Status,
		&user.Email,
		&user.ProfileImageURL,
		&user.BusinessName,
		&user.CreatedByID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
}

func (s *UsersStore) GetByID(ctx context.Context, id string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	user := &User{}
	if err := scanUser(s.db.QueryRow(ctx, query, id), user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UsersStore) GetByPhoneNumber(ctx context.Context, phone string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE phone_number = $1`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	user := &User{}
	if err := scanUser(s.db.QueryRow(ctx, query, phone), user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UsersStore) create(ctx context.Context, tx pgx.Tx, user *User) error {
	query := `
	  INSERT INTO users (id, full_name, phone_number, password, role, status, email, business_name, created_by_id)
	  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	  RETURNING created_at, updated_at
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	if user.ID == "" {
		user.ID = "user-" + uuid.New().String()
	}
	if user.Status == "" {
		user.Status = StatusActive
	}

	err := tx.QueryRow(ctx, query,
		user.ID,
		user.FullName,
		user.PhoneNumber,
		user.PasswordHash,
		user.Role,
		user.Status,
		user.Email.Ptr(),
		user.BusinessName.Ptr(),
		user.CreatedByID.Ptr(),
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicatePhoneNumber
		}
		return err
	}
	return nil
}

func (s *UsersStore) Create(ctx context.Context, user *User) error {
	return withTx(s.db, ctx, func(tx pgx.Tx) error {
		return s.create(ctx, tx, user)
	})
}

// CreateMerchant provisions the merchant account and its business in one
// transaction so a merchant never exists without an operational scope.
func (s *UsersStore) CreateMerchant(ctx context.Context, user *User, business *Business) error {
	return withTx(s.db, ctx, func(tx pgx.Tx) error {
		if err := s.create(ctx, tx, user); err != nil {
			return err
		}

		business.OwnerID = user.ID
		return createBusiness(ctx, tx, business)
	})
}

func (s *UsersStore) List(ctx context.Context) ([]User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectUsers(rows)
}

func (s *UsersStore) ListByRole(ctx context.Context, role Role) ([]User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY created_at DESC`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, query, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectUsers(rows)
}

func collectUsers(rows pgx.Rows) ([]User, error) {
	users := []User{}
	for rows.Next() {
		var user User
		if err := scanUser(rows, &user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (s *UsersStore) UpdateStatus(ctx context.Context, id, status string) (*User, error) {
	query := `
	  UPDATE users SET status = $1, updated_at = NOW() WHERE id = $2
	  RETURNING ` + userColumns

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	user := &User{}
	if err := scanUser(s.db.QueryRow(ctx, query, status, id), user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UsersStore) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM users WHERE id = $1`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	res, err := s.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// EnsureSuperAdmin is the idempotent bootstrap: if no account exists with the
// well-known phone number, one is created with the supplied password hash.
func (s *UsersStore) EnsureSuperAdmin(ctx context.Context, phone string, passwordHash []byte) (*User, error) {
	existing, err := s.GetByPhoneNumber(ctx, phone)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	user := &User{
		ID:           "super-admin-" + uuid.New().String(),
		FullName:     "Super Admin",
		PhoneNumber:  phone,
		PasswordHash: passwordHash,
		Role:         RoleSuperAdmin,
		Status:       StatusActive,
	}
	if err := s.Create(ctx, user); err != nil {
		// lost a startup race with another instance; the existing row wins
		if errors.Is(err, ErrDuplicatePhoneNumber) {
			return s.GetByPhoneNumber(ctx, phone)
		}
		return nil, err
	}
	return user, nil
}
