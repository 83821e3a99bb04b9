package auth

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `"id","firstName","lastName","email","phone","password","role","membership","isTwoFactorEnabled","twoFactorSecret","resetPasswordToken","resetPasswordExpires","createdAt","updatedAt"`

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

// Create persists a new user. Unique-constraint violations on email or
// phone are mapped to ErrDuplicateEmail / ErrDuplicatePhone so the handler
// can report a conflict without a prior lookup racing a concurrent insert.
func (r *UserRepository) Create(ctx context.Context, u *User) error {
	u.ID = uuid.NewString()

	row := r.DB.QueryRow(ctx, `
		INSERT INTO "User"
		("id","firstName","lastName","email","phone","password","role","membership")
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING "createdAt","updatedAt"
	`, u.ID, u.FirstName, u.LastName, u.Email, u.Phone, u.PasswordHash, u.Role, u.Membership)

	if err := row.Scan(&u.CreatedAt, &u.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "phone") {
				return ErrDuplicatePhone
			}
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	row := r.DB.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM "User"
		WHERE "email"=$1
	`, strings.ToLower(email))
	return oneUser(row)
}

func (r *UserRepository) FindByPhone(ctx context.Context, phone string) (*User, error) {
	row := r.DB.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM "User"
		WHERE "phone"=$1
	`, phone)
	return oneUser(row)
}

// FindByEmailOrPhone resolves a login identifier, trying email first.
func (r *UserRepository) FindByEmailOrPhone(ctx context.Context, identifier string) (*User, error) {
	user, err := r.FindByEmail(ctx, identifier)
	if err != nil || user != nil {
		return user, err
	}
	return r.FindByPhone(ctx, identifier)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	row := r.DB.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM "User"
		WHERE "id"=$1
	`, id)
	return oneUser(row)
}

// AddSessionToken appends one token identifier to the user's active session
// collection. Each identifier is its own row, so concurrent logins never
// read-modify-write a shared array.
func (r *UserRepository) AddSessionToken(ctx context.Context, userID, jti string) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO "SessionToken" ("jti","userId") VALUES ($1,$2)
	`, jti, userID)
	return err
}

// RemoveSessionToken revokes a single session token. Removing an already
// absent identifier is not an error.
func (r *UserRepository) RemoveSessionToken(ctx context.Context, userID, jti string) error {
	_, err := r.DB.Exec(ctx, `
		DELETE FROM "SessionToken" WHERE "jti"=$1 AND "userId"=$2
	`, jti, userID)
	return err
}

func (r *UserRepository) HasSessionToken(ctx context.Context, userID, jti string) (bool, error) {
	var dummy int
	err := r.DB.QueryRow(ctx, `
		SELECT 1 FROM "SessionToken" WHERE "jti"=$1 AND "userId"=$2
	`, jti, userID).Scan(&dummy)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *UserRepository) DeleteSessionTokens(ctx context.Context, userID string) error {
	_, err := r.DB.Exec(ctx, `
		DELETE FROM "SessionToken" WHERE "userId"=$1
	`, userID)
	return err
}

// SetTwoFactorSecret stores a freshly provisioned shared secret and flips
// the enabled flag in the same statement; the two always change together.
func (r *UserRepository) SetTwoFactorSecret(ctx context.Context, userID, secret string) error {
	_, err := r.DB.Exec(ctx, `
		UPDATE "User"
		SET "twoFactorSecret"=$1,
		    "isTwoFactorEnabled"=TRUE,
		    "updatedAt"=NOW()
		WHERE "id"=$2
	`, secret, userID)
	return err
}

func (r *UserRepository) DisableTwoFactor(ctx context.Context, userID string) error {
	_, err := r.DB.Exec(ctx, `
		UPDATE "User"
		SET "twoFactorSecret"=NULL,
		    "isTwoFactorEnabled"=FALSE,
		    "updatedAt"=NOW()
		WHERE "id"=$1
	`, userID)
	return err
}

// SetPasswordReset stores the digest of a reset token with its expiry.
// A newer request simply overwrites the previous pair, so only the latest
// token is ever valid.
func (r *UserRepository) SetPasswordReset(ctx context.Context, userID, tokenDigest string, expires time.Time) error {
	_, err := r.DB.Exec(ctx, `
		UPDATE "User"
		SET "resetPasswordToken"=$1,
		    "resetPasswordExpires"=$2,
		    "updatedAt"=NOW()
		WHERE "id"=$3
	`, tokenDigest, expires, userID)
	return err
}

func (r *UserRepository) FindByResetToken(ctx context.Context, tokenDigest string) (*User, error) {
	row := r.DB.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM "User"
		WHERE "resetPasswordToken"=$1 AND "resetPasswordExpires" > NOW()
	`, tokenDigest)
	return oneUser(row)
}

// UpdatePassword replaces the stored hash and clears any reset state in the
// same statement so a consumed token cannot be replayed.
func (r *UserRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	_, err := r.DB.Exec(ctx, `
		UPDATE "User"
		SET "password"=$1,
		    "resetPasswordToken"=NULL,
		    "resetPasswordExpires"=NULL,
		    "updatedAt"=NOW()
		WHERE "id"=$2
	`, passwordHash, userID)
	return err
}

func (r *UserRepository) DeleteUser(ctx context.Context, userID string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM "User" WHERE "id"=$1`, userID)
	return err
}

func oneUser(row pgx.Row) (*User, error) {
	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return user, err
}

func scanUser(row pgx.Row) (*User, error) {
	var (
		u                    User
		twoFactorSecret      sql.NullString
		resetPasswordToken   sql.NullString
		resetPasswordExpires sql.NullTime
	)

	if err := row.Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.Phone,
		&u.PasswordHash,
		&u.Role,
		&u.Membership,
		&u.TwoFactorEnabled,
		&twoFactorSecret,
		&resetPasswordToken,
		&resetPasswordExpires,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}

	u.TwoFactorSecret = nullStringPtr(twoFactorSecret)
	u.ResetPasswordToken = nullStringPtr(resetPasswordToken)
	u.ResetPasswordExpires = nullTimePtr(resetPasswordExpires)
	return &u, nil
}

func nullStringPtr(ns sql.NullString) *string {
	if ns.Valid {
		return &ns.String
	}
	return nil
}

func nullTimePtr(nt sql.NullTime) *time.Time {
	if nt.Valid {
		return &nt.Time
	}
	return nil
}
