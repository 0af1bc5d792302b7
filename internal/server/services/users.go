package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tnguye65/pokecollection/internal/common"
	"github.com/tnguye65/pokecollection/internal/dbx"
	"github.com/tnguye65/pokecollection/internal/server/auth"
	"github.com/tnguye65/pokecollection/internal/server/config"
	"github.com/tnguye65/pokecollection/internal/server/models"
	"github.com/tnguye65/pokecollection/internal/server/repositories/repomanager"
)

// Session is the result of a successful login.
type Session struct {
	Token     string
	User      *models.User
	ExpiresAt time.Time
}

type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// compareDummy burns the same bcrypt work as a real check so unknown
// emails take as long as wrong passwords.
func compareDummy(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = auth.HashPassword("not-a-real-password")
	})
	_, _ = auth.CheckPassword(dummyHash, password)
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// validatePassword applies one length rule to registration and password
// change. The upper bound is counted in bytes, matching bcrypt.
func validatePassword(password string) error {
	if len(password) < common.MinPasswordLength || len(password) > common.MaxPasswordBytes {
		return fmt.Errorf("%w: %w", common.ErrValidation, common.ErrWeakPassword)
	}
	return nil
}

func validateProfileFields(username, email string) error {
	if err := validateLength("username", username, common.MaxUsernameLength); err != nil {
		return err
	}
	return validateLength("email", email, common.MaxEmailLength)
}

// parseUserID rejects ids that cannot exist, so they never reach the
// uuid-typed column.
func parseUserID(userID string) (string, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return "", common.ErrUserNotFound
	}
	return id.String(), nil
}

func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, error) {

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	switch {
	case username == "":
		return nil, fmt.Errorf("%w: username is required", common.ErrValidation)
	case email == "":
		return nil, fmt.Errorf("%w: email is required", common.ErrValidation)
	case !validEmail(email):
		return nil, fmt.Errorf("%w: email is malformed", common.ErrValidation)
	}
	if err := validateProfileFields(username, email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}

	repo := s.repomanager.Users(s.db)

	user, err = repo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", common.ErrValidation)
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			compareDummy(password)
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	ok, err := auth.CheckPassword(user.PasswordHash, password)
	if err != nil {
		return nil, fmt.Errorf("error checking password: %w", err)
	}
	if !ok {
		return nil, common.ErrInvalidCredentials
	}

	token, expires, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	return &Session{Token: token, User: user, ExpiresAt: expires}, nil
}

// Validate returns the user id carried by a session token.
func (s *UserService) Validate(token string) (string, error) {
	return auth.GetUserIDFromToken(token, s.jwtSecret)
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	return user, nil
}

// UpdateProfile changes username and/or email. Nil leaves a field as is.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, username, email *string) (*models.User, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	if username != nil {
		v := strings.TrimSpace(*username)
		if v == "" {
			return nil, fmt.Errorf("%w: username must not be blank", common.ErrValidation)
		}
		if err := validateLength("username", v, common.MaxUsernameLength); err != nil {
			return nil, err
		}
	}
	if email != nil {
		v := strings.TrimSpace(*email)
		if !validEmail(v) {
			return nil, fmt.Errorf("%w: email is malformed", common.ErrValidation)
		}
		if err := validateLength("email", v, common.MaxEmailLength); err != nil {
			return nil, err
		}
	}

	var updated *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		user, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		newName, newEmail := user.Username, user.Email
		if username != nil {
			newName = strings.TrimSpace(*username)
		}
		if email != nil {
			newEmail = strings.TrimSpace(*email)
		}
		if newName == user.Username && newEmail == user.Email {
			updated = user
			return nil
		}

		updated, err = repo.UpdateProfile(ctx, id, newName, newEmail)
		return err
	})

	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("error updating profile: %w", err)
	}

	return updated, nil
}

func (s *UserService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}

	ok, err := auth.CheckPassword(user.PasswordHash, currentPassword)
	if err != nil {
		return fmt.Errorf("error checking password: %w", err)
	}
	if !ok {
		return common.ErrWrongPassword
	}

	if err := validatePassword(newPassword); err != nil {
		return err
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err := s.repomanager.Users(s.db).UpdatePassword(ctx, user.ID, hash); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrUserNotFound
		}
		return fmt.Errorf("error updating password: %w", err)
	}

	return nil
}

// DeleteAccount removes the user and, by cascade, the whole collection.
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	id, err := parseUserID(userID)
	if err != nil {
		return err
	}

	if err := s.repomanager.Users(s.db).Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrUserNotFound
		}
		return fmt.Errorf("error deleting user: %w", err)
	}

	return nil
}
