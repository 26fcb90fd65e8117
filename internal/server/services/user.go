// Package services contains server-side business logic. This file implements
// UserService: registration, login, logout, refresh-token rotation and the
// identity lookup behind the authentication gate.
package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/JokeryEU/shoplistapp-server/internal/common"
	"github.com/JokeryEU/shoplistapp-server/internal/dbx"
	"github.com/JokeryEU/shoplistapp-server/internal/server/auth"
	"github.com/JokeryEU/shoplistapp-server/internal/server/models"
	"github.com/JokeryEU/shoplistapp-server/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Session is the result of a successful login, registration or refresh.
type Session struct {
	User   *models.User
	Tokens *TokenPair
}

// RegisterInput holds the profile fields accepted at sign-up. There is no
// role field: new accounts are always RoleUser.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// ProfileUpdate lists the fields a user may change on their own account.
// Nil fields are left as they are.
type ProfileUpdate struct {
	Email     *string
	Password  *string
	FirstName *string
	LastName  *string
}

// UserService issues and rotates credentials and resolves identities.
//
// Each user has at most one stored refresh token. Every issuance overwrites
// it, and a refresh is only honoured when the presented token equals the
// stored one.
type UserService struct {
	db          dbx.DBTX
	repomanager repomanager.RepositoryManager
	codec       *auth.Codec
	hasher      *auth.Hasher

	dummyOnce sync.Once
	dummyHash string
}

// NewUserService constructs a UserService. db may be nil for the in-memory store.
func NewUserService(db dbx.DBTX, m repomanager.RepositoryManager, codec *auth.Codec, hasher *auth.Hasher) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		codec:       codec,
		hasher:      hasher,
	}
}

// NormalizeEmail trims and lowercases an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a RoleUser account and issues its first token pair. The
// stored refresh token is written in the same insert as the user.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	user, err := s.newUser(in, models.RoleUser)
	if err != nil {
		return nil, err
	}

	pair, err := s.generateTokenPair(user.ID)
	if err != nil {
		return nil, err
	}
	user.RefreshToken = pair.RefreshToken

	if _, err := s.repomanager.Users(s.db).Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrDuplicateIdentity) {
			return nil, common.ErrDuplicateIdentity
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return &Session{User: user, Tokens: pair}, nil
}

// CreateAdmin creates a RoleAdmin account without a session. It is only
// reachable from the admin command, never from HTTP.
func (s *UserService) CreateAdmin(ctx context.Context, in RegisterInput) (*models.User, error) {
	user, err := s.newUser(in, models.RoleAdmin)
	if err != nil {
		return nil, err
	}

	if _, err := s.repomanager.Users(s.db).Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrDuplicateIdentity) {
			return nil, common.ErrDuplicateIdentity
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return user, nil
}

// Login checks email and password and issues a new token pair, replacing
// any earlier refresh token. Unknown email and wrong password both return
// common.ErrInvalidCredentials after one bcrypt comparison.
func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = s.hasher.Compare(s.getDummyHash(), password)
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, common.ErrInvalidCredentials
	}

	pair, err := s.rotate(ctx, user)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Tokens: pair}, nil
}

// Logout clears the stored refresh token. Calling it again is harmless.
func (s *UserService) Logout(ctx context.Context, user *models.User) error {
	user.RefreshToken = ""
	if err := s.repomanager.Users(s.db).Save(ctx, user); err != nil {
		return fmt.Errorf("error clearing refresh token: %w", err)
	}
	return nil
}

// Refresh exchanges a refresh token for a new pair.
//
// A missing, unverifiable or orphaned token yields common.ErrUnauthenticated.
// A verifiable token that differs from the stored one, or arrives when none
// is stored, clears the stored token and yields common.ErrSessionRevoked.
// Otherwise a new pair is issued and stored over the old one.
func (s *UserService) Refresh(ctx context.Context, presented string) (*Session, error) {
	if presented == "" {
		return nil, common.ErrUnauthenticated
	}

	userID, err := s.codec.VerifyRefresh(presented)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnauthenticated, err)
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUnauthenticated
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if !tokensEqual(user.RefreshToken, presented) {
		user.RefreshToken = ""
		if err := repo.Save(ctx, user); err != nil {
			return nil, fmt.Errorf("error revoking session: %w", err)
		}
		return nil, fmt.Errorf("%w: user %s", common.ErrSessionRevoked, user.ID)
	}

	pair, err := s.rotate(ctx, user)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Tokens: pair}, nil
}

// Authenticate resolves an access token to its user. Any failure, including
// a user that no longer exists, is common.ErrUnauthenticated; storage
// failures are returned as they are.
func (s *UserService) Authenticate(ctx context.Context, accessToken string) (*models.User, error) {
	if accessToken == "" {
		return nil, common.ErrUnauthenticated
	}

	userID, err := s.codec.VerifyAccess(accessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnauthenticated, err)
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUnauthenticated
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	return user, nil
}

// Profile reloads the stored account for userID.
func (s *UserService) Profile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	return user, nil
}

// UpdateProfile applies upd to user and saves it. A new password is hashed
// before it is stored.
func (s *UserService) UpdateProfile(ctx context.Context, user *models.User, upd ProfileUpdate) (*models.User, error) {
	if upd.Email != nil {
		user.Email = NormalizeEmail(*upd.Email)
	}
	if upd.FirstName != nil {
		user.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		user.LastName = *upd.LastName
	}
	if upd.Password != nil {
		hash, err := s.hashPassword(*upd.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.repomanager.Users(s.db).Save(ctx, user); err != nil {
		if errors.Is(err, common.ErrDuplicateIdentity) {
			return nil, common.ErrDuplicateIdentity
		}
		return nil, fmt.Errorf("error saving profile: %w", err)
	}
	return user, nil
}

// ListUsers returns every account.
func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.repomanager.Users(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return users, nil
}

// AccessTTL and RefreshTTL expose token lifetimes for cookie expiry.
func (s *UserService) AccessTTL() time.Duration  { return s.codec.AccessTTL() }
func (s *UserService) RefreshTTL() time.Duration { return s.codec.RefreshTTL() }

func (s *UserService) newUser(in RegisterInput, role models.Role) (*models.User, error) {
	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	return &models.User{
		ID:           uuid.NewString(),
		Email:        NormalizeEmail(in.Email),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: hash,
		Role:         role,
	}, nil
}

func (s *UserService) hashPassword(password string) (string, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", common.NewValidationError("password", "Password must be at most 72 bytes")
		}
		return "", fmt.Errorf("error hashing password: %w", err)
	}
	return hash, nil
}

// rotate issues a pair and stores its refresh token before returning it.
func (s *UserService) rotate(ctx context.Context, user *models.User) (*TokenPair, error) {
	pair, err := s.generateTokenPair(user.ID)
	if err != nil {
		return nil, err
	}

	user.RefreshToken = pair.RefreshToken
	if err := s.repomanager.Users(s.db).Save(ctx, user); err != nil {
		return nil, fmt.Errorf("error storing refresh token: %w", err)
	}
	return pair, nil
}

func (s *UserService) generateTokenPair(userID string) (*TokenPair, error) {
	access, err := s.codec.IssueAccess(userID)
	if err != nil {
		return nil, fmt.Errorf("error signing access token: %w", err)
	}
	refresh, err := s.codec.IssueRefresh(userID)
	if err != nil {
		return nil, fmt.Errorf("error signing refresh token: %w", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *UserService) getDummyHash() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash("not-a-real-password")
	})
	return s.dummyHash
}

func tokensEqual(stored, presented string) bool {
	if stored == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) == 1
}
