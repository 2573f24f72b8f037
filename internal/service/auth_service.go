package service

import (
	"context"
	"errors"
	"time"

	logrus "github.com/sirupsen/logrus"

	"github.com/codeRisshi25/UrbanPulse/internal/auth"
	"github.com/codeRisshi25/UrbanPulse/internal/models"
	"github.com/codeRisshi25/UrbanPulse/internal/store"
)

// Expected business outcomes. Callers match these with errors.Is and map
// them to status codes; anything else is an internal failure whose cause
// is logged here but never exposed.
var (
	ErrUserExists         = errors.New("user with this phone number already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("user not found")
	ErrRegistrationFailed = errors.New("registration failed")
	ErrLoginFailed        = errors.New("login failed")
	ErrProfileFailed      = errors.New("failed to fetch user profile")
)

// UserSummary is the user shape returned from register and login.
type UserSummary struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Number    string    `json:"number"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResult carries a freshly issued token and the user it identifies.
type AuthResult struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

// Profile is the role-annotated view served on /user/profile.
type Profile struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Number    string    `json:"number"`
	Role      string    `json:"role"`
	IsActive  *bool     `json:"is_active,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuthService orchestrates the store, hasher and token issuer for the
// register, login and profile flows. It holds no per-request state.
type AuthService struct {
	users  store.Users
	hasher *auth.Hasher
	tokens *auth.TokenService
}

func NewAuthService(users store.Users, hasher *auth.Hasher, tokens *auth.TokenService) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens}
}

// Register creates a user and its role record, then issues a token.
func (s *AuthService) Register(ctx context.Context, name, number, password, role string) (*AuthResult, error) {
	existing, err := s.users.FindByNumber(ctx, number)
	if err != nil {
		logrus.WithError(err).Error("registration: user lookup failed")
		return nil, ErrRegistrationFailed
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		logrus.WithError(err).Error("registration: password hashing failed")
		return nil, ErrRegistrationFailed
	}

	user, err := s.users.CreateWithRole(ctx, name, number, hash, role)
	if err != nil {
		// The unique constraint decides the winner of a concurrent
		// duplicate registration; the loser gets the same outcome as
		// the pre-check above.
		if errors.Is(err, store.ErrDuplicateNumber) {
			return nil, ErrUserExists
		}
		logrus.WithError(err).Error("registration: create failed")
		return nil, ErrRegistrationFailed
	}

	token, err := s.tokens.Issue(user.ID, user.Number, role)
	if err != nil {
		logrus.WithError(err).Error("registration: token signing failed")
		return nil, ErrRegistrationFailed
	}

	logrus.WithFields(logrus.Fields{"user_id": user.ID, "role": role}).Info("user registered")

	return &AuthResult{Token: token, User: summarize(user, role)}, nil
}

// Login authenticates by number and password. An unknown number and a
// wrong password produce the same ErrInvalidCredentials so responses
// cannot be used to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, number, password string) (*AuthResult, error) {
	user, err := s.users.FindByNumber(ctx, number)
	if err != nil {
		logrus.WithError(err).Error("login: user lookup failed")
		return nil, ErrLoginFailed
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	ok, err := s.hasher.Verify(password, user.Password)
	if err != nil {
		logrus.WithError(err).Error("login: password verification failed")
		return nil, ErrLoginFailed
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	role := user.Role()
	token, err := s.tokens.Issue(user.ID, user.Number, role)
	if err != nil {
		logrus.WithError(err).Error("login: token signing failed")
		return nil, ErrLoginFailed
	}

	logrus.WithFields(logrus.Fields{"user_id": user.ID, "role": role}).Info("user logged in")

	return &AuthResult{Token: token, User: summarize(user, role)}, nil
}

// Profile returns the role-annotated profile for a user id.
func (s *AuthService) Profile(ctx context.Context, userID uint) (*Profile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		logrus.WithError(err).Error("profile lookup failed")
		return nil, ErrProfileFailed
	}
	if user == nil {
		return nil, ErrNotFound
	}

	p := &Profile{
		ID:        user.ID,
		Name:      user.Name,
		Number:    user.Number,
		Role:      user.Role(),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
	if user.Driver != nil {
		p.IsActive = &user.Driver.IsActive
	}
	return p, nil
}

func summarize(user *models.User, role string) UserSummary {
	return UserSummary{
		ID:        user.ID,
		Name:      user.Name,
		Number:    user.Number,
		Role:      role,
		CreatedAt: user.CreatedAt,
	}
}
