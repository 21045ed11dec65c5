package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/nurmatov/onlineshop-api/internal/domain/entity"
	repo "github.com/nurmatov/onlineshop-api/internal/domain/repository"
	"github.com/nurmatov/onlineshop-api/pkg/helpers"
	"github.com/nurmatov/onlineshop-api/pkg/mailer"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("username or email already taken")
)

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

type UserService struct {
	Users  repo.UserRepository
	Carts  repo.CartRepository
	JWT    *helpers.JWTManager
	Redis  *redis.Client
	Mail   *helpers.RabbitPublisher
	Logger *logrus.Logger
}

func NewUserService(users repo.UserRepository, carts repo.CartRepository, jwt *helpers.JWTManager, rdb *redis.Client, mail *helpers.RabbitPublisher, logger *logrus.Logger) *UserService {
	return &UserService{Users: users, Carts: carts, JWT: jwt, Redis: rdb, Mail: mail, Logger: logger}
}

func sessionKey(userID string) string {
	return "user:session:" + userID
}

type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Age         int
	PhoneNumber string
	Status      entity.Status
}

// Register creates the user with a hashed password, provisions the user's
// cart, and issues the first token pair. The response echoes only username
// and email alongside the tokens.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*AuthResponse, TokenPair, error) {
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	status := in.Status
	if status == "" {
		status = entity.StatusSimple
	}
	u := &entity.User{
		Username:    in.Username,
		Email:       in.Email,
		Password:    hash,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Age:         in.Age,
		PhoneNumber: in.PhoneNumber,
		Status:      status,
	}
	if err := s.Users.Create(u); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return nil, TokenPair{}, ErrUserExists
		}
		return nil, TokenPair{}, err
	}

	// Exactly one cart per user, provisioned at registration.
	if err := s.Carts.Create(&entity.Cart{UserID: u.ID}); err != nil && !errors.Is(err, repo.ErrConflict) {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("cart provisioning failed")
		}
		return nil, TokenPair{}, err
	}

	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}

	s.publishWelcomeEmail(ctx, u)

	resp := NewAuthResponse(*u, pair.AccessToken, pair.RefreshToken)
	return &resp, pair, nil
}

// Authenticate validates username/password and returns the user without
// issuing tokens. A bad pair is a validation failure, never a server fault.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*entity.User, error) {
	u, err := s.Users.GetByUsername(username)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// IssueTokens generates access/refresh tokens and records a session in Redis.
func (s *UserService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, sid)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, sid)
	if err != nil {
		return TokenPair{}, err
	}

	if s.Redis != nil {
		fields := map[string]any{
			"user_id":  u.ID,
			"username": u.Username,
			"email":    u.Email,
			"sid":      sid,
		}
		key := sessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, 24*time.Hour)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

func (s *UserService) Login(ctx context.Context, username, password string) (*AuthResponse, TokenPair, error) {
	u, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	resp := NewAuthResponse(*u, pair.AccessToken, pair.RefreshToken)
	return &resp, pair, nil
}

func (s *UserService) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	u, err := s.Users.GetByID(claims.UserID)
	if err != nil || u == nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	// Current session id must match the token's sid.
	if s.Redis != nil {
		key := sessionKey(u.ID)
		data, rErr := s.Redis.HGetAll(ctx, key).Result()
		if rErr != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return TokenPair{}, "", ErrInvalidCredentials
		}
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return TokenPair{}, "", err
	}
	return pair, u.ID, nil
}

func (s *UserService) GetProfile(userID string) (ProfileView, error) {
	u, err := s.Users.GetByID(userID)
	if err != nil || u == nil {
		return ProfileView{}, ErrUserNotFound
	}
	return NewProfileView(*u), nil
}

type UpdateProfileInput struct {
	Email       string
	FirstName   string
	LastName    string
	Age         int
	PhoneNumber string
}

// UpdateProfile changes mutable profile fields. Username, status and
// registration date are not updatable here; status is an operator concern.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (ProfileView, error) {
	u, err := s.Users.GetByID(userID)
	if err != nil || u == nil {
		return ProfileView{}, ErrUserNotFound
	}
	if in.Email != "" {
		u.Email = in.Email
	}
	if in.FirstName != "" {
		u.FirstName = in.FirstName
	}
	if in.LastName != "" {
		u.LastName = in.LastName
	}
	if in.Age != 0 {
		u.Age = in.Age
	}
	if in.PhoneNumber != "" {
		u.PhoneNumber = in.PhoneNumber
	}
	if err := s.Users.Update(u); err != nil {
		return ProfileView{}, err
	}
	return NewProfileView(*u), nil
}

func (s *UserService) publishWelcomeEmail(ctx context.Context, u *entity.User) {
	if s.Mail == nil {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateWelcome,
		Data: map[string]any{
			"Username":  u.Username,
			"FirstName": u.FirstName,
		},
	}
	if err := s.Mail.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("welcome email enqueue failed")
	}
}
