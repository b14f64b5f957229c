package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"foodorder/entity"
	"foodorder/pkg/apperr"
	"foodorder/repository"
	"foodorder/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// UserService handles sign-up, sign-in, sessions and the user's own profile.
type UserService struct {
	userRepo     *repository.UserRepository
	sessions     SessionStore
	tokens       TokenConfig
	defaultPoint int64
}

func NewUserService(users *repository.UserRepository, sessions SessionStore, tokens TokenConfig, defaultPoint int64) *UserService {
	return &UserService{
		userRepo:     users,
		sessions:     sessions,
		tokens:       tokens,
		defaultPoint: defaultPoint,
	}
}

type SignUpInput struct {
	Email    string `json:"email"`
	ClientID string `json:"clientId"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Nickname string `json:"nickname"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Role     string `json:"role"`
}

type SignInInput struct {
	ClientID string `json:"clientId"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type Profile struct {
	ID        uint      `json:"id"`
	Nickname  string    `json:"nickname"`
	Email     *string   `json:"email"`
	Role      string    `json:"role"`
	Point     int64     `json:"point"`
	StoreName *string   `json:"storeName,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type ProfileUpdate struct {
	Name     *string `json:"name"`
	Nickname *string `json:"nickname"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	Password *string `json:"password"`
}

func normalizeEmail(email string) string { return strings.ToLower(strings.TrimSpace(email)) }

func (s *UserService) SignUp(ctx context.Context, in SignUpInput) (*entity.User, error) {
	role := strings.ToUpper(strings.TrimSpace(in.Role))
	if role == "" {
		role = entity.RoleCustomer
	}
	if !entity.ValidRole(role) {
		return nil, apperr.BadRequest("role must be CUSTOMER or OWNER")
	}

	user := &entity.User{
		Name:     strings.TrimSpace(in.Name),
		Nickname: strings.TrimSpace(in.Nickname),
		Phone:    strings.TrimSpace(in.Phone),
		Address:  strings.TrimSpace(in.Address),
		Role:     role,
		Point:    s.defaultPoint,
	}

	// social sign-up carries only the provider's client id
	if clientID := strings.TrimSpace(in.ClientID); clientID != "" {
		if _, err := s.userRepo.FindByClientID(ctx, clientID); err == nil {
			return nil, apperr.Conflict("already registered user")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.ClientID = &clientID
	} else {
		email := normalizeEmail(in.Email)
		if email == "" {
			return nil, apperr.BadRequest("email is required")
		}
		if in.Password == "" {
			return nil, apperr.BadRequest("password is required")
		}
		if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
			return nil, apperr.Conflict("email already registered")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Email = &email
		user.Password = string(hashed)
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) SignIn(ctx context.Context, in SignInInput) (*TokenPair, error) {
	var (
		user *entity.User
		err  error
	)
	if clientID := strings.TrimSpace(in.ClientID); clientID != "" {
		user, err = s.userRepo.FindByClientID(ctx, clientID)
	} else {
		email := normalizeEmail(in.Email)
		if email == "" {
			return nil, apperr.BadRequest("email is required")
		}
		if in.Password == "" {
			return nil, apperr.BadRequest("password is required")
		}
		user, err = s.userRepo.FindByEmail(ctx, email)
		if err == nil && bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)) != nil {
			return nil, apperr.Unauthorized("invalid login credentials")
		}
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Unauthorized("invalid login credentials")
	}
	if err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, user)
}

// Refresh exchanges a refresh token for a new pair. The previous pair stops working.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, apperr.BadRequest("refreshToken is required")
	}
	claims, err := utils.ParseToken(refreshToken, s.tokens.RefreshSecret)
	if err != nil {
		return nil, apperr.Unauthorized("invalid refresh token")
	}
	current, err := s.sessions.Get(ctx, claims.UserID)
	if errors.Is(err, ErrSessionNotFound) || (err == nil && current != claims.ID) {
		return nil, apperr.Unauthorized("session expired")
	}
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Unauthorized("session expired")
	}
	if err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, user)
}

func (s *UserService) SignOut(ctx context.Context, userID uint) error {
	return s.sessions.Delete(ctx, userID)
}

// VerifySession reports whether sessionID is the user's active session.
func (s *UserService) VerifySession(ctx context.Context, userID uint, sessionID string) (bool, error) {
	current, err := s.sessions.Get(ctx, userID)
	if errors.Is(err, ErrSessionNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return current == sessionID, nil
}

func (s *UserService) issueTokens(ctx context.Context, user *entity.User) (*TokenPair, error) {
	sessionID := uuid.NewString()
	access, err := utils.GenerateToken(user.ID, user.Role, sessionID, s.tokens.AccessSecret, s.tokens.AccessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := utils.GenerateToken(user.ID, user.Role, sessionID, s.tokens.RefreshSecret, s.tokens.RefreshTTL)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, user.ID, sessionID, s.tokens.RefreshTTL); err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID uint) (*Profile, error) {
	user, err := s.userRepo.FindWithStore(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, err
	}

	p := &Profile{
		ID:        user.ID,
		Nickname:  user.Nickname,
		Email:     user.Email,
		Role:      user.Role,
		Point:     user.Point,
		CreatedAt: user.CreatedAt,
	}
	if user.Role == entity.RoleOwner && user.Store != nil {
		p.StoreName = &user.Store.StoreName
		p.CreatedAt = user.Store.CreatedAt
	}
	return p, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uint, in ProfileUpdate) (*entity.User, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user not found")
	} else if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if in.Name != nil {
		updates["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Nickname != nil {
		updates["nickname"] = strings.TrimSpace(*in.Nickname)
	}
	if in.Phone != nil {
		updates["phone"] = strings.TrimSpace(*in.Phone)
	}
	if in.Address != nil {
		updates["address"] = strings.TrimSpace(*in.Address)
	}
	if in.Password != nil {
		if *in.Password == "" {
			return nil, apperr.BadRequest("password cannot be empty")
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		updates["password"] = string(hashed)
	}
	if len(updates) > 0 {
		if err := s.userRepo.Update(ctx, userID, updates); err != nil {
			return nil, err
		}
	}
	return s.userRepo.FindByID(ctx, userID)
}

// ChargePoint tops up the balance and returns the new value.
func (s *UserService) ChargePoint(ctx context.Context, userID uint, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, apperr.BadRequest("amount must be greater than 0")
	}
	ok, err := s.userRepo.AddPoint(ctx, userID, amount)
	if err != nil {
		return 0, err
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, apperr.NotFound("user not found")
	}
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, apperr.BadRequest("point balance limit exceeded")
	}
	return user.Point, nil
}
