package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/solemate/sneaker-market/internal/apperrors"
	"github.com/solemate/sneaker-market/internal/models"
	"github.com/solemate/sneaker-market/internal/repository"
)

// Service defines all the business logic operations
type Service interface {
	// Authentication
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)

	// User operations
	ListUsers(ctx context.Context, skip, limit int) ([]models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, upd models.UserUpdate) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error

	// Sneaker operations
	CreateSneaker(ctx context.Context, callerID int64, req models.SneakerCreate) (*models.Sneaker, error)
	GetSneaker(ctx context.Context, id int64) (*models.Sneaker, error)
	ListSneakers(ctx context.Context, filter models.SneakerFilter) ([]models.Sneaker, error)
	UpdateSneaker(ctx context.Context, callerID, id int64, upd models.SneakerUpdate) (*models.Sneaker, error)
	DeleteSneaker(ctx context.Context, callerID, id int64) error

	// Proposition operations
	CreateProposition(ctx context.Context, callerID int64, req models.PropositionCreate) (*models.Proposition, error)
	GetProposition(ctx context.Context, callerID, id int64) (*models.Proposition, error)
	ListPropositions(ctx context.Context, filter models.PropositionFilter) ([]models.Proposition, error)
	ListMyPropositions(ctx context.Context, callerID int64, skip, limit int) ([]models.Proposition, error)
	UpdateProposition(ctx context.Context, callerID, id int64, upd models.PropositionUpdate) (*models.Proposition, error)
	DeleteProposition(ctx context.Context, callerID, id int64) error

	// Health
	Health(ctx context.Context) error
}

// DefaultService implements the Service interface
type DefaultService struct {
	repo          repository.Repository
	jwtSecret     []byte
	tokenDuration time.Duration
}

// NewDefaultService creates a new DefaultService
func NewDefaultService(repo repository.Repository, jwtSecret string) Service {
	return &DefaultService{
		repo:          repo,
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: 24 * time.Hour, // 24 hours token validity
	}
}

// Authentication methods

func (s *DefaultService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	// Check if the email or username is already taken
	existing, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email already registered", apperrors.ErrConflict)
	}

	existing, err = s.repo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("error checking username: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: username already taken", apperrors.ErrConflict)
	}

	// Hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:          req.Email,
		Username:       req.Username,
		HashedPassword: string(hashedPassword),
		FirstName:      req.FirstName,
		MiddleName:     req.MiddleName,
		LastName:       req.LastName,
	}

	// The unique constraints on email and username settle concurrent
	// registrations: one insert wins, the other surfaces as Conflict.
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

func (s *DefaultService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("error getting user: %w", err)
	}

	if user == nil {
		return "", fmt.Errorf("%w: incorrect email or password", apperrors.ErrUnauthenticated)
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return "", fmt.Errorf("%w: incorrect email or password", apperrors.ErrUnauthenticated)
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return "", fmt.Errorf("error generating token: %w", err)
	}

	return token, nil
}

// Authenticate resolves a bearer token back to its user. Invalid, expired,
// and tampered tokens, and tokens whose subject no longer exists, all fail
// with the same Unauthenticated error.
func (s *DefaultService) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.jwtSecret, nil
	})

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", apperrors.ErrUnauthenticated)
	}

	user, err := s.repo.GetUserByEmail(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: invalid token", apperrors.ErrUnauthenticated)
	}

	return user, nil
}

// User operations

func (s *DefaultService) ListUsers(ctx context.Context, skip, limit int) ([]models.User, error) {
	return s.repo.ListUsers(ctx, skip, limit)
}

func (s *DefaultService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", apperrors.ErrNotFound)
	}
	return user, nil
}

func (s *DefaultService) UpdateUser(ctx context.Context, id int64, upd models.UserUpdate) (*models.User, error) {
	if upd.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("error hashing password: %w", err)
		}
		hashedStr := string(hashed)
		upd.Password = &hashedStr
	}

	user, err := s.repo.UpdateUser(ctx, id, upd)
	if err != nil {
		return nil, fmt.Errorf("error updating user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", apperrors.ErrNotFound)
	}
	return user, nil
}

func (s *DefaultService) DeleteUser(ctx context.Context, id int64) error {
	return s.repo.DeleteUser(ctx, id)
}

// Sneaker operations

func (s *DefaultService) CreateSneaker(ctx context.Context, callerID int64, req models.SneakerCreate) (*models.Sneaker, error) {
	// The owner defaults to the caller when not named explicitly
	ownerID := callerID
	if req.UserID != nil {
		ownerID = *req.UserID
	}

	owner, err := s.repo.GetUserByID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	if owner == nil {
		return nil, fmt.Errorf("%w: user not found", apperrors.ErrNotFound)
	}

	sneaker := &models.Sneaker{
		SKU:           req.SKU,
		Brand:         req.Brand,
		Model:         req.Model,
		Size:          req.Size,
		Color:         req.Color,
		PurchasePrice: req.PurchasePrice,
		Description:   req.Description,
		UserID:        ownerID,
	}

	if err := s.repo.CreateSneaker(ctx, sneaker); err != nil {
		return nil, fmt.Errorf("error creating sneaker: %w", err)
	}

	return sneaker, nil
}

func (s *DefaultService) GetSneaker(ctx context.Context, id int64) (*models.Sneaker, error) {
	sneaker, err := s.repo.GetSneakerByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting sneaker: %w", err)
	}
	if sneaker == nil {
		return nil, fmt.Errorf("%w: sneaker not found", apperrors.ErrNotFound)
	}
	return sneaker, nil
}

func (s *DefaultService) ListSneakers(ctx context.Context, filter models.SneakerFilter) ([]models.Sneaker, error) {
	return s.repo.ListSneakers(ctx, filter)
}

func (s *DefaultService) UpdateSneaker(ctx context.Context, callerID, id int64, upd models.SneakerUpdate) (*models.Sneaker, error) {
	sneaker, err := s.GetSneaker(ctx, id)
	if err != nil {
		return nil, err
	}

	if sneaker.UserID != callerID {
		return nil, fmt.Errorf("%w: you don't own this sneaker", apperrors.ErrForbidden)
	}

	updated, err := s.repo.UpdateSneaker(ctx, id, upd)
	if err != nil {
		return nil, fmt.Errorf("error updating sneaker: %w", err)
	}
	if updated == nil {
		return nil, fmt.Errorf("%w: sneaker not found", apperrors.ErrNotFound)
	}
	return updated, nil
}

func (s *DefaultService) DeleteSneaker(ctx context.Context, callerID, id int64) error {
	sneaker, err := s.GetSneaker(ctx, id)
	if err != nil {
		return err
	}

	if sneaker.UserID != callerID {
		return fmt.Errorf("%w: you don't own this sneaker", apperrors.ErrForbidden)
	}

	return s.repo.DeleteSneaker(ctx, id)
}

// Proposition operations

func (s *DefaultService) CreateProposition(ctx context.Context, callerID int64, req models.PropositionCreate) (*models.Proposition, error) {
	if err := CanCreateProposition(callerID, req); err != nil {
		return nil, err
	}

	// Verify the sneaker exists
	sneaker, err := s.repo.GetSneakerByID(ctx, req.SneakerID)
	if err != nil {
		return nil, fmt.Errorf("error getting sneaker: %w", err)
	}
	if sneaker == nil {
		return nil, fmt.Errorf("%w: sneaker not found", apperrors.ErrNotFound)
	}

	prop := &models.Proposition{
		SellerID:       req.SellerID,
		BuyerID:        req.BuyerID,
		SneakerID:      req.SneakerID,
		Value:          req.Value,
		AgreedDatetime: req.AgreedDatetime,
	}

	if err := s.repo.CreateProposition(ctx, prop); err != nil {
		return nil, fmt.Errorf("error creating proposition: %w", err)
	}

	return prop, nil
}

func (s *DefaultService) GetProposition(ctx context.Context, callerID, id int64) (*models.Proposition, error) {
	prop, err := s.fetchProposition(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := CanReadProposition(callerID, prop); err != nil {
		return nil, err
	}

	return prop, nil
}

func (s *DefaultService) ListPropositions(ctx context.Context, filter models.PropositionFilter) ([]models.Proposition, error) {
	return s.repo.ListPropositions(ctx, filter)
}

func (s *DefaultService) ListMyPropositions(ctx context.Context, callerID int64, skip, limit int) ([]models.Proposition, error) {
	return s.repo.ListUserPropositions(ctx, callerID, skip, limit)
}

func (s *DefaultService) UpdateProposition(ctx context.Context, callerID, id int64, upd models.PropositionUpdate) (*models.Proposition, error) {
	prop, err := s.fetchProposition(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := CanUpdateProposition(callerID, prop, upd); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateProposition(ctx, id, upd)
	if err != nil {
		return nil, fmt.Errorf("error updating proposition: %w", err)
	}
	if updated == nil {
		return nil, fmt.Errorf("%w: proposition not found", apperrors.ErrNotFound)
	}
	return updated, nil
}

func (s *DefaultService) DeleteProposition(ctx context.Context, callerID, id int64) error {
	prop, err := s.fetchProposition(ctx, id)
	if err != nil {
		return err
	}

	if err := CanDeleteProposition(callerID, prop); err != nil {
		return err
	}

	return s.repo.DeleteProposition(ctx, id)
}

func (s *DefaultService) fetchProposition(ctx context.Context, id int64) (*models.Proposition, error) {
	prop, err := s.repo.GetPropositionByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting proposition: %w", err)
	}
	if prop == nil {
		return nil, fmt.Errorf("%w: proposition not found", apperrors.ErrNotFound)
	}
	return prop, nil
}

// Health verifies database connectivity
func (s *DefaultService) Health(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// Helper methods
func (s *DefaultService) generateJWT(user *models.User) (string, error) {
	now := time.Now()

	claims := &jwt.RegisteredClaims{
		Subject:   user.Email,
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
