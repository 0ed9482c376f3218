package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/solemate/sneaker-market/internal/apperrors"
	"github.com/solemate/sneaker-market/internal/models"
)

// DefaultLimit is applied to list queries when the caller does not set one.
const DefaultLimit = 100

// Repository interface defines the methods that any repository implementation must satisfy
type Repository interface {
	// User operations
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	ListUsers(ctx context.Context, skip, limit int) ([]models.User, error)
	UpdateUser(ctx context.Context, id int64, upd models.UserUpdate) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error

	// Sneaker operations
	CreateSneaker(ctx context.Context, sneaker *models.Sneaker) error
	GetSneakerByID(ctx context.Context, id int64) (*models.Sneaker, error)
	ListSneakers(ctx context.Context, filter models.SneakerFilter) ([]models.Sneaker, error)
	UpdateSneaker(ctx context.Context, id int64, upd models.SneakerUpdate) (*models.Sneaker, error)
	DeleteSneaker(ctx context.Context, id int64) error

	// Proposition operations
	CreateProposition(ctx context.Context, prop *models.Proposition) error
	GetPropositionByID(ctx context.Context, id int64) (*models.Proposition, error)
	ListPropositions(ctx context.Context, filter models.PropositionFilter) ([]models.Proposition, error)
	ListUserPropositions(ctx context.Context, userID int64, skip, limit int) ([]models.Proposition, error)
	UpdateProposition(ctx context.Context, id int64, upd models.PropositionUpdate) (*models.Proposition, error)
	DeleteProposition(ctx context.Context, id int64) error

	// Health
	Ping(ctx context.Context) error
}

// PostgresRepository implements the Repository interface using PostgreSQL
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{
		db: db,
	}
}

// GetDB returns the underlying database connection
func (r *PostgresRepository) GetDB() *sqlx.DB {
	return r.db
}

// Ping verifies database connectivity
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// translateError maps Postgres constraint violations onto the shared error
// taxonomy. Unique violations become Conflict, foreign-key violations become
// NotFound (the referenced row is gone).
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%w: %s", apperrors.ErrConflict, pqErr.Detail)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%w: %s", apperrors.ErrNotFound, pqErr.Detail)
		}
	}

	return err
}

func normalizePage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return skip, limit
}

// User repository methods

func (r *PostgresRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, username, hashed_password, first_name, middle_name, last_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	err := r.db.GetContext(ctx, &user.ID, query,
		user.Email, user.Username, user.HashedPassword,
		user.FirstName, user.MiddleName, user.LastName,
		user.CreatedAt, user.UpdatedAt)

	return translateError(err)
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT * FROM users WHERE id = $1`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // User not found
		}
		return nil, err
	}

	return &user, nil
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT * FROM users WHERE email = $1`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // User not found
		}
		return nil, err
	}

	return &user, nil
}

func (r *PostgresRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT * FROM users WHERE username = $1`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // User not found
		}
		return nil, err
	}

	return &user, nil
}

func (r *PostgresRepository) ListUsers(ctx context.Context, skip, limit int) ([]models.User, error) {
	skip, limit = normalizePage(skip, limit)

	query := `SELECT * FROM users ORDER BY id OFFSET $1 LIMIT $2`

	users := []models.User{}
	err := r.db.SelectContext(ctx, &users, query, skip, limit)
	if err != nil {
		return nil, err
	}

	return users, nil
}

func (r *PostgresRepository) UpdateUser(ctx context.Context, id int64, upd models.UserUpdate) (*models.User, error) {
	sets := []string{}
	args := []interface{}{}

	addSet := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.Email != nil {
		addSet("email", *upd.Email)
	}
	if upd.Username != nil {
		addSet("username", *upd.Username)
	}
	if upd.Password != nil {
		// Already hashed by the service layer
		addSet("hashed_password", *upd.Password)
	}
	if upd.FirstName != nil {
		addSet("first_name", *upd.FirstName)
	}
	if upd.MiddleName != nil {
		addSet("middle_name", *upd.MiddleName)
	}
	if upd.LastName != nil {
		addSet("last_name", *upd.LastName)
	}

	if len(sets) == 0 {
		return r.GetUserByID(ctx, id)
	}

	addSet("updated_at", time.Now().UTC())
	args = append(args, id)

	query := fmt.Sprintf(
		`UPDATE users SET %s WHERE id = $%d RETURNING *`,
		strings.Join(sets, ", "), len(args),
	)

	var user models.User
	err := r.db.GetContext(ctx, &user, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // User not found
		}
		return nil, translateError(err)
	}

	return &user, nil
}

func (r *PostgresRepository) DeleteUser(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: user %d", apperrors.ErrNotFound, id)
	}

	return nil
}

// Sneaker repository methods

func (r *PostgresRepository) CreateSneaker(ctx context.Context, sneaker *models.Sneaker) error {
	query := `
		INSERT INTO sneakers (sku, brand, model, size, color, purchase_price, description, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	now := time.Now().UTC()
	sneaker.CreatedAt = now
	sneaker.UpdatedAt = now

	err := r.db.GetContext(ctx, &sneaker.ID, query,
		sneaker.SKU, sneaker.Brand, sneaker.Model, sneaker.Size,
		sneaker.Color, sneaker.PurchasePrice, sneaker.Description,
		sneaker.UserID, sneaker.CreatedAt, sneaker.UpdatedAt)

	return translateError(err)
}

func (r *PostgresRepository) GetSneakerByID(ctx context.Context, id int64) (*models.Sneaker, error) {
	query := `SELECT * FROM sneakers WHERE id = $1`

	var sneaker models.Sneaker
	err := r.db.GetContext(ctx, &sneaker, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Sneaker not found
		}
		return nil, err
	}

	return &sneaker, nil
}

func (r *PostgresRepository) ListSneakers(ctx context.Context, filter models.SneakerFilter) ([]models.Sneaker, error) {
	query := `SELECT * FROM sneakers WHERE 1=1`
	args := []interface{}{}

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		query += fmt.Sprintf(` AND user_id = $%d`, len(args))
	}
	if filter.SKU != nil {
		args = append(args, *filter.SKU)
		query += fmt.Sprintf(` AND sku = $%d`, len(args))
	}
	if filter.Brand != nil {
		args = append(args, "%"+*filter.Brand+"%")
		query += fmt.Sprintf(` AND brand ILIKE $%d`, len(args))
	}
	if filter.Model != nil {
		args = append(args, "%"+*filter.Model+"%")
		query += fmt.Sprintf(` AND model ILIKE $%d`, len(args))
	}

	skip, limit := normalizePage(filter.Skip, filter.Limit)
	args = append(args, skip)
	query += fmt.Sprintf(` ORDER BY id OFFSET $%d`, len(args))
	args = append(args, limit)
	query += fmt.Sprintf(` LIMIT $%d`, len(args))

	sneakers := []models.Sneaker{}
	err := r.db.SelectContext(ctx, &sneakers, query, args...)
	if err != nil {
		return nil, err
	}

	return sneakers, nil
}

func (r *PostgresRepository) UpdateSneaker(ctx context.Context, id int64, upd models.SneakerUpdate) (*models.Sneaker, error) {
	sets := []string{}
	args := []interface{}{}

	addSet := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.SKU != nil {
		addSet("sku", *upd.SKU)
	}
	if upd.Brand != nil {
		addSet("brand", *upd.Brand)
	}
	if upd.Model != nil {
		addSet("model", *upd.Model)
	}
	if upd.Size != nil {
		addSet("size", *upd.Size)
	}
	if upd.Color != nil {
		addSet("color", *upd.Color)
	}
	if upd.PurchasePrice != nil {
		addSet("purchase_price", *upd.PurchasePrice)
	}
	if upd.Description != nil {
		addSet("description", *upd.Description)
	}
	if upd.UserID != nil {
		addSet("user_id", *upd.UserID)
	}

	if len(sets) == 0 {
		return r.GetSneakerByID(ctx, id)
	}

	addSet("updated_at", time.Now().UTC())
	args = append(args, id)

	query := fmt.Sprintf(
		`UPDATE sneakers SET %s WHERE id = $%d RETURNING *`,
		strings.Join(sets, ", "), len(args),
	)

	var sneaker models.Sneaker
	err := r.db.GetContext(ctx, &sneaker, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Sneaker not found
		}
		return nil, translateError(err)
	}

	return &sneaker, nil
}

func (r *PostgresRepository) DeleteSneaker(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sneakers WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: sneaker %d", apperrors.ErrNotFound, id)
	}

	return nil
}

// Proposition repository methods

func (r *PostgresRepository) CreateProposition(ctx context.Context, prop *models.Proposition) error {
	query := `
		INSERT INTO propositions (seller_id, buyer_id, sneaker_id, value, agreed_datetime, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	now := time.Now().UTC()
	prop.CreatedAt = now
	prop.UpdatedAt = now

	err := r.db.GetContext(ctx, &prop.ID, query,
		prop.SellerID, prop.BuyerID, prop.SneakerID,
		prop.Value, prop.AgreedDatetime, prop.CreatedAt, prop.UpdatedAt)

	return translateError(err)
}

func (r *PostgresRepository) GetPropositionByID(ctx context.Context, id int64) (*models.Proposition, error) {
	query := `SELECT * FROM propositions WHERE id = $1`

	var prop models.Proposition
	err := r.db.GetContext(ctx, &prop, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Proposition not found
		}
		return nil, err
	}

	return &prop, nil
}

func (r *PostgresRepository) ListPropositions(ctx context.Context, filter models.PropositionFilter) ([]models.Proposition, error) {
	query := `SELECT * FROM propositions WHERE 1=1`
	args := []interface{}{}

	if filter.SellerID != nil {
		args = append(args, *filter.SellerID)
		query += fmt.Sprintf(` AND seller_id = $%d`, len(args))
	}
	if filter.BuyerID != nil {
		args = append(args, *filter.BuyerID)
		query += fmt.Sprintf(` AND buyer_id = $%d`, len(args))
	}
	if filter.SneakerID != nil {
		args = append(args, *filter.SneakerID)
		query += fmt.Sprintf(` AND sneaker_id = $%d`, len(args))
	}

	skip, limit := normalizePage(filter.Skip, filter.Limit)
	args = append(args, skip)
	query += fmt.Sprintf(` ORDER BY id OFFSET $%d`, len(args))
	args = append(args, limit)
	query += fmt.Sprintf(` LIMIT $%d`, len(args))

	props := []models.Proposition{}
	err := r.db.SelectContext(ctx, &props, query, args...)
	if err != nil {
		return nil, err
	}

	return props, nil
}

// ListUserPropositions returns every proposition where the user is seller or
// buyer. Seller and buyer are always distinct, so no row can match twice.
func (r *PostgresRepository) ListUserPropositions(ctx context.Context, userID int64, skip, limit int) ([]models.Proposition, error) {
	skip, limit = normalizePage(skip, limit)

	query := `
		SELECT * FROM propositions
		WHERE seller_id = $1 OR buyer_id = $1
		ORDER BY id OFFSET $2 LIMIT $3
	`

	props := []models.Proposition{}
	err := r.db.SelectContext(ctx, &props, query, userID, skip, limit)
	if err != nil {
		return nil, err
	}

	return props, nil
}

func (r *PostgresRepository) UpdateProposition(ctx context.Context, id int64, upd models.PropositionUpdate) (*models.Proposition, error) {
	sets := []string{}
	args := []interface{}{}

	addSet := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.BuyerID != nil {
		addSet("buyer_id", *upd.BuyerID)
	}
	if upd.Value != nil {
		addSet("value", *upd.Value)
	}
	if upd.AgreedDatetime != nil {
		addSet("agreed_datetime", *upd.AgreedDatetime)
	}

	if len(sets) == 0 {
		return r.GetPropositionByID(ctx, id)
	}

	addSet("updated_at", time.Now().UTC())
	args = append(args, id)

	query := fmt.Sprintf(
		`UPDATE propositions SET %s WHERE id = $%d RETURNING *`,
		strings.Join(sets, ", "), len(args),
	)

	var prop models.Proposition
	err := r.db.GetContext(ctx, &prop, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Proposition not found
		}
		return nil, translateError(err)
	}

	return &prop, nil
}

func (r *PostgresRepository) DeleteProposition(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM propositions WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: proposition %d", apperrors.ErrNotFound, id)
	}

	return nil
}
