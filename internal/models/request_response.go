package models

import "time"

// Request models
type RegisterRequest struct {
	Email      string  `json:"email" binding:"required,email"`
	Username   string  `json:"username" binding:"required"`
	Password   string  `json:"password" binding:"required,min=8"`
	FirstName  string  `json:"first_name" binding:"required"`
	MiddleName *string `json:"middle_name"`
	LastName   string  `json:"last_name" binding:"required"`
}

// UserUpdate carries a partial user update. Nil fields are left untouched.
// Password, when present, is re-hashed by the service before it reaches the
// repository.
type UserUpdate struct {
	Email      *string `json:"email" binding:"omitempty,email"`
	Username   *string `json:"username"`
	Password   *string `json:"password" binding:"omitempty,min=8"`
	FirstName  *string `json:"first_name"`
	MiddleName *string `json:"middle_name"`
	LastName   *string `json:"last_name"`
}

type SneakerCreate struct {
	SKU           string   `json:"sku" binding:"required,max=100"`
	Brand         string   `json:"brand" binding:"required,max=100"`
	Model         string   `json:"model" binding:"required,max=200"`
	Size          float64  `json:"size" binding:"required,gt=0"`
	Color         *string  `json:"color" binding:"omitempty,max=100"`
	PurchasePrice *float64 `json:"purchase_price" binding:"omitempty,gt=0"`
	Description   *string  `json:"description"`
	UserID        *int64   `json:"user_id"` // defaults to the caller when absent
}

// SneakerUpdate carries a partial sneaker update. Nil fields are left untouched.
type SneakerUpdate struct {
	SKU           *string  `json:"sku" binding:"omitempty,max=100"`
	Brand         *string  `json:"brand" binding:"omitempty,max=100"`
	Model         *string  `json:"model" binding:"omitempty,max=200"`
	Size          *float64 `json:"size" binding:"omitempty,gt=0"`
	Color         *string  `json:"color" binding:"omitempty,max=100"`
	PurchasePrice *float64 `json:"purchase_price" binding:"omitempty,gt=0"`
	Description   *string  `json:"description"`
	UserID        *int64   `json:"user_id"`
}

type PropositionCreate struct {
	SellerID       int64      `json:"seller_id" binding:"required"`
	BuyerID        *int64     `json:"buyer_id"`
	SneakerID      int64      `json:"sneaker_id" binding:"required"`
	Value          float64    `json:"value" binding:"required,gt=0"`
	AgreedDatetime *time.Time `json:"agreed_datetime"`
}

// PropositionUpdate carries a partial proposition update. Nil fields are left
// untouched; setting AgreedDatetime closes the proposition.
type PropositionUpdate struct {
	BuyerID        *int64     `json:"buyer_id"`
	Value          *float64   `json:"value" binding:"omitempty,gt=0"`
	AgreedDatetime *time.Time `json:"agreed_datetime"`
}

// Query filters
type SneakerFilter struct {
	UserID *int64  `form:"user_id"`
	SKU    *string `form:"sku"`
	Brand  *string `form:"brand"`
	Model  *string `form:"model"`
	Skip   int     `form:"skip"`
	Limit  int     `form:"limit"`
}

type PropositionFilter struct {
	SellerID  *int64 `form:"seller_id"`
	BuyerID   *int64 `form:"buyer_id"`
	SneakerID *int64 `form:"sneaker_id"`
	Skip      int    `form:"skip"`
	Limit     int    `form:"limit"`
}

type PageQuery struct {
	Skip  int `form:"skip"`
	Limit int `form:"limit"`
}

// Response models
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Error    string `json:"error,omitempty"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
