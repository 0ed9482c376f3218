package models

import (
	"time"
)

// User represents a registered account. The id never changes once created;
// profile fields are mutable.
type User struct {
	ID             int64     `db:"id" json:"id"`
	Email          string    `db:"email" json:"email"`
	Username       string    `db:"username" json:"username"`
	HashedPassword string    `db:"hashed_password" json:"-"` // Password hash, never returned in JSON
	FirstName      string    `db:"first_name" json:"first_name"`
	MiddleName     *string   `db:"middle_name" json:"middle_name,omitempty"`
	LastName       string    `db:"last_name" json:"last_name"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Sneaker represents an inventory item owned by exactly one user.
type Sneaker struct {
	ID            int64     `db:"id" json:"id"`
	SKU           string    `db:"sku" json:"sku"`
	Brand         string    `db:"brand" json:"brand"`
	Model         string    `db:"model" json:"model"`
	Size          float64   `db:"size" json:"size"`
	Color         *string   `db:"color" json:"color,omitempty"`
	PurchasePrice *float64  `db:"purchase_price" json:"purchase_price,omitempty"`
	Description   *string   `db:"description" json:"description,omitempty"`
	UserID        int64     `db:"user_id" json:"user_id"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// Proposition represents a negotiation over one sneaker between a seller and
// an optional buyer. A nil BuyerID means the proposition is open to anyone.
// A non-nil AgreedDatetime means the proposition is closed and immutable.
type Proposition struct {
	ID             int64      `db:"id" json:"id"`
	SellerID       int64      `db:"seller_id" json:"seller_id"`
	BuyerID        *int64     `db:"buyer_id" json:"buyer_id"`
	SneakerID      int64      `db:"sneaker_id" json:"sneaker_id"`
	Value          float64    `db:"value" json:"value"`
	AgreedDatetime *time.Time `db:"agreed_datetime" json:"agreed_datetime"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// IsOpen reports whether the proposition has no buyer assigned yet.
func (p *Proposition) IsOpen() bool {
	return p.BuyerID == nil
}

// IsClosed reports whether agreement has been reached. Closed propositions
// accept no further updates.
func (p *Proposition) IsClosed() bool {
	return p.AgreedDatetime != nil
}

// IsParty reports whether the given user is the seller or the buyer.
func (p *Proposition) IsParty(userID int64) bool {
	if p.SellerID == userID {
		return true
	}
	return p.BuyerID != nil && *p.BuyerID == userID
}
