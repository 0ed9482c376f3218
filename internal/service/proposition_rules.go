package service

import (
	"fmt"

	"github.com/solemate/sneaker-market/internal/apperrors"
	"github.com/solemate/sneaker-market/internal/models"
)

// Proposition authorization and state rules. Each function decides one
// operation for an already-fetched proposition (or a create request) and a
// caller identity. They own no storage and can be tested without a database
// or an HTTP layer.
//
// States: open (no buyer), pending (buyer set, not agreed), closed (agreed).
// Closed is terminal: no update is permitted regardless of caller.

// CanCreateProposition decides whether the caller may create the proposition
// described by req. With a buyer named, the caller must be one of the two
// parties and the parties must differ; without one, only the seller may open
// the offer.
func CanCreateProposition(callerID int64, req models.PropositionCreate) error {
	if req.BuyerID != nil {
		if callerID != req.SellerID && callerID != *req.BuyerID {
			return fmt.Errorf("%w: you must be either the seller or buyer to create this proposition", apperrors.ErrForbidden)
		}
		if req.SellerID == *req.BuyerID {
			return fmt.Errorf("%w: seller and buyer must be different users", apperrors.ErrInvalidArgument)
		}
	} else if callerID != req.SellerID {
		return fmt.Errorf("%w: you can only create open propositions as the seller", apperrors.ErrForbidden)
	}

	if req.Value <= 0 {
		return fmt.Errorf("%w: value must be positive", apperrors.ErrInvalidArgument)
	}

	return nil
}

// CanReadProposition decides visibility. Open propositions are visible to any
// authenticated caller; once a buyer is set, only the two parties may read.
func CanReadProposition(callerID int64, prop *models.Proposition) error {
	if prop.IsOpen() {
		return nil
	}
	if !prop.IsParty(callerID) {
		return fmt.Errorf("%w: you don't have access to this proposition", apperrors.ErrForbidden)
	}
	return nil
}

// CanUpdateProposition decides whether the caller may apply upd. The closed
// check comes first: an agreed proposition is immutable for everyone,
// including its own parties.
func CanUpdateProposition(callerID int64, prop *models.Proposition, upd models.PropositionUpdate) error {
	if prop.IsClosed() {
		return fmt.Errorf("%w: cannot update a proposition that has been agreed", apperrors.ErrInvalidState)
	}
	if !prop.IsParty(callerID) {
		return fmt.Errorf("%w: you don't have permission to update this proposition", apperrors.ErrForbidden)
	}
	if upd.BuyerID != nil && *upd.BuyerID == prop.SellerID {
		return fmt.Errorf("%w: seller and buyer must be different users", apperrors.ErrInvalidArgument)
	}
	if upd.Value != nil && *upd.Value <= 0 {
		return fmt.Errorf("%w: value must be positive", apperrors.ErrInvalidArgument)
	}
	return nil
}

// CanDeleteProposition decides whether the caller may delete. Either party
// may, and closed propositions remain deletable: closing freezes the terms
// but does not take away a party's right to remove the record.
func CanDeleteProposition(callerID int64, prop *models.Proposition) error {
	if !prop.IsParty(callerID) {
		return fmt.Errorf("%w: you don't have permission to delete this proposition", apperrors.ErrForbidden)
	}
	return nil
}
