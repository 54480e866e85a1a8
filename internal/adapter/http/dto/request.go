package dto

import (
	"github.com/shopspring/decimal"

	"github.com/okhan/bookledger/internal/domain"
	"github.com/okhan/bookledger/internal/usecase"
)

// CreatePartyRequest represents a request to register a customer or supplier.
type CreatePartyRequest struct {
	Role    string `json:"role"`
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	CNIC    string `json:"cnic,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreatePartyRequest) ToUseCaseInput() usecase.CreatePartyInput {
	return usecase.CreatePartyInput{
		Role:    domain.Role(r.Role),
		Name:    r.Name,
		Phone:   r.Phone,
		CNIC:    r.CNIC,
		Email:   r.Email,
		Address: r.Address,
	}
}

// UpdatePartyRequest represents a request to update a party's contact details.
type UpdatePartyRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	CNIC    string `json:"cnic,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdatePartyRequest) ToUseCaseInput(id int64) usecase.UpdatePartyInput {
	return usecase.UpdatePartyInput{
		ID:      id,
		Name:    r.Name,
		Phone:   r.Phone,
		CNIC:    r.CNIC,
		Email:   r.Email,
		Address: r.Address,
	}
}

// SettleUpRequest represents a payment between the shop and a party.
type SettleUpRequest struct {
	PartyID   int64           `json:"party_id"`
	Role      string          `json:"role"`
	Direction string          `json:"direction"`
	Amount    decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *SettleUpRequest) ToUseCaseInput() usecase.SettleUpInput {
	return usecase.SettleUpInput{
		PartyID:   r.PartyID,
		Role:      domain.Role(r.Role),
		Direction: domain.Direction(r.Direction),
		Amount:    r.Amount,
	}
}

// TransferRequest represents a balance transfer between two parties of the
// same role.
type TransferRequest struct {
	SourcePartyID   int64           `json:"source_party_id"`
	ReceiverPartyID int64           `json:"receiver_party_id"`
	Role            string          `json:"role"`
	Amount          decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *TransferRequest) ToUseCaseInput() usecase.TransferInput {
	return usecase.TransferInput{
		SourcePartyID:   r.SourcePartyID,
		ReceiverPartyID: r.ReceiverPartyID,
		Role:            domain.Role(r.Role),
		Amount:          r.Amount,
	}
}
