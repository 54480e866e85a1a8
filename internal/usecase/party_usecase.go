package usecase

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/okhan/bookledger/internal/domain"
)

// PartyUseCase handles party management. It never touches balances; those
// belong to the LedgerUseCase.
type PartyUseCase struct {
	partyRepo PartyRepository
	cache     Cache
}

// NewPartyUseCase creates a new PartyUseCase. The cache is optional.
func NewPartyUseCase(partyRepo PartyRepository, cache Cache) *PartyUseCase {
	return &PartyUseCase{
		partyRepo: partyRepo,
		cache:     cache,
	}
}

// CreatePartyInput represents input for creating a party.
type CreatePartyInput struct {
	Role    domain.Role
	Name    string
	Phone   string
	CNIC    string
	Email   string
	Address string
}

// CreateParty creates a new party with a zero balance.
func (uc *PartyUseCase) CreateParty(ctx context.Context, input CreatePartyInput) (*domain.Party, error) {
	if !input.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	if err := uc.validateContact(input.Name, input.Phone, input.CNIC, input.Email); err != nil {
		return nil, err
	}

	party := &domain.Party{
		Role:    input.Role,
		Name:    input.Name,
		Phone:   input.Phone,
		CNIC:    input.CNIC,
		Email:   input.Email,
		Address: input.Address,
		Balance: decimal.Zero,
	}

	if err := uc.partyRepo.Create(ctx, party); err != nil {
		return nil, err
	}

	return party, nil
}

// GetParty retrieves a party by ID, serving cached snapshots when available.
func (uc *PartyUseCase) GetParty(ctx context.Context, id int64) (*domain.Party, error) {
	if uc.cache != nil {
		if data, err := uc.cache.Get(ctx, PartyCacheKey(id)); err == nil {
			var party domain.Party
			if err := json.Unmarshal(data, &party); err == nil {
				return &party, nil
			}
		}
	}

	party, err := uc.partyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if data, err := json.Marshal(party); err == nil {
			_ = uc.cache.Set(ctx, PartyCacheKey(id), data, PartyCacheTTL)
		}
	}

	return party, nil
}

// UpdatePartyInput represents input for updating a party's contact fields.
type UpdatePartyInput struct {
	ID      int64
	Name    string
	Phone   string
	CNIC    string
	Email   string
	Address string
}

// UpdateParty updates a party's contact fields. The balance is left alone.
func (uc *PartyUseCase) UpdateParty(ctx context.Context, input UpdatePartyInput) (*domain.Party, error) {
	if err := uc.validateContact(input.Name, input.Phone, input.CNIC, input.Email); err != nil {
		return nil, err
	}

	party, err := uc.partyRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	party.Name = input.Name
	party.Phone = input.Phone
	party.CNIC = input.CNIC
	party.Email = input.Email
	party.Address = input.Address

	if err := uc.partyRepo.UpdateContact(ctx, party); err != nil {
		return nil, err
	}

	uc.invalidate(ctx, input.ID)

	return party, nil
}

// DeleteParty removes the party row. Its transaction log is kept: the ledger
// is append-only history.
func (uc *PartyUseCase) DeleteParty(ctx context.Context, id int64) error {
	if err := uc.partyRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.invalidate(ctx, id)

	return nil
}

// ListParties lists parties with filtering, sorting and pagination.
func (uc *PartyUseCase) ListParties(ctx context.Context, filter PartyFilter) ([]*domain.Party, error) {
	if filter.Role != "" && !filter.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	filter.Limit, filter.Offset = domain.ValidatePagination(filter.Limit, filter.Offset)

	return uc.partyRepo.List(ctx, filter)
}

func (uc *PartyUseCase) validateContact(name, phone, cnic, email string) error {
	if err := domain.ValidatePartyName(name); err != nil {
		return err
	}

	if err := domain.ValidatePhone(phone); err != nil {
		return err
	}

	if err := domain.ValidateCNIC(cnic); err != nil {
		return err
	}

	return domain.ValidateEmail(email)
}

func (uc *PartyUseCase) invalidate(ctx context.Context, id int64) {
	if uc.cache == nil {
		return
	}

	_ = uc.cache.Delete(ctx, PartyCacheKey(id))
}
