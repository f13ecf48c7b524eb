package address

import (
	"context"

	"foodbasket-be/internal/logger"
	"foodbasket-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the business logic for delivery addresses.
type Service interface {
	List(ctx context.Context) ([]*Address, error)
	Get(ctx context.Context, addressID uuid.UUID) (*Address, error)

	Create(ctx context.Context, input CreateAddressInput) (*Address, error)
	Update(ctx context.Context, input UpdateAddressInput) (*Address, error)
	Delete(ctx context.Context, addressID uuid.UUID) error

	SetDefaultAddress(ctx context.Context, addressID uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]*Address, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	return s.repo.GetByUserID(ctx, userID)
}

func (s *service) Get(ctx context.Context, addressID uuid.UUID) (*Address, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	addr, err := s.repo.GetByID(ctx, addressID)
	if err != nil {
		return nil, err
	}

	// Other users' addresses are indistinguishable from missing ones.
	if addr.UserID != userID || !addr.IsActive {
		return nil, ErrNotFound
	}

	return addr, nil
}

func (s *service) Create(ctx context.Context, input CreateAddressInput) (*Address, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("service", "Address"),
		zap.String("method", "Create"),
	)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	if input.Street == "" {
		return nil, ErrStreetRequired
	}
	if input.City == "" {
		return nil, ErrCityRequired
	}

	addr := &Address{
		ID:        uuid.New(),
		UserID:    userID,
		Street:    input.Street,
		City:      input.City,
		State:     input.State,
		ZipCode:   input.ZipCode,
		IsDefault: input.SetAsDefault,
	}

	if input.SetAsDefault {
		if err := s.repo.ClearDefault(ctx, userID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Create(ctx, addr); err != nil {
		log.Error("failed to create address", zap.Error(err))
		return nil, err
	}

	log.Info("address created", zap.String("address_id", addr.ID.String()))
	return addr, nil
}

func (s *service) Update(ctx context.Context, input UpdateAddressInput) (*Address, error) {
	addr, err := s.Get(ctx, input.AddressID)
	if err != nil {
		return nil, err
	}

	addr.Street = input.Street
	addr.City = input.City
	addr.State = input.State
	addr.ZipCode = input.ZipCode

	if err := s.repo.Update(ctx, addr); err != nil {
		return nil, err
	}

	if input.SetAsDefault && !addr.IsDefault {
		if err := s.SetDefaultAddress(ctx, addr.ID); err != nil {
			return nil, err
		}
		addr.IsDefault = true
	}

	return addr, nil
}

func (s *service) Delete(ctx context.Context, addressID uuid.UUID) error {
	if _, err := s.Get(ctx, addressID); err != nil {
		return err
	}
	return s.repo.Deactivate(ctx, addressID)
}

// SetDefaultAddress makes addressID the user's single default.
func (s *service) SetDefaultAddress(ctx context.Context, addressID uuid.UUID) error {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return ErrUnauthenticated
	}

	if err := s.repo.ClearDefault(ctx, userID); err != nil {
		return err
	}

	return s.repo.SetDefault(ctx, userID, addressID)
}
