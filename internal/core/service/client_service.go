package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/minicrm/crm-api/internal/core/domain"
	"github.com/minicrm/crm-api/internal/core/ports"
)

// ClientService implements CRM client use cases.
type ClientService struct {
	clients ports.ClientRepository
	logger  zerolog.Logger
}

func NewClientService(clients ports.ClientRepository, logger zerolog.Logger) *ClientService {
	return &ClientService{clients: clients, logger: logger}
}

func (s *ClientService) List(ctx context.Context) ([]*domain.Client, error) {
	return s.clients.List(ctx)
}

func (s *ClientService) Get(ctx context.Context, id string) (*domain.Client, error) {
	return s.clients.FindByID(ctx, id)
}

func (s *ClientService) Create(ctx context.Context, input ports.ClientInput) (*domain.Client, error) {
	now := time.Now().UTC()
	client := clientFromInput(input)
	client.CreatedAt = now
	client.UpdatedAt = now

	created, err := s.clients.Create(ctx, client)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("client_id", created.ID).Msg("client created")
	return created, nil
}

func (s *ClientService) Update(ctx context.Context, id string, input ports.ClientInput) (*domain.Client, error) {
	existing, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	client := clientFromInput(input)
	client.ID = existing.ID
	client.CreatedAt = existing.CreatedAt
	client.UpdatedAt = time.Now().UTC()

	return s.clients.Update(ctx, client)
}

func (s *ClientService) Delete(ctx context.Context, id string) error {
	return s.clients.Delete(ctx, id)
}

func clientFromInput(input ports.ClientInput) *domain.Client {
	return &domain.Client{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Company:   input.Company,
		Email:     normalizeEmail(input.Email),
		Phone:     input.Phone,
		Address: domain.PostalAddress{
			Street:     input.Address.Street,
			City:       input.Address.City,
			PostalCode: input.Address.PostalCode,
		},
	}
}
