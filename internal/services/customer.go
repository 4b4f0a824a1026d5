package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"mechanic-system/internal/dto"
	"mechanic-system/internal/entities"
	"mechanic-system/internal/repositories"
	apperrors "mechanic-system/pkg/errors"
	"mechanic-system/pkg/utils"
)

type CustomerServiceInterface interface {
	GetCustomers(ctx context.Context, page utils.PageParams) ([]dto.CustomerDTO, error)
	FindCustomer(ctx context.Context, id uint64) (*dto.CustomerDTO, error)
	CreateCustomer(ctx context.Context, payload dto.CreateCustomerDTO) (*dto.CustomerDTO, error)
	UpdateCustomer(ctx context.Context, id uint64, payload dto.UpdateCustomerDTO) (*dto.CustomerDTO, error)
	DeleteCustomer(ctx context.Context, id uint64) error
	Login(ctx context.Context, payload dto.LoginDTO) (*entities.Customer, error)
}

type CustomerService struct {
	customerRepo repositories.CustomerRepositoryInterface
	ticketRepo   repositories.ServiceTicketRepositoryInterface
	txManager    repositories.TxManagerInterface
	logger       *zap.Logger
}

func NewCustomerService(
	customerRepo repositories.CustomerRepositoryInterface,
	ticketRepo repositories.ServiceTicketRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) CustomerServiceInterface {
	return &CustomerService{
		customerRepo: customerRepo,
		ticketRepo:   ticketRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

func (s *CustomerService) buildDTO(ctx context.Context, c entities.Customer) (*dto.CustomerDTO, error) {
	tickets, err := s.ticketRepo.GetTicketsByCustomer(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.ServiceTickets = tickets
	out := dto.NewCustomerDTO(c)
	return &out, nil
}

func (s *CustomerService) GetCustomers(ctx context.Context, page utils.PageParams) ([]dto.CustomerDTO, error) {
	customers, err := s.customerRepo.GetCustomers(ctx, page)
	if err != nil {
		return nil, err
	}

	out := make([]dto.CustomerDTO, 0, len(customers))
	for _, c := range customers {
		built, err := s.buildDTO(ctx, c)
		if err != nil {
			return nil, err
		}
		out = append(out, *built)
	}
	return out, nil
}

func (s *CustomerService) FindCustomer(ctx context.Context, id uint64) (*dto.CustomerDTO, error) {
	customer, err := s.customerRepo.FindCustomer(ctx, nil, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Customer not found.")
		}
		return nil, err
	}
	return s.buildDTO(ctx, *customer)
}

func (s *CustomerService) CreateCustomer(ctx context.Context, payload dto.CreateCustomerDTO) (*dto.CustomerDTO, error) {
	hash, err := utils.HashPassword(payload.Password)
	if err != nil {
		return nil, err
	}

	var created *entities.Customer
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		_, err := s.customerRepo.FindCustomerByEmail(ctx, tx, payload.Email)
		if err == nil {
			return apperrors.NewBadRequestError("Email already associated with an account.")
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}

		created, err = s.customerRepo.CreateCustomer(ctx, tx, entities.Customer{
			Name:     payload.Name,
			Email:    payload.Email,
			Phone:    payload.Phone,
			Password: hash,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("customer created", zap.Uint64("id", created.ID))
	return s.buildDTO(ctx, *created)
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, id uint64, payload dto.UpdateCustomerDTO) (*dto.CustomerDTO, error) {
	if payload.Password != nil {
		hash, err := utils.HashPassword(*payload.Password)
		if err != nil {
			return nil, err
		}
		payload.Password = &hash
	}

	var updated *entities.Customer
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		updated, err = s.customerRepo.UpdateCustomer(ctx, tx, id, payload)
		return err
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Customer not found.")
		}
		return nil, err
	}
	return s.buildDTO(ctx, *updated)
}

// DeleteCustomer removes the customer row; the customer's service tickets go
// with it via the FK cascade.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uint64) error {
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		return s.customerRepo.DeleteCustomer(ctx, tx, id)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("Customer not found.")
		}
		return err
	}
	return nil
}

// Login verifies the credentials and returns the matching customer. Absent
// customer and wrong password are indistinguishable to the caller.
func (s *CustomerService) Login(ctx context.Context, payload dto.LoginDTO) (*entities.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByEmail(ctx, nil, payload.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := utils.ComparePasswords(customer.Password, payload.Password); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return customer, nil
}
