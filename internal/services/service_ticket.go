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

type ServiceTicketServiceInterface interface {
	GetTickets(ctx context.Context, page utils.PageParams) ([]dto.ServiceTicketDTO, error)
	GetMyTickets(ctx context.Context, customerID uint64) ([]dto.ServiceTicketDTO, error)
	FindTicket(ctx context.Context, id uint64) (*dto.ServiceTicketDTO, error)
	CreateTicket(ctx context.Context, payload dto.CreateServiceTicketDTO) (*dto.ServiceTicketDTO, error)
	UpdateTicket(ctx context.Context, id uint64, payload dto.UpdateServiceTicketDTO) (*dto.ServiceTicketDTO, error)
	DeleteTicket(ctx context.Context, id uint64) error
	AssignMechanic(ctx context.Context, ticketID, mechanicID uint64) (*dto.ServiceTicketDTO, bool, error)
	RemoveMechanic(ctx context.Context, ticketID, mechanicID uint64) (*dto.ServiceTicketDTO, error)
	AddPart(ctx context.Context, actorID, ticketID, partID uint64) (*dto.ServiceTicketDTO, error)
}

type ServiceTicketService struct {
	ticketRepo    repositories.ServiceTicketRepositoryInterface
	customerRepo  repositories.CustomerRepositoryInterface
	mechanicRepo  repositories.MechanicRepositoryInterface
	inventoryRepo repositories.InventoryRepositoryInterface
	txManager     repositories.TxManagerInterface
	logger        *zap.Logger
}

func NewServiceTicketService(
	ticketRepo repositories.ServiceTicketRepositoryInterface,
	customerRepo repositories.CustomerRepositoryInterface,
	mechanicRepo repositories.MechanicRepositoryInterface,
	inventoryRepo repositories.InventoryRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) ServiceTicketServiceInterface {
	return &ServiceTicketService{
		ticketRepo:    ticketRepo,
		customerRepo:  customerRepo,
		mechanicRepo:  mechanicRepo,
		inventoryRepo: inventoryRepo,
		txManager:     txManager,
		logger:        logger,
	}
}

// buildDTO expands the ticket one level deep: owning customer plus assigned
// mechanics and parts, each in their short form.
func (s *ServiceTicketService) buildDTO(ctx context.Context, t entities.ServiceTicket) (*dto.ServiceTicketDTO, error) {
	customer, err := s.customerRepo.FindCustomer(ctx, nil, t.CustomerID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	t.Customer = customer

	if t.Mechanics, err = s.ticketRepo.GetTicketMechanics(ctx, nil, t.ID); err != nil {
		return nil, err
	}
	if t.Parts, err = s.ticketRepo.GetTicketParts(ctx, nil, t.ID); err != nil {
		return nil, err
	}

	out := dto.NewServiceTicketDTO(t)
	return &out, nil
}

func (s *ServiceTicketService) buildDTOs(ctx context.Context, tickets []entities.ServiceTicket) ([]dto.ServiceTicketDTO, error) {
	out := make([]dto.ServiceTicketDTO, 0, len(tickets))
	for _, t := range tickets {
		built, err := s.buildDTO(ctx, t)
		if err != nil {
			return nil, err
		}
		out = append(out, *built)
	}
	return out, nil
}

func (s *ServiceTicketService) GetTickets(ctx context.Context, page utils.PageParams) ([]dto.ServiceTicketDTO, error) {
	tickets, err := s.ticketRepo.GetTickets(ctx, page)
	if err != nil {
		return nil, err
	}
	return s.buildDTOs(ctx, tickets)
}

func (s *ServiceTicketService) GetMyTickets(ctx context.Context, customerID uint64) ([]dto.ServiceTicketDTO, error) {
	tickets, err := s.ticketRepo.GetTicketsByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return s.buildDTOs(ctx, tickets)
}

func (s *ServiceTicketService) FindTicket(ctx context.Context, id uint64) (*dto.ServiceTicketDTO, error) {
	ticket, err := s.ticketRepo.FindTicket(ctx, nil, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Service ticket not found.")
		}
		return nil, err
	}
	return s.buildDTO(ctx, *ticket)
}

func (s *ServiceTicketService) CreateTicket(ctx context.Context, payload dto.CreateServiceTicketDTO) (*dto.ServiceTicketDTO, error) {
	var created *entities.ServiceTicket
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := s.customerRepo.FindCustomer(ctx, tx, payload.CustomerID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewNotFoundError("Customer not found.")
			}
			return err
		}

		var err error
		created, err = s.ticketRepo.CreateTicket(ctx, tx, entities.ServiceTicket{
			VIN:         payload.VIN,
			ServiceDate: payload.ServiceDate,
			ServiceDesc: payload.ServiceDesc,
			CustomerID:  payload.CustomerID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("service ticket created", zap.Uint64("id", created.ID), zap.Uint64("customer_id", created.CustomerID))
	return s.buildDTO(ctx, *created)
}

func (s *ServiceTicketService) UpdateTicket(ctx context.Context, id uint64, payload dto.UpdateServiceTicketDTO) (*dto.ServiceTicketDTO, error) {
	var updated *entities.ServiceTicket
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		updated, err = s.ticketRepo.UpdateTicket(ctx, tx, id, payload)
		return err
	})
	if err != nil {
		// A 23503 from a reassigned customer_id is already shaped as
		// "Customer not found." by the repository.
		var httpErr *apperrors.HttpError
		if errors.As(err, &httpErr) {
			return nil, err
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Service ticket not found.")
		}
		return nil, err
	}
	return s.buildDTO(ctx, *updated)
}

func (s *ServiceTicketService) DeleteTicket(ctx context.Context, id uint64) error {
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		return s.ticketRepo.DeleteTicket(ctx, tx, id)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("Service ticket not found.")
		}
		return err
	}
	return nil
}

// AssignMechanic toggles the mechanic onto the ticket. The second return
// value reports that the mechanic was already assigned, which is a no-op
// success rather than an error.
func (s *ServiceTicketService) AssignMechanic(ctx context.Context, ticketID, mechanicID uint64) (*dto.ServiceTicketDTO, bool, error) {
	already := false
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := s.ticketRepo.FindTicket(ctx, tx, ticketID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewNotFoundError("Service ticket not found.")
			}
			return err
		}
		if _, err := s.mechanicRepo.FindMechanic(ctx, tx, mechanicID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewNotFoundError("Mechanic not found.")
			}
			return err
		}

		assigned, err := s.ticketRepo.MechanicAssigned(ctx, tx, ticketID, mechanicID)
		if err != nil {
			return err
		}
		if assigned {
			already = true
			return nil
		}
		return s.ticketRepo.AssignMechanic(ctx, tx, ticketID, mechanicID)
	})
	if err != nil {
		return nil, false, err
	}
	if already {
		return nil, true, nil
	}

	ticket, err := s.ticketRepo.FindTicket(ctx, nil, ticketID)
	if err != nil {
		return nil, false, err
	}
	built, err := s.buildDTO(ctx, *ticket)
	return built, false, err
}

func (s *ServiceTicketService) RemoveMechanic(ctx context.Context, ticketID, mechanicID uint64) (*dto.ServiceTicketDTO, error) {
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := s.ticketRepo.FindTicket(ctx, tx, ticketID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewNotFoundError("Service ticket not found.")
			}
			return err
		}
		if _, err := s.mechanicRepo.FindMechanic(ctx, tx, mechanicID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewNotFoundError("Mechanic not found.")
			}
			return err
		}

		removed, err := s.ticketRepo.RemoveMechanic(ctx, tx, ticketID, mechanicID)
		if err != nil {
			return err
		}
		if !removed {
			return apperrors.ErrMechanicNotAssigned
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ticket, err := s.ticketRepo.FindTicket(ctx, nil, ticketID)
	if err != nil {
		return nil, err
	}
	return s.buildDTO(ctx, *ticket)
}

// AddPart requires the acting customer to own the ticket.
func (s *ServiceTicketService) AddPart(ctx context.Context, actorID, ticketID, partID uint64) (*dto.ServiceTicketDTO, error) {
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		ticket, err := s.ticketRepo.FindTicket(ctx, tx, ticketID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewNotFoundError("Service ticket not found.")
			}
			return err
		}
		if ticket.CustomerID != actorID {
			return apperrors.NewForbiddenError("Not authorized to modify this ticket")
		}

		if _, err := s.inventoryRepo.FindPart(ctx, tx, partID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewNotFoundError("Part not found.")
			}
			return err
		}

		onTicket, err := s.ticketRepo.PartOnTicket(ctx, tx, ticketID, partID)
		if err != nil {
			return err
		}
		if onTicket {
			return apperrors.NewBadRequestError("Part already assigned to this ticket.")
		}
		return s.ticketRepo.AddPart(ctx, tx, ticketID, partID)
	})
	if err != nil {
		return nil, err
	}

	ticket, err := s.ticketRepo.FindTicket(ctx, nil, ticketID)
	if err != nil {
		return nil, err
	}
	return s.buildDTO(ctx, *ticket)
}
