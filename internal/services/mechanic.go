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

type MechanicServiceInterface interface {
	GetMechanics(ctx context.Context, page utils.PageParams) ([]dto.MechanicDTO, error)
	FindMechanic(ctx context.Context, id uint64) (*dto.MechanicDTO, error)
	CreateMechanic(ctx context.Context, payload dto.CreateMechanicDTO) (*dto.MechanicDTO, error)
	UpdateMechanic(ctx context.Context, id uint64, payload dto.UpdateMechanicDTO) (*dto.MechanicDTO, error)
	DeleteMechanic(ctx context.Context, id uint64) error
	GetMostActive(ctx context.Context) ([]dto.RankedMechanicDTO, error)
}

type MechanicService struct {
	mechanicRepo repositories.MechanicRepositoryInterface
	txManager    repositories.TxManagerInterface
	logger       *zap.Logger
}

func NewMechanicService(
	mechanicRepo repositories.MechanicRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) MechanicServiceInterface {
	return &MechanicService{
		mechanicRepo: mechanicRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

func (s *MechanicService) buildDTO(ctx context.Context, m entities.Mechanic) (*dto.MechanicDTO, error) {
	tickets, err := s.mechanicRepo.GetMechanicTickets(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	m.Tickets = tickets
	out := dto.NewMechanicDTO(m)
	return &out, nil
}

func (s *MechanicService) GetMechanics(ctx context.Context, page utils.PageParams) ([]dto.MechanicDTO, error) {
	mechanics, err := s.mechanicRepo.GetMechanics(ctx, page)
	if err != nil {
		return nil, err
	}

	out := make([]dto.MechanicDTO, 0, len(mechanics))
	for _, m := range mechanics {
		built, err := s.buildDTO(ctx, m)
		if err != nil {
			return nil, err
		}
		out = append(out, *built)
	}
	return out, nil
}

func (s *MechanicService) FindMechanic(ctx context.Context, id uint64) (*dto.MechanicDTO, error) {
	mechanic, err := s.mechanicRepo.FindMechanic(ctx, nil, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Mechanic not found.")
		}
		return nil, err
	}
	return s.buildDTO(ctx, *mechanic)
}

func (s *MechanicService) CreateMechanic(ctx context.Context, payload dto.CreateMechanicDTO) (*dto.MechanicDTO, error) {
	var created *entities.Mechanic
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		created, err = s.mechanicRepo.CreateMechanic(ctx, tx, entities.Mechanic{
			Name:   payload.Name,
			Email:  payload.Email,
			Phone:  payload.Phone,
			Salary: payload.Salary,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("mechanic created", zap.Uint64("id", created.ID))
	return s.buildDTO(ctx, *created)
}

func (s *MechanicService) UpdateMechanic(ctx context.Context, id uint64, payload dto.UpdateMechanicDTO) (*dto.MechanicDTO, error) {
	var updated *entities.Mechanic
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		updated, err = s.mechanicRepo.UpdateMechanic(ctx, tx, id, payload)
		return err
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Mechanic not found.")
		}
		return nil, err
	}
	return s.buildDTO(ctx, *updated)
}

func (s *MechanicService) DeleteMechanic(ctx context.Context, id uint64) error {
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		return s.mechanicRepo.DeleteMechanic(ctx, tx, id)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("Mechanic not found.")
		}
		return err
	}
	return nil
}

func (s *MechanicService) GetMostActive(ctx context.Context) ([]dto.RankedMechanicDTO, error) {
	ranked, err := s.mechanicRepo.GetMostActive(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.RankedMechanicDTO, 0, len(ranked))
	for _, m := range ranked {
		out = append(out, dto.NewRankedMechanicDTO(m))
	}
	return out, nil
}
