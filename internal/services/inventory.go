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

type InventoryServiceInterface interface {
	GetParts(ctx context.Context, page utils.PageParams) ([]dto.PartDTO, error)
	FindPart(ctx context.Context, id uint64) (*dto.PartDTO, error)
	CreatePart(ctx context.Context, payload dto.CreatePartDTO) (*dto.PartDTO, error)
	UpdatePart(ctx context.Context, id uint64, payload dto.UpdatePartDTO) (*dto.PartDTO, error)
	DeletePart(ctx context.Context, id uint64) error
}

type InventoryService struct {
	inventoryRepo repositories.InventoryRepositoryInterface
	txManager     repositories.TxManagerInterface
	logger        *zap.Logger
}

func NewInventoryService(
	inventoryRepo repositories.InventoryRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) InventoryServiceInterface {
	return &InventoryService{
		inventoryRepo: inventoryRepo,
		txManager:     txManager,
		logger:        logger,
	}
}

func (s *InventoryService) buildDTO(ctx context.Context, p entities.Part) (*dto.PartDTO, error) {
	tickets, err := s.inventoryRepo.GetPartTickets(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Tickets = tickets
	out := dto.NewPartDTO(p)
	return &out, nil
}

func (s *InventoryService) GetParts(ctx context.Context, page utils.PageParams) ([]dto.PartDTO, error) {
	parts, err := s.inventoryRepo.GetParts(ctx, page)
	if err != nil {
		return nil, err
	}

	out := make([]dto.PartDTO, 0, len(parts))
	for _, p := range parts {
		built, err := s.buildDTO(ctx, p)
		if err != nil {
			return nil, err
		}
		out = append(out, *built)
	}
	return out, nil
}

func (s *InventoryService) FindPart(ctx context.Context, id uint64) (*dto.PartDTO, error) {
	part, err := s.inventoryRepo.FindPart(ctx, nil, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Part not found.")
		}
		return nil, err
	}
	return s.buildDTO(ctx, *part)
}

func (s *InventoryService) CreatePart(ctx context.Context, payload dto.CreatePartDTO) (*dto.PartDTO, error) {
	part := entities.Part{Name: payload.Name, Price: *payload.Price}
	if payload.Quantity != nil {
		part.Quantity = *payload.Quantity
	}

	var created *entities.Part
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		created, err = s.inventoryRepo.CreatePart(ctx, tx, part)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("inventory part created", zap.Uint64("id", created.ID))
	return s.buildDTO(ctx, *created)
}

func (s *InventoryService) UpdatePart(ctx context.Context, id uint64, payload dto.UpdatePartDTO) (*dto.PartDTO, error) {
	var updated *entities.Part
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		updated, err = s.inventoryRepo.UpdatePart(ctx, tx, id, payload)
		return err
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Part not found.")
		}
		return nil, err
	}
	return s.buildDTO(ctx, *updated)
}

func (s *InventoryService) DeletePart(ctx context.Context, id uint64) error {
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		return s.inventoryRepo.DeletePart(ctx, tx, id)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("Part not found.")
		}
		return err
	}
	return nil
}
