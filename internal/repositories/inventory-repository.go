package repositories

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"mechanic-system/internal/dto"
	"mechanic-system/internal/entities"
	apperrors "mechanic-system/pkg/errors"
	"mechanic-system/pkg/utils"
)

const (
	inventoryTable  = "inventory"
	inventoryFields = "id, name, price, quantity"
)

type InventoryRepositoryInterface interface {
	GetParts(ctx context.Context, page utils.PageParams) ([]entities.Part, error)
	FindPart(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Part, error)
	CreatePart(ctx context.Context, tx pgx.Tx, p entities.Part) (*entities.Part, error)
	UpdatePart(ctx context.Context, tx pgx.Tx, id uint64, payload dto.UpdatePartDTO) (*entities.Part, error)
	DeletePart(ctx context.Context, tx pgx.Tx, id uint64) error
	GetPartTickets(ctx context.Context, partID uint64) ([]entities.ServiceTicket, error)
}

type inventoryRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewInventoryRepository(storage *pgxpool.Pool, logger *zap.Logger) InventoryRepositoryInterface {
	return &inventoryRepository{storage: storage, logger: logger}
}

func (r *inventoryRepository) getQuerier(tx pgx.Tx) querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

func (r *inventoryRepository) scanRow(row pgx.Row) (*entities.Part, error) {
	var p entities.Part
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *inventoryRepository) GetParts(ctx context.Context, page utils.PageParams) ([]entities.Part, error) {
	builder := psql.Select(inventoryFields).From(inventoryTable).OrderBy("id")
	if page.Requested {
		builder = builder.Limit(page.Limit).Offset(page.Offset)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	parts := make([]entities.Part, 0)
	for rows.Next() {
		var p entities.Part
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Quantity); err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}
	return parts, rows.Err()
}

func (r *inventoryRepository) FindPart(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Part, error) {
	query, args, err := psql.Select(inventoryFields).From(inventoryTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return r.scanRow(r.getQuerier(tx).QueryRow(ctx, query, args...))
}

func (r *inventoryRepository) CreatePart(ctx context.Context, tx pgx.Tx, p entities.Part) (*entities.Part, error) {
	query, args, err := psql.Insert(inventoryTable).
		Columns("name", "price", "quantity").
		Values(p.Name, p.Price, p.Quantity).
		Suffix("RETURNING " + inventoryFields).
		ToSql()
	if err != nil {
		return nil, err
	}
	return r.scanRow(r.getQuerier(tx).QueryRow(ctx, query, args...))
}

func (r *inventoryRepository) UpdatePart(ctx context.Context, tx pgx.Tx, id uint64, payload dto.UpdatePartDTO) (*entities.Part, error) {
	builder := psql.Update(inventoryTable)
	changed := false
	if payload.Name != nil {
		builder = builder.Set("name", *payload.Name)
		changed = true
	}
	if payload.Price != nil {
		builder = builder.Set("price", *payload.Price)
		changed = true
	}
	if payload.Quantity != nil {
		builder = builder.Set("quantity", *payload.Quantity)
		changed = true
	}
	if !changed {
		return r.FindPart(ctx, tx, id)
	}

	query, args, err := builder.Where(sq.Eq{"id": id}).Suffix("RETURNING " + inventoryFields).ToSql()
	if err != nil {
		return nil, err
	}
	return r.scanRow(r.getQuerier(tx).QueryRow(ctx, query, args...))
}

func (r *inventoryRepository) DeletePart(ctx context.Context, tx pgx.Tx, id uint64) error {
	query, args, err := psql.Delete(inventoryTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}

	result, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *inventoryRepository) GetPartTickets(ctx context.Context, partID uint64) ([]entities.ServiceTicket, error) {
	query, args, err := psql.
		Select("t.id, t.vin, t.service_date, t.service_desc, t.customer_id").
		From(ticketTable + " t").
		Join("service_ticket_inventory sti ON sti.ticket_id = t.id").
		Where(sq.Eq{"sti.inventory_id": partID}).
		OrderBy("t.id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTicketRows(rows)
}
