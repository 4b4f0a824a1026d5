package repositories

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"mechanic-system/internal/dto"
	"mechanic-system/internal/entities"
	apperrors "mechanic-system/pkg/errors"
	"mechanic-system/pkg/utils"
)

const (
	ticketTable     = "service_tickets"
	ticketFields    = "id, vin, service_date, service_desc, customer_id"
	ticketMechanics = "service_mechanics"
	ticketInventory = "service_ticket_inventory"
)

type ServiceTicketRepositoryInterface interface {
	GetTickets(ctx context.Context, page utils.PageParams) ([]entities.ServiceTicket, error)
	GetTicketsByCustomer(ctx context.Context, customerID uint64) ([]entities.ServiceTicket, error)
	FindTicket(ctx context.Context, tx pgx.Tx, id uint64) (*entities.ServiceTicket, error)
	CreateTicket(ctx context.Context, tx pgx.Tx, t entities.ServiceTicket) (*entities.ServiceTicket, error)
	UpdateTicket(ctx context.Context, tx pgx.Tx, id uint64, payload dto.UpdateServiceTicketDTO) (*entities.ServiceTicket, error)
	DeleteTicket(ctx context.Context, tx pgx.Tx, id uint64) error

	MechanicAssigned(ctx context.Context, tx pgx.Tx, ticketID, mechanicID uint64) (bool, error)
	AssignMechanic(ctx context.Context, tx pgx.Tx, ticketID, mechanicID uint64) error
	RemoveMechanic(ctx context.Context, tx pgx.Tx, ticketID, mechanicID uint64) (bool, error)
	PartOnTicket(ctx context.Context, tx pgx.Tx, ticketID, partID uint64) (bool, error)
	AddPart(ctx context.Context, tx pgx.Tx, ticketID, partID uint64) error

	GetTicketMechanics(ctx context.Context, tx pgx.Tx, ticketID uint64) ([]entities.Mechanic, error)
	GetTicketParts(ctx context.Context, tx pgx.Tx, ticketID uint64) ([]entities.Part, error)
}

type serviceTicketRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewServiceTicketRepository(storage *pgxpool.Pool, logger *zap.Logger) ServiceTicketRepositoryInterface {
	return &serviceTicketRepository{storage: storage, logger: logger}
}

func (r *serviceTicketRepository) getQuerier(tx pgx.Tx) querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

func scanTicketRows(rows pgx.Rows) ([]entities.ServiceTicket, error) {
	tickets := make([]entities.ServiceTicket, 0)
	for rows.Next() {
		var t entities.ServiceTicket
		if err := rows.Scan(&t.ID, &t.VIN, &t.ServiceDate, &t.ServiceDesc, &t.CustomerID); err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

func (r *serviceTicketRepository) scanRow(row pgx.Row) (*entities.ServiceTicket, error) {
	var t entities.ServiceTicket
	err := row.Scan(&t.ID, &t.VIN, &t.ServiceDate, &t.ServiceDesc, &t.CustomerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *serviceTicketRepository) GetTickets(ctx context.Context, page utils.PageParams) ([]entities.ServiceTicket, error) {
	builder := psql.Select(ticketFields).From(ticketTable).OrderBy("id")
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

	return scanTicketRows(rows)
}

func (r *serviceTicketRepository) GetTicketsByCustomer(ctx context.Context, customerID uint64) ([]entities.ServiceTicket, error) {
	query, args, err := psql.Select(ticketFields).From(ticketTable).
		Where(sq.Eq{"customer_id": customerID}).
		OrderBy("id").
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

func (r *serviceTicketRepository) FindTicket(ctx context.Context, tx pgx.Tx, id uint64) (*entities.ServiceTicket, error) {
	query, args, err := psql.Select(ticketFields).From(ticketTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return r.scanRow(r.getQuerier(tx).QueryRow(ctx, query, args...))
}

func (r *serviceTicketRepository) CreateTicket(ctx context.Context, tx pgx.Tx, t entities.ServiceTicket) (*entities.ServiceTicket, error) {
	query, args, err := psql.Insert(ticketTable).
		Columns("vin", "service_date", "service_desc", "customer_id").
		Values(t.VIN, t.ServiceDate, t.ServiceDesc, t.CustomerID).
		Suffix("RETURNING " + ticketFields).
		ToSql()
	if err != nil {
		return nil, err
	}

	created, err := r.scanRow(r.getQuerier(tx).QueryRow(ctx, query, args...))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, apperrors.NewNotFoundError("Customer not found.")
		}
		return nil, err
	}
	return created, nil
}

func (r *serviceTicketRepository) UpdateTicket(ctx context.Context, tx pgx.Tx, id uint64, payload dto.UpdateServiceTicketDTO) (*entities.ServiceTicket, error) {
	builder := psql.Update(ticketTable)
	changed := false
	if payload.VIN != nil {
		builder = builder.Set("vin", *payload.VIN)
		changed = true
	}
	if payload.ServiceDate.Valid {
		builder = builder.Set("service_date", payload.ServiceDate)
		changed = true
	}
	if payload.ServiceDesc.Valid {
		builder = builder.Set("service_desc", payload.ServiceDesc)
		changed = true
	}
	if payload.CustomerID != nil {
		builder = builder.Set("customer_id", *payload.CustomerID)
		changed = true
	}
	if !changed {
		return r.FindTicket(ctx, tx, id)
	}

	query, args, err := builder.Where(sq.Eq{"id": id}).Suffix("RETURNING " + ticketFields).ToSql()
	if err != nil {
		return nil, err
	}

	updated, err := r.scanRow(r.getQuerier(tx).QueryRow(ctx, query, args...))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, apperrors.NewNotFoundError("Customer not found.")
		}
		return nil, err
	}
	return updated, nil
}

func (r *serviceTicketRepository) DeleteTicket(ctx context.Context, tx pgx.Tx, id uint64) error {
	query, args, err := psql.Delete(ticketTable).Where(sq.Eq{"id": id}).ToSql()
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

func (r *serviceTicketRepository) MechanicAssigned(ctx context.Context, tx pgx.Tx, ticketID, mechanicID uint64) (bool, error) {
	query, args, err := psql.Select("1").From(ticketMechanics).
		Where(sq.Eq{"ticket_id": ticketID, "mechanic_id": mechanicID}).
		ToSql()
	if err != nil {
		return false, err
	}

	var one int
	err = r.getQuerier(tx).QueryRow(ctx, query, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *serviceTicketRepository) AssignMechanic(ctx context.Context, tx pgx.Tx, ticketID, mechanicID uint64) error {
	query, args, err := psql.Insert(ticketMechanics).
		Columns("ticket_id", "mechanic_id").
		Values(ticketID, mechanicID).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.getQuerier(tx).Exec(ctx, query, args...)
	return err
}

// RemoveMechanic reports whether an association row was actually deleted.
func (r *serviceTicketRepository) RemoveMechanic(ctx context.Context, tx pgx.Tx, ticketID, mechanicID uint64) (bool, error) {
	query, args, err := psql.Delete(ticketMechanics).
		Where(sq.Eq{"ticket_id": ticketID, "mechanic_id": mechanicID}).
		ToSql()
	if err != nil {
		return false, err
	}

	result, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

func (r *serviceTicketRepository) PartOnTicket(ctx context.Context, tx pgx.Tx, ticketID, partID uint64) (bool, error) {
	query, args, err := psql.Select("1").From(ticketInventory).
		Where(sq.Eq{"ticket_id": ticketID, "inventory_id": partID}).
		ToSql()
	if err != nil {
		return false, err
	}

	var one int
	err = r.getQuerier(tx).QueryRow(ctx, query, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *serviceTicketRepository) AddPart(ctx context.Context, tx pgx.Tx, ticketID, partID uint64) error {
	query, args, err := psql.Insert(ticketInventory).
		Columns("ticket_id", "inventory_id").
		Values(ticketID, partID).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.getQuerier(tx).Exec(ctx, query, args...)
	return err
}

func (r *serviceTicketRepository) GetTicketMechanics(ctx context.Context, tx pgx.Tx, ticketID uint64) ([]entities.Mechanic, error) {
	query, args, err := psql.
		Select("m.id, m.name, m.email, m.phone, m.salary").
		From(mechanicTable + " m").
		Join(ticketMechanics + " sm ON sm.mechanic_id = m.id").
		Where(sq.Eq{"sm.ticket_id": ticketID}).
		OrderBy("m.id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.getQuerier(tx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	mechanics := make([]entities.Mechanic, 0)
	for rows.Next() {
		var m entities.Mechanic
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Salary); err != nil {
			return nil, err
		}
		mechanics = append(mechanics, m)
	}
	return mechanics, rows.Err()
}

func (r *serviceTicketRepository) GetTicketParts(ctx context.Context, tx pgx.Tx, ticketID uint64) ([]entities.Part, error) {
	query, args, err := psql.
		Select("i.id, i.name, i.price, i.quantity").
		From(inventoryTable + " i").
		Join(ticketInventory + " sti ON sti.inventory_id = i.id").
		Where(sq.Eq{"sti.ticket_id": ticketID}).
		OrderBy("i.id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.getQuerier(tx).Query(ctx, query, args...)
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
