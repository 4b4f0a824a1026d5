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
	mechanicTable  = "mechanics"
	mechanicFields = "id, name, email, phone, salary"
)

type MechanicRepositoryInterface interface {
	GetMechanics(ctx context.Context, page utils.PageParams) ([]entities.Mechanic, error)
	FindMechanic(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Mechanic, error)
	CreateMechanic(ctx context.Context, tx pgx.Tx, m entities.Mechanic) (*entities.Mechanic, error)
	UpdateMechanic(ctx context.Context, tx pgx.Tx, id uint64, payload dto.UpdateMechanicDTO) (*entities.Mechanic, error)
	DeleteMechanic(ctx context.Context, tx pgx.Tx, id uint64) error
	GetMostActive(ctx context.Context) ([]entities.RankedMechanic, error)
	GetMechanicTickets(ctx context.Context, mechanicID uint64) ([]entities.ServiceTicket, error)
}

type mechanicRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewMechanicRepository(storage *pgxpool.Pool, logger *zap.Logger) MechanicRepositoryInterface {
	return &mechanicRepository{storage: storage, logger: logger}
}

func (r *mechanicRepository) getQuerier(tx pgx.Tx) querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

func (r *mechanicRepository) scanRow(row pgx.Row) (*entities.Mechanic, error) {
	var m entities.Mechanic
	err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Salary)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *mechanicRepository) GetMechanics(ctx context.Context, page utils.PageParams) ([]entities.Mechanic, error) {
	builder := psql.Select(mechanicFields).From(mechanicTable).OrderBy("id")
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

func (r *mechanicRepository) FindMechanic(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Mechanic, error) {
	query, args, err := psql.Select(mechanicFields).From(mechanicTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return r.scanRow(r.getQuerier(tx).QueryRow(ctx, query, args...))
}

func (r *mechanicRepository) CreateMechanic(ctx context.Context, tx pgx.Tx, m entities.Mechanic) (*entities.Mechanic, error) {
	query, args, err := psql.Insert(mechanicTable).
		Columns("name", "email", "phone", "salary").
		Values(m.Name, m.Email, m.Phone, m.Salary).
		Suffix("RETURNING " + mechanicFields).
		ToSql()
	if err != nil {
		return nil, err
	}

	created, err := r.scanRow(r.getQuerier(tx).QueryRow(ctx, query, args...))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.NewBadRequestError("Email already associated with an account.")
		}
		return nil, err
	}
	return created, nil
}

func (r *mechanicRepository) UpdateMechanic(ctx context.Context, tx pgx.Tx, id uint64, payload dto.UpdateMechanicDTO) (*entities.Mechanic, error) {
	builder := psql.Update(mechanicTable)
	changed := false
	if payload.Name != nil {
		builder = builder.Set("name", *payload.Name)
		changed = true
	}
	if payload.Email != nil {
		builder = builder.Set("email", *payload.Email)
		changed = true
	}
	if payload.Phone != nil {
		builder = builder.Set("phone", *payload.Phone)
		changed = true
	}
	if payload.Salary.Valid {
		builder = builder.Set("salary", payload.Salary)
		changed = true
	}
	if !changed {
		return r.FindMechanic(ctx, tx, id)
	}

	query, args, err := builder.Where(sq.Eq{"id": id}).Suffix("RETURNING " + mechanicFields).ToSql()
	if err != nil {
		return nil, err
	}

	updated, err := r.scanRow(r.getQuerier(tx).QueryRow(ctx, query, args...))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.NewBadRequestError("Email already associated with an account.")
		}
		return nil, err
	}
	return updated, nil
}

func (r *mechanicRepository) DeleteMechanic(ctx context.Context, tx pgx.Tx, id uint64) error {
	query, args, err := psql.Delete(mechanicTable).Where(sq.Eq{"id": id}).ToSql()
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

// GetMostActive ranks mechanics by the number of tickets they are assigned
// to, most loaded first.
func (r *mechanicRepository) GetMostActive(ctx context.Context) ([]entities.RankedMechanic, error) {
	query, args, err := psql.
		Select("m.id, m.name, m.email, m.phone, m.salary, COUNT(sm.ticket_id) AS ticket_count").
		From(mechanicTable+" m").
		LeftJoin("service_mechanics sm ON sm.mechanic_id = m.id").
		GroupBy("m.id").
		OrderBy("ticket_count DESC", "m.id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ranked := make([]entities.RankedMechanic, 0)
	for rows.Next() {
		var m entities.RankedMechanic
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Salary, &m.TicketCount); err != nil {
			return nil, err
		}
		ranked = append(ranked, m)
	}
	return ranked, rows.Err()
}

func (r *mechanicRepository) GetMechanicTickets(ctx context.Context, mechanicID uint64) ([]entities.ServiceTicket, error) {
	query, args, err := psql.
		Select("t.id, t.vin, t.service_date, t.service_desc, t.customer_id").
		From(ticketTable + " t").
		Join("service_mechanics sm ON sm.ticket_id = t.id").
		Where(sq.Eq{"sm.mechanic_id": mechanicID}).
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
