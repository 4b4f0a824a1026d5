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
	customerTable  = "customers"
	customerFields = "id, name, email, phone, password"
)

type CustomerRepositoryInterface interface {
	GetCustomers(ctx context.Context, page utils.PageParams) ([]entities.Customer, error)
	FindCustomer(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Customer, error)
	FindCustomerByEmail(ctx context.Context, tx pgx.Tx, email string) (*entities.Customer, error)
	CreateCustomer(ctx context.Context, tx pgx.Tx, c entities.Customer) (*entities.Customer, error)
	UpdateCustomer(ctx context.Context, tx pgx.Tx, id uint64, payload dto.UpdateCustomerDTO) (*entities.Customer, error)
	DeleteCustomer(ctx context.Context, tx pgx.Tx, id uint64) error
}

type customerRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewCustomerRepository(storage *pgxpool.Pool, logger *zap.Logger) CustomerRepositoryInterface {
	return &customerRepository{storage: storage, logger: logger}
}

func (r *customerRepository) getQuerier(tx pgx.Tx) querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

func (r *customerRepository) scanRow(row pgx.Row) (*entities.Customer, error) {
	var c entities.Customer
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *customerRepository) GetCustomers(ctx context.Context, page utils.PageParams) ([]entities.Customer, error) {
	builder := psql.Select(customerFields).From(customerTable).OrderBy("id")
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

	customers := make([]entities.Customer, 0)
	for rows.Next() {
		var c entities.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Password); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *customerRepository) FindCustomer(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Customer, error) {
	query, args, err := psql.Select(customerFields).From(customerTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return r.scanRow(r.getQuerier(tx).QueryRow(ctx, query, args...))
}

func (r *customerRepository) FindCustomerByEmail(ctx context.Context, tx pgx.Tx, email string) (*entities.Customer, error) {
	query, args, err := psql.Select(customerFields).From(customerTable).Where(sq.Eq{"email": email}).ToSql()
	if err != nil {
		return nil, err
	}
	return r.scanRow(r.getQuerier(tx).QueryRow(ctx, query, args...))
}

func (r *customerRepository) CreateCustomer(ctx context.Context, tx pgx.Tx, c entities.Customer) (*entities.Customer, error) {
	query, args, err := psql.Insert(customerTable).
		Columns("name", "email", "phone", "password").
		Values(c.Name, c.Email, c.Phone, c.Password).
		Suffix("RETURNING " + customerFields).
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

func (r *customerRepository) UpdateCustomer(ctx context.Context, tx pgx.Tx, id uint64, payload dto.UpdateCustomerDTO) (*entities.Customer, error) {
	builder := psql.Update(customerTable)
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
	if payload.Password != nil {
		builder = builder.Set("password", *payload.Password)
		changed = true
	}
	if !changed {
		return r.FindCustomer(ctx, tx, id)
	}

	query, args, err := builder.Where(sq.Eq{"id": id}).Suffix("RETURNING " + customerFields).ToSql()
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

func (r *customerRepository) DeleteCustomer(ctx context.Context, tx pgx.Tx, id uint64) error {
	query, args, err := psql.Delete(customerTable).Where(sq.Eq{"id": id}).ToSql()
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
