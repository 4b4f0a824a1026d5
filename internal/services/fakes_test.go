package services

import (
	"context"
	"sort"

	"github.com/jackc/pgx/v5"

	"mechanic-system/internal/dto"
	"mechanic-system/internal/entities"
	apperrors "mechanic-system/pkg/errors"
	"mechanic-system/pkg/utils"
)

// In-memory repository fakes used across the service tests. They mimic the
// row-level behavior of the real repositories, including the NotFound
// sentinel, so the services under test see the same error surface.

type fakeTxManager struct{}

func (f *fakeTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

type fakeCustomerRepo struct {
	nextID    uint64
	customers map[uint64]entities.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{nextID: 1, customers: map[uint64]entities.Customer{}}
}

func (f *fakeCustomerRepo) sorted() []entities.Customer {
	out := make([]entities.Customer, 0, len(f.customers))
	for _, c := range f.customers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeCustomerRepo) GetCustomers(ctx context.Context, page utils.PageParams) ([]entities.Customer, error) {
	all := f.sorted()
	if !page.Requested {
		return all, nil
	}
	if page.Offset >= uint64(len(all)) {
		return nil, nil
	}
	end := page.Offset + page.Limit
	if end > uint64(len(all)) {
		end = uint64(len(all))
	}
	return all[page.Offset:end], nil
}

func (f *fakeCustomerRepo) FindCustomer(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}

func (f *fakeCustomerRepo) FindCustomerByEmail(ctx context.Context, tx pgx.Tx, email string) (*entities.Customer, error) {
	for _, c := range f.customers {
		if c.Email == email {
			out := c
			return &out, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeCustomerRepo) CreateCustomer(ctx context.Context, tx pgx.Tx, c entities.Customer) (*entities.Customer, error) {
	c.ID = f.nextID
	f.nextID++
	f.customers[c.ID] = c
	return &c, nil
}

func (f *fakeCustomerRepo) UpdateCustomer(ctx context.Context, tx pgx.Tx, id uint64, payload dto.UpdateCustomerDTO) (*entities.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if payload.Name != nil {
		c.Name = *payload.Name
	}
	if payload.Email != nil {
		c.Email = *payload.Email
	}
	if payload.Phone != nil {
		c.Phone = *payload.Phone
	}
	if payload.Password != nil {
		c.Password = *payload.Password
	}
	f.customers[id] = c
	return &c, nil
}

func (f *fakeCustomerRepo) DeleteCustomer(ctx context.Context, tx pgx.Tx, id uint64) error {
	if _, ok := f.customers[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.customers, id)
	return nil
}

type fakeMechanicRepo struct {
	nextID    uint64
	mechanics map[uint64]entities.Mechanic
	ranked    []entities.RankedMechanic
}

func newFakeMechanicRepo() *fakeMechanicRepo {
	return &fakeMechanicRepo{nextID: 1, mechanics: map[uint64]entities.Mechanic{}}
}

func (f *fakeMechanicRepo) GetMechanics(ctx context.Context, page utils.PageParams) ([]entities.Mechanic, error) {
	out := make([]entities.Mechanic, 0, len(f.mechanics))
	for _, m := range f.mechanics {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeMechanicRepo) FindMechanic(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Mechanic, error) {
	m, ok := f.mechanics[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &m, nil
}

func (f *fakeMechanicRepo) CreateMechanic(ctx context.Context, tx pgx.Tx, m entities.Mechanic) (*entities.Mechanic, error) {
	m.ID = f.nextID
	f.nextID++
	f.mechanics[m.ID] = m
	return &m, nil
}

func (f *fakeMechanicRepo) UpdateMechanic(ctx context.Context, tx pgx.Tx, id uint64, payload dto.UpdateMechanicDTO) (*entities.Mechanic, error) {
	m, ok := f.mechanics[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if payload.Name != nil {
		m.Name = *payload.Name
	}
	if payload.Email != nil {
		m.Email = *payload.Email
	}
	if payload.Phone != nil {
		m.Phone = *payload.Phone
	}
	if payload.Salary.Valid {
		m.Salary = payload.Salary
	}
	f.mechanics[id] = m
	return &m, nil
}

func (f *fakeMechanicRepo) DeleteMechanic(ctx context.Context, tx pgx.Tx, id uint64) error {
	if _, ok := f.mechanics[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.mechanics, id)
	return nil
}

func (f *fakeMechanicRepo) GetMostActive(ctx context.Context) ([]entities.RankedMechanic, error) {
	return f.ranked, nil
}

func (f *fakeMechanicRepo) GetMechanicTickets(ctx context.Context, mechanicID uint64) ([]entities.ServiceTicket, error) {
	return nil, nil
}

type fakeInventoryRepo struct {
	nextID uint64
	parts  map[uint64]entities.Part
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{nextID: 1, parts: map[uint64]entities.Part{}}
}

func (f *fakeInventoryRepo) GetParts(ctx context.Context, page utils.PageParams) ([]entities.Part, error) {
	out := make([]entities.Part, 0, len(f.parts))
	for _, p := range f.parts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeInventoryRepo) FindPart(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Part, error) {
	p, ok := f.parts[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &p, nil
}

func (f *fakeInventoryRepo) CreatePart(ctx context.Context, tx pgx.Tx, p entities.Part) (*entities.Part, error) {
	p.ID = f.nextID
	f.nextID++
	f.parts[p.ID] = p
	return &p, nil
}

func (f *fakeInventoryRepo) UpdatePart(ctx context.Context, tx pgx.Tx, id uint64, payload dto.UpdatePartDTO) (*entities.Part, error) {
	p, ok := f.parts[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if payload.Name != nil {
		p.Name = *payload.Name
	}
	if payload.Price != nil {
		p.Price = *payload.Price
	}
	if payload.Quantity != nil {
		p.Quantity = *payload.Quantity
	}
	f.parts[id] = p
	return &p, nil
}

func (f *fakeInventoryRepo) DeletePart(ctx context.Context, tx pgx.Tx, id uint64) error {
	if _, ok := f.parts[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.parts, id)
	return nil
}

func (f *fakeInventoryRepo) GetPartTickets(ctx context.Context, partID uint64) ([]entities.ServiceTicket, error) {
	return nil, nil
}

type ticketMechanic struct {
	ticketID, mechanicID uint64
}

type ticketPart struct {
	ticketID, partID uint64
}

type fakeTicketRepo struct {
	nextID      uint64
	tickets     map[uint64]entities.ServiceTicket
	assignments map[ticketMechanic]bool
	ticketParts map[ticketPart]bool
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{
		nextID:      1,
		tickets:     map[uint64]entities.ServiceTicket{},
		assignments: map[ticketMechanic]bool{},
		ticketParts: map[ticketPart]bool{},
	}
}

func (f *fakeTicketRepo) sorted() []entities.ServiceTicket {
	out := make([]entities.ServiceTicket, 0, len(f.tickets))
	for _, t := range f.tickets {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeTicketRepo) GetTickets(ctx context.Context, page utils.PageParams) ([]entities.ServiceTicket, error) {
	all := f.sorted()
	if !page.Requested {
		return all, nil
	}
	if page.Offset >= uint64(len(all)) {
		return nil, nil
	}
	end := page.Offset + page.Limit
	if end > uint64(len(all)) {
		end = uint64(len(all))
	}
	return all[page.Offset:end], nil
}

func (f *fakeTicketRepo) GetTicketsByCustomer(ctx context.Context, customerID uint64) ([]entities.ServiceTicket, error) {
	out := []entities.ServiceTicket{}
	for _, t := range f.sorted() {
		if t.CustomerID == customerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTicketRepo) FindTicket(ctx context.Context, tx pgx.Tx, id uint64) (*entities.ServiceTicket, error) {
	t, ok := f.tickets[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &t, nil
}

func (f *fakeTicketRepo) CreateTicket(ctx context.Context, tx pgx.Tx, t entities.ServiceTicket) (*entities.ServiceTicket, error) {
	t.ID = f.nextID
	f.nextID++
	f.tickets[t.ID] = t
	return &t, nil
}

func (f *fakeTicketRepo) UpdateTicket(ctx context.Context, tx pgx.Tx, id uint64, payload dto.UpdateServiceTicketDTO) (*entities.ServiceTicket, error) {
	t, ok := f.tickets[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if payload.VIN != nil {
		t.VIN = *payload.VIN
	}
	if payload.ServiceDate.Valid {
		t.ServiceDate = payload.ServiceDate
	}
	if payload.ServiceDesc.Valid {
		t.ServiceDesc = payload.ServiceDesc
	}
	if payload.CustomerID != nil {
		t.CustomerID = *payload.CustomerID
	}
	f.tickets[id] = t
	return &t, nil
}

func (f *fakeTicketRepo) DeleteTicket(ctx context.Context, tx pgx.Tx, id uint64) error {
	if _, ok := f.tickets[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.tickets, id)
	return nil
}

func (f *fakeTicketRepo) MechanicAssigned(ctx context.Context, tx pgx.Tx, ticketID, mechanicID uint64) (bool, error) {
	return f.assignments[ticketMechanic{ticketID, mechanicID}], nil
}

func (f *fakeTicketRepo) AssignMechanic(ctx context.Context, tx pgx.Tx, ticketID, mechanicID uint64) error {
	f.assignments[ticketMechanic{ticketID, mechanicID}] = true
	return nil
}

func (f *fakeTicketRepo) RemoveMechanic(ctx context.Context, tx pgx.Tx, ticketID, mechanicID uint64) (bool, error) {
	key := ticketMechanic{ticketID, mechanicID}
	if !f.assignments[key] {
		return false, nil
	}
	delete(f.assignments, key)
	return true, nil
}

func (f *fakeTicketRepo) PartOnTicket(ctx context.Context, tx pgx.Tx, ticketID, partID uint64) (bool, error) {
	return f.ticketParts[ticketPart{ticketID, partID}], nil
}

func (f *fakeTicketRepo) AddPart(ctx context.Context, tx pgx.Tx, ticketID, partID uint64) error {
	f.ticketParts[ticketPart{ticketID, partID}] = true
	return nil
}

func (f *fakeTicketRepo) GetTicketMechanics(ctx context.Context, tx pgx.Tx, ticketID uint64) ([]entities.Mechanic, error) {
	out := []entities.Mechanic{}
	for key := range f.assignments {
		if key.ticketID == ticketID {
			out = append(out, entities.Mechanic{ID: key.mechanicID})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeTicketRepo) GetTicketParts(ctx context.Context, tx pgx.Tx, ticketID uint64) ([]entities.Part, error) {
	out := []entities.Part{}
	for key := range f.ticketParts {
		if key.ticketID == ticketID {
			out = append(out, entities.Part{ID: key.partID})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
