package dto

import (
	"github.com/aarondl/null/v8"

	"mechanic-system/internal/entities"
)

type CreateMechanicDTO struct {
	Name   string       `json:"name" validate:"required"`
	Email  string       `json:"email" validate:"required,email"`
	Phone  string       `json:"phone"`
	Salary null.Float64 `json:"salary"`
}

type UpdateMechanicDTO struct {
	Name   *string      `json:"name,omitempty" validate:"omitempty,min=1"`
	Email  *string      `json:"email,omitempty" validate:"omitempty,email"`
	Phone  *string      `json:"phone,omitempty"`
	Salary null.Float64 `json:"salary,omitempty"`
}

type ShortMechanicDTO struct {
	ID     uint64       `json:"id"`
	Name   string       `json:"name"`
	Email  string       `json:"email"`
	Phone  string       `json:"phone"`
	Salary null.Float64 `json:"salary"`
}

type MechanicDTO struct {
	ID      uint64                  `json:"id"`
	Name    string                  `json:"name"`
	Email   string                  `json:"email"`
	Phone   string                  `json:"phone"`
	Salary  null.Float64            `json:"salary"`
	Tickets []ShortServiceTicketDTO `json:"tickets"`
}

// RankedMechanicDTO is the most-active listing entry.
type RankedMechanicDTO struct {
	ID          uint64       `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Phone       string       `json:"phone"`
	Salary      null.Float64 `json:"salary"`
	TicketCount uint64       `json:"ticket_count"`
}

func NewShortMechanicDTO(m entities.Mechanic) ShortMechanicDTO {
	return ShortMechanicDTO{ID: m.ID, Name: m.Name, Email: m.Email, Phone: m.Phone, Salary: m.Salary}
}

func NewMechanicDTO(m entities.Mechanic) MechanicDTO {
	tickets := make([]ShortServiceTicketDTO, 0, len(m.Tickets))
	for _, t := range m.Tickets {
		tickets = append(tickets, NewShortServiceTicketDTO(t))
	}
	return MechanicDTO{
		ID:      m.ID,
		Name:    m.Name,
		Email:   m.Email,
		Phone:   m.Phone,
		Salary:  m.Salary,
		Tickets: tickets,
	}
}

func NewRankedMechanicDTO(m entities.RankedMechanic) RankedMechanicDTO {
	return RankedMechanicDTO{
		ID:          m.ID,
		Name:        m.Name,
		Email:       m.Email,
		Phone:       m.Phone,
		Salary:      m.Salary,
		TicketCount: m.TicketCount,
	}
}
