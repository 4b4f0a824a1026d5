package dto

import (
	"github.com/aarondl/null/v8"

	"mechanic-system/internal/entities"
)

type CreateServiceTicketDTO struct {
	VIN         string      `json:"VIN" validate:"required"`
	ServiceDate null.String `json:"service_date"`
	ServiceDesc null.String `json:"service_desc"`
	CustomerID  uint64      `json:"customer_id" validate:"required"`
}

type UpdateServiceTicketDTO struct {
	VIN         *string     `json:"VIN,omitempty" validate:"omitempty,min=1"`
	ServiceDate null.String `json:"service_date,omitempty"`
	ServiceDesc null.String `json:"service_desc,omitempty"`
	CustomerID  *uint64     `json:"customer_id,omitempty"`
}

type ShortServiceTicketDTO struct {
	ID          uint64      `json:"id"`
	VIN         string      `json:"VIN"`
	ServiceDate null.String `json:"service_date"`
	ServiceDesc null.String `json:"service_desc"`
	CustomerID  uint64      `json:"customer_id"`
}

type ServiceTicketDTO struct {
	ID          uint64             `json:"id"`
	VIN         string             `json:"VIN"`
	ServiceDate null.String        `json:"service_date"`
	ServiceDesc null.String        `json:"service_desc"`
	CustomerID  uint64             `json:"customer_id"`
	Customer    *ShortCustomerDTO  `json:"customer"`
	Mechanics   []ShortMechanicDTO `json:"mechanics"`
	Parts       []ShortPartDTO     `json:"parts"`
}

func NewShortServiceTicketDTO(t entities.ServiceTicket) ShortServiceTicketDTO {
	return ShortServiceTicketDTO{
		ID:          t.ID,
		VIN:         t.VIN,
		ServiceDate: t.ServiceDate,
		ServiceDesc: t.ServiceDesc,
		CustomerID:  t.CustomerID,
	}
}

func NewServiceTicketDTO(t entities.ServiceTicket) ServiceTicketDTO {
	out := ServiceTicketDTO{
		ID:          t.ID,
		VIN:         t.VIN,
		ServiceDate: t.ServiceDate,
		ServiceDesc: t.ServiceDesc,
		CustomerID:  t.CustomerID,
		Mechanics:   make([]ShortMechanicDTO, 0, len(t.Mechanics)),
		Parts:       make([]ShortPartDTO, 0, len(t.Parts)),
	}
	if t.Customer != nil {
		customer := NewShortCustomerDTO(*t.Customer)
		out.Customer = &customer
	}
	for _, m := range t.Mechanics {
		out.Mechanics = append(out.Mechanics, NewShortMechanicDTO(m))
	}
	for _, p := range t.Parts {
		out.Parts = append(out.Parts, NewShortPartDTO(p))
	}
	return out
}
