package dto

import "mechanic-system/internal/entities"

// Price and quantity use pointers on input so a literal 0 passes "required"
// and absence is distinguishable; both must be non-negative.
type CreatePartDTO struct {
	Name     string   `json:"name" validate:"required"`
	Price    *float64 `json:"price" validate:"required,gte=0"`
	Quantity *int     `json:"quantity" validate:"omitempty,gte=0"`
}

type UpdatePartDTO struct {
	Name     *string  `json:"name,omitempty" validate:"omitempty,min=1"`
	Price    *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Quantity *int     `json:"quantity,omitempty" validate:"omitempty,gte=0"`
}

type ShortPartDTO struct {
	ID       uint64  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type PartDTO struct {
	ID       uint64                  `json:"id"`
	Name     string                  `json:"name"`
	Price    float64                 `json:"price"`
	Quantity int                     `json:"quantity"`
	Tickets  []ShortServiceTicketDTO `json:"tickets"`
}

func NewShortPartDTO(p entities.Part) ShortPartDTO {
	return ShortPartDTO{ID: p.ID, Name: p.Name, Price: p.Price, Quantity: p.Quantity}
}

func NewPartDTO(p entities.Part) PartDTO {
	tickets := make([]ShortServiceTicketDTO, 0, len(p.Tickets))
	for _, t := range p.Tickets {
		tickets = append(tickets, NewShortServiceTicketDTO(t))
	}
	return PartDTO{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Quantity: p.Quantity,
		Tickets:  tickets,
	}
}
