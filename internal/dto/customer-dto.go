package dto

import "mechanic-system/internal/entities"

// CreateCustomerDTO: what the client sends to register a customer. The
// password is load-only; it never appears in a response DTO.
type CreateCustomerDTO struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" validate:"required"`
}

// UpdateCustomerDTO: partial update, only supplied fields are applied.
type UpdateCustomerDTO struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    *string `json:"phone,omitempty"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=1"`
}

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponseDTO struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	AuthToken string `json:"auth_token"`
}

// ShortCustomerDTO is the nested form: no ticket list, so serialization
// never recurses back into the owning relation.
type ShortCustomerDTO struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type CustomerDTO struct {
	ID             uint64                  `json:"id"`
	Name           string                  `json:"name"`
	Email          string                  `json:"email"`
	Phone          string                  `json:"phone"`
	ServiceTickets []ShortServiceTicketDTO `json:"service_tickets"`
}

func NewShortCustomerDTO(c entities.Customer) ShortCustomerDTO {
	return ShortCustomerDTO{ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone}
}

func NewCustomerDTO(c entities.Customer) CustomerDTO {
	tickets := make([]ShortServiceTicketDTO, 0, len(c.ServiceTickets))
	for _, t := range c.ServiceTickets {
		tickets = append(tickets, NewShortServiceTicketDTO(t))
	}
	return CustomerDTO{
		ID:             c.ID,
		Name:           c.Name,
		Email:          c.Email,
		Phone:          c.Phone,
		ServiceTickets: tickets,
	}
}
