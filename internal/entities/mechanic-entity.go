package entities

import "github.com/aarondl/null/v8"

type Mechanic struct {
	ID     uint64
	Name   string
	Email  string
	Phone  string
	Salary null.Float64

	Tickets []ServiceTicket `db:"-"`
}

// RankedMechanic is a mechanic row joined with its assigned-ticket count,
// used by the most-active listing.
type RankedMechanic struct {
	Mechanic
	TicketCount uint64
}
