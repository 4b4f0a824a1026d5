package entities

import "github.com/aarondl/null/v8"

type ServiceTicket struct {
	ID          uint64
	VIN         string
	ServiceDate null.String
	ServiceDesc null.String
	CustomerID  uint64

	Customer  *Customer  `db:"-"`
	Mechanics []Mechanic `db:"-"`
	Parts     []Part     `db:"-"`
}
