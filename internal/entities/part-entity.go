package entities

type Part struct {
	ID       uint64
	Name     string
	Price    float64
	Quantity int

	Tickets []ServiceTicket `db:"-"`
}
