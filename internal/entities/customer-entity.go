package entities

type Customer struct {
	ID    uint64
	Name  string
	Email string
	Phone string
	// Password holds the bcrypt hash, never the plaintext.
	Password string

	// Filled manually when serializing one level deep.
	ServiceTickets []ServiceTicket `db:"-"`
}
