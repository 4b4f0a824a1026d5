package contextkeys

type contextKey string

const (
	CustomerIDKey contextKey = "CustomerID"
)
