package entities

// Principal is the authenticated caller of an operation.
type Principal struct {
	ID      string `json:"id"`
	IsAdmin bool   `json:"is_admin"`
}
