package models

// Distributor is static reference data; the roster is fixed for the
// lifetime of the process and looked up by username during login.
type Distributor struct {
	ID       string
	Username string
	Name     string
	Email    string
	Phone    string
	IsActive bool
}
