package models

import "time"

// SubClient is a retail client registered under a single distributor.
// Records are created once and never edited through this service.
type SubClient struct {
	ID            string
	DistributorID string
	Name          string
	Address       string
	Phone         string // normalized to digits only
	DateOfBirth   time.Time
	CreatedAt     time.Time
}
