package entity

import "time"

// Company representa una empresa que opera un punto de valet parking.
type Company struct {
	ID        string
	Name      string
	PhotoURL  string
	IsActive  bool
	UserIDs   []string // usuarios asociados (tabla company_users)
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // soft delete: las empresas nunca se borran físicamente
}
