package model

import "time"

// Tenant is a workspace/business account, the unit of multi-tenant isolation.
type Tenant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Tier      string    `json:"tier"`
	CreatedAt time.Time `json:"created_at"`
}
