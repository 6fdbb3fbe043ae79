package domain

import "time"

// Role is the closed set of roles carried in access tokens.
type Role string

const (
	RoleAgent        Role = "Agent"
	RoleChefAgence   Role = "ChefAgence"
	RoleChefRegional Role = "ChefRegional"
	RoleDGA          Role = "DGA"
	RoleAdmin        Role = "Admin"
)

// Valid reports whether the role belongs to the known set.
func (r Role) Valid() bool {
	switch r {
	case RoleAgent, RoleChefAgence, RoleChefRegional, RoleDGA, RoleAdmin:
		return true
	}
	return false
}

// User is the domain model for back-office users (table utilisateurs).
type User struct {
	ID           int64
	Nom          string
	Prenom       string
	Email        string
	PasswordHash string
	Role         Role
	Telephone    string
	AgenceID     *int64
	Actif        bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
