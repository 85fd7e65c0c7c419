package entity

import "time"

// Roles válidos para User.
const (
	RoleOwner = "owner"
	RoleStaff = "staff"
)

// User representa una cuenta; es propietaria de tiendas vía Shop.OwnerID.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FirstName    string
	LastName     string
	Role         string // owner, staff
	CreatedAt    time.Time
}
