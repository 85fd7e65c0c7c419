package entity

import "time"

// Shop unidad de negocio de un propietario; dueña de sus productos, ventas y transacciones.
type Shop struct {
	ID                string
	Name              string
	OwnerID           string
	Address           string
	Phone             string
	Email             string
	NotificationEmail string
	NotificationPhone string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
