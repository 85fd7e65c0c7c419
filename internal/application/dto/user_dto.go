package dto

import "time"

// SignUpRequest registro de un propietario. ShopName crea además su primera tienda.
type SignUpRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"firstName,omitempty" validate:"max=100"`
	LastName  string `json:"lastName,omitempty" validate:"max=100"`
	ShopName  string `json:"shopName,omitempty" validate:"max=120"`
}

// SignInRequest credenciales.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthResponse sesión iniciada.
type AuthResponse struct {
	User  UserResponse  `json:"user"`
	Shop  *ShopResponse `json:"shop"`
	Token string        `json:"token"`
}

// MeResponse usuario autenticado y su tienda activa.
type MeResponse struct {
	User UserResponse  `json:"user"`
	Shop *ShopResponse `json:"shop"`
}
