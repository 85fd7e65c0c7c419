package dto

import "time"

// CreateShopRequest body para POST /shops.
type CreateShopRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=120"`
	Address string `json:"address,omitempty" validate:"max=300"`
	Phone   string `json:"phone,omitempty" validate:"max=40"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
}

// UpdateShopRequest body para PUT /shops/:id (parcial).
type UpdateShopRequest struct {
	Name              *string `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Address           *string `json:"address,omitempty" validate:"omitempty,max=300"`
	Phone             *string `json:"phone,omitempty" validate:"omitempty,max=40"`
	Email             *string `json:"email,omitempty" validate:"omitempty,email"`
	NotificationEmail *string `json:"notificationEmail,omitempty" validate:"omitempty,email"`
	NotificationPhone *string `json:"notificationPhone,omitempty" validate:"omitempty,max=40"`
}

// ShopResponse salida de una tienda.
type ShopResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	OwnerID           string    `json:"ownerId"`
	Address           string    `json:"address,omitempty"`
	Phone             string    `json:"phone,omitempty"`
	Email             string    `json:"email,omitempty"`
	NotificationEmail string    `json:"notificationEmail,omitempty"`
	NotificationPhone string    `json:"notificationPhone,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// ShopListResponse tiendas del propietario con la cuota derivada.
type ShopListResponse struct {
	Shops          []ShopResponse `json:"shops"`
	ActiveShopID   string         `json:"activeShopId,omitempty"`
	ShopLimit      int            `json:"shopLimit"`
	CanCreateShop  bool           `json:"canCreateShop"`
	RemainingShops int            `json:"remainingShops"`
}
