package dto

// PreferencesResponse preferencias de notificación de la tienda activa.
type PreferencesResponse struct {
	EmailEnabled             bool   `json:"emailEnabled"`
	SMSEnabled               bool   `json:"smsEnabled"`
	Email                    string `json:"email,omitempty"`
	Phone                    string `json:"phone,omitempty"`
	LowStockThresholdPercent int    `json:"lowStockThresholdPercent"`
}

// UpdatePreferencesRequest body parcial de PUT /alerts/preferences.
type UpdatePreferencesRequest struct {
	EmailEnabled             *bool   `json:"emailEnabled,omitempty"`
	SMSEnabled               *bool   `json:"smsEnabled,omitempty"`
	Email                    *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone                    *string `json:"phone,omitempty" validate:"omitempty,max=40"`
	LowStockThresholdPercent *int    `json:"lowStockThresholdPercent,omitempty" validate:"omitempty,min=1,max=1000"`
}

// LowStockAlertRequest body de POST /alerts/low-stock.
type LowStockAlertRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

// LowStockAlertResponse resultado del envío.
type LowStockAlertResponse struct {
	Sent     bool     `json:"sent"`
	Channels []string `json:"channels"`
}
