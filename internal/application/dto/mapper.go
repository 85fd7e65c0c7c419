package dto

import (
	"github.com/jhoicas/MultiTienda-api/internal/domain/entity"
	"github.com/jhoicas/MultiTienda-api/internal/domain/inventory"
)

// ToProductResponse mapea un producto con su clasificación de stock.
func ToProductResponse(p *entity.Product, level inventory.StockLevel) ProductResponse {
	return ProductResponse{
		ID:               p.ID,
		ShopID:           p.ShopID,
		Name:             p.Name,
		SKU:              p.SKU,
		Category:         p.Category,
		UnitPrice:        p.UnitPrice,
		CurrentStock:     p.CurrentStock,
		ReorderThreshold: p.ReorderThreshold,
		Location:         p.Location,
		Description:      p.Description,
		ImageURL:         p.ImageURL,
		Status: StockStatus{
			IsLowStock:         level.Low,
			IsCritical:         level.Critical,
			Deficit:            level.Deficit,
			EffectiveThreshold: level.EffectiveThreshold,
		},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ToTransactionResponse mapea una transacción del ledger.
func ToTransactionResponse(t *entity.InventoryTransaction) TransactionResponse {
	return TransactionResponse{
		ID:             t.ID,
		ProductID:      t.ProductID,
		ShopID:         t.ShopID,
		QuantityChange: t.QuantityChange,
		Type:           t.Type,
		Reason:         t.Reason,
		Notes:          t.Notes,
		PerformedBy:    t.PerformedBy,
		Timestamp:      t.Timestamp,
	}
}

// ToSaleResponse mapea una venta.
func ToSaleResponse(s *entity.Sale) SaleResponse {
	return SaleResponse{
		ID:          s.ID,
		ShopID:      s.ShopID,
		ProductID:   s.ProductID,
		ProductName: s.ProductName,
		ProductSKU:  s.ProductSKU,
		Quantity:    s.Quantity,
		UnitPrice:   s.UnitPrice,
		TotalAmount: s.TotalAmount,
		Timestamp:   s.Timestamp,
		PerformedBy: s.PerformedBy,
	}
}

// ToShopResponse mapea una tienda.
func ToShopResponse(s *entity.Shop) ShopResponse {
	return ShopResponse{
		ID:                s.ID,
		Name:              s.Name,
		OwnerID:           s.OwnerID,
		Address:           s.Address,
		Phone:             s.Phone,
		Email:             s.Email,
		NotificationEmail: s.NotificationEmail,
		NotificationPhone: s.NotificationPhone,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

// ToUserResponse mapea un usuario sin su hash.
func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// ToPreferencesResponse mapea preferencias de notificación.
func ToPreferencesResponse(p *entity.NotificationPreferences) PreferencesResponse {
	return PreferencesResponse{
		EmailEnabled:             p.EmailEnabled,
		SMSEnabled:               p.SMSEnabled,
		Email:                    p.Email,
		Phone:                    p.Phone,
		LowStockThresholdPercent: p.LowStockThresholdPercent,
	}
}
