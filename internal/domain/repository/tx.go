package repository

// Tx repositorios atados a una misma transacción.
type Tx struct {
	Shops        ShopRepository
	Products     ProductRepository
	Transactions TransactionRepository
	Sales        SaleRepository
	Preferences  PreferencesRepository
}
