package repository

// Repos groups every port bound to the same connection or transaction.
type Repos struct {
	Inventory InventoryRepository
	Items     ItemRepository
	Products  ProductRepository
	Recipes   RecipeRepository
	Sites     SiteRepository
	Customers CustomerRepository
	Batches   BatchRepository
	Packaging PackagingRepository
	Kegs      KegRepository
	Invoices  InvoiceRepository
}
