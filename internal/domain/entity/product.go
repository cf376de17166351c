package entity

import "github.com/shopspring/decimal"

// Product is a sellable beverage (e.g. "Pale Ale").
type Product struct {
	ID   string
	Name string
}

// ProductPackageType holds the catalog price of a product in one package type.
type ProductPackageType struct {
	ProductID        string
	PackageType      string
	Price            decimal.Decimal
	IsKegDepositItem bool
}

// Item is a catalog entry of an inventoriable material or finished good.
type Item struct {
	Name    string
	Type    string
	Enabled bool
}
