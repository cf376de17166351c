package entity

import "github.com/shopspring/decimal"

// Recipe is a static production template.
type Recipe struct {
	ID          string
	Name        string
	ProductID   string
	Quantity    decimal.Decimal
	Unit        string
	Ingredients []RecipeIngredient
}

// RecipeIngredient is one ordered ingredient line of a recipe.
type RecipeIngredient struct {
	ItemName string
	Quantity decimal.Decimal
	Unit     string
}
