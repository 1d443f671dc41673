package main

import (
	"github.com/shopspring/decimal"

	"github.com/saifulohyr/riyadh-coffee-pos/internal/domain"
)

func item(name, category string, price int64, stock int64) domain.Product {
	return domain.Product{
		Name:     name,
		Category: category,
		Price:    decimal.NewFromInt(price),
		Stock:    &stock,
	}
}

// menu is the opening catalog for a fresh install. Prices are in rupiah,
// which a NUMERIC(12,2) column holds without rounding.
var menu = []domain.Product{
	item("Kopi Susu Riyadh", "Coffee", 20000, 100),
	item("Sea Salt Oat Latte", "Coffee", 35000, 50),
	item("Americano On The Rocks", "Coffee", 18000, 100),
	item("Caramel Macchiato", "Coffee", 30000, 45),
	item("Manual Brew V60", "Coffee", 25000, 60),
	item("Espresso Tonic", "Coffee", 26000, 35),
	item("Artisan Matcha Latte", "Tea", 32000, 40),
	item("Earl Grey Milk Tea", "Tea", 25000, 50),
	item("Lychee Tea Rose", "Tea", 24000, 45),
	item("Signature Chocolate", "Tea", 25000, 60),
	item("Cromboloni Pistachio", "Pastry", 35000, 20),
	item("Classic Butter Croissant", "Pastry", 22000, 30),
	item("Almond Croissant", "Pastry", 28000, 15),
	item("Sea Salt Brownie", "Pastry", 20000, 25),
	item("Cinnamon Roll", "Pastry", 25000, 18),
}
