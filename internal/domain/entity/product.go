package entity

import "github.com/shopspring/decimal"

// Product producto del catálogo. ID es 0 hasta que el servidor lo asigne.
// El precio negativo no se valida en el cliente; el servidor es el punto de control.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	Available   bool
	Category    *Category // nil si no tiene categoría asignada
}

// CategoryName nombre de la categoría del producto, o "None" si no tiene.
func (p Product) CategoryName() string {
	if p.Category == nil || p.Category.Name == "" {
		return "None"
	}
	return p.Category.Name
}
