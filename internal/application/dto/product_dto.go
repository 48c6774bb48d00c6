package dto

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/catalogo-admin/internal/domain/entity"
)

func init() {
	// El backend serializa price como número JSON; por defecto decimal lo emitiría como string.
	decimal.MarshalJSONWithoutQuotes = true
}

// ProductPayload cuerpo de producto en el cable. La categoría viaja anidada completa.
type ProductPayload struct {
	ID          int64            `json:"id,omitempty"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       decimal.Decimal  `json:"price"`
	Available   bool             `json:"available"`
	Category    *CategoryPayload `json:"category,omitempty"`
}

// ProductToPayload convierte la entidad al cuerpo del cable.
func ProductToPayload(p entity.Product) ProductPayload {
	out := ProductPayload{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Available:   p.Available,
	}
	if p.Category != nil {
		cat := CategoryToPayload(*p.Category)
		out.Category = &cat
	}
	return out
}

// ToEntity convierte el cuerpo del cable a la entidad.
func (p ProductPayload) ToEntity() entity.Product {
	out := entity.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Available:   p.Available,
	}
	if p.Category != nil {
		cat := p.Category.ToEntity()
		out.Category = &cat
	}
	return out
}

// ProductsToEntities convierte una lista del cable.
func ProductsToEntities(payloads []ProductPayload) []entity.Product {
	out := make([]entity.Product, 0, len(payloads))
	for _, p := range payloads {
		out = append(out, p.ToEntity())
	}
	return out
}
