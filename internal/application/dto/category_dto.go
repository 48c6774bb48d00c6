package dto

import "github.com/tu-usuario/catalogo-admin/internal/domain/entity"

// CategoryPayload cuerpo de categoría en el cable (request y response usan la misma forma).
// parentCategory viaja como nombre de la categoría padre, no como objeto anidado.
type CategoryPayload struct {
	ID             int64  `json:"id,omitempty"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	ParentCategory string `json:"parentCategory,omitempty"`
	Active         bool   `json:"active"`
}

// CategoryToPayload convierte la entidad al cuerpo del cable.
func CategoryToPayload(c entity.Category) CategoryPayload {
	return CategoryPayload{
		ID:             c.ID,
		Name:           c.Name,
		Description:    c.Description,
		ParentCategory: c.ParentCategory,
		Active:         c.Active,
	}
}

// ToEntity convierte el cuerpo del cable a la entidad.
func (p CategoryPayload) ToEntity() entity.Category {
	return entity.Category{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		ParentCategory: p.ParentCategory,
		Active:         p.Active,
	}
}

// CategoriesToEntities convierte una lista del cable.
func CategoriesToEntities(payloads []CategoryPayload) []entity.Category {
	out := make([]entity.Category, 0, len(payloads))
	for _, p := range payloads {
		out = append(out, p.ToEntity())
	}
	return out
}
