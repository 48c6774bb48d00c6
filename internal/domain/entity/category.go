package entity

// Category categoría del catálogo (jerárquica opcional).
// ParentCategory es el nombre de la categoría padre; el servidor valida que exista,
// el cliente lo trata como opaco. ID es 0 hasta que el servidor lo asigne.
type Category struct {
	ID             int64
	Name           string
	Description    string
	ParentCategory string // vacío si es raíz
	Active         bool
}
