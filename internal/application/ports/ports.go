package ports

// Rutas de navegación del cliente. login es la ruta por defecto y el fallback
// para rutas desconocidas o acceso no autenticado.
const (
	RouteLogin      = "login"
	RouteHome       = "home"
	RouteCategories = "categories"
)

// Navigator abstrae el cambio de vista activa. La capa de interfaces aporta la
// implementación real; los casos de uso solo declaran el efecto (ir a login tras
// el logout) sin conocer el mecanismo.
type Navigator interface {
	Navigate(route string)
}
