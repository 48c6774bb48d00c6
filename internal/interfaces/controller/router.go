package controller

import (
	"sync"

	"github.com/tu-usuario/catalogo-admin/internal/application/ports"
)

// Router tabla de rutas del cliente: login (por defecto y fallback), home y
// categories. Navegar a una ruta registrada dispara la activación de su vista;
// las rutas desconocidas caen a login.
type Router struct {
	mu      sync.Mutex
	current string
	views   map[string]func()
}

// NewRouter construye el router con login como ruta inicial.
func NewRouter() *Router {
	return &Router{
		current: ports.RouteLogin,
		views:   make(map[string]func()),
	}
}

// Handle registra la activación de una vista para una ruta.
func (r *Router) Handle(route string, activate func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views[route] = activate
}

// Navigate cambia la ruta activa y dispara la activación registrada.
// Cualquier ruta no registrada redirige a login.
func (r *Router) Navigate(route string) {
	r.mu.Lock()
	if _, ok := r.views[route]; !ok {
		route = ports.RouteLogin
	}
	r.current = route
	activate := r.views[route]
	r.mu.Unlock()

	if activate != nil {
		activate()
	}
}

// Current devuelve la ruta activa.
func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}
