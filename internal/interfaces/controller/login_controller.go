package controller

import (
	"context"

	"github.com/tu-usuario/catalogo-admin/internal/application/auth"
	"github.com/tu-usuario/catalogo-admin/internal/application/ports"
	"github.com/tu-usuario/catalogo-admin/internal/domain"
)

// Mensajes de la vista de login.
const (
	msgCredentialsRequired = "Username and password are required"
	msgInvalidCredentials  = "Invalid username or password"
	msgLoginFailed         = "An error occurred during login. Please try again."
)

// LoginController recoge credenciales y orquesta el login. Credenciales vacías
// se rechazan localmente sin emitir petición.
type LoginController struct {
	auth *auth.UseCase
	nav  ports.Navigator

	Username     string
	Password     string
	ErrorMessage string
	IsLoading    bool
}

// NewLoginController construye el controlador.
func NewLoginController(auth *auth.UseCase, nav ports.Navigator) *LoginController {
	return &LoginController{auth: auth, nav: nav}
}

// Login valida localmente, llama al flujo de auth y navega a home en éxito.
// 401 muestra el mensaje de credenciales inválidas; cualquier otro fallo el
// mensaje genérico de login.
func (c *LoginController) Login(ctx context.Context) {
	if c.Username == "" || c.Password == "" {
		v := domain.New(domain.KindValidation, msgCredentialsRequired)
		c.ErrorMessage = v.Message
		return
	}

	c.IsLoading = true
	c.ErrorMessage = ""

	_, err := c.auth.Login(ctx, c.Username, c.Password)
	c.IsLoading = false
	if err != nil {
		if domain.IsUnauthorized(err) {
			c.ErrorMessage = msgInvalidCredentials
		} else {
			c.ErrorMessage = msgLoginFailed
		}
		return
	}

	c.nav.Navigate(ports.RouteHome)
}
