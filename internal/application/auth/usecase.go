package auth

import (
	"context"

	"github.com/tu-usuario/catalogo-admin/internal/application/dto"
	"github.com/tu-usuario/catalogo-admin/internal/application/ports"
	"github.com/tu-usuario/catalogo-admin/internal/domain/entity"
	"github.com/tu-usuario/catalogo-admin/internal/infrastructure/rest"
	"github.com/tu-usuario/catalogo-admin/internal/infrastructure/session"
	"github.com/tu-usuario/catalogo-admin/pkg/logger"
)

// UseCase flujo de autenticación: login contra la API, logout local y predicado
// de sesión. El token nunca se inspecciona en el cliente; la expiración se
// descubre cuando una petición devuelve 401.
type UseCase struct {
	api   *rest.Client
	store *session.Store
	nav   ports.Navigator
	log   *logger.Logger
}

// New construye el caso de uso de auth.
func New(api *rest.Client, store *session.Store, nav ports.Navigator, log *logger.Logger) *UseCase {
	return &UseCase{api: api, store: store, nav: nav, log: log}
}

// Login intercambia credenciales por un token en POST /api/auth/login y
// persiste la sesión. Credenciales inválidas llegan como Unauthorized del
// despachador; el caller decide la navegación tras el éxito.
func (uc *UseCase) Login(ctx context.Context, username, password string) (*entity.Session, error) {
	var res dto.LoginResponse
	in := dto.LoginRequest{Username: username, Password: password}
	if err := uc.api.Post(ctx, "/api/auth/login", in, &res); err != nil {
		return nil, err
	}
	sess := res.ToSession()
	if err := uc.store.Set(sess); err != nil {
		return nil, err
	}
	uc.log.Info().Str("username", sess.User.Username).Msg("sesión iniciada")
	return &sess, nil
}

// Logout limpia la sesión persistida y navega a login. Idempotente: sin sesión
// activa solo queda la navegación.
func (uc *UseCase) Logout() {
	if err := uc.store.Clear(); err != nil {
		uc.log.Error().Err(err).Msg("limpiar sesión")
	}
	uc.nav.Navigate(ports.RouteLogin)
}

// IsLoggedIn reporta si hay token persistido. Es solo un chequeo de presencia:
// no valida expiración ni firma.
func (uc *UseCase) IsLoggedIn() bool {
	return uc.store.Token() != ""
}

// CurrentUser devuelve el perfil de la sesión actual, o nil si no hay.
func (uc *UseCase) CurrentUser() *entity.User {
	return uc.store.CurrentUser()
}
