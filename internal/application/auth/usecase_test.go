package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/catalogo-admin/internal/application/auth"
	"github.com/tu-usuario/catalogo-admin/internal/application/ports"
	"github.com/tu-usuario/catalogo-admin/internal/domain"
	"github.com/tu-usuario/catalogo-admin/internal/domain/entity"
	"github.com/tu-usuario/catalogo-admin/internal/infrastructure/rest"
	"github.com/tu-usuario/catalogo-admin/internal/infrastructure/session"
	"github.com/tu-usuario/catalogo-admin/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testJWTSecret = "test-secret-key-for-unit-tests"

// mintToken genera un JWT HS256 real, como lo haría el backend.
func mintToken(t *testing.T, username string) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err, "debe generarse un token JWT válido")
	return tok
}

// loginHandler réplica mínima de POST /api/auth/login: acepta admin/admin123.
func loginHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/login" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var creds struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		if creds.Username != "admin" || creds.Password != "admin123" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "Bad credentials"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"token":     mintToken(t, creds.Username),
			"id":        1,
			"username":  "admin",
			"email":     "admin@example.com",
			"firstName": "Ada",
			"lastName":  "Lovelace",
			"role":      "ADMIN",
		})
	})
}

// navRecorder implementa ports.Navigator y registra cada navegación.
type navRecorder struct {
	routes []string
}

func (n *navRecorder) Navigate(route string) { n.routes = append(n.routes, route) }

type harness struct {
	uc    *auth.UseCase
	store *session.Store
	nav   *navRecorder
}

func newHarness(t *testing.T, handler http.Handler) *harness {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store, err := session.NewStore(t.TempDir())
	require.NoError(t, err)
	api, err := rest.NewClient(srv.URL, 5*time.Second, store, logger.Nop())
	require.NoError(t, err)
	nav := &navRecorder{}
	return &harness{
		uc:    auth.New(api, store, nav, logger.Nop()),
		store: store,
		nav:   nav,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_Exitoso_PersisteLaSesion(t *testing.T) {
	h := newHarness(t, loginHandler(t))

	sess, err := h.uc.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	require.NotNil(t, sess)

	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, sess.Token, h.store.Token(), "el token debe quedar persistido")
	user := h.store.CurrentUser()
	require.NotNil(t, user)
	assert.Equal(t, "admin", user.Username)
	assert.Equal(t, "Ada", user.FirstName)
	assert.True(t, h.uc.IsLoggedIn())
	assert.Empty(t, h.nav.routes, "el login no navega: eso lo decide el caller")
}

func TestLogin_CredencialesInvalidas_Unauthorized(t *testing.T) {
	h := newHarness(t, loginHandler(t))

	sess, err := h.uc.Login(context.Background(), "admin", "incorrecta")
	require.Error(t, err)
	assert.Nil(t, sess)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))
	assert.Empty(t, h.store.Token(), "un login fallido no debe persistir nada")
	assert.False(t, h.uc.IsLoggedIn())
}

func TestLogin_ServidorCaido_NetworkError(t *testing.T) {
	h := newHarness(t, loginHandler(t))

	// Reconstruir el caso de uso apuntando a un servidor cerrado.
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	api, err := rest.NewClient(srv.URL, time.Second, h.store, logger.Nop())
	require.NoError(t, err)
	uc := auth.New(api, h.store, h.nav, logger.Nop())

	_, err = uc.Login(context.Background(), "admin", "admin123")
	require.Error(t, err)
	assert.Equal(t, domain.KindNetworkError, domain.KindOf(err))
}

// ──────────────────────────────────────────────────────────────────────────────
// Logout e IsLoggedIn
// ──────────────────────────────────────────────────────────────────────────────

func TestLogout_LimpiaYNavegaALogin(t *testing.T) {
	h := newHarness(t, loginHandler(t))
	_, err := h.uc.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)

	h.uc.Logout()

	assert.Empty(t, h.store.Token(), "tras el logout no queda token")
	assert.Nil(t, h.store.CurrentUser(), "tras el logout no queda perfil")
	assert.Equal(t, []string{ports.RouteLogin}, h.nav.routes, "el logout siempre navega a login")
}

func TestLogout_SinSesion_EsIdempotente(t *testing.T) {
	h := newHarness(t, loginHandler(t))

	h.uc.Logout()
	h.uc.Logout()

	assert.False(t, h.uc.IsLoggedIn())
	assert.Equal(t, []string{ports.RouteLogin, ports.RouteLogin}, h.nav.routes,
		"sin sesión el logout solo repite la navegación")
}

func TestIsLoggedIn_EsSoloChequeoDePresencia(t *testing.T) {
	h := newHarness(t, loginHandler(t))

	// Un token ya vencido sigue contando como sesión: la expiración se descubre
	// recién cuando una petición devuelve 401.
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	tok, err := expired.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	require.NoError(t, h.store.Set(entity.Session{
		Token: tok,
		User:  entity.User{ID: 1, Username: "admin"},
	}))

	assert.True(t, h.uc.IsLoggedIn(), "IsLoggedIn no valida expiración ni firma")
}
