package usecase_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/catalogo-admin/internal/application/auth"
	"github.com/tu-usuario/catalogo-admin/internal/application/ports"
	"github.com/tu-usuario/catalogo-admin/internal/application/usecase"
	"github.com/tu-usuario/catalogo-admin/internal/domain"
	"github.com/tu-usuario/catalogo-admin/internal/domain/entity"
	"github.com/tu-usuario/catalogo-admin/internal/infrastructure/rest"
	"github.com/tu-usuario/catalogo-admin/internal/infrastructure/session"
	"github.com/tu-usuario/catalogo-admin/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// navRecorder implementa ports.Navigator y registra cada navegación.
type navRecorder struct {
	routes []string
}

func (n *navRecorder) Navigate(route string) { n.routes = append(n.routes, route) }

type harness struct {
	categories *usecase.CategoryUseCase
	products   *usecase.ProductUseCase
	store      *session.Store
	nav        *navRecorder
}

// newHarness monta el caso de uso completo contra un doble de la API, con una
// sesión ya persistida (token "tok-valido").
func newHarness(t *testing.T, handler http.Handler) *harness {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store, err := session.NewStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set(entity.Session{
		Token: "tok-valido",
		User:  entity.User{ID: 1, Username: "admin"},
	}))

	api, err := rest.NewClient(srv.URL, 5*time.Second, store, logger.Nop())
	require.NoError(t, err)
	nav := &navRecorder{}
	authUC := auth.New(api, store, nav, logger.Nop())
	return &harness{
		categories: usecase.NewCategoryUseCase(api, authUC),
		products:   usecase.NewProductUseCase(api, authUC),
		store:      store,
		nav:        nav,
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// ──────────────────────────────────────────────────────────────────────────────
// Categorías
// ──────────────────────────────────────────────────────────────────────────────

func TestCategoryList_DecodificaYPropagaActiveOnly(t *testing.T) {
	var gotQuery string
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/categories", r.URL.Path)
		gotQuery = r.URL.RawQuery
		writeJSON(w, []map[string]any{
			{"id": 1, "name": "Bebidas", "description": "Frías y calientes", "active": true},
			{"id": 2, "name": "Snacks", "description": "", "parentCategory": "Bebidas", "active": false},
		})
	}))

	list, err := h.categories.List(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, "activeOnly=true", gotQuery, "el filtro de activas viaja como query param")
	require.Len(t, list, 2)
	assert.Equal(t, int64(1), list[0].ID)
	assert.Equal(t, "Bebidas", list[0].Name)
	assert.Equal(t, "Bebidas", list[1].ParentCategory)
	assert.False(t, list[1].Active)

	_, err = h.categories.List(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, gotQuery, "sin filtro no viaja query param")
}

func TestCategoryListByParent_EscapaElSegmento(t *testing.T) {
	var gotPath string
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		writeJSON(w, []map[string]any{})
	}))

	_, err := h.categories.ListByParent(context.Background(), "Bebidas frías")
	require.NoError(t, err)
	assert.Equal(t, "/api/categories/byParent/Bebidas%20fr%C3%ADas", gotPath)
}

func TestCategoryCreate_ElServidorAsignaElID(t *testing.T) {
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		var in map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.NotContains(t, in, "id", "el draft no debe enviar id")
		in["id"] = 10
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, in)
	}))

	created, err := h.categories.Create(context.Background(), entity.Category{
		Name: "Lácteos", Description: "Refrigerados", Active: true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), created.ID)
	assert.Equal(t, "Lácteos", created.Name)
}

func TestCategoryGetByID_NoEncontrada_ClientError(t *testing.T) {
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		writeJSON(w, map[string]string{"message": "Category not found with id: 99"})
	}))

	_, err := h.categories.GetByID(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, domain.KindClientError, domain.KindOf(err))
	assert.Equal(t, "Category not found with id: 99", err.Error())
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProductList_DecodificaPrecioYCategoriaAnidada(t *testing.T) {
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/products", r.URL.Path)
		writeJSON(w, []map[string]any{
			{"id": 1, "name": "Café", "description": "Grano entero", "price": 25.50, "available": true,
				"category": map[string]any{"id": 3, "name": "Bebidas", "active": true}},
			{"id": 2, "name": "Taza", "description": "Cerámica", "price": 10, "available": false},
		})
	}))

	list, err := h.products.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "25.5", list[0].Price.String())
	require.NotNil(t, list[0].Category)
	assert.Equal(t, "Bebidas", list[0].Category.Name)
	assert.Nil(t, list[1].Category, "producto sin categoría queda con nil")
	assert.Equal(t, "None", list[1].CategoryName())
}

func TestProductUpdate_EmitePUTConElCuerpo(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]any
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		writeJSON(w, gotBody)
	}))

	draft := entity.Product{ID: 5, Name: "Café", Description: "Molido", Available: true}
	_, err := h.products.Update(context.Background(), 5, draft)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/products/5", gotPath)
	assert.Equal(t, "Café", gotBody["name"])
	assert.Equal(t, float64(0), gotBody["price"], "el precio viaja como número JSON")
}

func TestProductDelete_EmiteDELETE(t *testing.T) {
	var gotMethod, gotPath string
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, h.products.Delete(context.Background(), 7))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/api/products/7", gotPath)
}

// ──────────────────────────────────────────────────────────────────────────────
// Intercepción central del 401
// ──────────────────────────────────────────────────────────────────────────────

func Test401_FuerzaUnSoloLogoutYSesionExpirada(t *testing.T) {
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		writeJSON(w, map[string]string{"message": "Token expired"})
	}))

	_, err := h.products.List(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSessionExpired,
		"el 401 debe llegar al caller como el error distinguido de sesión expirada")
	assert.Empty(t, h.store.Token(), "el logout forzado limpia la sesión")
	assert.Equal(t, []string{ports.RouteLogin}, h.nav.routes,
		"debe haber exactamente un logout forzado con su navegación a login")
}

func Test401EnDelete_TambienSeIntercepta(t *testing.T) {
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	err := h.categories.Delete(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
	assert.Equal(t, []string{ports.RouteLogin}, h.nav.routes)
}
