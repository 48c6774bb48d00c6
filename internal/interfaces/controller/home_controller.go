package controller

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/tu-usuario/catalogo-admin/internal/application/auth"
	"github.com/tu-usuario/catalogo-admin/internal/application/ports"
	"github.com/tu-usuario/catalogo-admin/internal/application/usecase"
	"github.com/tu-usuario/catalogo-admin/internal/domain"
	"github.com/tu-usuario/catalogo-admin/internal/domain/entity"
)

// Campos de ordenamiento disponibles en la vista de productos.
const (
	ProductSortID          = "id"
	ProductSortName        = "name"
	ProductSortDescription = "description"
	ProductSortPrice       = "price"
	ProductSortCategory    = "category"
)

// HomeController vista de administración de productos: guard de sesión, carga
// de productos y categorías, búsqueda local, ordenamiento, formulario de
// alta/edición y borrado en dos pasos con confirmación explícita.
type HomeController struct {
	auth       *auth.UseCase
	products   *usecase.ProductUseCase
	categories *usecase.CategoryUseCase
	nav        ports.Navigator
	success    *banner

	Username  string
	FirstName string
	LastName  string

	Products   []entity.Product
	Filtered   []entity.Product
	Categories []entity.Category

	IsLoading    bool
	ErrorMessage string

	SearchQuery   string
	SortField     string
	SortDirection string

	EditMode bool
	Current  entity.Product
	ShowForm bool

	ShowDeleteConfirmation bool
	toDelete               *entity.Product
}

// NewHomeController construye el controlador de productos.
func NewHomeController(auth *auth.UseCase, products *usecase.ProductUseCase, categories *usecase.CategoryUseCase, nav ports.Navigator) *HomeController {
	return &HomeController{
		auth:          auth,
		products:      products,
		categories:    categories,
		nav:           nav,
		success:       newBanner(successBannerTTL),
		SortField:     ProductSortName,
		SortDirection: SortAsc,
		Current:       defaultProductForm(),
	}
}

// Activate guard de entrada a la vista: sin sesión redirige a login; con sesión
// carga los campos del usuario y las dos listas.
func (c *HomeController) Activate(ctx context.Context) {
	if !c.auth.IsLoggedIn() {
		c.nav.Navigate(ports.RouteLogin)
		return
	}
	if user := c.auth.CurrentUser(); user != nil {
		c.Username = user.Username
		c.FirstName = user.FirstName
		c.LastName = user.LastName
	}
	c.LoadProducts(ctx)
	c.LoadCategories(ctx)
}

// LoadProducts recarga la lista completa desde el servidor y reaplica filtro y
// ordenamiento locales.
func (c *HomeController) LoadProducts(ctx context.Context) {
	c.IsLoading = true
	c.ErrorMessage = ""

	list, err := c.products.List(ctx)
	if err != nil {
		c.ErrorMessage = failureMessage(err, "Failed to load products. Please try again.")
		c.IsLoading = false
		return
	}
	c.Products = list
	c.ApplyFiltersAndSort()
	c.IsLoading = false
}

// LoadCategories carga las categorías activas para el selector del formulario y
// la columna de categoría.
func (c *HomeController) LoadCategories(ctx context.Context) {
	c.IsLoading = true

	list, err := c.categories.List(ctx, true)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionExpired) {
			c.ErrorMessage = "Failed to load categories. Please try again."
		}
		c.IsLoading = false
		return
	}
	c.Categories = list
	c.IsLoading = false
}

// SuccessMessage banner de éxito vigente, o "" si ya se auto-limpió.
func (c *HomeController) SuccessMessage() string {
	return c.success.Message()
}

// AddNew abre el formulario vacío en modo alta.
func (c *HomeController) AddNew() {
	c.EditMode = false
	c.Current = defaultProductForm()
	c.ShowForm = true
}

// Edit abre el formulario en modo edición con una copia superficial del producto.
func (c *HomeController) Edit(p entity.Product) {
	c.EditMode = true
	c.Current = p
	c.ShowForm = true
}

// Delete marca el producto para borrar y muestra la confirmación. No emite
// ninguna petición: eso solo ocurre en ConfirmDelete.
func (c *HomeController) Delete(p entity.Product) {
	if p.ID == 0 {
		return
	}
	c.toDelete = &p
	c.ShowDeleteConfirmation = true
}

// CancelDelete cierra la confirmación sin borrar.
func (c *HomeController) CancelDelete() {
	c.ShowDeleteConfirmation = false
	c.toDelete = nil
}

// ConfirmDelete segundo paso del borrado: emite el DELETE y recarga la lista.
func (c *HomeController) ConfirmDelete(ctx context.Context) {
	if c.toDelete == nil || c.toDelete.ID == 0 {
		c.CancelDelete()
		return
	}

	c.IsLoading = true
	c.ShowDeleteConfirmation = false

	err := c.products.Delete(ctx, c.toDelete.ID)
	if err != nil {
		c.ErrorMessage = failureMessage(err, "Failed to delete product. Please try again.")
		c.IsLoading = false
		c.toDelete = nil
		return
	}
	c.LoadProducts(ctx)
	c.success.Show("Product deleted successfully")
	c.toDelete = nil
}

// Submit envía el formulario: PUT si es edición con id, POST si es alta. En
// éxito recarga la lista, muestra el banner y cierra el formulario.
func (c *HomeController) Submit(ctx context.Context) {
	c.IsLoading = true
	c.ErrorMessage = ""

	if c.EditMode && c.Current.ID != 0 {
		if _, err := c.products.Update(ctx, c.Current.ID, c.Current); err != nil {
			c.ErrorMessage = failureMessage(err, "Failed to update product. Please try again.")
			c.IsLoading = false
			return
		}
		c.LoadProducts(ctx)
		c.success.Show("Product updated successfully")
		c.CancelEdit()
		return
	}

	if _, err := c.products.Create(ctx, c.Current); err != nil {
		c.ErrorMessage = failureMessage(err, "Failed to create product. Please try again.")
		c.IsLoading = false
		return
	}
	c.LoadProducts(ctx)
	c.success.Show("Product created successfully")
	c.CancelEdit()
}

// CancelEdit cierra el formulario y lo restablece a los valores por defecto.
func (c *HomeController) CancelEdit() {
	c.ShowForm = false
	c.Current = defaultProductForm()
}

// NavigateToCategories cambia a la vista de categorías.
func (c *HomeController) NavigateToCategories() {
	c.nav.Navigate(ports.RouteCategories)
}

// Logout cierra la sesión; el flujo de auth ya navega a login.
func (c *HomeController) Logout() {
	c.auth.Logout()
}

// OnSearch actualiza la búsqueda y reaplica filtro y ordenamiento. El filtrado
// es puramente local sobre la lista ya cargada.
func (c *HomeController) OnSearch(query string) {
	c.SearchQuery = query
	c.ApplyFiltersAndSort()
}

// SetSortField elige el campo de ordenamiento; repetir el mismo campo alterna
// la dirección, un campo nuevo vuelve a ascendente.
func (c *HomeController) SetSortField(field string) {
	if c.SortField == field {
		if c.SortDirection == SortAsc {
			c.SortDirection = SortDesc
		} else {
			c.SortDirection = SortAsc
		}
	} else {
		c.SortField = field
		c.SortDirection = SortAsc
	}
	c.ApplyFiltersAndSort()
}

// ApplyFiltersAndSort reconstruye Filtered: primero el filtro de búsqueda,
// después el ordenamiento estable (los empates preservan el orden de entrada).
func (c *HomeController) ApplyFiltersAndSort() {
	c.Filtered = c.filterProducts()
	c.sortProducts()
}

// filterProducts búsqueda por subcadena, sin distinguir mayúsculas, sobre
// nombre y descripción. Consulta vacía devuelve una copia de toda la lista.
func (c *HomeController) filterProducts() []entity.Product {
	query := strings.ToLower(strings.TrimSpace(c.SearchQuery))
	if query == "" {
		out := make([]entity.Product, len(c.Products))
		copy(out, c.Products)
		return out
	}
	out := make([]entity.Product, 0, len(c.Products))
	for _, p := range c.Products {
		if strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.Description), query) {
			out = append(out, p)
		}
	}
	return out
}

func (c *HomeController) sortProducts() {
	desc := c.SortDirection == SortDesc
	sort.SliceStable(c.Filtered, func(i, j int) bool {
		cmp := compareProducts(c.Filtered[i], c.Filtered[j], c.SortField)
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
}

// compareProducts comparador por campo: numérico para id y price, texto sin
// distinguir mayúsculas para el resto; category compara el nombre anidado
// ("" cuando el producto no tiene categoría).
func compareProducts(a, b entity.Product, field string) int {
	switch field {
	case ProductSortID:
		return compareInt64(a.ID, b.ID)
	case ProductSortDescription:
		return strings.Compare(strings.ToLower(a.Description), strings.ToLower(b.Description))
	case ProductSortPrice:
		return a.Price.Cmp(b.Price)
	case ProductSortCategory:
		return strings.Compare(categorySortKey(a), categorySortKey(b))
	default: // name
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	}
}

func categorySortKey(p entity.Product) string {
	if p.Category == nil {
		return ""
	}
	return strings.ToLower(p.Category.Name)
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func defaultProductForm() entity.Product {
	return entity.Product{Available: true}
}
