package controller

import (
	"context"
	"sort"
	"strings"

	"github.com/tu-usuario/catalogo-admin/internal/application/auth"
	"github.com/tu-usuario/catalogo-admin/internal/application/ports"
	"github.com/tu-usuario/catalogo-admin/internal/application/usecase"
	"github.com/tu-usuario/catalogo-admin/internal/domain/entity"
)

// Campos de ordenamiento disponibles en la vista de categorías.
const (
	CategorySortID          = "id"
	CategorySortName        = "name"
	CategorySortDescription = "description"
	CategorySortParent      = "parent"
	CategorySortActive      = "active"
)

// CategoryController vista de administración de categorías. Mantiene además una
// copia de la lista cargada como candidatas a categoría padre del formulario.
type CategoryController struct {
	auth       *auth.UseCase
	categories *usecase.CategoryUseCase
	nav        ports.Navigator
	success    *banner

	Username  string
	FirstName string
	LastName  string

	Categories       []entity.Category
	Filtered         []entity.Category
	ParentCategories []entity.Category

	IsLoading    bool
	ErrorMessage string

	SearchQuery   string
	SortField     string
	SortDirection string

	EditMode bool
	Current  entity.Category
	ShowForm bool

	ShowDeleteConfirmation bool
	toDelete               *entity.Category
}

// NewCategoryController construye el controlador de categorías.
func NewCategoryController(auth *auth.UseCase, categories *usecase.CategoryUseCase, nav ports.Navigator) *CategoryController {
	return &CategoryController{
		auth:          auth,
		categories:    categories,
		nav:           nav,
		success:       newBanner(successBannerTTL),
		SortField:     CategorySortName,
		SortDirection: SortAsc,
		Current:       defaultCategoryForm(),
	}
}

// Activate guard de entrada: sin sesión redirige a login; con sesión carga los
// campos del usuario y la lista.
func (c *CategoryController) Activate(ctx context.Context) {
	if !c.auth.IsLoggedIn() {
		c.nav.Navigate(ports.RouteLogin)
		return
	}
	if user := c.auth.CurrentUser(); user != nil {
		c.Username = user.Username
		c.FirstName = user.FirstName
		c.LastName = user.LastName
	}
	c.LoadCategories(ctx)
}

// LoadCategories recarga la lista completa (sin filtro de activas: la vista
// administra también las inactivas) y refresca las candidatas a padre.
func (c *CategoryController) LoadCategories(ctx context.Context) {
	c.IsLoading = true
	c.ErrorMessage = ""

	list, err := c.categories.List(ctx, false)
	if err != nil {
		c.ErrorMessage = failureMessage(err, "Failed to load categories. Please try again.")
		c.IsLoading = false
		return
	}
	c.Categories = list
	c.ParentCategories = make([]entity.Category, len(list))
	copy(c.ParentCategories, list)
	c.ApplyFiltersAndSort()
	c.IsLoading = false
}

// SuccessMessage banner de éxito vigente, o "" si ya se auto-limpió.
func (c *CategoryController) SuccessMessage() string {
	return c.success.Message()
}

// AddNew abre el formulario vacío en modo alta (activa por defecto, sin padre).
func (c *CategoryController) AddNew() {
	c.EditMode = false
	c.Current = defaultCategoryForm()
	c.ShowForm = true
}

// Edit abre el formulario en modo edición con una copia de la categoría.
func (c *CategoryController) Edit(cat entity.Category) {
	c.EditMode = true
	c.Current = cat
	c.ShowForm = true
}

// Delete marca la categoría y muestra la confirmación; el DELETE solo se emite
// en ConfirmDelete.
func (c *CategoryController) Delete(cat entity.Category) {
	if cat.ID == 0 {
		return
	}
	c.toDelete = &cat
	c.ShowDeleteConfirmation = true
}

// CancelDelete cierra la confirmación sin borrar.
func (c *CategoryController) CancelDelete() {
	c.ShowDeleteConfirmation = false
	c.toDelete = nil
}

// ConfirmDelete segundo paso del borrado: emite el DELETE y recarga la lista.
func (c *CategoryController) ConfirmDelete(ctx context.Context) {
	if c.toDelete == nil || c.toDelete.ID == 0 {
		c.CancelDelete()
		return
	}

	c.IsLoading = true
	c.ShowDeleteConfirmation = false

	err := c.categories.Delete(ctx, c.toDelete.ID)
	if err != nil {
		c.ErrorMessage = failureMessage(err, "Failed to delete category. Please try again.")
		c.IsLoading = false
		c.toDelete = nil
		return
	}
	c.LoadCategories(ctx)
	c.success.Show("Category deleted successfully")
	c.toDelete = nil
}

// Submit envía el formulario: PUT si es edición con id, POST si es alta.
func (c *CategoryController) Submit(ctx context.Context) {
	c.IsLoading = true
	c.ErrorMessage = ""

	if c.EditMode && c.Current.ID != 0 {
		if _, err := c.categories.Update(ctx, c.Current.ID, c.Current); err != nil {
			c.ErrorMessage = failureMessage(err, "Failed to update category. Please try again.")
			c.IsLoading = false
			return
		}
		c.LoadCategories(ctx)
		c.success.Show("Category updated successfully")
		c.CancelEdit()
		return
	}

	if _, err := c.categories.Create(ctx, c.Current); err != nil {
		c.ErrorMessage = failureMessage(err, "Failed to create category. Please try again.")
		c.IsLoading = false
		return
	}
	c.LoadCategories(ctx)
	c.success.Show("Category created successfully")
	c.CancelEdit()
}

// CancelEdit cierra el formulario y lo restablece a los valores por defecto.
func (c *CategoryController) CancelEdit() {
	c.ShowForm = false
	c.Current = defaultCategoryForm()
}

// NavigateToProducts cambia a la vista de productos.
func (c *CategoryController) NavigateToProducts() {
	c.nav.Navigate(ports.RouteHome)
}

// Logout cierra la sesión; el flujo de auth ya navega a login.
func (c *CategoryController) Logout() {
	c.auth.Logout()
}

// OnSearch actualiza la búsqueda local y reaplica filtro y ordenamiento.
func (c *CategoryController) OnSearch(query string) {
	c.SearchQuery = query
	c.ApplyFiltersAndSort()
}

// SetSortField elige el campo de ordenamiento; repetir el mismo campo alterna
// la dirección, un campo nuevo vuelve a ascendente.
func (c *CategoryController) SetSortField(field string) {
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

// ApplyFiltersAndSort reconstruye Filtered con el filtro de búsqueda y el
// ordenamiento estable.
func (c *CategoryController) ApplyFiltersAndSort() {
	c.Filtered = c.filterCategories()
	c.sortCategories()
}

func (c *CategoryController) filterCategories() []entity.Category {
	query := strings.ToLower(strings.TrimSpace(c.SearchQuery))
	if query == "" {
		out := make([]entity.Category, len(c.Categories))
		copy(out, c.Categories)
		return out
	}
	out := make([]entity.Category, 0, len(c.Categories))
	for _, cat := range c.Categories {
		if strings.Contains(strings.ToLower(cat.Name), query) ||
			strings.Contains(strings.ToLower(cat.Description), query) {
			out = append(out, cat)
		}
	}
	return out
}

func (c *CategoryController) sortCategories() {
	desc := c.SortDirection == SortDesc
	sort.SliceStable(c.Filtered, func(i, j int) bool {
		cmp := compareCategories(c.Filtered[i], c.Filtered[j], c.SortField)
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
}

// compareCategories comparador por campo: numérico para id, booleano para
// active (inactivas primero en ascendente), texto sin distinguir mayúsculas
// para el resto.
func compareCategories(a, b entity.Category, field string) int {
	switch field {
	case CategorySortID:
		return compareInt64(a.ID, b.ID)
	case CategorySortDescription:
		return strings.Compare(strings.ToLower(a.Description), strings.ToLower(b.Description))
	case CategorySortParent:
		return strings.Compare(strings.ToLower(a.ParentCategory), strings.ToLower(b.ParentCategory))
	case CategorySortActive:
		return compareBool(a.Active, b.Active)
	default: // name
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	}
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

func defaultCategoryForm() entity.Category {
	return entity.Category{Active: true}
}
