package usecase

import (
	"context"
	"fmt"
	"net/url"

	"github.com/tu-usuario/catalogo-admin/internal/application/auth"
	"github.com/tu-usuario/catalogo-admin/internal/application/dto"
	"github.com/tu-usuario/catalogo-admin/internal/domain/entity"
	"github.com/tu-usuario/catalogo-admin/internal/infrastructure/rest"
)

// CategoryUseCase fachada CRUD sobre /api/categories. Todo 401 del despachador
// se intercepta aquí: logout forzado y ErrSessionExpired hacia el caller.
type CategoryUseCase struct {
	api  *rest.Client
	auth *auth.UseCase
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(api *rest.Client, auth *auth.UseCase) *CategoryUseCase {
	return &CategoryUseCase{api: api, auth: auth}
}

// List devuelve las categorías; con activeOnly el servidor filtra las activas.
func (uc *CategoryUseCase) List(ctx context.Context, activeOnly bool) ([]entity.Category, error) {
	path := "/api/categories"
	if activeOnly {
		path += "?activeOnly=true"
	}
	var payloads []dto.CategoryPayload
	if err := uc.api.Get(ctx, path, &payloads); err != nil {
		return nil, expireOn401(uc.auth, err)
	}
	return dto.CategoriesToEntities(payloads), nil
}

// ListByParent devuelve las categorías hijas de la categoría padre indicada.
func (uc *CategoryUseCase) ListByParent(ctx context.Context, parent string) ([]entity.Category, error) {
	var payloads []dto.CategoryPayload
	path := "/api/categories/byParent/" + url.PathEscape(parent)
	if err := uc.api.Get(ctx, path, &payloads); err != nil {
		return nil, expireOn401(uc.auth, err)
	}
	return dto.CategoriesToEntities(payloads), nil
}

// GetByID devuelve una categoría; ClientError si no existe.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	var payload dto.CategoryPayload
	if err := uc.api.Get(ctx, fmt.Sprintf("/api/categories/%d", id), &payload); err != nil {
		return nil, expireOn401(uc.auth, err)
	}
	out := payload.ToEntity()
	return &out, nil
}

// Create crea la categoría; el servidor asigna el id.
func (uc *CategoryUseCase) Create(ctx context.Context, draft entity.Category) (*entity.Category, error) {
	var payload dto.CategoryPayload
	if err := uc.api.Post(ctx, "/api/categories", dto.CategoryToPayload(draft), &payload); err != nil {
		return nil, expireOn401(uc.auth, err)
	}
	out := payload.ToEntity()
	return &out, nil
}

// Update actualiza la categoría id con los datos del draft.
func (uc *CategoryUseCase) Update(ctx context.Context, id int64, draft entity.Category) (*entity.Category, error) {
	var payload dto.CategoryPayload
	if err := uc.api.Put(ctx, fmt.Sprintf("/api/categories/%d", id), dto.CategoryToPayload(draft), &payload); err != nil {
		return nil, expireOn401(uc.auth, err)
	}
	out := payload.ToEntity()
	return &out, nil
}

// Delete elimina la categoría id.
func (uc *CategoryUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.api.Delete(ctx, fmt.Sprintf("/api/categories/%d", id)); err != nil {
		return expireOn401(uc.auth, err)
	}
	return nil
}
