package usecase

import (
	"context"
	"fmt"

	"github.com/tu-usuario/catalogo-admin/internal/application/auth"
	"github.com/tu-usuario/catalogo-admin/internal/application/dto"
	"github.com/tu-usuario/catalogo-admin/internal/domain/entity"
	"github.com/tu-usuario/catalogo-admin/internal/infrastructure/rest"
)

// ProductUseCase fachada CRUD sobre /api/products. El servidor no ofrece filtro
// de listado; el filtrado es local en el controlador. Todo 401 se intercepta
// aquí igual que en CategoryUseCase.
type ProductUseCase struct {
	api  *rest.Client
	auth *auth.UseCase
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(api *rest.Client, auth *auth.UseCase) *ProductUseCase {
	return &ProductUseCase{api: api, auth: auth}
}

// List devuelve todos los productos.
func (uc *ProductUseCase) List(ctx context.Context) ([]entity.Product, error) {
	var payloads []dto.ProductPayload
	if err := uc.api.Get(ctx, "/api/products", &payloads); err != nil {
		return nil, expireOn401(uc.auth, err)
	}
	return dto.ProductsToEntities(payloads), nil
}

// GetByID devuelve un producto; ClientError si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	var payload dto.ProductPayload
	if err := uc.api.Get(ctx, fmt.Sprintf("/api/products/%d", id), &payload); err != nil {
		return nil, expireOn401(uc.auth, err)
	}
	out := payload.ToEntity()
	return &out, nil
}

// Create crea el producto; el servidor asigna el id. El precio no se valida en
// el cliente (el servidor es el punto de control).
func (uc *ProductUseCase) Create(ctx context.Context, draft entity.Product) (*entity.Product, error) {
	var payload dto.ProductPayload
	if err := uc.api.Post(ctx, "/api/products", dto.ProductToPayload(draft), &payload); err != nil {
		return nil, expireOn401(uc.auth, err)
	}
	out := payload.ToEntity()
	return &out, nil
}

// Update actualiza el producto id con los datos del draft.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, draft entity.Product) (*entity.Product, error) {
	var payload dto.ProductPayload
	if err := uc.api.Put(ctx, fmt.Sprintf("/api/products/%d", id), dto.ProductToPayload(draft), &payload); err != nil {
		return nil, expireOn401(uc.auth, err)
	}
	out := payload.ToEntity()
	return &out, nil
}

// Delete elimina el producto id.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.api.Delete(ctx, fmt.Sprintf("/api/products/%d", id)); err != nil {
		return expireOn401(uc.auth, err)
	}
	return nil
}
