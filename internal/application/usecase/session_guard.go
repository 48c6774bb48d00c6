package usecase

import (
	"github.com/tu-usuario/catalogo-admin/internal/application/auth"
	"github.com/tu-usuario/catalogo-admin/internal/domain"
)

// expireOn401 intercepta el Unauthorized del despachador: fuerza el logout (que
// ya navega a login) y lo reemplaza por ErrSessionExpired para que el
// controlador suprima su banner genérico. Cualquier otro error pasa intacto.
func expireOn401(a *auth.UseCase, err error) error {
	if err == nil {
		return nil
	}
	if domain.IsUnauthorized(err) {
		a.Logout()
		return domain.ErrSessionExpired
	}
	return err
}
