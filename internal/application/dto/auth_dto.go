package dto

import "github.com/tu-usuario/catalogo-admin/internal/domain/entity"

// LoginRequest credenciales para POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse respuesta del login: token + perfil plano del usuario.
type LoginResponse struct {
	Token     string `json:"token"`
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

// ToSession convierte la respuesta del login en la sesión a persistir.
func (r LoginResponse) ToSession() entity.Session {
	return entity.Session{
		Token: r.Token,
		User: entity.User{
			ID:        r.ID,
			Username:  r.Username,
			Email:     r.Email,
			FirstName: r.FirstName,
			LastName:  r.LastName,
			Role:      r.Role,
		},
	}
}
