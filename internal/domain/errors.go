package domain

import "errors"

// Kind clasifica los fallos al consumir la API en una taxonomía pequeña.
type Kind string

const (
	KindUnauthorized Kind = "UNAUTHORIZED" // HTTP 401
	KindClientError  Kind = "CLIENT_ERROR" // otros 4xx
	KindServerError  Kind = "SERVER_ERROR" // 5xx
	KindNetworkError Kind = "NETWORK_ERROR" // fallo de transporte, sin respuesta
	KindValidation   Kind = "VALIDATION"    // validación local, nunca llegó a la red
)

// Error fallo normalizado de una llamada a la API. Se construye por llamada fallida;
// el error crudo ya quedó en el log antes de normalizar.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// New construye un error de la taxonomía.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf devuelve la clase del error, o "" si no pertenece a la taxonomía.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsUnauthorized reporta si el error corresponde a un HTTP 401.
func IsUnauthorized(err error) bool { return KindOf(err) == KindUnauthorized }

// ErrSessionExpired error distinguido que reemplaza al 401 genérico cuando un
// resource client ya forzó el logout; permite al controlador suprimir el banner
// genérico y mostrar un único mensaje de sesión expirada.
var ErrSessionExpired = errors.New("Your session has expired. Please login again.")
