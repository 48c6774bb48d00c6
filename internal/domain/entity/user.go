package entity

// User perfil del usuario autenticado tal como lo devuelve /api/auth/login.
type User struct {
	ID        int64
	Username  string
	Email     string
	FirstName string
	LastName  string
	Role      string
}

// Session token opaco + perfil del usuario. Se crea al iniciar sesión, se lee en
// cada petición autenticada y se destruye en el logout o al detectar expiración.
type Session struct {
	Token string
	User  User
}
