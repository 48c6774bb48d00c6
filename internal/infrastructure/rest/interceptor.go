package rest

import "net/http"

// Interceptor transforma una petición saliente antes de transmitirla. Cada etapa
// es pura dada (petición, estado actual): devuelve la misma petición o un clon
// modificado, nunca muta la original.
type Interceptor interface {
	Intercept(req *http.Request) *http.Request
}

// TokenSource entrega el token vigente, o "" si no hay sesión.
// El session store lo implementa directamente.
type TokenSource interface {
	Token() string
}

// BearerAuth añade "Authorization: Bearer <token>" clonando la petición cuando
// hay token; sin token la petición sigue sin modificar.
type BearerAuth struct {
	Tokens TokenSource
}

func (i BearerAuth) Intercept(req *http.Request) *http.Request {
	token := i.Tokens.Token()
	if token == "" {
		return req
	}
	out := req.Clone(req.Context())
	out.Header.Set("Authorization", "Bearer "+token)
	return out
}

// Par double-submit de protección CSRF: el servidor emite la cookie y el cliente
// la refleja en el header en cada petición mutadora.
const (
	xsrfCookieName = "XSRF-TOKEN"
	xsrfHeaderName = "X-XSRF-TOKEN"
)

// XSRF refleja la cookie XSRF-TOKEN capturada en el jar como header X-XSRF-TOKEN.
// GET y HEAD no llevan el header (no mutan estado).
type XSRF struct {
	Jar http.CookieJar
}

func (i XSRF) Intercept(req *http.Request) *http.Request {
	if req.Method == http.MethodGet || req.Method == http.MethodHead {
		return req
	}
	for _, c := range i.Jar.Cookies(req.URL) {
		if c.Name == xsrfCookieName && c.Value != "" {
			out := req.Clone(req.Context())
			out.Header.Set(xsrfHeaderName, c.Value)
			return out
		}
	}
	return req
}
