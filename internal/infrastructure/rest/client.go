package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/catalogo-admin/internal/domain"
	"github.com/tu-usuario/catalogo-admin/pkg/logger"
)

// GenericErrorMessage mensaje por defecto cuando el servidor no aporta uno.
const GenericErrorMessage = "An error occurred. Please try again."

// maxErrorBody tope de lectura del cuerpo de una respuesta de error para el log.
const maxErrorBody = 4 << 10

// apiErrorBody forma del cuerpo de error del backend; solo interesa message.
type apiErrorBody struct {
	Message string `json:"message"`
}

// Client despachador de peticiones a la API. Antes de transmitir, cada petición
// pasa por la cadena de interceptores en orden fijo: bearer auth y luego el par
// XSRF; después viaja por el transporte. Toda respuesta fallida se registra
// cruda en el log y se normaliza a la taxonomía de domain.
type Client struct {
	baseURL string
	http    *http.Client
	chain   []Interceptor
	log     *logger.Logger
}

// NewClient construye el despachador. El jar de cookies captura XSRF-TOKEN que
// el interceptor XSRF refleja como header en las peticiones mutadoras.
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, log *logger.Logger) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("rest: crear cookie jar: %w", err)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
		chain: []Interceptor{
			BearerAuth{Tokens: tokens},
			XSRF{Jar: jar},
		},
		log: log,
	}, nil
}

// Get despacha GET path y decodifica la respuesta JSON en out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post despacha POST path con body JSON y decodifica la respuesta en out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put despacha PUT path con body JSON y decodifica la respuesta en out.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Delete despacha DELETE path; la respuesta no lleva cuerpo útil.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("rest: serializar cuerpo: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("rest: construir petición: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	// Cadena de interceptores en orden fijo; cada etapa devuelve la petición
	// original o un clon, nunca muta la anterior.
	for _, ic := range c.chain {
		req = ic.Intercept(req)
	}

	res, err := c.http.Do(req)
	if err != nil {
		c.log.Error().
			Str("request_id", requestID).
			Str("method", method).
			Str("path", path).
			Err(err).
			Msg("fallo de transporte hacia la API")
		return domain.New(domain.KindNetworkError, GenericErrorMessage)
	}
	defer res.Body.Close()

	if res.StatusCode >= 200 && res.StatusCode < 300 {
		if out == nil {
			io.Copy(io.Discard, res.Body)
			return nil
		}
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			c.log.Error().
				Str("request_id", requestID).
				Str("method", method).
				Str("path", path).
				Err(err).
				Msg("respuesta de la API no decodificable")
			return domain.New(domain.KindNetworkError, GenericErrorMessage)
		}
		return nil
	}

	return c.normalize(requestID, method, path, res)
}

// normalize registra la respuesta de error cruda y la mapea a la taxonomía:
// 401 -> Unauthorized, otros 4xx -> ClientError, 5xx -> ServerError.
// El mensaje es el "message" del servidor si viene, o el genérico.
func (c *Client) normalize(requestID, method, path string, res *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))

	c.log.Error().
		Str("request_id", requestID).
		Str("method", method).
		Str("path", path).
		Int("status", res.StatusCode).
		Str("body", string(raw)).
		Msg("respuesta de error de la API")

	message := GenericErrorMessage
	var parsed apiErrorBody
	if err := json.Unmarshal(raw, &parsed); err == nil && parsed.Message != "" {
		message = parsed.Message
	}

	switch {
	case res.StatusCode == http.StatusUnauthorized:
		return domain.New(domain.KindUnauthorized, message)
	case res.StatusCode >= 500:
		return domain.New(domain.KindServerError, message)
	default:
		return domain.New(domain.KindClientError, message)
	}
}
