// Package client cliente tipado de la API de inventario.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/jhoicas/lumina-inventario/internal/application/dto"
	"github.com/jhoicas/lumina-inventario/internal/application/paging"
)

const (
	defaultTimeout = 15 * time.Second
	maxErrorBody   = 64 << 10
)

// APIError respuesta de error de la API.
type APIError struct {
	Status  int
	Code    string
	Message string
	Details map[string]any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api %d %s: %s", e.Status, e.Code, e.Message)
}

// Client llamadas HTTP autenticadas con el token de la última sesión.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// Option configura el cliente.
type Option func(*Client)

// WithHTTPClient reemplaza el *http.Client por defecto.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithToken fija un token ya emitido.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Token token vigente ("" sin sesión).
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Login inicia sesión y guarda el token para las llamadas siguientes.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, dto.LoginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.token = out.Token
	c.mu.Unlock()
	return &out, nil
}

// Logout revoca el token en el servidor y lo olvida.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil, nil)
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
	return err
}

// ListProducts página de productos para q.
func (c *Client) ListProducts(ctx context.Context, q Query, inStockOnly bool) (*ProductListResponse, error) {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("page_size", strconv.Itoa(q.PageSize))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Sort.Field != "" {
		v.Set("sort", q.Sort.Field)
		if q.Sort.Desc {
			v.Set("order", "desc")
		} else {
			v.Set("order", "asc")
		}
	}
	if inStockOnly {
		v.Set("in_stock", "true")
	}
	var out ProductListResponse
	if err := c.do(ctx, http.MethodGet, "/api/products", v, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Suggest sugerencias para text. Con menos de 2 caracteres no consulta el servidor.
func (c *Client) Suggest(ctx context.Context, text string) ([]SuggestionResponse, error) {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < paging.MinSearchLength {
		return []SuggestionResponse{}, nil
	}
	var out []SuggestionResponse
	if err := c.do(ctx, http.MethodGet, "/api/products/suggest", url.Values{"q": {text}}, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RecordMovement registra una entrada o salida.
func (c *Client) RecordMovement(ctx context.Context, in RecordMovementRequest) (*RecordMovementResponse, error) {
	var out RecordMovementResponse
	if err := c.do(ctx, http.MethodPost, "/api/movements", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetUserActive activa o desactiva una cuenta (admin).
func (c *Client) SetUserActive(ctx context.Context, userID string, active bool) (*UserResponse, error) {
	var out UserResponse
	path := "/api/users/" + url.PathEscape(userID) + "/active"
	if err := c.do(ctx, http.MethodPut, path, nil, dto.SetActiveRequest{IsActive: &active}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ToggleActive invierte u.IsActive antes de llamar al servidor y lo restaura si la llamada falla.
// Con éxito u queda con la respuesta del servidor.
func (c *Client) ToggleActive(ctx context.Context, u *UserResponse) error {
	prev := u.IsActive
	u.IsActive = !prev
	res, err := c.SetUserActive(ctx, u.ID, u.IsActive)
	if err != nil {
		u.IsActive = prev
		return err
	}
	*u = *res
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("serializar petición: %w", err)
		}
		r = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, r)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode}
		var eb dto.ErrorResponse
		if err := json.NewDecoder(io.LimitReader(resp.Body, maxErrorBody)).Decode(&eb); err == nil {
			apiErr.Code, apiErr.Message, apiErr.Details = eb.Code, eb.Message, eb.Details
		} else {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decodificar respuesta: %w", err)
	}
	return nil
}
