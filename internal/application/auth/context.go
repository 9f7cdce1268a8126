package auth

import "context"

type tokenKey struct{}

// WithSessionToken guarda el token de la sesión para las llamadas a la ruta privilegiada.
func WithSessionToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// SessionToken token guardado con WithSessionToken; "" si no hay.
func SessionToken(ctx context.Context) string {
	t, _ := ctx.Value(tokenKey{}).(string)
	return t
}
