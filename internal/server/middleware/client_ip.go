package middleware

import (
	"context"
	"net"
	"net/http"
)

type clientIPKey struct{}

// ClientIP stores the request's remote address in the context so audit
// entries written deeper in the stack can record it. RealIP middleware has
// already resolved X-Forwarded-For into RemoteAddr.
func ClientIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		ctx := context.WithValue(r.Context(), clientIPKey{}, host)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClientIPFromContext returns the stored client IP, or "unknown" outside a
// request.
func ClientIPFromContext(ctx context.Context) string {
	ip, ok := ctx.Value(clientIPKey{}).(string)
	if !ok || ip == "" {
		return "unknown"
	}
	return ip
}
