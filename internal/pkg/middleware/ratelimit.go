package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"goloja/internal/pkg/cache"
	"goloja/internal/pkg/logger"
)

// RateLimiter limita requisições por IP numa janela fixa, com contador no Redis.
// Se o Redis falhar a requisição segue (fail-open) e a falha é registrada.
func RateLimiter(client cache.Client, limit int, window time.Duration, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			key := "rate-limit:" + ip
			ctx := r.Context()

			count, err := client.Incr(ctx, key)
			if err != nil {
				log.Warn("Rate limiter sem Redis; requisição liberada.", map[string]interface{}{"error": err.Error()})
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				if err := client.Expire(ctx, key, window); err != nil {
					// Sem TTL o contador nunca zera: descarta a chave e libera a requisição.
					log.Warn("Falha ao definir TTL do rate limit; contador descartado.", map[string]interface{}{"key": key, "error": err.Error()})
					if err := client.Delete(ctx, key); err != nil {
						log.Warn("Falha ao descartar contador do rate limit.", map[string]interface{}{"key": key, "error": err.Error()})
					}
					next.ServeHTTP(w, r)
					return
				}
			}

			remaining := int64(limit) - count
			if remaining < 0 {
				w.Header().Set("X-RateLimit-Remaining", "0")
				http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
			next.ServeHTTP(w, r)
		})
	}
}
