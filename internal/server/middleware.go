package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/unrolled/secure"

	"github.com/platfix/platfix/internal/shared"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-Id"

type contextKey string

const requestIDKey contextKey = "request_id"

// RequestIDFrom returns the id assigned by [RequestID], or "".
func RequestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// RequestID tags every request with an id, reusing the client's when it sends one.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > 64 {
			id = shared.GenerateID()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// Logger logs one line per request with its status and duration.
func Logger(logger *log.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", RequestIDFrom(r.Context()),
			)
		})
	}
}

// CORS allows the development client on origins to call the server with cookies.
func CORS(origins []string) Middleware {
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", RequestIDHeader},
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	})
}

// SecureHeaders sets the production security headers.
func SecureHeaders() Middleware {
	sm := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "no-referrer",
		STSSeconds:         15552000,
	})

	return func(next http.Handler) http.Handler {
		return sm.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Permitted-Cross-Domain-Policies", "none")
			h.Set("X-DNS-Prefetch-Control", "off")
			h.Set("X-Download-Options", "noopen")
			next.ServeHTTP(w, r)
		}))
	}
}

// RateLimit rejects clients that exceed limiter.
//
// The key is the socket peer recorded by [PeerAddr]. Forwarded addresses only count when the
// peer is one of trustedProxies.
func RateLimit(limiter *KeyedRateLimiter, trustedProxies []string, onError ErrorHandler) Middleware {
	trusted := make(map[string]bool, len(trustedProxies))
	for _, p := range trustedProxies {
		trusted[p] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := rateLimitKey(r, trusted)
			if !limiter.Allow(key) {
				w.Header().Set("Retry-After", "1")
				onError(w, r, fmt.Errorf("%w: %s", shared.ErrRateLimited, key))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

const peerAddrKey contextKey = "peer_addr"

// PeerAddr records the socket peer before [middleware.RealIP] rewrites RemoteAddr.
func PeerAddr(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), peerAddrKey, hostOnly(r.RemoteAddr))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// PeerAddrFrom returns the address recorded by [PeerAddr], or "".
func PeerAddrFrom(ctx context.Context) string {
	if addr, ok := ctx.Value(peerAddrKey).(string); ok {
		return addr
	}
	return ""
}

func rateLimitKey(r *http.Request, trusted map[string]bool) string {
	peer := PeerAddrFrom(r.Context())
	if peer == "" {
		peer = hostOnly(r.RemoteAddr)
	}
	if trusted[peer] {
		return hostOnly(r.RemoteAddr)
	}
	return peer
}

func hostOnly(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}
