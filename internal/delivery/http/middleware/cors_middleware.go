package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

const (
	corsAllowedMethods = "GET, POST, PATCH, DELETE, OPTIONS"
	corsAllowedHeaders = "Content-Type, Authorization"
	corsMaxAge         = 10 * 60
)

// CORSMiddleware answers preflight requests and tags responses for the
// configured origins. A "*" entry allows any origin.
type CORSMiddleware struct {
	anyOrigin bool
	origins   map[string]struct{}
}

func NewCORSMiddleware(allowedOrigins []string) *CORSMiddleware {
	m := &CORSMiddleware{origins: make(map[string]struct{}, len(allowedOrigins))}
	for _, origin := range allowedOrigins {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		switch origin {
		case "":
		case "*":
			m.anyOrigin = true
		default:
			m.origins[origin] = struct{}{}
		}
	}
	return m
}

func (m *CORSMiddleware) allowOrigin(origin string) string {
	if m.anyOrigin {
		return "*"
	}
	if _, ok := m.origins[origin]; ok {
		return origin
	}
	return ""
}

func (m *CORSMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		header := w.Header()
		if !m.anyOrigin {
			header.Add("Vary", "Origin")
		}

		allowed := m.allowOrigin(req.Header.Get("Origin"))
		if allowed != "" {
			header.Set("Access-Control-Allow-Origin", allowed)
			header.Set("Access-Control-Allow-Methods", corsAllowedMethods)
			header.Set("Access-Control-Allow-Headers", corsAllowedHeaders)
		}

		if req.Method == http.MethodOptions && req.Header.Get("Access-Control-Request-Method") != "" {
			if allowed == "" {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			header.Set("Access-Control-Max-Age", strconv.Itoa(corsMaxAge))
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, req)
	})
}
