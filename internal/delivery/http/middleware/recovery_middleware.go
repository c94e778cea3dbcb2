package middleware

import (
	"net/http"
	"runtime/debug"

	"go-hospital-booking/pkg/response"

	"github.com/sirupsen/logrus"
)

// Recover turns a panic in a handler into a 500 envelope.
func Recover(log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					log.WithFields(logrus.Fields{
						"panic":  rec,
						"method": r.Method,
						"path":   r.URL.Path,
						"stack":  string(debug.Stack()),
					}).Error("Recovered from panic")
					response.InternalServerError(w, "Internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
