package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/dtroode/aksara-server/internal/api/http/handler"
	"github.com/dtroode/aksara-server/internal/logger"
)

// Recover turns a panic in one request into a JSON 500 for that request only.
type Recover struct {
	logger *logger.Logger
}

func NewRecover(logger *logger.Logger) *Recover {
	return &Recover{logger: logger}
}

func (m *Recover) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			p := recover()
			if p == nil {
				return
			}
			if err, ok := p.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(p)
			}

			m.logger.Error("HTTP request panicked",
				"method", r.Method,
				"uri", r.RequestURI,
				"request_id", chimiddleware.GetReqID(r.Context()),
				"panic", p,
				"stack", string(debug.Stack()))

			handler.WriteMessage(w, http.StatusInternalServerError, "internal server error")
		}()

		next.ServeHTTP(w, r)
	})
}
