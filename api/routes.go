package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"descrow/auth"
)

func (s *Server) RegisterRoutes(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		// unauthorized zone
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.handler(s.postRegister))
			r.Post("/login", s.handler(s.postLogin))
		})

		r.Route("/deals", func(r chi.Router) {
			r.Get("/", s.handler(s.getDeals))
			r.Get("/{id}", s.handler(s.getDeal))
			r.Get("/{id}/status", s.handler(s.getDealStatus))
			r.Get("/{id}/ledger", s.handler(s.getDealLedger))

			// authorized zone
			r.Group(func(r chi.Router) {
				r.Use(auth.Middleware(s.auth))
				r.Post("/", s.handler(s.postDeal))
				r.Post("/{id}/fund", s.handler(s.postFund))
				r.Post("/{id}/release", s.handler(s.postRelease))
				r.Post("/{id}/refund", s.handler(s.postRefund))
			})
		})
	})
}

func (s *Server) handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			s.replyError(w, err)
		}
	}
}
