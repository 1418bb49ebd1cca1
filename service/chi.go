package service

import "net/http"

// ChiHandlers returns Chi-compatible handlers for POST /count and POST /enumerate.
// Chi uses standard net/http, so these are thin wrappers around the same
// handlers [HTTP] registers:
//
//	r := chi.NewRouter()
//	countHandler, enumerateHandler := service.ChiHandlers(svc)
//	r.Post("/count", countHandler)
//	r.Post("/enumerate", enumerateHandler)
func ChiHandlers(svc *Service) (count, enumerate http.HandlerFunc) {
	return func(w http.ResponseWriter, r *http.Request) {
			handleCount(svc, w, r)
		}, func(w http.ResponseWriter, r *http.Request) {
			handleEnumerate(svc, w, r)
		}
}
