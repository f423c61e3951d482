package api

import (
	"net/http"

	"github.com/campward/campward/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain) {
	routes.Register(
		mux,
		domain.Camps.Handler().Routes(),
		domain.Campers.Handler().Routes(),
		domain.Sessions.Handler().Routes(),
		domain.Attendance.Handler().Routes(),
	)
}
