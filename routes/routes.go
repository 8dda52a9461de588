package routes

import (
	"wayfarer/activity"
	"wayfarer/auth"
	"wayfarer/booking"
	"wayfarer/hotels"
	"wayfarer/middleware"
	"wayfarer/pdfexport"
	"wayfarer/planner"
	"wayfarer/ratelim"
	"wayfarer/shares"
	"wayfarer/trips"
	"wayfarer/weather"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.Logout))
	router.POST("/api/auth/token/refresh", ratelim.RateLimit(auth.RefreshToken))
}

func AddPlannerRoutes(router *httprouter.Router, p *planner.Planner) {
	router.POST("/api/trips", ratelim.RateLimit(middleware.Authenticate(p.PlanTrip)))
	router.POST("/api/trips/:tripid/regenerate", ratelim.RateLimit(middleware.Authenticate(p.RegenerateTrip)))
}

func AddTripRoutes(router *httprouter.Router) {
	router.GET("/api/trips", middleware.Authenticate(trips.GetTrips))
	router.GET("/api/trips/:tripid", middleware.Authenticate(trips.GetTrip))
	router.DELETE("/api/trips/:tripid", middleware.Authenticate(trips.DeleteTrip))
}

func AddShareRoutes(router *httprouter.Router, h *shares.Handlers) {
	router.POST("/api/trips/:tripid/share", middleware.Authenticate(h.CreateShare))
	router.GET("/api/shares", middleware.Authenticate(h.ListShares))
	router.DELETE("/api/shares/:token", middleware.Authenticate(h.RevokeShare))
	// Public read-only view; auth is optional so owners keep their identity.
	router.GET("/api/shared/:token", ratelim.RateLimit(middleware.OptionalAuth(h.ViewShared)))
}

func AddExportRoutes(router *httprouter.Router, h *pdfexport.Handler) {
	router.GET("/api/trips/:tripid/export", ratelim.RateLimit(middleware.Authenticate(h.ExportTrip)))
}

func AddBookingRoutes(router *httprouter.Router) {
	router.POST("/api/trips/:tripid/book", ratelim.RateLimit(middleware.Authenticate(booking.ConfirmBooking)))
	router.GET("/api/trips/:tripid/booking", middleware.Authenticate(booking.GetBooking))
}

func AddHotelRoutes(router *httprouter.Router, c *hotels.Client) {
	router.GET("/api/hotels/price", ratelim.RateLimit(c.GetAveragePrice))
}

func AddWeatherRoutes(router *httprouter.Router, c *weather.Client) {
	router.GET("/api/weather", ratelim.RateLimit(c.GetWeather))
}

func AddActivityRoutes(router *httprouter.Router) {
	router.GET("/api/activity", middleware.Authenticate(activity.GetActivityFeed))
}
