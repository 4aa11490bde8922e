package server

import "net/http"

func (s *Server) initRoutes() {
	// AUTH
	s.RegisterRouteHandler("GET "+RouteAuthGoogle, ChainMiddleware(s.BeginAuthHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAuthCallback, ChainMiddleware(s.AuthCallbackHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.APIMiddleware()...))

	// PICKER
	s.RegisterRouteHandler("POST "+RoutePickerSession, ChainMiddleware(s.StartPickerHandler(), s.APIMiddleware(s.RequireSession())...))
	s.RegisterRouteHandler("GET "+RoutePickerSession, ChainMiddleware(s.PollPickerHandler(), s.APIMiddleware(s.RequireSession())...))

	// PHOTOS (session or share token, checked by the handler)
	s.RegisterRouteHandler("GET "+RoutePhotoImage, ChainMiddleware(s.PhotoImageHandler(), s.APIMiddleware()...))

	s.RegisterRouteHandler("GET "+RouteHealth, ChainMiddleware(s.HealthHandler(), s.APIMiddleware()...))

	// CorsMiddleware answers preflights itself; anything it lets through is unknown
	s.RegisterRouteHandler("OPTIONS "+RouteAPIPreflight, ChainMiddleware(http.NotFound, s.APIMiddleware()...))
}
