package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes
	RouteAuthGoogle   = "/api/auth/google"
	RouteAuthCallback = "/api/auth/callback"
	RouteAuthLogout   = "/api/auth/logout"

	// Picker Routes
	RoutePickerSession = "/api/picker/session"

	// Photo Routes
	RoutePhotoImage = "/api/photos/{photoId}/image"

	RouteHealth = "/api/health"

	// Preflight for every API route
	RouteAPIPreflight = "/api/{path...}"
)

// App pages the auth routes redirect to
const (
	PageHome        = "/"
	PageLogin       = "/login"
	PageCollections = "/collections"
)
