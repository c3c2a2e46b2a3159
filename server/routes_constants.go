package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes
	RouteLogin    = "/auth/login"
	RouteCallback = "/auth/callback"
	RouteLogout   = "/auth/logout"
	RouteUserInfo = "/auth/userinfo"

	// Landing pages
	RouteUnauthorized = "/unauthorized"

	// Guarded POS sections
	RouteOrders    = "/orders"
	RouteInventory = "/inventory"
	RouteAdmin     = "/admin"
	RouteManager   = "/manager"
)
