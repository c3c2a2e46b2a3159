package server

import "net/http"

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET /{$}", s.guarded(s.IndexHandler()))

	// AUTH FLOW
	s.RegisterRouteFunc("GET "+RouteLogin, s.guarded(s.LoginHandler()))
	s.RegisterRouteFunc("GET "+RouteCallback, s.guarded(s.CallbackHandler()))
	s.RegisterRouteFunc("GET "+RouteLogout, s.guarded(s.LogoutHandler()))
	s.RegisterRouteFunc("GET "+RouteUserInfo, s.guarded(s.UserInfoHandler()))

	s.RegisterRouteFunc("GET "+RouteUnauthorized, s.guarded(s.UnauthorizedHandler()))

	// POS sections, role-gated by the policy table
	s.RegisterRouteFunc("GET "+RouteOrders, s.guarded(s.OrdersHandler()))
	s.RegisterRouteFunc("GET "+RouteOrders+"/", s.guarded(s.OrdersHandler()))
	s.RegisterRouteFunc("GET "+RouteInventory, s.guarded(s.InventoryHandler()))
	s.RegisterRouteFunc("GET "+RouteAdmin, s.guarded(s.AdminHandler()))
	s.RegisterRouteFunc("GET "+RouteManager, s.guarded(s.ManagerHandler()))

	// Anything else still passes through authentication/authorization,
	// so unlisted prefixes behave per the policy table before 404ing.
	s.RegisterRouteFunc("/", s.guarded(s.NotFoundHandler()))
}

// guarded applies the standard middleware chain: request ID, logging,
// recover, security headers, then authentication and authorization in that
// order. Authorization always runs after authentication has fully
// completed, including any token refresh.
func (s *Server) guarded(h http.HandlerFunc) http.HandlerFunc {
	return ChainMiddleware(h, s.standardMiddleware()...)
}
