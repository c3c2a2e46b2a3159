package server

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tableside/pos-auth/internal/config"
)

type Server struct {
	env      string // Environment (e.g., "DEV", "TEST", "PROD")
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	creds    Credentials
	policies []RoutePolicy
}

// New wires the HTTP layer around an injected credential service. The
// protected-route policy table is fixed at construction and read-only
// afterwards.
func New(cfg config.Config, creds Credentials) *Server {
	s := &Server{
		mux:      http.NewServeMux(),
		config:   cfg,
		creds:    creds,
		policies: DefaultRoutePolicies(),
	}
	s.env = cfg.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) > 1 {
			log.Debug().Str("method", parts[0]).Str("path", parts[1]).Msg("route registered")
		} else {
			log.Debug().Str("path", parts[0]).Msg("route registered")
		}
	}
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
