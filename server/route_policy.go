package server

import "strings"

// RoutePolicy maps a path prefix onto the roles allowed to enter it.
type RoutePolicy struct {
	PathPrefix   string
	AllowedRoles []string
}

// DefaultRoutePolicies is the static protected-route table. Declaration
// order matters: the first prefix match wins.
func DefaultRoutePolicies() []RoutePolicy {
	return []RoutePolicy{
		{PathPrefix: RouteAdmin, AllowedRoles: []string{"admin"}},
		{PathPrefix: RouteManager, AllowedRoles: []string{"admin", "manager"}},
		{PathPrefix: RouteOrders, AllowedRoles: []string{"admin", "manager", "server"}},
		{PathPrefix: RouteInventory, AllowedRoles: []string{"admin", "manager"}},
	}
}

func matchPolicy(policies []RoutePolicy, path string) *RoutePolicy {
	for i := range policies {
		if strings.HasPrefix(path, policies[i].PathPrefix) {
			return &policies[i]
		}
	}
	return nil
}
