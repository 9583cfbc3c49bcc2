// Copyright 2025 The HederaMarketPlace Authors
// This file is part of the hederamarket library.
//
// The hederamarket library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The hederamarket library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the hederamarket library. If not, see <http://www.gnu.org/licenses/>.

package market

// Role names a privilege a route can demand.
type Role string

const (
	RoleAny    Role = ""       // no privilege needed
	RoleSeller Role = "seller" // listed-product management
	RoleAdmin  Role = "admin"  // seller-request processing
	RoleOwner  Role = "owner"  // admin-request processing
)

// Client route surface. Paths match the deployed frontend one-for-one.
const (
	RouteLogin        = "/"
	RouteHome         = "/HomePage"
	RouteListProducts = "/listProducts"
	RouteAdmin        = "/admin"
	RouteOwner        = "/owner"
	RouteTransactions = "/transactions"
)

// routeRoles maps each gated route to the role it demands. Routes absent
// from the map are open to any connected account.
var routeRoles = map[string]Role{
	RouteListProducts: RoleSeller,
	RouteAdmin:        RoleAdmin,
	RouteOwner:        RoleOwner,
}

// RouteGuard decides whether a role set may enter a route. Denials
// redirect to the login route, mirroring the frontend's Navigate-to-"/".
type RouteGuard struct {
	resolver *RoleResolver
}

// NewRouteGuard creates a guard over a role resolver.
func NewRouteGuard(resolver *RoleResolver) *RouteGuard {
	return &RouteGuard{resolver: resolver}
}

// RequiredRole returns the role a route demands, RoleAny if ungated.
func RequiredRole(path string) Role {
	return routeRoles[path]
}

// Allows reports whether the given role set satisfies a role requirement.
// A non-ready set never satisfies a gated route: resolution failures fail
// closed at the door even though the resolver itself fails open.
func Allows(rs RoleSet, role Role) bool {
	switch role {
	case RoleAny:
		return true
	case RoleSeller:
		return rs.Ready && rs.IsSeller
	case RoleAdmin:
		return rs.Ready && rs.IsAdmin
	case RoleOwner:
		return rs.Ready && rs.IsOwner
	default:
		return false
	}
}

// Authorize resolves the session account's roles and checks them against
// the route. When denied it returns the redirect target.
func (g *RouteGuard) Authorize(path string) (allowed bool, redirect string) {
	role := RequiredRole(path)
	if role == RoleAny {
		return true, ""
	}
	if Allows(g.resolver.Resolve(), role) {
		return true, ""
	}
	return false, RouteLogin
}
