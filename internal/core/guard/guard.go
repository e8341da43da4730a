// Package guard decides whether a session may enter a protected route.
//
// Admit is a pure function of the route's requirement and a session snapshot.
// It holds no state and must be evaluated on every navigation.
package guard

import "github.com/libraryhub/portal/internal/core/domain"

const (
	LoginPath     = "/login"
	ForbiddenPath = "/forbidden"
	HomePath      = "/"
)

// Reason explains a Decision.
type Reason string

const (
	ReasonAllowed         Reason = "allowed"
	ReasonUnauthenticated Reason = "unauthenticated"
	ReasonRoleMismatch    Reason = "role_mismatch"
)

// Decision is the outcome of Admit. Target is set only when Allow is false.
type Decision struct {
	Allow  bool
	Target string
	Reason Reason
}

// Admit decides access to a route requiring role required (RoleNone means any
// authenticated session).
func Admit(required domain.Role, state domain.SessionState) Decision {
	if !state.Authenticated {
		return Decision{Target: LoginPath, Reason: ReasonUnauthenticated}
	}
	if required != domain.RoleNone && state.Role != required {
		return Decision{Target: LandingPath(state.Role), Reason: ReasonRoleMismatch}
	}
	return Decision{Allow: true, Reason: ReasonAllowed}
}

// LandingPath is where a session of role r starts. Unknown roles land on the
// forbidden page.
func LandingPath(r domain.Role) string {
	switch r {
	case domain.RoleUser:
		return "/user"
	case domain.RoleAdmin:
		return "/admin"
	default:
		return ForbiddenPath
	}
}

// Route declares a client route and the role it requires.
type Route struct {
	Path     string
	Public   bool
	Required domain.Role
}

// Routes is the portal's route surface.
var Routes = []Route{
	{Path: HomePath, Public: true},
	{Path: LoginPath, Public: true},
	{Path: "/register", Public: true},
	{Path: ForbiddenPath, Public: true},
	{Path: "/user", Required: domain.RoleUser},
	{Path: "/user/*", Required: domain.RoleUser},
	{Path: "/admin", Required: domain.RoleAdmin},
	{Path: "/admin/*", Required: domain.RoleAdmin},
}

// Public returns the paths reachable without a session.
func Public() []string {
	var paths []string
	for _, r := range Routes {
		if r.Public {
			paths = append(paths, r.Path)
		}
	}
	return paths
}
