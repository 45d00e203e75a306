// Package guard decides whether a route transition may proceed based on
// whether a credential is present.
package guard

import (
	"errors"
	"fmt"
	"strings"
)

// Route identifies a navigation destination.
type Route int

const (
	RouteUnknown Route = iota
	RouteLogin
	RouteHome
	RouteSummary
)

// Name returns the route's display name.
func (r Route) Name() string {
	switch r {
	case RouteLogin:
		return "Login"
	case RouteHome:
		return "Home"
	case RouteSummary:
		return "Summary"
	default:
		return "Unknown"
	}
}

// Path returns the route's path pattern.
func (r Route) Path() string {
	switch r {
	case RouteLogin:
		return "/"
	case RouteHome:
		return "/home"
	case RouteSummary:
		return "/summary/:id"
	default:
		return ""
	}
}

func (r Route) String() string {
	return r.Name()
}

// Protected reports whether entering r requires a credential. Unknown routes
// are protected.
func (r Route) Protected() bool {
	return r != RouteLogin
}

// ParseRoute maps a path onto a Route. "/summary/<id>" also returns the id.
func ParseRoute(path string) (Route, string) {
	p := strings.TrimSpace(path)
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if p == "" || p == "/" {
		return RouteLogin, ""
	}
	p = strings.TrimSuffix(p, "/")
	switch {
	case p == "/home":
		return RouteHome, ""
	case strings.HasPrefix(p, "/summary/"):
		id := strings.TrimPrefix(p, "/summary/")
		if id == "" || strings.Contains(id, "/") {
			return RouteUnknown, ""
		}
		return RouteSummary, id
	default:
		return RouteUnknown, ""
	}
}

// Decision is the outcome of evaluating a transition.
type Decision struct {
	Proceed  bool
	Redirect Route // set when Proceed is false
}

func (d Decision) String() string {
	if d.Proceed {
		return "proceed"
	}
	return fmt.Sprintf("redirect to %s", d.Redirect.Name())
}

// Target returns the route navigation ends on for destination to.
func (d Decision) Target(to Route) Route {
	if d.Proceed {
		return to
	}
	return d.Redirect
}

var (
	proceed       = Decision{Proceed: true}
	redirectHome  = Decision{Redirect: RouteHome}
	redirectLogin = Decision{Redirect: RouteLogin}
)

// Resolve is the transition table:
//
//	login     + credential    -> redirect home
//	login     + no credential -> proceed
//	protected + credential    -> proceed
//	protected + no credential -> redirect login
func Resolve(to Route, authenticated bool) Decision {
	if !to.Protected() {
		if authenticated {
			return redirectHome
		}
		return proceed
	}
	if authenticated {
		return proceed
	}
	return redirectLogin
}

// Presence reports whether a credential is available.
// *credential.Store implements it.
type Presence interface {
	Token() (string, bool)
}

// Guard evaluates transitions against the live credential state.
type Guard struct {
	tokens Presence
}

// New returns a Guard reading from tokens. A nil tokens treats every
// evaluation as anonymous.
func New(tokens Presence) *Guard {
	return &Guard{tokens: tokens}
}

// Evaluate resolves a transition to destination to. Credential presence is
// read on every call.
func (g *Guard) Evaluate(to Route) Decision {
	return Resolve(to, g.authenticated())
}

// ErrNotLoggedIn is returned by Require when a protected route is entered
// without a credential.
var ErrNotLoggedIn = errors.New("not logged in")

// Require evaluates to and returns ErrNotLoggedIn when the guard would send
// the caller to the login route instead.
func (g *Guard) Require(to Route) error {
	if d := g.Evaluate(to); !d.Proceed && d.Redirect == RouteLogin {
		return ErrNotLoggedIn
	}
	return nil
}

func (g *Guard) authenticated() bool {
	if g == nil || g.tokens == nil {
		return false
	}
	// An empty token, e.g. from a bare ?token=, does not count as a login.
	tok, ok := g.tokens.Token()
	return ok && tok != ""
}
