package nav

import (
	"net/url"
	"strings"

	"github.com/mmcdole/marquee/internal/domain"
)

// Page identifies a view in the route table
type Page int

const (
	PageNotFound Page = iota
	PageRoot
	PageHome
	PageMovies
	PageMovieDetails
	PageTV
	PageTVDetails
	PageSearch
	PageAbout
	PageLogin
	PageRegister
)

// Route is a parsed location: a page plus its single path parameter (id or query)
type Route struct {
	Page  Page
	Param string
}

// Common routes
var (
	Root     = Route{Page: PageRoot}
	Home     = Route{Page: PageHome}
	Movies   = Route{Page: PageMovies}
	TV       = Route{Page: PageTV}
	About    = Route{Page: PageAbout}
	Login    = Route{Page: PageLogin}
	Register = Route{Page: PageRegister}
)

// staticPages maps fixed paths onto pages
var staticPages = map[string]Page{
	"":         PageRoot,
	"home":     PageHome,
	"movies":   PageMovies,
	"tv":       PageTV,
	"about":    PageAbout,
	"login":    PageLogin,
	"register": PageRegister,
}

// paramPages maps the first segment of a parameterised path onto its page
var paramPages = map[string]Page{
	"moviedetails": PageMovieDetails,
	"tvdetails":    PageTVDetails,
	"search":       PageSearch,
}

// Parse resolves a path. Unknown paths (and parameterised paths missing
// their parameter) resolve to PageNotFound.
func Parse(path string) Route {
	path = strings.Trim(strings.TrimSpace(path), "/")

	if page, ok := staticPages[path]; ok {
		return Route{Page: page}
	}

	head, rest, found := strings.Cut(path, "/")
	page, ok := paramPages[head]
	if !ok || !found || rest == "" {
		return Route{Page: PageNotFound, Param: path}
	}
	// Detail ids are a single segment; search queries may contain escaped slashes
	if page != PageSearch && strings.Contains(rest, "/") {
		return Route{Page: PageNotFound, Param: path}
	}

	param, err := url.PathUnescape(rest)
	if err != nil {
		param = rest
	}
	return Route{Page: page, Param: param}
}

// Path renders the route back into a path
func (r Route) Path() string {
	switch r.Page {
	case PageRoot:
		return "/"
	case PageHome:
		return "/home"
	case PageMovies:
		return "/movies"
	case PageMovieDetails:
		return "/moviedetails/" + url.PathEscape(r.Param)
	case PageTV:
		return "/tv"
	case PageTVDetails:
		return "/tvdetails/" + url.PathEscape(r.Param)
	case PageSearch:
		return "/search/" + url.PathEscape(r.Param)
	case PageAbout:
		return "/about"
	case PageLogin:
		return "/login"
	case PageRegister:
		return "/register"
	default:
		return "/" + r.Param
	}
}

func (r Route) String() string {
	return r.Path()
}

// Protected reports whether the route needs a signed-in user
func (r Route) Protected() bool {
	switch r.Page {
	case PageRoot, PageHome, PageMovies, PageMovieDetails, PageTV, PageTVDetails, PageSearch, PageAbout:
		return true
	}
	return false
}

// PublicOnly reports whether a signed-in user should be sent away from the route
func (r Route) PublicOnly() bool {
	return r.Page == PageLogin || r.Page == PageRegister
}

// Title returns the heading shown for the route
func (r Route) Title() string {
	switch r.Page {
	case PageRoot, PageHome:
		return "Home"
	case PageMovies:
		return "Movies"
	case PageMovieDetails:
		return "Movie Details"
	case PageTV:
		return "TV"
	case PageTVDetails:
		return "TV Details"
	case PageSearch:
		return "Search: " + r.Param
	case PageAbout:
		return "About"
	case PageLogin:
		return "Login"
	case PageRegister:
		return "Register"
	default:
		return "404 Not Found"
	}
}

// DetailRoute returns the detail route for an item. People have no detail view.
func DetailRoute(item domain.MediaItem) (Route, bool) {
	switch item.Kind {
	case domain.KindMovie:
		return Route{Page: PageMovieDetails, Param: item.IDString()}, true
	case domain.KindTV:
		return Route{Page: PageTVDetails, Param: item.IDString()}, true
	default:
		return Route{}, false
	}
}

// SearchRoute returns the route for a live search edit: the trimmed query,
// or Home when the query is blank.
func SearchRoute(query string) Route {
	q := strings.TrimSpace(query)
	if q == "" {
		return Home
	}
	return Route{Page: PageSearch, Param: q}
}

// Destinations are the routes offered by the route palette
func Destinations(authenticated bool) []Route {
	if authenticated {
		return []Route{Home, Movies, TV, About}
	}
	return []Route{Login, Register}
}
