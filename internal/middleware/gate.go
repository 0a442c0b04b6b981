package middleware

import (
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront-api/internal/metrics"
)

// Session cookie and the pages the gate sends unauthenticated visitors to
const (
	SessionCookieName = "admin_session"
	LoginPage         = "/login.html"
	RejectPage        = "/reject.html"
)

// PathClass is the gate's classification of a request path
type PathClass string

const (
	ClassPublic    PathClass = "public"
	ClassAdminPage PathClass = "admin-page"
	ClassAdminAPI  PathClass = "admin-api"
	ClassOther     PathClass = "other"
)

// Action is what the gate decided to do with a request
type Action int

const (
	Forward Action = iota
	RedirectToLogin
	RedirectToReject
	JSONUnauthorized
)

func (a Action) String() string {
	switch a {
	case Forward:
		return "forward"
	case RedirectToLogin:
		return "redirect_login"
	case RedirectToReject:
		return "redirect_reject"
	case JSONUnauthorized:
		return "json_unauthorized"
	default:
		return "unknown"
	}
}

// AuthFailure is the JSON body returned to admin API callers without a usable session
type AuthFailure struct {
	Error       string `json:"error"`
	RedirectURL string `json:"redirectUrl"`
}

// Decision is the outcome of evaluating one request against the gate
type Decision struct {
	Class    PathClass
	Action   Action
	Location string       // redirect target for page redirects
	Failure  *AuthFailure // body for JSONUnauthorized
}

// Forwarded reports whether the request may continue to its handler
func (d Decision) Forwarded() bool {
	return d.Action == Forward
}

// StatusCode returns the HTTP status the gate responds with, or 0 when forwarding
func (d Decision) StatusCode() int {
	switch d.Action {
	case RedirectToLogin, RedirectToReject:
		return http.StatusFound
	case JSONUnauthorized:
		return http.StatusUnauthorized
	default:
		return 0
	}
}

// HeaderGetter is satisfied by http.Header and lambda.Headers
type HeaderGetter interface {
	Get(name string) string
}

// publicPaths must be consulted before the admin rules so the login and
// reject pages can never be gated.
var publicPaths = []string{
	"/",
	"/index.html",
	"/login.html",
	"/reject.html",
	"/favicon.ico",
	"/robots.txt",
}

// Entries ending in "/" match any path below them; the rest match the exact
// path or anything nested under it.
var publicPrefixes = []string{
	"/assets/",
	"/css/",
	"/js/",
	"/images/",
	"/img/",
	"/fonts/",
	"/api/login",
	"/api/logout",
	"/api/orders",
	"/api/image/",
	"/api/page-image/",
}

var adminAPIPrefixes = []string{
	"/admin/api",
	"/api/admin",
}

const adminNamespace = "/admin"

// Classify maps a request path to its gate class.
// The path is canonicalized first so "/assets/../admin/" cannot pass as an asset.
func Classify(requestPath string) PathClass {
	p := canonicalPath(requestPath)

	for _, exact := range publicPaths {
		if p == exact {
			return ClassPublic
		}
	}
	for _, prefix := range publicPrefixes {
		if matchPrefix(p, prefix) {
			return ClassPublic
		}
	}

	for _, prefix := range adminAPIPrefixes {
		if matchPrefix(p, prefix) {
			return ClassAdminAPI
		}
	}

	if matchPrefix(p, adminNamespace) && isPageRequest(p) {
		return ClassAdminPage
	}

	// Anything else, including non-HTML files under /admin, is not gated.
	return ClassOther
}

// Decide evaluates a request with the default session cookie name.
// It is a pure function of its inputs.
func Decide(requestPath string, headers HeaderGetter) Decision {
	return decide(requestPath, headers, SessionCookieName)
}

func decide(requestPath string, headers HeaderGetter, cookieName string) Decision {
	class := Classify(requestPath)
	if class != ClassAdminPage && class != ClassAdminAPI {
		return Decision{Class: class, Action: Forward}
	}

	cookieHeader := ""
	if headers != nil {
		cookieHeader = headers.Get("Cookie")
	}

	token, present := SessionToken(cookieHeader, cookieName)
	switch {
	case !present:
		return deny(class, "Authentication required", LoginPage)
	case !HasSessionToken(token):
		return deny(class, "Invalid session", RejectPage)
	default:
		return Decision{Class: class, Action: Forward}
	}
}

func deny(class PathClass, message, target string) Decision {
	if class == ClassAdminAPI {
		return Decision{
			Class:    class,
			Action:   JSONUnauthorized,
			Location: target,
			Failure:  &AuthFailure{Error: message, RedirectURL: target},
		}
	}

	action := RedirectToLogin
	if target == RejectPage {
		action = RedirectToReject
	}
	return Decision{Class: class, Action: action, Location: target}
}

// SessionToken extracts the named cookie from a raw Cookie header.
// present is true when a segment carries the cookie name, even with no value.
func SessionToken(cookieHeader, name string) (value string, present bool) {
	for _, segment := range strings.Split(cookieHeader, ";") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		cookieName, cookieValue, _ := strings.Cut(segment, "=")
		if strings.TrimSpace(cookieName) == name {
			return cookieValue, true
		}
	}
	return "", false
}

// HasSessionToken is the only session check performed anywhere: a non-blank
// value counts as logged in. The token is never verified against a store or
// signature, so anyone can forge one.
// TODO: replace with a signed token checked against a server-side session list.
func HasSessionToken(token string) bool {
	return strings.TrimSpace(token) != ""
}

func canonicalPath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	cleaned := path.Clean(p)
	if strings.HasSuffix(p, "/") && cleaned != "/" {
		cleaned += "/"
	}
	return cleaned
}

func matchPrefix(p, prefix string) bool {
	if strings.HasSuffix(prefix, "/") {
		return strings.HasPrefix(p, prefix)
	}
	return p == prefix || strings.HasPrefix(p, prefix+"/")
}

// isPageRequest reports whether p names an HTML document or a directory-style
// path (trailing slash or a last segment without an extension).
func isPageRequest(p string) bool {
	if strings.HasSuffix(p, "/") {
		return true
	}
	ext := strings.ToLower(path.Ext(p))
	return ext == "" || ext == ".html" || ext == ".htm"
}

// AccessGate applies Decide with a configurable cookie name and records each
// decision in logs and metrics.
type AccessGate struct {
	cookieName string
	logger     logrus.FieldLogger
}

// NewAccessGate creates an access gate
func NewAccessGate(cookieName string, logger logrus.FieldLogger) *AccessGate {
	if cookieName == "" {
		cookieName = SessionCookieName
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &AccessGate{cookieName: cookieName, logger: logger}
}

// CookieName returns the session cookie the gate inspects
func (g *AccessGate) CookieName() string {
	return g.cookieName
}

// Decide evaluates a request and records the outcome
func (g *AccessGate) Decide(requestPath string, headers HeaderGetter) Decision {
	d := decide(requestPath, headers, g.cookieName)

	metrics.GateDecisionsTotal.WithLabelValues(string(d.Class), d.Action.String()).Inc()

	fields := logrus.Fields{
		"path":   requestPath,
		"class":  d.Class,
		"action": d.Action.String(),
	}
	if d.Forwarded() {
		g.logger.WithFields(fields).Debug("Access gate forwarded request")
	} else {
		g.logger.WithFields(fields).Info("Access gate rejected request")
	}

	return d
}

// Middleware returns the gate as gin middleware
func (g *AccessGate) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		d := g.Decide(c.Request.URL.Path, c.Request.Header)

		switch d.Action {
		case Forward:
			c.Next()
		case JSONUnauthorized:
			c.Header("Access-Control-Allow-Origin", "*")
			c.AbortWithStatusJSON(d.StatusCode(), d.Failure)
		default:
			c.Redirect(d.StatusCode(), d.Location)
			c.Abort()
		}
	}
}
