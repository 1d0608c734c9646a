// Package session owns the client's authentication state: the persisted
// token, the is-authenticated flag, the active view, and the cached profile
// and dashboard data. All mutations flow through the Controller.
package session

import (
	"context"
	"sync"

	"github.com/dmarkovs/codetutor/internal/api"
	"github.com/dmarkovs/codetutor/internal/logging"
	"github.com/dmarkovs/codetutor/internal/tokenstore"
)

// Controller orchestrates session restoration, login, registration and
// logout as atomic store+network sequences.
//
// At most one authentication sequence is in flight at a time: a second
// Login/Register/RestoreSession while one is outstanding returns ErrBusy.
// Each attempt carries an epoch; Logout bumps it, so a completion arriving
// after a logout is discarded instead of resurrecting the session.
type Controller struct {
	client api.Client
	tokens tokenstore.Store
	cache  *Cache
	log    logging.Logger

	mu      sync.Mutex
	view    View
	loading bool
	epoch   uint64
	session Session
	errText string
}

// New constructs a Controller starting signed out on the login view.
// A nil logger discards everything.
func New(client api.Client, tokens tokenstore.Store, log logging.Logger) *Controller {
	if log == nil {
		log = logging.NewDiscardLogger()
	}
	return &Controller{
		client: client,
		tokens: tokens,
		cache:  NewCache(),
		log:    log,
		view:   ViewLogin,
	}
}

// RestoreSession attempts to resume a session from the persisted token.
// Invoked once at startup. An empty (or unreadable) store resolves to the
// login view without any network call. A stored token is validated via the
// profile endpoint; rejection deletes the token and falls back to login
// silently. Fail closed: any doubt about the token forces re-authentication.
func (c *Controller) RestoreSession(ctx context.Context) error {
	e, err := c.begin()
	if err != nil {
		return err
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		c.log.Warn(ctx, "token store read failed, starting signed out", "error", err)
		token = ""
	}
	if token == "" {
		c.commit(e, func() {
			c.session = Session{}
			c.view = ViewLogin
		})
		return nil
	}

	profile, err := c.client.Profile(ctx, token)
	if err != nil {
		if derr := c.tokens.Delete(ctx); derr != nil {
			c.log.Error(ctx, "failed to delete rejected token", "error", derr)
		}
		c.log.Info(ctx, "stored session rejected", "error", err)
		c.commit(e, func() {
			c.session = Session{}
			c.view = ViewLogin
		})
		return nil
	}

	stats, snippets := c.fetchExtras(ctx, token)
	c.commit(e, func() {
		c.session = Session{Token: token, Authenticated: true}
		c.cache.Clear()
		c.cache.SetProfile(profile)
		c.cache.SetStats(stats)
		c.cache.SetSnippets(snippets)
		c.view = ViewDashboard
	})
	return nil
}

// Login authenticates with the given credentials. Both fields are checked
// locally first; a violation surfaces a validation error without any
// network round-trip.
func (c *Controller) Login(ctx context.Context, email, password string) error {
	e, err := c.begin()
	if err != nil {
		return err
	}

	if email == "" || password == "" {
		c.fail(e, ErrMissingFields)
		return ErrMissingFields
	}

	tok, err := c.client.Login(ctx, email, password)
	if err != nil {
		c.fail(e, err)
		return err
	}

	c.finishAuth(ctx, e, tok.AccessToken)
	return nil
}

// Register creates an account. Local checks, in order: all four fields
// non-empty, then password equals confirm. The request carries the fixed
// preference defaults. Success and failure handling mirror Login.
func (c *Controller) Register(ctx context.Context, email, username, password, confirm string) error {
	e, err := c.begin()
	if err != nil {
		return err
	}

	if email == "" || username == "" || password == "" || confirm == "" {
		c.fail(e, ErrMissingFields)
		return ErrMissingFields
	}
	if password != confirm {
		c.fail(e, ErrPasswordMismatch)
		return ErrPasswordMismatch
	}

	tok, err := c.client.Register(ctx, api.RegisterRequest{
		Email:               email,
		Username:            username,
		Password:            password,
		PreferredLanguages:  DefaultPreferredLanguages,
		SkillLevel:          DefaultSkillLevel,
		ExplanationLanguage: DefaultExplanationLanguage,
	})
	if err != nil {
		c.fail(e, err)
		return err
	}

	c.finishAuth(ctx, e, tok.AccessToken)
	return nil
}

// Logout deletes the persisted token, clears all cached data and returns to
// the login view. It always succeeds from the user's perspective: a store
// failure is logged, never surfaced. Idempotent, and safe while an auth
// attempt is still resolving: bumping the epoch makes the late completion
// a no-op.
func (c *Controller) Logout(ctx context.Context) {
	c.mu.Lock()
	c.epoch++
	c.loading = false
	c.session = Session{}
	c.view = ViewLogin
	c.errText = ""
	c.mu.Unlock()

	c.cache.Clear()
	if err := c.tokens.Delete(ctx); err != nil {
		c.log.Error(ctx, "failed to delete token on logout", "error", err)
	}
}

// ShowRegister switches from the login form to the register form.
func (c *Controller) ShowRegister() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.view == ViewLogin && !c.loading {
		c.view = ViewRegister
		c.errText = ""
	}
}

// ShowLogin switches from the register form back to the login form.
func (c *Controller) ShowLogin() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.view == ViewRegister && !c.loading {
		c.view = ViewLogin
		c.errText = ""
	}
}

func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *Controller) Authenticated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Authenticated
}

func (c *Controller) Session() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// ErrorText is the user-facing message of the last failed operation, empty
// after a success, a navigation, or at the start of a new attempt.
func (c *Controller) ErrorText() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errText
}

func (c *Controller) Cache() *Cache {
	return c.cache
}

// finishAuth persists the fresh token and loads the dashboard data.
// A profile fetch failure here is tolerated: the credentials were just
// validated by the server, so the session stays authenticated with an
// empty profile. Contrast with RestoreSession, which fails closed.
func (c *Controller) finishAuth(ctx context.Context, e uint64, token string) {
	if !c.current(e) {
		c.log.Debug(ctx, "discarding stale authentication attempt")
		return
	}

	// Stale data must never flash under the new session's dashboard.
	c.cache.Clear()

	if err := c.tokens.Save(ctx, token); err != nil {
		c.log.Error(ctx, "failed to persist token", "error", err)
	}
	if !c.current(e) {
		// A logout landed while the save was in flight. Its delete may
		// have run before our write, so undo it: the store must be empty
		// after a logout.
		if derr := c.tokens.Delete(ctx); derr != nil {
			c.log.Error(ctx, "failed to delete superseded token", "error", derr)
		}
		c.log.Debug(ctx, "discarding stale authentication attempt")
		return
	}

	profile, err := c.client.Profile(ctx, token)
	if err != nil {
		c.log.Warn(ctx, "profile fetch after authentication failed", "error", err)
	}

	var (
		stats    *api.DashboardStats
		snippets []api.Snippet
	)
	if err == nil {
		stats, snippets = c.fetchExtras(ctx, token)
	}

	c.commit(e, func() {
		c.session = Session{Token: token, Authenticated: true}
		if profile != nil {
			c.cache.SetProfile(profile)
		}
		c.cache.SetStats(stats)
		c.cache.SetSnippets(snippets)
		c.view = ViewDashboard
	})
}

// fetchExtras loads dashboard stats and recent snippets. Both are
// best-effort: a failure is logged and leaves the cache entry empty,
// never invalidating the session.
func (c *Controller) fetchExtras(ctx context.Context, token string) (*api.DashboardStats, []api.Snippet) {
	stats, err := c.client.Stats(ctx, token)
	if err != nil {
		c.log.Warn(ctx, "stats fetch failed", "error", err)
		stats = nil
	}
	snippets, err := c.client.Snippets(ctx, token)
	if err != nil {
		c.log.Warn(ctx, "snippets fetch failed", "error", err)
		snippets = nil
	}
	return stats, snippets
}

// begin claims the single in-flight authentication slot and returns the
// epoch of the new attempt.
func (c *Controller) begin() (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loading {
		return 0, ErrBusy
	}
	c.loading = true
	c.epoch++
	c.errText = ""
	return c.epoch, nil
}

// current reports whether attempt e is still the live one.
func (c *Controller) current(e uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.epoch == e
}

// commit applies fn and clears the loading flag, unless the attempt has
// been superseded.
func (c *Controller) commit(e uint64, fn func()) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != e {
		return false
	}
	fn()
	c.loading = false
	return true
}

// fail records the user-facing message for a failed attempt; the view and
// session are left untouched.
func (c *Controller) fail(e uint64, err error) {
	c.commit(e, func() {
		c.errText = userMessage(err)
	})
}
