package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const contextKey = "portal.session"

// Session is the request-scoped view of a visitor's session.
type Session struct {
	ID   string
	Data Data

	modified bool
}

// Authenticated reports whether a user is logged in on this session.
func (s *Session) Authenticated() bool {
	return s.Data.Username != ""
}

// AddFlash queues a one-shot notice for the next rendered page.
func (s *Session) AddFlash(msg string) {
	s.Data.Flashes = append(s.Data.Flashes, msg)
	s.modified = true
}

// PopFlashes returns and clears pending notices.
func (s *Session) PopFlashes() []string {
	flashes := s.Data.Flashes
	if len(flashes) > 0 {
		s.Data.Flashes = nil
		s.modified = true
	}
	return flashes
}

// Config controls the session cookie.
type Config struct {
	Secret     []byte
	TTL        time.Duration
	CookieName string
	Secure     bool
}

// Manager ties a Store to a signed cookie. The cookie carries an HS256 token whose
// jti is the session id; everything else stays server side.
type Manager struct {
	store Store
	cfg   Config
}

func NewManager(store Store, cfg Config) (*Manager, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("session secret is required")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 12 * time.Hour
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "portal_session"
	}
	return &Manager{store: store, cfg: cfg}, nil
}

// Load returns the session for the request, caching it on the gin context.
// A missing, forged or expired cookie yields a fresh anonymous session; the
// returned error only reports a store failure, in which case the session is
// still usable but anonymous.
func (m *Manager) Load(c *gin.Context) (*Session, error) {
	if v, ok := c.Get(contextKey); ok {
		if sess, ok := v.(*Session); ok {
			return sess, nil
		}
	}

	sess, err := m.load(c)
	c.Set(contextKey, sess)
	return sess, err
}

func (m *Manager) load(c *gin.Context) (*Session, error) {
	raw, err := c.Cookie(m.cfg.CookieName)
	if err != nil || raw == "" {
		return newSession(), nil
	}

	id, err := m.parseToken(raw)
	if err != nil {
		return newSession(), nil
	}

	data, err := m.store.Load(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		return newSession(), nil
	}
	if err != nil {
		return newSession(), fmt.Errorf("load session: %w", err)
	}
	return &Session{ID: id, Data: *data}, nil
}

// Save persists a modified session and refreshes the cookie.
func (m *Manager) Save(c *gin.Context, sess *Session) error {
	if !sess.modified {
		return nil
	}
	if err := m.store.Save(c.Request.Context(), sess.ID, sess.Data, m.cfg.TTL); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	token, err := m.signToken(sess.ID)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cfg.CookieName, token, int(m.cfg.TTL.Seconds()), "/", "", m.cfg.Secure, true)
	sess.modified = false
	return nil
}

// Renew drops every key of the current session and moves it to a new id,
// deleting the old server-side record.
func (m *Manager) Renew(c *gin.Context, sess *Session) error {
	oldID := sess.ID
	sess.ID = uuid.NewString()
	sess.Data = Data{}
	sess.modified = true

	if err := m.store.Delete(c.Request.Context(), oldID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Destroy expires the cookie and deletes the server-side data, then resets sess
// to a fresh anonymous session. The cookie is expired even when the delete fails.
func (m *Manager) Destroy(c *gin.Context, sess *Session) error {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cfg.CookieName, "", -1, "/", "", m.cfg.Secure, true)

	oldID := sess.ID
	*sess = *newSession()

	if err := m.store.Delete(c.Request.Context(), oldID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// SetUser marks the session as authenticated.
func (m *Manager) SetUser(sess *Session, username, role string) {
	sess.Data.Username = username
	sess.Data.Role = role
	sess.modified = true
}

func (m *Manager) signToken(id string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.cfg.TTL)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return token, nil
}

func (m *Manager) parseToken(raw string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return m.cfg.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}
	if claims.ID == "" {
		return "", errors.New("session token without id")
	}
	return claims.ID, nil
}

func newSession() *Session {
	return &Session{ID: uuid.NewString()}
}
