package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"healthcare-portal/internal/service"
	"healthcare-portal/internal/session"
)

func (h *Handler) home(c *gin.Context) {
	h.render(c, "home.html", gin.H{"Title": "Home"})
}

func (h *Handler) registerForm(c *gin.Context) {
	h.render(c, "register.html", gin.H{"Title": "Register"})
}

func (h *Handler) register(c *gin.Context) {
	_, err := h.users.Register(c.Request.Context(),
		c.PostForm("username"),
		c.PostForm("password"),
		c.DefaultPostForm("role", "patient"),
	)

	var verr *service.ValidationError
	switch {
	case err == nil:
		h.redirect(c, "/login", noticeRegistered)
	case errors.As(err, &verr):
		h.redirect(c, "/register", verr.Message)
	case errors.Is(err, service.ErrUserAlreadyExists):
		h.redirect(c, "/register", noticeUserExists)
	default:
		h.log.WithError(err).Error("register user")
		h.redirect(c, "/register", noticeUserExists)
	}
}

func (h *Handler) loginForm(c *gin.Context) {
	h.render(c, "login.html", gin.H{"Title": "Log in"})
}

func (h *Handler) login(c *gin.Context) {
	user, err := h.users.Authenticate(c.Request.Context(), c.PostForm("username"), c.PostForm("password"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.redirect(c, "/login", noticeInvalidLogin)
			return
		}
		h.log.WithError(err).Error("authenticate user")
		h.redirect(c, "/login", noticeTryAgain)
		return
	}

	sess := h.session(c)
	if err := h.sessions.Renew(c, sess); err != nil {
		h.log.WithError(err).Warn("drop previous session")
	}
	h.sessions.SetUser(sess, user.Username, string(user.Role))
	h.redirect(c, "/dashboard", noticeLoginOK)
}

func (h *Handler) logout(c *gin.Context) {
	sess := h.session(c)
	if err := h.sessions.Destroy(c, sess); err != nil {
		h.log.WithError(err).Error("destroy session on logout")
	}
	h.redirect(c, "/", noticeLoggedOut)
}

func (h *Handler) dashboard(c *gin.Context) {
	sess := h.session(c)
	h.render(c, "dashboard.html", gin.H{
		"Title":    "Dashboard",
		"Username": sess.Data.Username,
		"Role":     sess.Data.Role,
	})
}

func (h *Handler) listPatients(c *gin.Context) {
	records, err := h.patients.ListRecords(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("list patient records")
		h.redirect(c, "/dashboard", noticeTryAgain)
		return
	}
	h.render(c, "patients.html", gin.H{"Title": "Patient records", "Patients": records})
}

func (h *Handler) session(c *gin.Context) *session.Session {
	sess, _ := h.sessions.Load(c)
	return sess
}

// render pops pending notices into the page, so the session is written before the body.
func (h *Handler) render(c *gin.Context, name string, data gin.H) {
	sess := h.session(c)
	data["Flashes"] = sess.PopFlashes()
	data["LoggedIn"] = sess.Authenticated()
	h.saveSession(c, sess)
	c.HTML(http.StatusOK, name, data)
}

func (h *Handler) redirect(c *gin.Context, location string, notices ...string) {
	sess := h.session(c)
	for _, notice := range notices {
		sess.AddFlash(notice)
	}
	h.saveSession(c, sess)
	c.Redirect(http.StatusFound, location)
}

func (h *Handler) saveSession(c *gin.Context, sess *session.Session) {
	if err := h.sessions.Save(c, sess); err != nil {
		h.log.WithError(err).Error("save session")
	}
}
