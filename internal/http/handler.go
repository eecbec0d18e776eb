package http

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"healthcare-portal/internal/domain"
	"healthcare-portal/internal/service"
	"healthcare-portal/internal/session"
)

const (
	noticeLoginRequired = "Please log in first."
	noticeAdminsOnly    = "Access denied. Admins only."
	noticeInvalidLogin  = "Invalid login details."
	noticeLoginOK       = "Login successful."
	noticeLoggedOut     = "You have been logged out."
	noticeRegistered    = "Registration successful. Please log in."
	noticeUserExists    = "Username already exists (or store error)."
	noticeTryAgain      = "Something went wrong. Please try again."
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users    service.UserService
	patients service.PatientService
	sessions *session.Manager
	health   []HealthCheck
	log      logrus.FieldLogger
}

func NewHandler(users service.UserService, patients service.PatientService, sessions *session.Manager, health []HealthCheck, log logrus.FieldLogger) *Handler {
	if log == nil {
		log = logrus.New()
	}
	return &Handler{
		users:    users,
		patients: patients,
		sessions: sessions,
		health:   health,
		log:      log,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.SetHTMLTemplate(pageTemplates)
	router.Use(requestLogger(h.log), securityHeaders())

	router.GET("/health/:store", h.healthCheck)

	pages := router.Group("/")
	pages.Use(h.loadSession())
	{
		pages.GET("/", h.home)
		pages.GET("/register", h.registerForm)
		pages.POST("/register", h.register)
		pages.GET("/login", h.loginForm)
		pages.POST("/login", h.login)
		pages.GET("/logout", h.logout)

		pages.GET("/dashboard", h.requireAuthenticated(), h.dashboard)
		pages.GET("/patients", h.requireAuthenticated(), h.requireRole(domain.RoleAdmin, noticeAdminsOnly), h.listPatients)
	}
}
