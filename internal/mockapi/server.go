// Package mockapi is an in-memory backoffice backend implementing the
// search and command contract. It backs package tests and the
// `backoffice mock-server` command.
package mockapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/gravitrone/backoffice/cli/internal/logging"
)

// Default seeded administrator credentials.
const (
	AdminEmail    = "admin@backoffice.test"
	AdminPassword = "admin1234"
)

// Server is the mock backend state plus its gin engine.
type Server struct {
	secret   []byte
	tokenTTL time.Duration
	latency  time.Duration
	seed     bool

	mu        sync.Mutex
	data      map[string]*collection
	passwords map[string][]byte
	carts     map[string]bool

	engine *gin.Engine
}

// Option customizes a Server.
type Option func(*Server)

// WithSecret sets the HS256 signing key.
func WithSecret(secret string) Option {
	return func(s *Server) {
		s.secret = []byte(secret)
	}
}

// WithTokenTTL sets how long issued tokens stay valid.
func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Server) {
		s.tokenTTL = ttl
	}
}

// WithLatency delays every API response.
func WithLatency(d time.Duration) Option {
	return func(s *Server) {
		s.latency = d
	}
}

// WithoutSeed starts with only the admin account and its role.
func WithoutSeed() Option {
	return func(s *Server) {
		s.seed = false
	}
}

// New builds a seeded mock backend.
func New(opts ...Option) *Server {
	s := &Server{
		secret:    []byte("backoffice-mock-secret"),
		tokenTTL:  8 * time.Hour,
		seed:      true,
		data:      map[string]*collection{},
		passwords: map[string][]byte{},
		carts:     map[string]bool{},
	}
	for _, opt := range opts {
		opt(s)
	}
	for name := range rules {
		s.data[name] = newCollection()
	}
	s.seedAdmin()
	if s.seed {
		s.seedCatalog()
	}
	s.engine = s.routes()
	return s
}

// Handler returns the HTTP handler. Routes live under /api.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info("mock api listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logging.Info("mock api shutting down")
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) routes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(requestID(), requestLogger(), gin.Recovery(), cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:   []string{"X-Request-ID"},
		MaxAge:          12 * time.Hour,
	}))
	_ = r.SetTrustedProxies(nil)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "ruta no encontrada", "path": c.Request.URL.Path})
	})

	api := r.Group("/api")
	api.Use(s.delay())
	api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	api.POST("/auth/login", s.login)

	authed := api.Group("")
	authed.Use(s.auth())
	authed.PUT("/orders/:id/assign", s.require("Asignar_Repartidor"), s.assignCourier)

	for name, rule := range rules {
		group := authed.Group("/" + name)
		group.GET("/search", s.require("Ver_"+rule.noun), s.search(name))
		group.GET("/:id", s.require("Ver_"+rule.noun), s.get(name))
		if !rule.readOnly {
			group.POST("", s.require("Crear_"+rule.noun), s.create(name))
			group.PUT("/:id", s.require("Editar_"+rule.noun), s.update(name))
			group.DELETE("/:id", s.require("Eliminar_"+rule.noun), s.remove(name))
		}
		if rule.status {
			group.PUT("/:id/status", s.require("Estado_"+rule.noun), s.changeStatus(name))
		}
	}
	return r
}

func (s *Server) delay() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.latency > 0 {
			select {
			case <-time.After(s.latency):
			case <-c.Request.Context().Done():
				c.AbortWithStatus(http.StatusRequestTimeout)
				return
			}
		}
		c.Next()
	}
}

// AddAccount registers a login for email with the given permissions. It
// creates the role and user rows as needed.
func (s *Server) AddAccount(name, email, password string, permissions []string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	roleID := newID()
	perms := make([]any, 0, len(permissions))
	for _, p := range permissions {
		perms = append(perms, p)
	}
	s.data["roles"].put(roleID, record{"name": "Rol " + name, "description": "", "permissions": perms})
	user := record{"name": name, "email": email, "phone": "", "roleId": roleID, "isActive": true}
	s.resolveNames(user)
	s.data["users"].put(newID(), user)
	s.passwords[strings.ToLower(email)] = hash
	return nil
}

// PutInCart marks a product as part of an active cart, blocking its delete.
func (s *Server) PutInCart(productID string) {
	s.mu.Lock()
	s.carts[productID] = true
	s.mu.Unlock()
}

// Count returns the number of rows in a collection.
func (s *Server) Count(resource string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if col, ok := s.data[resource]; ok {
		return len(col.order)
	}
	return 0
}

// Find returns a copy of the first row of resource whose field equals value.
func (s *Server) Find(resource, field, value string) (map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	col, ok := s.data[resource]
	if !ok {
		return nil, false
	}
	r, ok := col.findBy(field, value)
	if !ok {
		return nil, false
	}
	return r.clone(), true
}
