// Package server exposes the reference data and the readiness engine as a
// JSON API.
package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbctxt/readycheck/internal/common"
	"github.com/tbctxt/readycheck/internal/engine"
	"github.com/tbctxt/readycheck/internal/model"
	"github.com/tbctxt/readycheck/internal/refdata"
	"github.com/tbctxt/readycheck/internal/resolver"
)

// Config holds the API server settings.
type Config struct {
	Host  string
	Port  int
	Debug bool
}

// Server wraps the gin router and the application components it serves.
type Server struct {
	cfg      Config
	router   *gin.Engine
	store    *refdata.Store
	resolver *resolver.Resolver
	checker  *engine.Engine
	log      *slog.Logger
}

// New creates the API server and registers its routes.
func New(cfg Config, store *refdata.Store, res *resolver.Resolver, checker *engine.Engine) *Server {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.Port == 0 {
		cfg.Port = 3001
	}

	s := &Server{
		cfg:      cfg,
		router:   gin.New(),
		store:    store,
		resolver: res,
		checker:  checker,
		log:      common.ComponentLogger("server"),
	}

	s.router.Use(gin.Recovery())
	s.setupRoutes()
	return s
}

// Start runs the server until it fails or is shut down.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	s.log.Info("api server listening", "addr", addr)
	return s.router.Run(addr)
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	api.GET("/health", s.handleHealth)
	api.GET("/classes", s.handleClasses)
	api.GET("/classes/:class", s.handleClass)
	api.GET("/classes/:class/:spec", s.handleSpec)
	api.GET("/items/search", s.handleItemSearch)
	api.GET("/item/:name", s.handleItemLookup)
	api.POST("/check", s.handleCheck)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "items": s.store.ItemCount()})
}

func (s *Server) handleClasses(c *gin.Context) {
	type classInfo struct {
		Key  string `json:"key"`
		Name string `json:"name"`
	}
	classes := make([]classInfo, 0)
	for _, key := range s.store.Classes() {
		classes = append(classes, classInfo{Key: key, Name: s.store.ClassName(key)})
	}
	c.JSON(http.StatusOK, gin.H{"classes": classes})
}

func (s *Server) handleClass(c *gin.Context) {
	class := c.Param("class")
	specs := s.store.Specs(class)
	if specs == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown class"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"class": class,
		"name":  s.store.ClassName(class),
		"specs": specs,
	})
}

func (s *Server) handleSpec(c *gin.Context) {
	class, spec := c.Param("class"), c.Param("spec")
	phases := s.store.Phases(class, spec)
	if phases == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown class or spec"})
		return
	}

	type phaseInfo struct {
		Key  string           `json:"key"`
		Name string           `json:"name"`
		Bis  []model.BisEntry `json:"bis"`
	}
	out := make([]phaseInfo, 0, len(phases))
	for _, key := range phases {
		out = append(out, phaseInfo{
			Key:  key,
			Name: s.store.PhaseName(class, spec, key),
			Bis:  s.store.BisList(class, spec, key),
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"class":  class,
		"spec":   spec,
		"role":   refdata.RoleForSpec(spec),
		"phases": out,
	})
}

func (s *Server) handleItemSearch(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q parameter required"})
		return
	}

	type hit struct {
		Name string `json:"name"`
		ID   int    `json:"id"`
	}
	hits := make([]hit, 0)
	for _, name := range s.store.ItemNames() {
		if model.NamesMatch(name, query) {
			if id, ok := s.store.LookupItem(name); ok {
				hits = append(hits, hit{Name: name, ID: id})
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{"items": hits})
}

func (s *Server) handleItemLookup(c *gin.Context) {
	name := c.Param("name")
	id, ok := s.resolver.Resolve(c.Request.Context(), name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": name, "id": id})
}

type checkRequest struct {
	Class string `json:"class" binding:"required"`
	Spec  string `json:"spec" binding:"required"`
	Phase string `json:"phase" binding:"required"`
	Gear  string `json:"gear"`
}

func (s *Server) handleCheck(c *gin.Context) {
	var req checkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := s.checker.Check(c.Request.Context(), req.Class, req.Spec, req.Phase, req.Gear)
	if err != nil {
		s.log.Error("check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}
