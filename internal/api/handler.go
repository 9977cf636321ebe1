package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"job-board-go/internal/models"
	"job-board-go/internal/query"
	"job-board-go/internal/repository"
	"job-board-go/internal/storage"
)

// Limits bounds the page-size query parameter.
type Limits struct {
	DefaultPageSize int
	MaxPageSize     int
}

// Handler serves the public listing API and the authenticated admin
// CRUD API. The public and admin surfaces each own a repository
// instance, mirroring the two views of the application.
type Handler struct {
	public   *repository.Repository
	admin    *repository.Repository
	store    storage.Store
	limits   Limits
	validate *validator.Validate
	log      zerolog.Logger
}

func NewHandler(public, admin *repository.Repository, store storage.Store, limits Limits, log zerolog.Logger) *Handler {
	if limits.DefaultPageSize < 1 {
		limits.DefaultPageSize = repository.DefaultPageSize
	}
	if limits.MaxPageSize < limits.DefaultPageSize {
		limits.MaxPageSize = 100
	}

	validate := validator.New()
	_ = validate.RegisterValidation("jobtype", func(fl validator.FieldLevel) bool {
		return models.IsValidJobType(fl.Field().String())
	})

	return &Handler{
		public:   public,
		admin:    admin,
		store:    store,
		limits:   limits,
		validate: validate,
		log:      log.With().Str("component", "api").Logger(),
	}
}

// RegisterRoutes wires the handler into the router. authRequired must
// resolve the acting user and reject unauthenticated requests; it
// guards the whole admin group, matching the admin view being rendered
// only for signed-in users.
func (h *Handler) RegisterRoutes(r *gin.Engine, authRequired gin.HandlerFunc, public ...gin.HandlerFunc) {
	pub := r.Group("/api", public...)
	pub.GET("/jobs", h.listJobs(h.public))
	pub.GET("/jobs/:id", h.getJob(h.public))
	pub.GET("/stats", h.getStats)

	admin := r.Group("/api/admin", authRequired)
	admin.GET("/jobs", h.listJobs(h.admin))
	admin.GET("/jobs/:id", h.getJob(h.admin))
	admin.POST("/jobs", h.createJob)
	admin.PUT("/jobs/:id", h.updateJob)
	admin.DELETE("/jobs/:id", h.deleteJob)

	r.GET("/healthz", h.healthz)
}

func (h *Handler) listJobs(repo *repository.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		filters := query.FilterSpec{
			Search:   c.Query("search"),
			JobTypes: c.QueryArray("job_type"),
			Location: c.Query("location"),
			Company:  c.Query("company"),
		}

		page, err := intQuery(c, "page", 1)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'page' must be an integer"})
			return
		}
		limit, err := intQuery(c, "limit", h.limits.DefaultPageSize)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'limit' must be an integer"})
			return
		}
		if limit > h.limits.MaxPageSize {
			limit = h.limits.MaxPageSize
		}

		jobs, meta, err := repo.List(c.Request.Context(), filters, page, limit)
		if err != nil {
			h.writeError(c, err)
			return
		}
		if jobs == nil {
			jobs = []models.Job{}
		}
		c.JSON(http.StatusOK, JobListResponse{Jobs: jobs, Pagination: meta})
	}
}

func (h *Handler) getJob(repo *repository.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		job, err := repo.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			h.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, job)
	}
}

func (h *Handler) getStats(c *gin.Context) {
	c.JSON(http.StatusOK, StatsResponse{Stats: h.public.Stats()})
}

func (h *Handler) createJob(c *gin.Context) {
	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job, err := h.admin.Create(c.Request.Context(), req.ToDraft())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *Handler) updateJob(c *gin.Context) {
	var req UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job, err := h.admin.Update(c.Request.Context(), c.Param("id"), req.ToPatch())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *Handler) deleteJob(c *gin.Context) {
	if err := h.admin.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}

func (h *Handler) healthz(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// writeError maps the domain error taxonomy onto HTTP statuses. Every
// unmatched error is treated as a remote store failure.
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, query.ErrInvalidFilter), errors.Is(err, models.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Msg("store request failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	}
}

func intQuery(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
