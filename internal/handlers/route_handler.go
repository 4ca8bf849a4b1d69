package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/traillog/route-log-backend/internal/database"
	"github.com/traillog/route-log-backend/internal/forms"
	"github.com/traillog/route-log-backend/internal/services"
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// RouteHandler handles the route log operations
type RouteHandler struct {
	routeRepo *database.RouteRepository
	search    *services.SearchService
	logger    *logrus.Logger
}

// NewRouteHandler creates a new route handler
func NewRouteHandler(routeRepo *database.RouteRepository, search *services.SearchService, logger *logrus.Logger) *RouteHandler {
	return &RouteHandler{
		routeRepo: routeRepo,
		search:    search,
		logger:    logger,
	}
}

// ListRoutes returns every logged route, most recent completion first,
// optionally narrowed by a name/zone search query.
// GET /api/v1/routes?q=
func (h *RouteHandler) ListRoutes(c *gin.Context) {
	routes, err := h.routeRepo.GetAll()
	if err != nil {
		h.logger.WithError(err).Error("Failed to fetch routes")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "storage_error",
			Message: "Failed to fetch routes",
		})
		return
	}

	if query := c.Query("q"); query != "" {
		routes = h.search.Filter(routes, query)
	}

	c.JSON(http.StatusOK, gin.H{
		"routes": routes,
		"count":  len(routes),
	})
}

// CreateRoute validates a submitted draft, converts it and persists it.
// POST /api/v1/routes
func (h *RouteHandler) CreateRoute(c *gin.Context) {
	var form forms.RouteForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	if fieldErrors := form.Validate(); len(fieldErrors) > 0 {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:  "validation_failed",
			Fields: fieldErrors,
		})
		return
	}

	id, err := h.routeRepo.Insert(form.ToInput())
	if err != nil {
		h.logger.WithError(err).Error("Failed to insert route")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "storage_error",
			Message: "Failed to save route",
		})
		return
	}

	h.logger.WithField("route_id", id).Info("Route created")
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// GetRouteByID returns a single route.
// GET /api/v1/routes/:id
func (h *RouteHandler) GetRouteByID(c *gin.Context) {
	id, ok := routeID(c)
	if !ok {
		return
	}

	route, err := h.routeRepo.GetByID(id)
	if err != nil {
		h.logger.WithError(err).WithField("route_id", id).Error("Failed to fetch route")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "storage_error",
			Message: "Failed to fetch route",
		})
		return
	}

	if route == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: "Route not found",
		})
		return
	}

	c.JSON(http.StatusOK, route)
}

// UpdateRoute replaces every mutable field of an existing route.
// PUT /api/v1/routes/:id
func (h *RouteHandler) UpdateRoute(c *gin.Context) {
	id, ok := routeID(c)
	if !ok {
		return
	}

	var form forms.RouteForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	if fieldErrors := form.Validate(); len(fieldErrors) > 0 {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:  "validation_failed",
			Fields: fieldErrors,
		})
		return
	}

	if err := h.routeRepo.Update(id, form.ToInput()); err != nil {
		if errors.Is(err, database.ErrRouteNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Route not found",
			})
			return
		}
		h.logger.WithError(err).WithField("route_id", id).Error("Failed to update route")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "storage_error",
			Message: "Failed to update route",
		})
		return
	}

	h.logger.WithField("route_id", id).Info("Route updated")
	c.Status(http.StatusNoContent)
}

// DeleteRoute removes a route. Deleting an id that no longer exists still
// succeeds.
// DELETE /api/v1/routes/:id
func (h *RouteHandler) DeleteRoute(c *gin.Context) {
	id, ok := routeID(c)
	if !ok {
		return
	}

	if err := h.routeRepo.Delete(id); err != nil {
		h.logger.WithError(err).WithField("route_id", id).Error("Failed to delete route")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "storage_error",
			Message: "Failed to delete route",
		})
		return
	}

	h.logger.WithField("route_id", id).Info("Route deleted")
	c.Status(http.StatusNoContent)
}

// GetStatistics returns the aggregate summary over all logged routes.
// GET /api/v1/statistics
func (h *RouteHandler) GetStatistics(c *gin.Context) {
	stats, err := h.routeRepo.GetStatistics()
	if err != nil {
		h.logger.WithError(err).Error("Failed to compute statistics")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "storage_error",
			Message: "Failed to compute statistics",
		})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// EditForm returns a route converted to its editable draft shape, the
// payload an edit screen starts from.
// GET /api/v1/routes/:id/form
func (h *RouteHandler) EditForm(c *gin.Context) {
	id, ok := routeID(c)
	if !ok {
		return
	}

	route, err := h.routeRepo.GetByID(id)
	if err != nil {
		h.logger.WithError(err).WithField("route_id", id).Error("Failed to fetch route")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "storage_error",
			Message: "Failed to fetch route",
		})
		return
	}

	if route == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: "Route not found",
		})
		return
	}

	c.JSON(http.StatusOK, forms.FormFromRoute(route))
}

func routeID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Route id must be an integer",
		})
		return 0, false
	}
	return id, true
}
