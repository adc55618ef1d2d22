package handlers

import (
	"net/http"

	"jobvibes_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	*BaseHandler
	catalogService services.CatalogService
}

func NewCatalogHandler(base *BaseHandler, catalogService services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		BaseHandler:    base,
		catalogService: catalogService,
	}
}

// Catalog endpoints are public: the onboarding screens call them before the
// profile is complete.
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	catalog := rg.Group("/catalog")
	{
		catalog.GET("/skills", h.SearchSkills)
		catalog.GET("/job-titles", h.SearchJobTitles)
		catalog.GET("/states", h.ListStates)
		catalog.GET("/states/:id/cities", h.ListCities)
		catalog.GET("/cities", h.SearchCities)
	}
}

func (h *CatalogHandler) SearchSkills(c *gin.Context) {
	skills, err := h.catalogService.SearchSkills(c.Query("search"), ParseQueryInt(c, "limit", 50))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"skills": skills})
}

func (h *CatalogHandler) SearchJobTitles(c *gin.Context) {
	titles, err := h.catalogService.SearchJobTitles(c.Query("search"), ParseQueryInt(c, "limit", 50))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"job_titles": titles})
}

func (h *CatalogHandler) ListStates(c *gin.Context) {
	states, err := h.catalogService.ListStates()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"states": states})
}

func (h *CatalogHandler) ListCities(c *gin.Context) {
	cities, err := h.catalogService.ListCities(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cities": cities})
}

func (h *CatalogHandler) SearchCities(c *gin.Context) {
	cities, err := h.catalogService.SearchCities(c.Query("search"), ParseQueryInt(c, "limit", 50))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cities": cities})
}
