package handlers

import (
	"net/http"

	"jobvibes_backend/internal/middleware"
	"jobvibes_backend/internal/services"
	"jobvibes_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	*BaseHandler
	feedService   services.FeedService
	ledgerService services.LedgerService
}

func NewFeedHandler(base *BaseHandler, feedService services.FeedService, ledgerService services.LedgerService) *FeedHandler {
	return &FeedHandler{
		BaseHandler:   base,
		feedService:   feedService,
		ledgerService: ledgerService,
	}
}

func (h *FeedHandler) RegisterRoutes(rg *gin.RouterGroup) {
	feeds := rg.Group("/feeds")
	feeds.Use(middleware.AuthMiddleware())
	{
		feeds.POST("", h.CreateFeed)
		feeds.GET("", h.GetFeeds)
		feeds.GET("/explore", h.ExploreFeeds)
		feeds.GET("/me", h.GetMyFeeds)
		feeds.GET("/reacted", h.ReactedFeeds)
		feeds.GET("/:id", h.GetFeed)
		feeds.PATCH("/:id", h.UpdateFeed)
		feeds.DELETE("/:id", h.DeleteFeed)
		feeds.POST("/:id/react", h.React)
		feeds.POST("/:id/apply", h.Apply)
		feeds.GET("/:id/applicants", h.ListApplicants)
	}
}

func (h *FeedHandler) CreateFeed(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	var req dto.CreateFeedRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.feedService.CreateFeed(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *FeedHandler) GetFeeds(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	resp, err := h.feedService.GetFeeds(userID, feedListQuery(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func feedListQuery(c *gin.Context) *dto.FeedListQuery {
	page, limit := ParsePagination(c)
	return &dto.FeedListQuery{
		Search:   c.Query("search"),
		JobTitle: c.Query("job_title"),
		JobType:  c.Query("job_type"),
		State:    c.Query("state"),
		City:     c.Query("city"),
		Page:     page,
		Limit:    limit,
	}
}

func (h *FeedHandler) ExploreFeeds(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	resp, err := h.feedService.ExploreFeeds(userID, feedListQuery(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FeedHandler) GetMyFeeds(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	page, limit := ParsePagination(c)

	resp, err := h.feedService.GetMyFeeds(userID, page, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FeedHandler) ReactedFeeds(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	page, limit := ParsePagination(c)

	query := &dto.ReactedFeedsQuery{
		MinRating: ParseQueryInt(c, "min_rating", 0),
		MaxRating: ParseQueryInt(c, "max_rating", 0),
		Search:    c.Query("search"),
		Page:      page,
		Limit:     limit,
	}
	resp, err := h.ledgerService.ReactedFeeds(userID, query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FeedHandler) GetFeed(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.feedService.GetFeed(userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FeedHandler) UpdateFeed(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateFeedRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.feedService.UpdateFeed(userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FeedHandler) DeleteFeed(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.feedService.DeleteFeed(userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Status: true, Message: "Feed deleted"})
}

func (h *FeedHandler) React(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	var req dto.ReactRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.ledgerService.React(userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FeedHandler) Apply(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.ledgerService.Apply(userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FeedHandler) ListApplicants(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	page, limit := ParsePagination(c)

	resp, err := h.ledgerService.ListApplicants(userID, c.Param("id"), page, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
