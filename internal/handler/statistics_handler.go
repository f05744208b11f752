package handler

import (
	"net/http"
	"strconv"

	"vacationhub/internal/middleware"
	"vacationhub/internal/model"
	"vacationhub/internal/service"
	"vacationhub/pkg/response"

	"github.com/gin-gonic/gin"
)

type StatisticsHandler struct {
	statisticsService service.StatisticsService
}

func NewStatisticsHandler(statisticsService service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService}
}

func (h *StatisticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/statistics", middleware.RequireRole(model.RoleAdmin, model.RoleSuperAdmin), h.GetStatistics)
}

// GetStatistics handles GET /statistics
// @Summary      Vacation statistics
// @Description  Aggregated vacation usage for a calendar year
// @Tags         statistics
// @Produce      json
// @Security     BearerAuth
// @Param        year  query     int  false  "Calendar year (default: current)"
// @Success      200   {object}  response.Response{data=model.StatisticsResponse}
// @Failure      500   {object}  response.Response
// @Router       /statistics [get]
func (h *StatisticsHandler) GetStatistics(c *gin.Context) {
	year, _ := strconv.Atoi(c.Query("year"))

	stats, err := h.statisticsService.GetStatistics(c.Request.Context(), year)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to compute statistics"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}
