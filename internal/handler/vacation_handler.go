package handler

import (
	"net/http"
	"strconv"

	"vacationhub/internal/middleware"
	"vacationhub/internal/model"
	"vacationhub/internal/service"
	"vacationhub/pkg/pagination"
	"vacationhub/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VacationHandler struct {
	vacationService service.VacationService
	balanceService  service.BalanceService
}

func NewVacationHandler(vacationService service.VacationService, balanceService service.BalanceService) *VacationHandler {
	return &VacationHandler{vacationService: vacationService, balanceService: balanceService}
}

func (h *VacationHandler) RegisterRoutes(router *gin.RouterGroup) {
	requests := router.Group("/requests")
	{
		requests.POST("", middleware.RequireAuth(), h.SubmitRequest)
		requests.GET("", middleware.RequireAuth(), h.ListOwnRequests)
		requests.GET("/visible", middleware.RequireRole(model.RoleManager, model.RoleAdmin, model.RoleSuperAdmin), h.ListVisibleRequests)
		requests.GET("/:id", middleware.RequireAuth(), h.GetRequest)
		requests.PUT("/:id/resolve", middleware.RequireRole(model.RoleManager, model.RoleAdmin, model.RoleSuperAdmin), h.ResolveRequest)
		requests.DELETE("/:id", middleware.RequireAuth(), h.DeleteRequest)
	}

	router.GET("/balance", middleware.RequireAuth(), h.GetOwnBalance)
	router.GET("/balance/:userId", middleware.RequireRole(model.RoleManager, model.RoleAdmin, model.RoleSuperAdmin), h.GetUserBalance)
}

// SubmitRequest handles POST /requests
// @Summary      Submit a vacation request
// @Description  Creates a pending vacation request; chargeable days exclude weekends
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.SubmitRequestDTO  true  "Request Payload"
// @Success      201      {object}  response.Response{data=service.RequestResponse}
// @Failure      400      {object}  response.Response
// @Router       /requests [post]
func (h *VacationHandler) SubmitRequest(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "User ID not found in context"))
		return
	}

	var req service.SubmitRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.vacationService.Submit(c.Request.Context(), callerID, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, result))
}

// ListOwnRequests handles GET /requests and returns only the caller's requests
// @Summary      List own vacation requests
// @Description  Lists the caller's requests, optionally filtered by status and year
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "pending, approved or rejected"
// @Param        year    query     int     false  "Calendar year the request range overlaps"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Number of items per page (default 20)"
// @Success      200     {object}  response.Response{data=object}
// @Router       /requests [get]
func (h *VacationHandler) ListOwnRequests(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "User ID not found in context"))
		return
	}

	filter, params := parseRequestFilter(c)
	requests, total, err := h.vacationService.ListOwn(c.Request.Context(), callerID, filter)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, params.Envelope("requests", requests, total)))
}

// ListVisibleRequests handles GET /requests/visible for managers and admins
// @Summary      List visible vacation requests
// @Description  Managers see their direct reports' requests, admins see everything
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "pending, approved or rejected"
// @Param        year    query     int     false  "Calendar year the request range overlaps"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Number of items per page (default 20)"
// @Success      200     {object}  response.Response{data=object}
// @Failure      403     {object}  response.Response
// @Router       /requests/visible [get]
func (h *VacationHandler) ListVisibleRequests(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "User ID not found in context"))
		return
	}

	filter, params := parseRequestFilter(c)
	requests, total, err := h.vacationService.ListVisible(c.Request.Context(), callerID, filter)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, params.Envelope("requests", requests, total)))
}

// GetRequest handles GET /requests/:id
// @Summary      Get a vacation request
// @Description  Fetch a single request; owner, their manager and admins only
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request ID"
// @Success      200  {object}  response.Response{data=service.RequestResponse}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /requests/{id} [get]
func (h *VacationHandler) GetRequest(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "User ID not found in context"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request ID"))
		return
	}

	result, err := h.vacationService.Get(c.Request.Context(), id, callerID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// ResolveRequest handles PUT /requests/:id/resolve
// @Summary      Resolve a vacation request
// @Description  Approves or rejects a request; the owner is notified after the status is stored
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                     true  "Request ID"
// @Param        payload  body      service.ResolveRequestDTO  true  "Resolution Payload"
// @Success      200      {object}  response.Response{data=service.RequestResponse}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /requests/{id}/resolve [put]
func (h *VacationHandler) ResolveRequest(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "User ID not found in context"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request ID"))
		return
	}

	var req service.ResolveRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.vacationService.Resolve(c.Request.Context(), id, callerID, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// DeleteRequest handles DELETE /requests/:id
// @Summary      Delete a vacation request
// @Description  Removes a request in any status; owner or admin only, no notification is sent
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /requests/{id} [delete]
func (h *VacationHandler) DeleteRequest(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "User ID not found in context"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request ID"))
		return
	}

	if err := h.vacationService.Delete(c.Request.Context(), id, callerID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Request deleted successfully"))
}

// GetOwnBalance handles GET /balance
// @Summary      Get own vacation balance
// @Description  Returns used, pending, remaining and total days for the current year
// @Tags         balance
// @Produce      json
// @Security     BearerAuth
// @Param        year  query     int  false  "Calendar year (default: current)"
// @Success      200   {object}  response.Response{data=service.VacationSummary}
// @Router       /balance [get]
func (h *VacationHandler) GetOwnBalance(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "User ID not found in context"))
		return
	}

	var summary service.VacationSummary
	if year, err := strconv.Atoi(c.Query("year")); err == nil && year > 0 {
		summary = h.balanceService.SummaryForYear(c.Request.Context(), callerID, year)
	} else {
		summary = h.balanceService.Summary(c.Request.Context(), callerID)
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}

// GetUserBalance handles GET /balance/:userId; admins may read any user,
// managers only their direct reports
// @Summary      Get a user's vacation balance
// @Description  Returns used, pending, remaining and total days for the given user
// @Tags         balance
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true   "User ID"
// @Param        year    query     int     false  "Calendar year (default: current)"
// @Success      200     {object}  response.Response{data=service.VacationSummary}
// @Failure      403     {object}  response.Response
// @Router       /balance/{userId} [get]
func (h *VacationHandler) GetUserBalance(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "User ID not found in context"))
		return
	}

	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid user ID"))
		return
	}

	year, _ := strconv.Atoi(c.Query("year"))
	summary, err := h.balanceService.SummaryForUser(c.Request.Context(), callerID, userID, year)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}

func parseRequestFilter(c *gin.Context) (service.ListRequestsFilter, pagination.Params) {
	params := pagination.Parse(c)
	year, _ := strconv.Atoi(c.Query("year"))
	return service.ListRequestsFilter{
		Status: c.Query("status"),
		Year:   year,
		Page:   params.Page,
		Limit:  params.Limit,
	}, params
}
