package handler

import (
	"net/http"

	"vacationhub/internal/middleware"
	"vacationhub/internal/model"
	"vacationhub/internal/service"
	"vacationhub/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VacationTypeHandler struct {
	typeService service.VacationTypeService
}

func NewVacationTypeHandler(typeService service.VacationTypeService) *VacationTypeHandler {
	return &VacationTypeHandler{typeService: typeService}
}

func (h *VacationTypeHandler) RegisterRoutes(router *gin.RouterGroup) {
	types := router.Group("/vacation-types")
	{
		types.GET("", middleware.RequireAuth(), h.ListVacationTypes)
		types.POST("", middleware.RequireRole(model.RoleAdmin, model.RoleSuperAdmin), h.CreateVacationType)
		types.PUT("/:id", middleware.RequireRole(model.RoleAdmin, model.RoleSuperAdmin), h.UpdateVacationType)
		types.DELETE("/:id", middleware.RequireRole(model.RoleAdmin, model.RoleSuperAdmin), h.DeleteVacationType)
	}
}

// ListVacationTypes handles GET /vacation-types
// @Summary      List vacation types
// @Tags         vacation-types
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]service.VacationTypeResponse}
// @Router       /vacation-types [get]
func (h *VacationTypeHandler) ListVacationTypes(c *gin.Context) {
	types, err := h.typeService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch vacation types"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, types))
}

// CreateVacationType handles POST /vacation-types
// @Summary      Create vacation type
// @Tags         vacation-types
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.VacationTypeDTO  true  "Vacation Type Payload"
// @Success      201      {object}  response.Response{data=service.VacationTypeResponse}
// @Failure      400      {object}  response.Response
// @Router       /vacation-types [post]
func (h *VacationTypeHandler) CreateVacationType(c *gin.Context) {
	var req service.VacationTypeDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	vt, err := h.typeService.Create(c.Request.Context(), actorIDPtr(c), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, vt))
}

// UpdateVacationType handles PUT /vacation-types/:id
// @Summary      Update vacation type
// @Tags         vacation-types
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                   true  "Vacation Type ID"
// @Param        payload  body      service.VacationTypeDTO  true  "Vacation Type Payload"
// @Success      200      {object}  response.Response{data=service.VacationTypeResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /vacation-types/{id} [put]
func (h *VacationTypeHandler) UpdateVacationType(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid vacation type ID"))
		return
	}

	var req service.VacationTypeDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	vt, err := h.typeService.Update(c.Request.Context(), actorIDPtr(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, vt))
}

// DeleteVacationType handles DELETE /vacation-types/:id
// @Summary      Delete vacation type
// @Tags         vacation-types
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Vacation Type ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /vacation-types/{id} [delete]
func (h *VacationTypeHandler) DeleteVacationType(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid vacation type ID"))
		return
	}

	if err := h.typeService.Delete(c.Request.Context(), actorIDPtr(c), id); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Vacation type deleted successfully"))
}
