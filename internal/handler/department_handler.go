package handler

import (
	"net/http"

	"vacationhub/internal/middleware"
	"vacationhub/internal/model"
	"vacationhub/internal/service"
	"vacationhub/pkg/pagination"
	"vacationhub/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DepartmentHandler struct {
	departmentService service.DepartmentService
}

func NewDepartmentHandler(departmentService service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{departmentService: departmentService}
}

func (h *DepartmentHandler) RegisterRoutes(router *gin.RouterGroup) {
	departments := router.Group("/departments")
	{
		departments.GET("", middleware.RequireAuth(), h.ListDepartments)
		departments.GET("/:id", middleware.RequireAuth(), h.GetDepartment)
		departments.POST("", middleware.RequireRole(model.RoleAdmin, model.RoleSuperAdmin), h.CreateDepartment)
		departments.PUT("/:id", middleware.RequireRole(model.RoleAdmin, model.RoleSuperAdmin), h.UpdateDepartment)
		departments.DELETE("/:id", middleware.RequireRole(model.RoleAdmin, model.RoleSuperAdmin), h.DeleteDepartment)
	}
}

// CreateDepartment handles POST /departments
// @Summary      Create department
// @Tags         departments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.DepartmentDTO  true  "Department Payload"
// @Success      201      {object}  response.Response{data=service.DepartmentResponse}
// @Failure      400      {object}  response.Response
// @Router       /departments [post]
func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	var req service.DepartmentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	dept, err := h.departmentService.Create(c.Request.Context(), actorIDPtr(c), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, dept))
}

// ListDepartments handles GET /departments
// @Summary      List departments
// @Tags         departments
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Router       /departments [get]
func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	params := pagination.Parse(c)

	depts, total, err := h.departmentService.List(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch departments"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, params.Envelope("departments", depts, total)))
}

// GetDepartment handles GET /departments/:id
// @Summary      Get department by ID
// @Tags         departments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Department ID"
// @Success      200  {object}  response.Response{data=service.DepartmentResponse}
// @Failure      404  {object}  response.Response
// @Router       /departments/{id} [get]
func (h *DepartmentHandler) GetDepartment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid department ID"))
		return
	}

	dept, err := h.departmentService.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, dept))
}

// UpdateDepartment handles PUT /departments/:id
// @Summary      Update department
// @Tags         departments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                 true  "Department ID"
// @Param        payload  body      service.DepartmentDTO  true  "Department Payload"
// @Success      200      {object}  response.Response{data=service.DepartmentResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /departments/{id} [put]
func (h *DepartmentHandler) UpdateDepartment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid department ID"))
		return
	}

	var req service.DepartmentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	dept, err := h.departmentService.Update(c.Request.Context(), actorIDPtr(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, dept))
}

// DeleteDepartment handles DELETE /departments/:id
// @Summary      Delete department
// @Tags         departments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Department ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /departments/{id} [delete]
func (h *DepartmentHandler) DeleteDepartment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid department ID"))
		return
	}

	if err := h.departmentService.Delete(c.Request.Context(), actorIDPtr(c), id); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Department deleted successfully"))
}
