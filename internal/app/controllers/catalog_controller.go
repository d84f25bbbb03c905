package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tanvir/noteshare/internal/app/models/dto"
	"github.com/tanvir/noteshare/internal/app/services"
	"github.com/tanvir/noteshare/internal/middleware"
)

// CatalogController serves the faculty/department/course/category hierarchy.
type CatalogController struct {
	catalogService services.CatalogService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogService services.CatalogService) *CatalogController {
	return &CatalogController{catalogService: catalogService}
}

// GetFaculties godoc
// @Summary List faculties
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.FacultyResponse}
// @Failure 500 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /faculties [get]
func (c *CatalogController) GetFaculties(ctx *gin.Context) {
	faculties, err := c.catalogService.GetFaculties(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: faculties})
}

// GetDepartments godoc
// @Summary List departments
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.DepartmentResponse}
// @Failure 500 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /departments [get]
func (c *CatalogController) GetDepartments(ctx *gin.Context) {
	departments, err := c.catalogService.GetDepartments(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: departments})
}

// GetCourses godoc
// @Summary List courses
// @Tags catalog
// @Produce json
// @Param departmentId query int false "Filter by department ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 500 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /courses [get]
func (c *CatalogController) GetCourses(ctx *gin.Context) {
	departmentID, err := parseOptionalIDQuery(ctx, "departmentId")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid department ID"),
		})
		return
	}

	courses, err := c.catalogService.GetCourses(ctx, departmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: courses})
}

// GetCategories godoc
// @Summary List note categories
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.CategoryResponse}
// @Failure 500 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /categories [get]
func (c *CatalogController) GetCategories(ctx *gin.Context) {
	categories, err := c.catalogService.GetCategories(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: categories})
}

// CreateDepartment godoc
// @Summary Create a department
// @Description Add a department to the catalog (staff only)
// @Tags catalog
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateDepartmentRequest true "Department data"
// @Success 201 {object} dto.APIResponse{data=dto.DepartmentResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 409 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 500 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /departments [post]
func (c *CatalogController) CreateDepartment(ctx *gin.Context) {
	var req dto.CreateDepartmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid request format"),
		})
		return
	}

	department, err := c.catalogService.CreateDepartment(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: department})
}

// CreateCourse godoc
// @Summary Create a course
// @Description Add a course to the catalog (staff only)
// @Tags catalog
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateCourseRequest true "Course data"
// @Success 201 {object} dto.APIResponse{data=dto.CourseResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 409 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 500 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /courses [post]
func (c *CatalogController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid request format"),
		})
		return
	}

	course, err := c.catalogService.CreateCourse(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: course})
}
