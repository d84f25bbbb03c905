package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tanvir/noteshare/internal/app/models/dto"
	"github.com/tanvir/noteshare/internal/app/services"
	"github.com/tanvir/noteshare/internal/middleware"
)

// parseIDParam parses an ID parameter from the request path
func parseIDParam(ctx *gin.Context, paramName string) (int64, error) {
	idStr := ctx.Param(paramName)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, strconv.ErrSyntax
	}
	return id, nil
}

// currentViewer builds the viewer identity from the request context. Both
// fields stay zero for anonymous requests.
func currentViewer(ctx *gin.Context) services.Viewer {
	viewer := services.Viewer{}
	if userID, exists := ctx.Get(middleware.ContextUserIDKey); exists {
		if id, ok := userID.(int64); ok {
			viewer.UserID = &id
		}
	}
	if isStaff, exists := ctx.Get(middleware.ContextIsStaffKey); exists {
		if staff, ok := isStaff.(bool); ok {
			viewer.IsStaff = staff
		}
	}
	return viewer
}

// currentActor builds the authenticated actor from the request context.
func currentActor(ctx *gin.Context) (services.Actor, bool) {
	userID, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return services.Actor{}, false
	}
	id, ok := userID.(int64)
	if !ok {
		return services.Actor{}, false
	}

	actor := services.Actor{UserID: id}
	if isStaff, exists := ctx.Get(middleware.ContextIsStaffKey); exists {
		if staff, ok := isStaff.(bool); ok {
			actor.IsStaff = staff
		}
	}
	return actor, true
}

func respondUnauthorized(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, dto.APIResponse{
		Error: dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"),
	})
}

// NoteController handles note operations
type NoteController struct {
	noteService       services.NoteService
	engagementService services.EngagementService
}

// NewNoteController creates a new NoteController
func NewNoteController(noteService services.NoteService, engagementService services.EngagementService) *NoteController {
	return &NoteController{
		noteService:       noteService,
		engagementService: engagementService,
	}
}

// GetAllNotes godoc
// @Summary Get all notes
// @Description Get a paginated list of approved notes with filtering, search and ordering
// @Tags notes
// @Accept json
// @Produce json
// @Param departmentId query int false "Filter by department ID"
// @Param courseId query int false "Filter by course ID"
// @Param facultyId query int false "Filter by faculty ID"
// @Param categoryId query int false "Filter by category ID"
// @Param uploaderId query int false "Filter by uploader ID"
// @Param semester query string false "Filter by semester"
// @Param tag query string false "Filter by tag"
// @Param search query string false "Search in title, description, course, department and tags"
// @Param orderBy query string false "Order by: createdAt, downloadCount, averageRating, title"
// @Param orderDir query string false "Order direction: asc, desc"
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 10, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.NoteListResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 500 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /notes [get]
func (c *NoteController) GetAllNotes(ctx *gin.Context) {
	var filter dto.NoteFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid filter parameters"),
		})
		return
	}

	notes, err := c.noteService.GetAllNotes(ctx, &filter, currentViewer(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: notes})
}

// GetNoteByID godoc
// @Summary Get a note by ID
// @Description Get a single note with its engagement state
// @Tags notes
// @Accept json
// @Produce json
// @Param id path int true "Note ID"
// @Success 200 {object} dto.APIResponse{data=dto.NoteResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 500 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /notes/{id} [get]
func (c *NoteController) GetNoteByID(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid note ID"),
		})
		return
	}

	note, err := c.noteService.GetNoteByID(ctx, id, currentViewer(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: note})
}

// GetMyNotes godoc
// @Summary Get own notes
// @Description Get the caller's uploads including those pending approval
// @Tags notes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 10, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.NoteListResponse}
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 500 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /notes/my [get]
func (c *NoteController) GetMyNotes(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	var filter dto.NoteFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid filter parameters"),
		})
		return
	}

	notes, err := c.noteService.GetMyNotes(ctx, &filter, actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: notes})
}

// CreateNote godoc
// @Summary Upload a new note
// @Description Upload a note file with its metadata; the note awaits staff approval
// @Tags notes
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param semester formData string true "Semester"
// @Param categoryId formData int false "Category ID"
// @Param courseId formData int false "Course ID"
// @Param departmentId formData int false "Department ID"
// @Param facultyId formData int false "Faculty ID"
// @Param tags formData []string false "Tags"
// @Param file formData file true "File to upload"
// @Success 201 {object} dto.APIResponse{data=dto.CreateNoteResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 500 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /notes [post]
func (c *NoteController) CreateNote(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	var req dto.CreateNoteRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid request format"),
		})
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid or missing file"),
		})
		return
	}

	note, err := c.noteService.CreateNote(ctx, &req, file, actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: note})
}

// UpdateNote godoc
// @Summary Update a note
// @Description Update a note's metadata and approval flag (staff only)
// @Tags notes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Note ID"
// @Param request body dto.UpdateNoteRequest true "Update data"
// @Success 200 {object} dto.APIResponse{data=dto.NoteResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 500 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /notes/{id} [put]
func (c *NoteController) UpdateNote(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid note ID"),
		})
		return
	}

	var req dto.UpdateNoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid request format"),
		})
		return
	}

	note, err := c.noteService.UpdateNote(ctx, id, &req, actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: note})
}

// DeleteNote godoc
// @Summary Delete a note
// @Description Delete a note and its file (owner or staff)
// @Tags notes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Note ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 500 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /notes/{id} [delete]
func (c *NoteController) DeleteNote(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid note ID"),
		})
		return
	}

	if err := c.noteService.DeleteNote(ctx, id, actor); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.SuccessResponse{Message: "Note deleted successfully."},
	})
}

// DownloadNote godoc
// @Summary Download a note
// @Description Increment the download counter and return the file URL
// @Tags notes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Note ID"
// @Success 200 {object} dto.APIResponse{data=dto.DownloadResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 500 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /notes/{id}/download [post]
func (c *NoteController) DownloadNote(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid note ID"),
		})
		return
	}

	response, err := c.noteService.Download(ctx, id, actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: response})
}

// ToggleLike godoc
// @Summary Toggle like on a note
// @Description Like the note if not liked yet, otherwise remove the like
// @Tags notes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Note ID"
// @Success 200 {object} dto.APIResponse{data=dto.ToggleLikeResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 500 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /notes/{id}/toggle-like [post]
func (c *NoteController) ToggleLike(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid note ID"),
		})
		return
	}

	response, err := c.engagementService.ToggleLike(ctx, id, actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: response})
}

// ToggleBookmark godoc
// @Summary Toggle bookmark on a note
// @Description Bookmark the note if not bookmarked yet, otherwise remove the bookmark
// @Tags notes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Note ID"
// @Success 200 {object} dto.APIResponse{data=dto.ToggleBookmarkResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 500 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /notes/{id}/toggle-bookmark [post]
func (c *NoteController) ToggleBookmark(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid note ID"),
		})
		return
	}

	response, err := c.engagementService.ToggleBookmark(ctx, id, actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: response})
}
