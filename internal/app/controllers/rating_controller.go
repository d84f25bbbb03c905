package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tanvir/noteshare/internal/app/models/dto"
	"github.com/tanvir/noteshare/internal/app/services"
	"github.com/tanvir/noteshare/internal/middleware"
	"github.com/tanvir/noteshare/internal/pkg/helpers"
)

// RatingController handles star rating operations
type RatingController struct {
	ratingService services.RatingService
}

// NewRatingController creates a new RatingController
func NewRatingController(ratingService services.RatingService) *RatingController {
	return &RatingController{ratingService: ratingService}
}

// GetRatings godoc
// @Summary List ratings
// @Description Get a paginated list of ratings, optionally scoped to one note
// @Tags ratings
// @Accept json
// @Produce json
// @Param noteId query int false "Filter by note ID"
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 10, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.RatingListResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 500 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /ratings [get]
func (c *RatingController) GetRatings(ctx *gin.Context) {
	noteID, err := parseOptionalIDQuery(ctx, "noteId")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid note ID"),
		})
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	ratings, err := c.ratingService.GetRatings(ctx, noteID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: ratings})
}

// GetRating godoc
// @Summary Get a rating by ID
// @Tags ratings
// @Accept json
// @Produce json
// @Param id path int true "Rating ID"
// @Success 200 {object} dto.APIResponse{data=dto.RatingResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 500 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /ratings/{id} [get]
func (c *RatingController) GetRating(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid rating ID"),
		})
		return
	}

	rating, err := c.ratingService.GetRating(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: rating})
}

// CreateRating godoc
// @Summary Rate a note
// @Description Create the caller's rating for a note; one rating per note per user
// @Tags ratings
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateRatingRequest true "Rating data"
// @Success 201 {object} dto.APIResponse{data=dto.RatingResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 500 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /ratings [post]
func (c *RatingController) CreateRating(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	var req dto.CreateRatingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid request format"),
		})
		return
	}

	rating, err := c.ratingService.CreateRating(ctx, &req, actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: rating})
}

// UpdateRating godoc
// @Summary Update a rating
// @Description Change the stars of an existing rating (owner or staff)
// @Tags ratings
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Rating ID"
// @Param request body dto.UpdateRatingRequest true "Update data"
// @Success 200 {object} dto.APIResponse{data=dto.RatingResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 500 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /ratings/{id} [put]
func (c *RatingController) UpdateRating(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid rating ID"),
		})
		return
	}

	var req dto.UpdateRatingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid request format"),
		})
		return
	}

	rating, err := c.ratingService.UpdateRating(ctx, id, &req, actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: rating})
}

// DeleteRating godoc
// @Summary Delete a rating
// @Description Remove a rating (owner or staff)
// @Tags ratings
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Rating ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 500 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /ratings/{id} [delete]
func (c *RatingController) DeleteRating(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid rating ID"),
		})
		return
	}

	if err := c.ratingService.DeleteRating(ctx, id, actor); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.SuccessResponse{Message: "Rating deleted successfully."},
	})
}
