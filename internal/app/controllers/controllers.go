package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tanvir/noteshare/internal/app/services"
)

// parseOptionalIDQuery parses an optional positive ID query parameter.
func parseOptionalIDQuery(ctx *gin.Context, name string) (*int64, error) {
	value := ctx.Query(name)
	if value == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return nil, strconv.ErrSyntax
	}
	return &id, nil
}

// Controllers bundles all controller instances for route registration.
type Controllers struct {
	AuthController    *AuthController
	NoteController    *NoteController
	RatingController  *RatingController
	CommentController *CommentController
	CatalogController *CatalogController
}

// NewControllers wires services into controllers.
func NewControllers(svc *services.Services) *Controllers {
	return &Controllers{
		AuthController:    NewAuthController(svc.AuthService),
		NoteController:    NewNoteController(svc.NoteService, svc.EngagementService),
		RatingController:  NewRatingController(svc.RatingService),
		CommentController: NewCommentController(svc.CommentService),
		CatalogController: NewCatalogController(svc.CatalogService),
	}
}
