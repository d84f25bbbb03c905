package services

import (
	"github.com/tanvir/noteshare/internal/app/repositories"
	"github.com/tanvir/noteshare/internal/pkg/auth"
	"github.com/tanvir/noteshare/internal/pkg/filestorage"
)

// Services bundles all service instances for dependency injection.
type Services struct {
	AuthService       AuthService
	NoteService       NoteService
	EngagementService EngagementService
	RatingService     RatingService
	CommentService    CommentService
	CatalogService    CatalogService
}

// NewServices wires repositories into service implementations.
func NewServices(repos *repositories.Repositories, storage filestorage.Storage, jwtService *auth.JWTService) *Services {
	return &Services{
		AuthService:       NewAuthService(repos.UserRepository, repos.TokenRepository, jwtService),
		NoteService:       NewNoteService(repos.NoteRepository, storage),
		EngagementService: NewEngagementService(repos.EngagementRepository, repos.NoteRepository),
		RatingService:     NewRatingService(repos.RatingRepository, repos.NoteRepository),
		CommentService:    NewCommentService(repos.CommentRepository, repos.NoteRepository),
		CatalogService:    NewCatalogService(repos.FacultyRepository, repos.DepartmentRepository, repos.CourseRepository, repos.CategoryRepository),
	}
}
