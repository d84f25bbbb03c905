package repositories

import (
	"github.com/tanvir/noteshare/internal/db"
)

// Repositories bundles all repository instances for dependency injection.
type Repositories struct {
	NoteRepository       *NoteRepository
	EngagementRepository *EngagementRepository
	RatingRepository     *RatingRepository
	CommentRepository    *CommentRepository
	DepartmentRepository *DepartmentRepository
	CourseRepository     *CourseRepository
	FacultyRepository    *FacultyRepository
	CategoryRepository   *CategoryRepository
	UserRepository       *UserRepository
	TokenRepository      *TokenRepository
}

// NewRepositories creates all repositories sharing one connection pool. The
// engagement repository additionally gets the transaction runner so toggles
// execute atomically.
func NewRepositories(database *db.PostgresDB) *Repositories {
	pool := database.Pool
	return &Repositories{
		NoteRepository:       NewNoteRepository(pool),
		EngagementRepository: NewEngagementRepository(database),
		RatingRepository:     NewRatingRepository(pool),
		CommentRepository:    NewCommentRepository(pool),
		DepartmentRepository: NewDepartmentRepository(pool),
		CourseRepository:     NewCourseRepository(pool),
		FacultyRepository:    NewFacultyRepository(pool),
		CategoryRepository:   NewCategoryRepository(pool),
		UserRepository:       NewUserRepository(pool),
		TokenRepository:      NewTokenRepository(pool),
	}
}
