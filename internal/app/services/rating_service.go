package services

import (
	"context"
	"time"

	"github.com/tanvir/noteshare/internal/app/models/dto"
	"github.com/tanvir/noteshare/internal/app/repositories"
	"github.com/tanvir/noteshare/internal/pkg/apperrors"
)

// RatingStore is the star-rating persistence surface.
type RatingStore interface {
	CreateRating(ctx context.Context, noteID, userID int64, stars int) (int64, error)
	GetRatingByID(ctx context.Context, id int64) (*repositories.RatingDetails, error)
	HasUserRated(ctx context.Context, noteID, userID int64) (bool, error)
	UpdateRating(ctx context.Context, id int64, stars int) error
	DeleteRating(ctx context.Context, id int64) error
	GetRatings(ctx context.Context, noteID *int64, page, size int) ([]*repositories.RatingDetails, dto.PaginationInfo, error)
}

// RatingService defines rating operations.
type RatingService interface {
	CreateRating(ctx context.Context, req *dto.CreateRatingRequest, actor Actor) (*dto.RatingResponse, error)
	GetRating(ctx context.Context, id int64) (*dto.RatingResponse, error)
	GetRatings(ctx context.Context, noteID *int64, page, size int) (*dto.RatingListResponse, error)
	UpdateRating(ctx context.Context, id int64, req *dto.UpdateRatingRequest, actor Actor) (*dto.RatingResponse, error)
	DeleteRating(ctx context.Context, id int64, actor Actor) error
}

type ratingServiceImpl struct {
	ratings RatingStore
	notes   NoteLookup
}

// NewRatingService creates a new RatingService.
func NewRatingService(ratings RatingStore, notes NoteLookup) RatingService {
	return &ratingServiceImpl{
		ratings: ratings,
		notes:   notes,
	}
}

func toRatingResponse(rating *repositories.RatingDetails) dto.RatingResponse {
	return dto.RatingResponse{
		ID:        rating.ID,
		NoteID:    rating.NoteID,
		UserID:    rating.UserID,
		UserName:  rating.UserFirstName + " " + rating.UserLastName,
		Stars:     rating.Stars,
		CreatedAt: rating.CreatedAt.Format(time.RFC3339),
		UpdatedAt: rating.UpdatedAt.Format(time.RFC3339),
	}
}

// CreateRating records the caller's rating of a note. A user may hold at most
// one rating per note; repeats are rejected with a hint to update instead.
func (s *ratingServiceImpl) CreateRating(ctx context.Context, req *dto.CreateRatingRequest, actor Actor) (*dto.RatingResponse, error) {
	if _, err := s.notes.GetNoteRow(ctx, req.NoteID); err != nil {
		return nil, err
	}

	rated, err := s.ratings.HasUserRated(ctx, req.NoteID, actor.UserID)
	if err != nil {
		return nil, err
	}
	if rated {
		return nil, apperrors.NewValidationError("You have already rated this note. You can update your existing rating instead.")
	}

	id, err := s.ratings.CreateRating(ctx, req.NoteID, actor.UserID, req.Stars)
	if err != nil {
		// The unique constraint can still fire between the check and the
		// insert; surface the same message either way.
		if err == apperrors.ErrAlreadyRated {
			return nil, apperrors.NewValidationError("You have already rated this note. You can update your existing rating instead.")
		}
		return nil, err
	}

	created, err := s.ratings.GetRatingByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := toRatingResponse(created)
	return &response, nil
}

// GetRating retrieves a single rating.
func (s *ratingServiceImpl) GetRating(ctx context.Context, id int64) (*dto.RatingResponse, error) {
	rating, err := s.ratings.GetRatingByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := toRatingResponse(rating)
	return &response, nil
}

// GetRatings lists ratings, optionally scoped to one note.
func (s *ratingServiceImpl) GetRatings(ctx context.Context, noteID *int64, page, size int) (*dto.RatingListResponse, error) {
	ratings, pagination, err := s.ratings.GetRatings(ctx, noteID, page, size)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.RatingResponse, 0, len(ratings))
	for _, rating := range ratings {
		responses = append(responses, toRatingResponse(rating))
	}

	return &dto.RatingListResponse{
		Ratings:    responses,
		Pagination: pagination,
	}, nil
}

// UpdateRating changes the stars of the caller's rating. Owner or staff only.
func (s *ratingServiceImpl) UpdateRating(ctx context.Context, id int64, req *dto.UpdateRatingRequest, actor Actor) (*dto.RatingResponse, error) {
	rating, err := s.ratings.GetRatingByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if rating.UserID != actor.UserID && !actor.IsStaff {
		return nil, apperrors.ErrPermissionDenied
	}

	if err := s.ratings.UpdateRating(ctx, id, req.Stars); err != nil {
		return nil, err
	}

	updated, err := s.ratings.GetRatingByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := toRatingResponse(updated)
	return &response, nil
}

// DeleteRating removes a rating. Owner or staff only.
func (s *ratingServiceImpl) DeleteRating(ctx context.Context, id int64, actor Actor) error {
	rating, err := s.ratings.GetRatingByID(ctx, id)
	if err != nil {
		return err
	}

	if rating.UserID != actor.UserID && !actor.IsStaff {
		return apperrors.ErrPermissionDenied
	}

	return s.ratings.DeleteRating(ctx, id)
}
