package services

import (
	"context"

	"github.com/tanvir/noteshare/internal/app/models"
	"github.com/tanvir/noteshare/internal/app/models/dto"
	"github.com/tanvir/noteshare/internal/pkg/logger"
)

// EngagementStore is the likes/bookmarks persistence surface.
type EngagementStore interface {
	ToggleLike(ctx context.Context, noteID, userID int64) (bool, int64, error)
	ToggleBookmark(ctx context.Context, noteID, userID int64) (bool, int64, error)
}

// NoteLookup resolves a note row for existence checks.
type NoteLookup interface {
	GetNoteRow(ctx context.Context, id int64) (*models.Note, error)
}

// EngagementService defines like and bookmark toggling.
type EngagementService interface {
	ToggleLike(ctx context.Context, noteID int64, actor Actor) (*dto.ToggleLikeResponse, error)
	ToggleBookmark(ctx context.Context, noteID int64, actor Actor) (*dto.ToggleBookmarkResponse, error)
}

type engagementServiceImpl struct {
	engagements EngagementStore
	notes       NoteLookup
}

// NewEngagementService creates a new EngagementService.
func NewEngagementService(engagements EngagementStore, notes NoteLookup) EngagementService {
	return &engagementServiceImpl{
		engagements: engagements,
		notes:       notes,
	}
}

// ToggleLike flips the caller's like on a note. Calling it twice restores the
// original state.
func (s *engagementServiceImpl) ToggleLike(ctx context.Context, noteID int64, actor Actor) (*dto.ToggleLikeResponse, error) {
	if _, err := s.notes.GetNoteRow(ctx, noteID); err != nil {
		return nil, err
	}

	liked, count, err := s.engagements.ToggleLike(ctx, noteID, actor.UserID)
	if err != nil {
		return nil, err
	}

	logger.Debug().Int64("noteId", noteID).Int64("userId", actor.UserID).Bool("liked", liked).Msg("Like toggled")

	message := "Note unliked successfully."
	if liked {
		message = "Note liked successfully."
	}

	return &dto.ToggleLikeResponse{
		Message:    message,
		Liked:      liked,
		LikesCount: count,
	}, nil
}

// ToggleBookmark flips the caller's bookmark on a note.
func (s *engagementServiceImpl) ToggleBookmark(ctx context.Context, noteID int64, actor Actor) (*dto.ToggleBookmarkResponse, error) {
	if _, err := s.notes.GetNoteRow(ctx, noteID); err != nil {
		return nil, err
	}

	bookmarked, count, err := s.engagements.ToggleBookmark(ctx, noteID, actor.UserID)
	if err != nil {
		return nil, err
	}

	logger.Debug().Int64("noteId", noteID).Int64("userId", actor.UserID).Bool("bookmarked", bookmarked).Msg("Bookmark toggled")

	message := "Note removed from bookmarks."
	if bookmarked {
		message = "Note bookmarked successfully."
	}

	return &dto.ToggleBookmarkResponse{
		Message:        message,
		Bookmarked:     bookmarked,
		BookmarksCount: count,
	}, nil
}
