package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanvir/noteshare/internal/app/models"
	"github.com/tanvir/noteshare/internal/pkg/apperrors"
)

// fakeEngagementStore flips per-user state in memory, mirroring the delete
// or insert behavior of the real toggle.
type fakeEngagementStore struct {
	likes     map[int64]bool
	bookmarks map[int64]bool
}

func newFakeEngagementStore() *fakeEngagementStore {
	return &fakeEngagementStore{
		likes:     make(map[int64]bool),
		bookmarks: make(map[int64]bool),
	}
}

func toggleState(state map[int64]bool, userID int64) (bool, int64) {
	state[userID] = !state[userID]
	var count int64
	for _, on := range state {
		if on {
			count++
		}
	}
	return state[userID], count
}

func (f *fakeEngagementStore) ToggleLike(ctx context.Context, noteID, userID int64) (bool, int64, error) {
	on, count := toggleState(f.likes, userID)
	return on, count, nil
}

func (f *fakeEngagementStore) ToggleBookmark(ctx context.Context, noteID, userID int64) (bool, int64, error) {
	on, count := toggleState(f.bookmarks, userID)
	return on, count, nil
}

type fakeNoteLookup struct {
	existingID int64
}

func (f *fakeNoteLookup) GetNoteRow(ctx context.Context, id int64) (*models.Note, error) {
	if id != f.existingID {
		return nil, apperrors.ErrNoteNotFound
	}
	return &models.Note{ID: id}, nil
}

func TestToggleLikeTwiceRestoresState(t *testing.T) {
	svc := NewEngagementService(newFakeEngagementStore(), &fakeNoteLookup{existingID: 5})
	actor := Actor{UserID: 7}

	first, err := svc.ToggleLike(context.Background(), 5, actor)
	require.NoError(t, err)
	assert.True(t, first.Liked)
	assert.Equal(t, int64(1), first.LikesCount)
	assert.Equal(t, "Note liked successfully.", first.Message)

	second, err := svc.ToggleLike(context.Background(), 5, actor)
	require.NoError(t, err)
	assert.False(t, second.Liked)
	assert.Equal(t, int64(0), second.LikesCount)
	assert.Equal(t, "Note unliked successfully.", second.Message)
}

func TestToggleBookmarkMessages(t *testing.T) {
	svc := NewEngagementService(newFakeEngagementStore(), &fakeNoteLookup{existingID: 5})
	actor := Actor{UserID: 7}

	on, err := svc.ToggleBookmark(context.Background(), 5, actor)
	require.NoError(t, err)
	assert.True(t, on.Bookmarked)
	assert.Equal(t, "Note bookmarked successfully.", on.Message)

	off, err := svc.ToggleBookmark(context.Background(), 5, actor)
	require.NoError(t, err)
	assert.False(t, off.Bookmarked)
	assert.Equal(t, "Note removed from bookmarks.", off.Message)
}

func TestToggleCountsAreIndependentPerUser(t *testing.T) {
	svc := NewEngagementService(newFakeEngagementStore(), &fakeNoteLookup{existingID: 5})

	_, err := svc.ToggleLike(context.Background(), 5, Actor{UserID: 1})
	require.NoError(t, err)
	second, err := svc.ToggleLike(context.Background(), 5, Actor{UserID: 2})
	require.NoError(t, err)

	assert.True(t, second.Liked)
	assert.Equal(t, int64(2), second.LikesCount)
}

func TestToggleMissingNote(t *testing.T) {
	svc := NewEngagementService(newFakeEngagementStore(), &fakeNoteLookup{existingID: 5})

	_, err := svc.ToggleLike(context.Background(), 404, Actor{UserID: 7})
	assert.ErrorIs(t, err, apperrors.ErrNoteNotFound)

	_, err = svc.ToggleBookmark(context.Background(), 404, Actor{UserID: 7})
	assert.ErrorIs(t, err, apperrors.ErrNoteNotFound)
}
