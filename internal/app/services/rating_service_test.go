package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanvir/noteshare/internal/app/models/dto"
	"github.com/tanvir/noteshare/internal/app/repositories"
	"github.com/tanvir/noteshare/internal/pkg/apperrors"
)

type fakeRatingStore struct {
	ratings map[int64]*repositories.RatingDetails
	nextID  int64
}

func newFakeRatingStore() *fakeRatingStore {
	return &fakeRatingStore{ratings: make(map[int64]*repositories.RatingDetails), nextID: 1}
}

func (f *fakeRatingStore) CreateRating(ctx context.Context, noteID, userID int64, stars int) (int64, error) {
	for _, r := range f.ratings {
		if r.NoteID == noteID && r.UserID == userID {
			return 0, apperrors.ErrAlreadyRated
		}
	}
	id := f.nextID
	f.nextID++
	f.ratings[id] = &repositories.RatingDetails{
		ID: id, NoteID: noteID, UserID: userID, Stars: stars,
		UserFirstName: "John", UserLastName: "Doe",
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	return id, nil
}

func (f *fakeRatingStore) GetRatingByID(ctx context.Context, id int64) (*repositories.RatingDetails, error) {
	rating, ok := f.ratings[id]
	if !ok {
		return nil, apperrors.ErrRatingNotFound
	}
	return rating, nil
}

func (f *fakeRatingStore) HasUserRated(ctx context.Context, noteID, userID int64) (bool, error) {
	for _, r := range f.ratings {
		if r.NoteID == noteID && r.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRatingStore) UpdateRating(ctx context.Context, id int64, stars int) error {
	rating, ok := f.ratings[id]
	if !ok {
		return apperrors.ErrRatingNotFound
	}
	rating.Stars = stars
	return nil
}

func (f *fakeRatingStore) DeleteRating(ctx context.Context, id int64) error {
	if _, ok := f.ratings[id]; !ok {
		return apperrors.ErrRatingNotFound
	}
	delete(f.ratings, id)
	return nil
}

func (f *fakeRatingStore) GetRatings(ctx context.Context, noteID *int64, page, size int) ([]*repositories.RatingDetails, dto.PaginationInfo, error) {
	var out []*repositories.RatingDetails
	for _, r := range f.ratings {
		if noteID == nil || r.NoteID == *noteID {
			out = append(out, r)
		}
	}
	return out, dto.PaginationInfo{CurrentPage: page, PageSize: size, TotalItems: int64(len(out)), TotalPages: 1}, nil
}

func TestCreateRatingOncePerNote(t *testing.T) {
	svc := NewRatingService(newFakeRatingStore(), &fakeNoteLookup{existingID: 5})
	actor := Actor{UserID: 7}

	rating, err := svc.CreateRating(context.Background(), &dto.CreateRatingRequest{NoteID: 5, Stars: 4}, actor)
	require.NoError(t, err)
	assert.Equal(t, 4, rating.Stars)
	assert.Equal(t, "John Doe", rating.UserName)

	_, err = svc.CreateRating(context.Background(), &dto.CreateRatingRequest{NoteID: 5, Stars: 5}, actor)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Contains(t, err.Error(), "already rated")
}

func TestCreateRatingMissingNote(t *testing.T) {
	svc := NewRatingService(newFakeRatingStore(), &fakeNoteLookup{existingID: 5})

	_, err := svc.CreateRating(context.Background(), &dto.CreateRatingRequest{NoteID: 404, Stars: 3}, Actor{UserID: 7})
	assert.ErrorIs(t, err, apperrors.ErrNoteNotFound)
}

func TestUpdateRatingOwnership(t *testing.T) {
	store := newFakeRatingStore()
	svc := NewRatingService(store, &fakeNoteLookup{existingID: 5})

	created, err := svc.CreateRating(context.Background(), &dto.CreateRatingRequest{NoteID: 5, Stars: 2}, Actor{UserID: 7})
	require.NoError(t, err)

	_, err = svc.UpdateRating(context.Background(), created.ID, &dto.UpdateRatingRequest{Stars: 5}, Actor{UserID: 99})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	updated, err := svc.UpdateRating(context.Background(), created.ID, &dto.UpdateRatingRequest{Stars: 5}, Actor{UserID: 7})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Stars)

	// Staff may edit anyone's rating
	updated, err = svc.UpdateRating(context.Background(), created.ID, &dto.UpdateRatingRequest{Stars: 1}, Actor{UserID: 99, IsStaff: true})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Stars)
}

func TestDeleteRatingOwnership(t *testing.T) {
	store := newFakeRatingStore()
	svc := NewRatingService(store, &fakeNoteLookup{existingID: 5})

	created, err := svc.CreateRating(context.Background(), &dto.CreateRatingRequest{NoteID: 5, Stars: 2}, Actor{UserID: 7})
	require.NoError(t, err)

	err = svc.DeleteRating(context.Background(), created.ID, Actor{UserID: 99})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	err = svc.DeleteRating(context.Background(), created.ID, Actor{UserID: 7})
	require.NoError(t, err)

	_, err = svc.GetRating(context.Background(), created.ID)
	assert.ErrorIs(t, err, apperrors.ErrRatingNotFound)
}

func TestGetRatingsFiltersByNote(t *testing.T) {
	store := newFakeRatingStore()
	svc := NewRatingService(store, &fakeNoteLookup{existingID: 5})

	_, err := svc.CreateRating(context.Background(), &dto.CreateRatingRequest{NoteID: 5, Stars: 4}, Actor{UserID: 1})
	require.NoError(t, err)
	_, err = svc.CreateRating(context.Background(), &dto.CreateRatingRequest{NoteID: 5, Stars: 2}, Actor{UserID: 2})
	require.NoError(t, err)

	noteID := int64(5)
	list, err := svc.GetRatings(context.Background(), &noteID, 1, 10)
	require.NoError(t, err)
	assert.Len(t, list.Ratings, 2)
	assert.Equal(t, int64(2), list.Pagination.TotalItems)

	other := int64(6)
	list, err = svc.GetRatings(context.Background(), &other, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, list.Ratings)
}
