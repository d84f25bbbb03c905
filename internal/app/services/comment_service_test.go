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

type fakeCommentStore struct {
	comments map[int64]*repositories.CommentDetails
	nextID   int64
}

func newFakeCommentStore() *fakeCommentStore {
	return &fakeCommentStore{comments: make(map[int64]*repositories.CommentDetails), nextID: 1}
}

func (f *fakeCommentStore) CreateComment(ctx context.Context, noteID, userID int64, text string) (int64, error) {
	for _, c := range f.comments {
		if c.NoteID == noteID && c.UserID == userID {
			return 0, apperrors.ErrAlreadyCommented
		}
	}
	id := f.nextID
	f.nextID++
	f.comments[id] = &repositories.CommentDetails{
		ID: id, NoteID: noteID, UserID: userID, Text: text,
		UserFirstName: "Jane", UserLastName: "Roe",
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	return id, nil
}

func (f *fakeCommentStore) GetCommentByID(ctx context.Context, id int64) (*repositories.CommentDetails, error) {
	comment, ok := f.comments[id]
	if !ok {
		return nil, apperrors.ErrCommentNotFound
	}
	return comment, nil
}

func (f *fakeCommentStore) HasUserCommented(ctx context.Context, noteID, userID int64) (bool, error) {
	for _, c := range f.comments {
		if c.NoteID == noteID && c.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCommentStore) UpdateComment(ctx context.Context, id int64, text string) error {
	comment, ok := f.comments[id]
	if !ok {
		return apperrors.ErrCommentNotFound
	}
	comment.Text = text
	return nil
}

func (f *fakeCommentStore) DeleteComment(ctx context.Context, id int64) error {
	if _, ok := f.comments[id]; !ok {
		return apperrors.ErrCommentNotFound
	}
	delete(f.comments, id)
	return nil
}

func (f *fakeCommentStore) GetComments(ctx context.Context, noteID *int64, page, size int) ([]*repositories.CommentDetails, dto.PaginationInfo, error) {
	var out []*repositories.CommentDetails
	for _, c := range f.comments {
		if noteID == nil || c.NoteID == *noteID {
			out = append(out, c)
		}
	}
	return out, dto.PaginationInfo{CurrentPage: page, PageSize: size, TotalItems: int64(len(out)), TotalPages: 1}, nil
}

func TestCreateCommentOncePerNote(t *testing.T) {
	svc := NewCommentService(newFakeCommentStore(), &fakeNoteLookup{existingID: 5})
	actor := Actor{UserID: 7}

	comment, err := svc.CreateComment(context.Background(), &dto.CreateCommentRequest{NoteID: 5, Text: "Great notes!"}, actor)
	require.NoError(t, err)
	assert.Equal(t, "Great notes!", comment.Text)
	assert.Equal(t, "Jane Roe", comment.UserName)

	_, err = svc.CreateComment(context.Background(), &dto.CreateCommentRequest{NoteID: 5, Text: "Another one"}, actor)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Contains(t, err.Error(), "already commented")
}

func TestCreateCommentMissingNote(t *testing.T) {
	svc := NewCommentService(newFakeCommentStore(), &fakeNoteLookup{existingID: 5})

	_, err := svc.CreateComment(context.Background(), &dto.CreateCommentRequest{NoteID: 404, Text: "hello"}, Actor{UserID: 7})
	assert.ErrorIs(t, err, apperrors.ErrNoteNotFound)
}

func TestUpdateCommentOwnership(t *testing.T) {
	svc := NewCommentService(newFakeCommentStore(), &fakeNoteLookup{existingID: 5})

	created, err := svc.CreateComment(context.Background(), &dto.CreateCommentRequest{NoteID: 5, Text: "first"}, Actor{UserID: 7})
	require.NoError(t, err)

	_, err = svc.UpdateComment(context.Background(), created.ID, &dto.UpdateCommentRequest{Text: "hacked"}, Actor{UserID: 99})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	updated, err := svc.UpdateComment(context.Background(), created.ID, &dto.UpdateCommentRequest{Text: "edited"}, Actor{UserID: 7})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Text)
}

func TestDeleteCommentStaffOverride(t *testing.T) {
	svc := NewCommentService(newFakeCommentStore(), &fakeNoteLookup{existingID: 5})

	created, err := svc.CreateComment(context.Background(), &dto.CreateCommentRequest{NoteID: 5, Text: "spam"}, Actor{UserID: 7})
	require.NoError(t, err)

	err = svc.DeleteComment(context.Background(), created.ID, Actor{UserID: 99})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	err = svc.DeleteComment(context.Background(), created.ID, Actor{UserID: 99, IsStaff: true})
	require.NoError(t, err)

	_, err = svc.GetComment(context.Background(), created.ID)
	assert.ErrorIs(t, err, apperrors.ErrCommentNotFound)
}
