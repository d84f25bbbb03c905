package services

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanvir/noteshare/internal/app/models"
	"github.com/tanvir/noteshare/internal/app/models/dto"
	"github.com/tanvir/noteshare/internal/app/repositories"
	"github.com/tanvir/noteshare/internal/pkg/apperrors"
)

// fakeNoteStore is an in-memory NoteStore capturing the parameters it is
// called with.
type fakeNoteStore struct {
	lastParams repositories.NoteQueryParams
	details    *repositories.NoteDetails
	row        *models.Note

	createErr   error
	createdNote *models.Note
	updatedNote *models.Note
	deletedID   int64

	downloadCount int64
	downloadPath  string
	downloadErr   error
}

func (f *fakeNoteStore) GetAllNotes(ctx context.Context, params repositories.NoteQueryParams) ([]*repositories.NoteDetails, dto.PaginationInfo, error) {
	f.lastParams = params
	notes := []*repositories.NoteDetails{}
	if f.details != nil {
		notes = append(notes, f.details)
	}
	return notes, dto.PaginationInfo{CurrentPage: 1, TotalPages: 1, PageSize: 10, TotalItems: int64(len(notes))}, nil
}

func (f *fakeNoteStore) GetNoteByID(ctx context.Context, id int64, viewerID *int64, approvedOnly bool) (*repositories.NoteDetails, error) {
	if f.details == nil || f.details.ID != id {
		return nil, apperrors.ErrNoteNotFound
	}
	if approvedOnly && !f.details.IsApproved {
		return nil, apperrors.ErrNoteNotFound
	}
	return f.details, nil
}

func (f *fakeNoteStore) GetNoteRow(ctx context.Context, id int64) (*models.Note, error) {
	if f.row == nil || f.row.ID != id {
		return nil, apperrors.ErrNoteNotFound
	}
	return f.row, nil
}

func (f *fakeNoteStore) CreateNote(ctx context.Context, note *models.Note) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.createdNote = note
	return 42, nil
}

func (f *fakeNoteStore) UpdateNote(ctx context.Context, note *models.Note) error {
	f.updatedNote = note
	return nil
}

func (f *fakeNoteStore) DeleteNote(ctx context.Context, id int64) error {
	f.deletedID = id
	return nil
}

func (f *fakeNoteStore) IncrementDownloadCount(ctx context.Context, id int64) (int64, string, error) {
	if f.downloadErr != nil {
		return 0, "", f.downloadErr
	}
	f.downloadCount++
	return f.downloadCount, f.downloadPath, nil
}

// fakeStorage records saved and deleted files.
type fakeStorage struct {
	saved   []string
	deleted []string
	saveErr error
}

func (f *fakeStorage) SaveFile(fileHeader *multipart.FileHeader) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	name := "stored-file.pdf"
	f.saved = append(f.saved, name)
	return name, nil
}

func (f *fakeStorage) DeleteFile(filePath string) error {
	f.deleted = append(f.deleted, filePath)
	return nil
}

func (f *fakeStorage) FileURL(filePath string) string {
	if filePath == "" {
		return ""
	}
	return "http://files.test/uploads/" + filePath
}

func sampleDetails(id int64, approved bool) *repositories.NoteDetails {
	return &repositories.NoteDetails{
		ID:                id,
		Title:             "OS Week 5",
		Description:       "Scheduling algorithms",
		FilePath:          "abc.pdf",
		UploaderID:        7,
		UploaderFirstName: "John",
		UploaderLastName:  "Doe",
		Semester:          "Fall 2025",
		IsApproved:        approved,
		AverageRating:     4.5,
		LikesCount:        3,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}
}

func TestGetAllNotesAnonymousSeesOnlyApproved(t *testing.T) {
	store := &fakeNoteStore{details: sampleDetails(1, true)}
	svc := NewNoteService(store, &fakeStorage{})

	result, err := svc.GetAllNotes(context.Background(), &dto.NoteFilterRequest{}, Viewer{})
	require.NoError(t, err)

	assert.True(t, store.lastParams.ApprovedOnly)
	assert.Nil(t, store.lastParams.ViewerID)
	require.Len(t, result.Notes, 1)
	assert.False(t, result.Notes[0].IsLikedByMe)
	assert.Equal(t, "John Doe", result.Notes[0].UploaderName)
	assert.Equal(t, "http://files.test/uploads/abc.pdf", result.Notes[0].FileURL)
}

func TestGetAllNotesStaffCanFilterApproval(t *testing.T) {
	store := &fakeNoteStore{details: sampleDetails(1, false)}
	svc := NewNoteService(store, &fakeStorage{})

	pending := false
	staffID := int64(99)
	_, err := svc.GetAllNotes(context.Background(),
		&dto.NoteFilterRequest{IsApproved: &pending},
		Viewer{UserID: &staffID, IsStaff: true})
	require.NoError(t, err)

	assert.False(t, store.lastParams.ApprovedOnly)
	require.NotNil(t, store.lastParams.IsApproved)
	assert.False(t, *store.lastParams.IsApproved)
}

func TestGetNoteByIDHidesPendingFromNonStaff(t *testing.T) {
	store := &fakeNoteStore{details: sampleDetails(5, false)}
	svc := NewNoteService(store, &fakeStorage{})

	_, err := svc.GetNoteByID(context.Background(), 5, Viewer{})
	assert.ErrorIs(t, err, apperrors.ErrNoteNotFound)

	staffID := int64(1)
	note, err := svc.GetNoteByID(context.Background(), 5, Viewer{UserID: &staffID, IsStaff: true})
	require.NoError(t, err)
	assert.False(t, note.IsApproved)
}

func TestGetMyNotesAlwaysScopedToCaller(t *testing.T) {
	store := &fakeNoteStore{details: sampleDetails(1, false)}
	svc := NewNoteService(store, &fakeStorage{})

	otherUploader := int64(1234)
	_, err := svc.GetMyNotes(context.Background(),
		&dto.NoteFilterRequest{UploaderID: &otherUploader},
		Actor{UserID: 7})
	require.NoError(t, err)

	require.NotNil(t, store.lastParams.UploaderID)
	assert.Equal(t, int64(7), *store.lastParams.UploaderID)
	assert.False(t, store.lastParams.ApprovedOnly)
	assert.Nil(t, store.lastParams.IsApproved)
}

func TestCreateNoteStartsUnapproved(t *testing.T) {
	store := &fakeNoteStore{}
	storage := &fakeStorage{}
	svc := NewNoteService(store, storage)

	store.details = sampleDetails(42, false)

	req := &dto.CreateNoteRequest{
		Title:       "Linear Algebra Summary",
		Description: "Eigenvalues and eigenvectors with examples",
		Semester:    "Spring 2026",
		Tags:        []string{"math", "linear-algebra"},
	}
	response, err := svc.CreateNote(context.Background(), req, &multipart.FileHeader{Filename: "notes.pdf"}, Actor{UserID: 7})
	require.NoError(t, err)

	require.NotNil(t, store.createdNote)
	assert.False(t, store.createdNote.IsApproved)
	assert.Equal(t, int64(7), store.createdNote.UploaderID)
	assert.Equal(t, "stored-file.pdf", store.createdNote.FilePath)
	assert.Equal(t, "Note submitted, wait for admin approval.", response.Message)
}

func TestCreateNoteCleansUpFileOnInsertFailure(t *testing.T) {
	store := &fakeNoteStore{createErr: errors.New("insert failed")}
	storage := &fakeStorage{}
	svc := NewNoteService(store, storage)

	req := &dto.CreateNoteRequest{
		Title:       "Broken upload",
		Description: "This insert is going to fail",
		Semester:    "Fall 2025",
	}
	_, err := svc.CreateNote(context.Background(), req, &multipart.FileHeader{Filename: "x.pdf"}, Actor{UserID: 7})
	require.Error(t, err)
	assert.Equal(t, []string{"stored-file.pdf"}, storage.deleted)
}

func TestUpdateNoteRejectsNonStaffUploader(t *testing.T) {
	store := &fakeNoteStore{row: &models.Note{ID: 5, UploaderID: 7, FilePath: "abc.pdf"}}
	svc := NewNoteService(store, &fakeStorage{})

	req := &dto.UpdateNoteRequest{Title: "New title", Description: "New description here", Semester: "Fall 2025"}
	_, err := svc.UpdateNote(context.Background(), 5, req, Actor{UserID: 7})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Contains(t, err.Error(), "delete it and upload a new one")

	// A stranger gets a plain permission error
	_, err = svc.UpdateNote(context.Background(), 5, req, Actor{UserID: 99})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	assert.Nil(t, store.updatedNote)
}

func TestUpdateNoteStaffCanApprove(t *testing.T) {
	store := &fakeNoteStore{
		row:     &models.Note{ID: 5, UploaderID: 7, FilePath: "abc.pdf"},
		details: sampleDetails(5, true),
	}
	svc := NewNoteService(store, &fakeStorage{})

	approved := true
	req := &dto.UpdateNoteRequest{
		Title:       "Reviewed title",
		Description: "Reviewed description text",
		Semester:    "Fall 2025",
		IsApproved:  &approved,
	}
	_, err := svc.UpdateNote(context.Background(), 5, req, Actor{UserID: 99, IsStaff: true})
	require.NoError(t, err)

	require.NotNil(t, store.updatedNote)
	assert.True(t, store.updatedNote.IsApproved)
	assert.Equal(t, "Reviewed title", store.updatedNote.Title)
}

func TestDeleteNoteOwnerAndStaffOnly(t *testing.T) {
	store := &fakeNoteStore{row: &models.Note{ID: 5, UploaderID: 7, FilePath: "abc.pdf"}}
	storage := &fakeStorage{}
	svc := NewNoteService(store, storage)

	err := svc.DeleteNote(context.Background(), 5, Actor{UserID: 99})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	err = svc.DeleteNote(context.Background(), 5, Actor{UserID: 7})
	require.NoError(t, err)
	assert.Equal(t, int64(5), store.deletedID)
	assert.Equal(t, []string{"abc.pdf"}, storage.deleted)
}

func TestDownloadIncrementsCounter(t *testing.T) {
	store := &fakeNoteStore{downloadCount: 10, downloadPath: "abc.pdf"}
	svc := NewNoteService(store, &fakeStorage{})

	response, err := svc.Download(context.Background(), 5, Actor{UserID: 7})
	require.NoError(t, err)
	assert.Equal(t, int64(11), response.DownloadCount)
	assert.Equal(t, "http://files.test/uploads/abc.pdf", response.FileURL)

	response, err = svc.Download(context.Background(), 5, Actor{UserID: 7})
	require.NoError(t, err)
	assert.Equal(t, int64(12), response.DownloadCount)
}

func TestDownloadMissingNote(t *testing.T) {
	store := &fakeNoteStore{downloadErr: apperrors.ErrNoteNotFound}
	svc := NewNoteService(store, &fakeStorage{})

	_, err := svc.Download(context.Background(), 404, Actor{UserID: 7})
	assert.ErrorIs(t, err, apperrors.ErrNoteNotFound)
}
