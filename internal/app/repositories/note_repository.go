package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tanvir/noteshare/internal/app/models"
	"github.com/tanvir/noteshare/internal/app/models/dto"
	"github.com/tanvir/noteshare/internal/pkg/apperrors"
	"github.com/tanvir/noteshare/internal/pkg/helpers"
	"github.com/tanvir/noteshare/internal/pkg/logger"
)

// NoteDetails includes a note row joined with its uploader and catalog names,
// plus the derived engagement columns (average rating, counts, viewer flags).
type NoteDetails struct {
	ID            int64     `db:"id" json:"id"`
	Title         string    `db:"title" json:"title"`
	Description   string    `db:"description" json:"description"`
	FilePath      string    `db:"file_path" json:"-"`
	Semester      string    `db:"semester" json:"semester"`
	DownloadCount int64     `db:"download_count" json:"downloadCount"`
	IsApproved    bool      `db:"is_approved" json:"isApproved"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`

	UploaderID        int64  `db:"uploader_id" json:"uploaderId"`
	UploaderFirstName string `db:"uploader_first_name" json:"uploaderFirstName"`
	UploaderLastName  string `db:"uploader_last_name" json:"uploaderLastName"`

	CategoryID     *int64  `db:"category_id" json:"categoryId"`
	CategoryName   *string `db:"category_name" json:"categoryName"`
	CourseID       *int64  `db:"course_id" json:"courseId"`
	CourseName     *string `db:"course_name" json:"courseName"`
	DepartmentID   *int64  `db:"department_id" json:"departmentId"`
	DepartmentName *string `db:"department_name" json:"departmentName"`
	FacultyID      *int64  `db:"faculty_id" json:"facultyId"`
	FacultyName    *string `db:"faculty_name" json:"facultyName"`

	Tags []string `db:"tags" json:"tags"`

	AverageRating        float64 `db:"average_rating" json:"averageRating"`
	LikesCount           int64   `db:"likes_count" json:"likesCount"`
	BookmarksCount       int64   `db:"bookmarks_count" json:"bookmarksCount"`
	IsLikedByViewer      bool    `db:"is_liked_by_viewer" json:"isLikedByViewer"`
	IsBookmarkedByViewer bool    `db:"is_bookmarked_by_viewer" json:"isBookmarkedByViewer"`
}

// NoteQueryParams holds filtering, search, ordering, pagination and viewer
// identity for the note listing query.
type NoteQueryParams struct {
	DepartmentID *int64
	CourseID     *int64
	FacultyID    *int64
	CategoryID   *int64
	UploaderID   *int64
	Semester     *string
	Tag          *string
	IsApproved   *bool
	Search       string

	OrderBy  string // createdAt | downloadCount | averageRating | title
	OrderDir string // asc | desc
	Page     int
	Size     int

	// ViewerID personalizes the liked/bookmarked flags; nil means anonymous
	// and both flags come back false.
	ViewerID *int64
	// ApprovedOnly hides unapproved notes; set for every non-staff viewer.
	ApprovedOnly bool
}

// NoteRepository handles database operations for notes.
type NoteRepository struct {
	DB *pgxpool.Pool
}

// NewNoteRepository creates a new instance of NoteRepository.
func NewNoteRepository(db *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{DB: db}
}

// selectNoteDetailsQuery builds the annotated select. Ratings, likes and
// bookmarks are left-joined and aggregated; the per-viewer flags are EXISTS
// subqueries so they stay correct under the GROUP BY.
func (r *NoteRepository) selectNoteDetailsQuery(viewerID *int64) squirrel.SelectBuilder {
	qb := squirrel.Select(
		"n.id", "n.title", "n.description", "n.file_path", "n.semester",
		"n.download_count", "n.is_approved", "n.created_at", "n.updated_at",
		"n.uploader_id", "u.first_name AS uploader_first_name", "u.last_name AS uploader_last_name",
		"n.category_id", "cat.name AS category_name",
		"n.course_id", "c.name AS course_name",
		"n.department_id", "d.name AS department_name",
		"n.faculty_id", "f.name AS faculty_name",
		"COALESCE(ARRAY_AGG(DISTINCT nt.tag) FILTER (WHERE nt.tag IS NOT NULL), '{}'::text[]) AS tags",
		"COALESCE(AVG(sr.stars), 0)::float8 AS average_rating",
		"COUNT(DISTINCT l.id) AS likes_count",
		"COUNT(DISTINCT b.id) AS bookmarks_count",
	).
		From("notes n").
		Join("users u ON n.uploader_id = u.id").
		LeftJoin("note_categories cat ON n.category_id = cat.id").
		LeftJoin("courses c ON n.course_id = c.id").
		LeftJoin("departments d ON n.department_id = d.id").
		LeftJoin("faculties f ON n.faculty_id = f.id").
		LeftJoin("note_tags nt ON nt.note_id = n.id").
		LeftJoin("star_ratings sr ON sr.note_id = n.id").
		LeftJoin("likes l ON l.note_id = n.id").
		LeftJoin("bookmarks b ON b.note_id = n.id").
		GroupBy("n.id", "u.id", "cat.id", "c.id", "d.id", "f.id").
		PlaceholderFormat(squirrel.Dollar)

	if viewerID != nil {
		qb = qb.
			Column(squirrel.Alias(squirrel.Expr("EXISTS(SELECT 1 FROM likes vl WHERE vl.note_id = n.id AND vl.user_id = ?)", *viewerID), "is_liked_by_viewer")).
			Column(squirrel.Alias(squirrel.Expr("EXISTS(SELECT 1 FROM bookmarks vb WHERE vb.note_id = n.id AND vb.user_id = ?)", *viewerID), "is_bookmarked_by_viewer"))
	} else {
		// Anonymous viewers never see personalized flags
		qb = qb.Column("FALSE AS is_liked_by_viewer").Column("FALSE AS is_bookmarked_by_viewer")
	}

	return qb
}

// ScanNoteDetails scans a row produced by selectNoteDetailsQuery.
func ScanNoteDetails(row pgx.Row) (*NoteDetails, error) {
	var note NoteDetails
	err := row.Scan(
		&note.ID, &note.Title, &note.Description, &note.FilePath, &note.Semester,
		&note.DownloadCount, &note.IsApproved, &note.CreatedAt, &note.UpdatedAt,
		&note.UploaderID, &note.UploaderFirstName, &note.UploaderLastName,
		&note.CategoryID, &note.CategoryName,
		&note.CourseID, &note.CourseName,
		&note.DepartmentID, &note.DepartmentName,
		&note.FacultyID, &note.FacultyName,
		&note.Tags,
		&note.AverageRating, &note.LikesCount, &note.BookmarksCount,
		&note.IsLikedByViewer, &note.IsBookmarkedByViewer,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNoteNotFound
		}
		logger.Error().Err(err).Msg("Error scanning note details")
		return nil, err
	}
	return &note, nil
}

// applyNoteFilters adds the WHERE clauses shared by the listing and count queries.
func applyNoteFilters(qb squirrel.SelectBuilder, params NoteQueryParams) squirrel.SelectBuilder {
	if params.ApprovedOnly {
		qb = qb.Where(squirrel.Eq{"n.is_approved": true})
	} else if params.IsApproved != nil {
		qb = qb.Where(squirrel.Eq{"n.is_approved": *params.IsApproved})
	}
	if params.DepartmentID != nil {
		qb = qb.Where(squirrel.Eq{"n.department_id": *params.DepartmentID})
	}
	if params.CourseID != nil {
		qb = qb.Where(squirrel.Eq{"n.course_id": *params.CourseID})
	}
	if params.FacultyID != nil {
		qb = qb.Where(squirrel.Eq{"n.faculty_id": *params.FacultyID})
	}
	if params.CategoryID != nil {
		qb = qb.Where(squirrel.Eq{"n.category_id": *params.CategoryID})
	}
	if params.UploaderID != nil {
		qb = qb.Where(squirrel.Eq{"n.uploader_id": *params.UploaderID})
	}
	if params.Semester != nil && *params.Semester != "" {
		qb = qb.Where(squirrel.Eq{"n.semester": *params.Semester})
	}
	if params.Tag != nil && *params.Tag != "" {
		qb = qb.Where(squirrel.Expr("EXISTS(SELECT 1 FROM note_tags ft WHERE ft.note_id = n.id AND ft.tag = ?)", *params.Tag))
	}
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		qb = qb.Where(squirrel.Expr(
			"(n.title ILIKE ? OR n.description ILIKE ? OR c.name ILIKE ? OR d.name ILIKE ? OR EXISTS(SELECT 1 FROM note_tags snt WHERE snt.note_id = n.id AND snt.tag ILIKE ?))",
			pattern, pattern, pattern, pattern, pattern,
		))
	}
	return qb
}

// noteOrderColumn maps API sort keys to SQL order expressions. average_rating
// refers to the aggregate output column.
var noteOrderColumn = map[string]string{
	"createdAt":     "n.created_at",
	"downloadCount": "n.download_count",
	"averageRating": "average_rating",
	"title":         "n.title",
}

// OrderExpression resolves the ORDER BY clause for a sort key and direction,
// falling back to newest-first for anything outside the whitelist.
func OrderExpression(orderBy, orderDir string) string {
	column, ok := noteOrderColumn[orderBy]
	if !ok {
		column = "n.created_at"
	}
	direction := "DESC"
	if strings.EqualFold(orderDir, "asc") {
		direction = "ASC"
	}
	return fmt.Sprintf("%s %s", column, direction)
}

// GetAllNotes retrieves a paginated, filtered and annotated list of notes.
func (r *NoteRepository) GetAllNotes(ctx context.Context, params NoteQueryParams) ([]*NoteDetails, dto.PaginationInfo, error) {
	countBuilder := squirrel.Select("COUNT(*)").From("notes n").
		LeftJoin("courses c ON n.course_id = c.id").
		LeftJoin("departments d ON n.department_id = d.id").
		PlaceholderFormat(squirrel.Dollar)
	countBuilder = applyNoteFilters(countBuilder, params)

	countSql, countArgs, err := countBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building note count SQL")
		return nil, dto.PaginationInfo{}, err
	}

	var totalItems int64
	if err := r.DB.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems); err != nil {
		logger.Error().Err(err).Msg("Error executing note count query")
		return nil, dto.PaginationInfo{}, err
	}

	pagination := helpers.NewPaginationInfo(totalItems, params.Page, params.Size)
	if totalItems == 0 {
		return []*NoteDetails{}, pagination, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(params.Page, params.Size)

	sqlBuilder := applyNoteFilters(r.selectNoteDetailsQuery(params.ViewerID), params).
		OrderBy(OrderExpression(params.OrderBy, params.OrderDir)).
		Limit(uint64(limit)).
		Offset(offset)

	sqlStr, args, err := sqlBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building note listing SQL")
		return nil, dto.PaginationInfo{}, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing note listing query")
		return nil, dto.PaginationInfo{}, err
	}
	defer rows.Close()

	notes := make([]*NoteDetails, 0)
	for rows.Next() {
		note, err := ScanNoteDetails(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning one note during listing")
			continue
		}
		notes = append(notes, note)
	}

	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error after iterating through note rows")
		return nil, pagination, fmt.Errorf("database iteration error: %w", err)
	}

	return notes, pagination, nil
}

// GetNoteByID retrieves a single annotated note. When approvedOnly is set an
// unapproved note is reported as not found, matching the listing visibility.
func (r *NoteRepository) GetNoteByID(ctx context.Context, id int64, viewerID *int64, approvedOnly bool) (*NoteDetails, error) {
	qb := r.selectNoteDetailsQuery(viewerID).Where(squirrel.Eq{"n.id": id})
	if approvedOnly {
		qb = qb.Where(squirrel.Eq{"n.is_approved": true})
	}

	sqlStr, args, err := qb.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get note by ID SQL")
		return nil, err
	}

	return ScanNoteDetails(r.DB.QueryRow(ctx, sqlStr, args...))
}

// GetNoteRow retrieves the bare note row without annotations, for ownership
// and existence checks.
func (r *NoteRepository) GetNoteRow(ctx context.Context, id int64) (*models.Note, error) {
	sqlStr, args, err := squirrel.Select(
		"id", "title", "description", "file_path", "uploader_id",
		"category_id", "course_id", "department_id", "faculty_id",
		"semester", "download_count", "is_approved", "created_at", "updated_at",
	).From("notes").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var note models.Note
	err = r.DB.QueryRow(ctx, sqlStr, args...).Scan(
		&note.ID, &note.Title, &note.Description, &note.FilePath, &note.UploaderID,
		&note.CategoryID, &note.CourseID, &note.DepartmentID, &note.FacultyID,
		&note.Semester, &note.DownloadCount, &note.IsApproved, &note.CreatedAt, &note.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNoteNotFound
		}
		logger.Error().Err(err).Msg("Error scanning note row")
		return nil, err
	}
	return &note, nil
}

// CreateNote inserts a note and its tags in one transaction.
func (r *NoteRepository) CreateNote(ctx context.Context, note *models.Note) (int64, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	sqlStr, args, err := squirrel.Insert("notes").
		Columns("title", "description", "file_path", "uploader_id",
			"category_id", "course_id", "department_id", "faculty_id",
			"semester", "is_approved").
		Values(note.Title, note.Description, note.FilePath, note.UploaderID,
			note.CategoryID, note.CourseID, note.DepartmentID, note.FacultyID,
			note.Semester, note.IsApproved).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create note SQL")
		return 0, err
	}

	var id int64
	if err := tx.QueryRow(ctx, sqlStr, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create note query")
		return 0, err
	}

	if err := replaceTags(ctx, tx, id, note.Tags); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return id, nil
}

// UpdateNote updates a note row and replaces its tags.
func (r *NoteRepository) UpdateNote(ctx context.Context, note *models.Note) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	sqlStr, args, err := squirrel.Update("notes").
		Set("title", note.Title).
		Set("description", note.Description).
		Set("category_id", note.CategoryID).
		Set("course_id", note.CourseID).
		Set("department_id", note.DepartmentID).
		Set("faculty_id", note.FacultyID).
		Set("semester", note.Semester).
		Set("is_approved", note.IsApproved).
		// updated_at is handled by trigger
		Where(squirrel.Eq{"id": note.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update note SQL")
		return err
	}

	cmdTag, err := tx.Exec(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing update note query")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNoteNotFound
	}

	if err := replaceTags(ctx, tx, note.ID, note.Tags); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// replaceTags rewrites the tag set of a note inside an open transaction.
func replaceTags(ctx context.Context, tx pgx.Tx, noteID int64, tags []string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM note_tags WHERE note_id = $1`, noteID); err != nil {
		logger.Error().Err(err).Msg("Error clearing note tags")
		return err
	}

	for _, tag := range tags {
		tag = strings.TrimSpace(strings.ToLower(tag))
		if tag == "" {
			continue
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO note_tags (note_id, tag) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			noteID, tag); err != nil {
			logger.Error().Err(err).Str("tag", tag).Msg("Error inserting note tag")
			return err
		}
	}

	return nil
}

// DeleteNote deletes a note by its ID. Engagement rows go with it via
// ON DELETE CASCADE.
func (r *NoteRepository) DeleteNote(ctx context.Context, id int64) error {
	sqlStr, args, err := squirrel.Delete("notes").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete note SQL")
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete note query")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNoteNotFound
	}

	return nil
}

// IncrementDownloadCount bumps the counter atomically in SQL so concurrent
// downloads never lose updates, and returns the new count with the file path.
func (r *NoteRepository) IncrementDownloadCount(ctx context.Context, id int64) (int64, string, error) {
	var count int64
	var filePath string
	err := r.DB.QueryRow(ctx,
		`UPDATE notes SET download_count = download_count + 1 WHERE id = $1 RETURNING download_count, file_path`,
		id).Scan(&count, &filePath)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, "", apperrors.ErrNoteNotFound
		}
		logger.Error().Err(err).Int64("noteId", id).Msg("Error incrementing download count")
		return 0, "", err
	}
	return count, filePath, nil
}
