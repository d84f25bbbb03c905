package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderExpressionWhitelist(t *testing.T) {
	tests := []struct {
		orderBy  string
		orderDir string
		want     string
	}{
		{"createdAt", "desc", "n.created_at DESC"},
		{"createdAt", "asc", "n.created_at ASC"},
		{"downloadCount", "desc", "n.download_count DESC"},
		{"averageRating", "asc", "average_rating ASC"},
		{"title", "ASC", "n.title ASC"},
		// Unknown keys and directions fall back to newest-first
		{"", "", "n.created_at DESC"},
		{"uploader_id; DROP TABLE notes", "asc", "n.created_at ASC"},
		{"createdAt", "sideways", "n.created_at DESC"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, OrderExpression(tt.orderBy, tt.orderDir), "orderBy=%q orderDir=%q", tt.orderBy, tt.orderDir)
	}
}

func TestApplyNoteFiltersApprovedOnlyWins(t *testing.T) {
	// ApprovedOnly must override any explicit isApproved filter a non-staff
	// caller smuggles in.
	explicit := false
	params := NoteQueryParams{ApprovedOnly: true, IsApproved: &explicit}

	repo := &NoteRepository{}
	qb := applyNoteFilters(repo.selectNoteDetailsQuery(nil), params)
	sqlStr, args, err := qb.ToSql()
	assert.NoError(t, err)
	assert.Contains(t, sqlStr, "n.is_approved")
	assert.Contains(t, args, true)
	assert.NotContains(t, args, false)
}

func TestApplyNoteFiltersSearch(t *testing.T) {
	params := NoteQueryParams{Search: "scheduling"}

	repo := &NoteRepository{}
	qb := applyNoteFilters(repo.selectNoteDetailsQuery(nil), params)
	sqlStr, args, err := qb.ToSql()
	assert.NoError(t, err)

	// Free text matches title, description, course name, department name
	// and tags in one clause.
	assert.Contains(t, sqlStr, "n.title ILIKE")
	assert.Contains(t, sqlStr, "n.description ILIKE")
	assert.Contains(t, sqlStr, "c.name ILIKE")
	assert.Contains(t, sqlStr, "d.name ILIKE")
	assert.Contains(t, sqlStr, "snt.tag ILIKE")

	patterns := 0
	for _, arg := range args {
		if arg == "%scheduling%" {
			patterns++
		}
	}
	assert.Equal(t, 5, patterns, "search pattern must bind once per ILIKE target")
}

func TestApplyNoteFiltersTag(t *testing.T) {
	tag := "algorithms"
	params := NoteQueryParams{Tag: &tag}

	repo := &NoteRepository{}
	qb := applyNoteFilters(repo.selectNoteDetailsQuery(nil), params)
	sqlStr, args, err := qb.ToSql()
	assert.NoError(t, err)
	assert.Contains(t, sqlStr, "EXISTS(SELECT 1 FROM note_tags ft WHERE ft.note_id = n.id AND ft.tag =")
	assert.Contains(t, args, "algorithms")

	// An empty tag adds no clause
	empty := ""
	qb = applyNoteFilters(repo.selectNoteDetailsQuery(nil), NoteQueryParams{Tag: &empty})
	sqlStr, _, err = qb.ToSql()
	assert.NoError(t, err)
	assert.NotContains(t, sqlStr, "note_tags ft")
}

func TestSelectNoteDetailsViewerColumns(t *testing.T) {
	repo := &NoteRepository{}

	// Anonymous queries must not reference the viewer in the flag columns.
	sqlStr, _, err := repo.selectNoteDetailsQuery(nil).ToSql()
	assert.NoError(t, err)
	assert.Contains(t, sqlStr, "FALSE AS is_liked_by_viewer")
	assert.Contains(t, sqlStr, "FALSE AS is_bookmarked_by_viewer")

	viewerID := int64(7)
	sqlStr, args, err := repo.selectNoteDetailsQuery(&viewerID).ToSql()
	assert.NoError(t, err)
	assert.Contains(t, sqlStr, "EXISTS(SELECT 1 FROM likes")
	assert.Contains(t, sqlStr, "EXISTS(SELECT 1 FROM bookmarks")
	assert.Contains(t, args, viewerID)
}
