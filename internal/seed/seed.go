package seed

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tanvir/noteshare/internal/pkg/auth"
	"github.com/tanvir/noteshare/internal/pkg/logger"
)

// CreateDefaultData seeds the catalog tables and the initial admin account.
// All inserts are idempotent; reruns are no-ops.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool) error {
	logger.Info().Msg("Checking/Creating default data...")

	faculties := []string{
		"Engineering Faculty",
		"Science Faculty",
		"Business Faculty",
	}
	for _, name := range faculties {
		if _, err := dbPool.Exec(ctx,
			`INSERT INTO faculties (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name); err != nil {
			logger.Error().Err(err).Str("faculty", name).Msg("Error seeding faculty")
			return err
		}
	}

	departments := []struct {
		name    string
		faculty string
	}{
		{"Computer Science", "Engineering Faculty"},
		{"Electrical Engineering", "Engineering Faculty"},
		{"Mathematics", "Science Faculty"},
		{"Physics", "Science Faculty"},
	}
	for _, d := range departments {
		if _, err := dbPool.Exec(ctx,
			`INSERT INTO departments (name, faculty_id)
			 SELECT $1, id FROM faculties WHERE name = $2
			 ON CONFLICT (name) DO NOTHING`, d.name, d.faculty); err != nil {
			logger.Error().Err(err).Str("department", d.name).Msg("Error seeding department")
			return err
		}
	}

	categories := []struct {
		name        string
		description string
	}{
		{"Lecture Notes", "Notes taken during lectures"},
		{"Lab Reports", "Laboratory exercise reports and write-ups"},
		{"Exam Prep", "Summaries and solved problems for exam preparation"},
		{"Assignments", "Solved assignments and homework sets"},
	}
	for _, c := range categories {
		if _, err := dbPool.Exec(ctx,
			`INSERT INTO note_categories (name, description) VALUES ($1, $2)
			 ON CONFLICT (name) DO NOTHING`, c.name, c.description); err != nil {
			logger.Error().Err(err).Str("category", c.name).Msg("Error seeding category")
			return err
		}
	}

	// Default admin: password must be changed after first login.
	passwordHash, err := auth.HashPassword("admin12345")
	if err != nil {
		return err
	}
	if _, err := dbPool.Exec(ctx,
		`INSERT INTO users (email, password_hash, first_name, last_name, is_staff)
		 VALUES ($1, $2, $3, $4, TRUE)
		 ON CONFLICT (email) DO NOTHING`,
		"admin@noteshare.local", passwordHash, "Site", "Admin"); err != nil {
		logger.Error().Err(err).Msg("Error seeding admin user")
		return err
	}

	logger.Info().Msg("Default data ready.")
	return nil
}
