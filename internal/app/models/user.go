package models

import "time"

// User represents an account that can upload and engage with notes.
// Staff users moderate notes (approval, editing).
type User struct {
	ID           int64     `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FirstName    string    `db:"first_name" json:"firstName"`
	LastName     string    `db:"last_name" json:"lastName"`
	StudentID    *string   `db:"student_id" json:"studentId,omitempty"`
	IsStaff      bool      `db:"is_staff" json:"isStaff"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// FullName returns the display name used in API responses.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
