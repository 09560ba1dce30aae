package models

import "time"

// Grade is the closed set of account roles.
type Grade string

const (
	GradeUser  Grade = "user"
	GradeAdmin Grade = "admin"
)

// ValidGrade reports whether g is one of the known roles.
func ValidGrade(g Grade) bool {
	return g == GradeUser || g == GradeAdmin
}

// User is an account record. Exactly one of {Email+PasswordHash, ClientID}
// identifies how the account authenticates; the unused fields stay empty.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	ClientID     string
	Name         string
	Grade        Grade
	CreatedAt    time.Time
}
