package model

import (
	"time"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Username string `gorm:"size:100;unique;not null" json:"username"`
	Email    string `gorm:"size:100;unique;not null" json:"email"`
	Password string `gorm:"size:100;not null" json:"-"`
	Role     UserRole `gorm:"size:20;default:'user'" json:"role"`

	// Running aggregates, bumped once per completed survey. Only ever
	// written through atomic increments (see UserRepository.ApplySurveyResult).
	SurveysTaken int `gorm:"default:0" json:"surveysTaken"`
	TotalScore   int `gorm:"default:0" json:"totalScore"`

	LastLogin time.Time `json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}

// AverageScore is derived, never stored.
func (u *User) AverageScore() float64 {
	if u.SurveysTaken == 0 {
		return 0
	}
	return float64(u.TotalScore) / float64(u.SurveysTaken)
}
