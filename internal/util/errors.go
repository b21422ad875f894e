package util

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("user already exists with this email or username")
	ErrInvalidLogin    = errors.New("invalid email or password")
	ErrNoQuestions     = errors.New("no questions found for the selected category")
	ErrInvalidCount    = errors.New("invalid question count")
	ErrSurveyNotFound  = errors.New("survey not found")
	ErrNotSurveyOwner  = errors.New("not authorized to submit this survey")
	ErrSurveyCompleted = errors.New("survey already completed")
	ErrInvalidAnswer   = errors.New("selected option out of range")
)
