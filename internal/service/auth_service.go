package service

import (
	"errors"
	"time"

	"survey_quiz_backend/internal/config"
	"survey_quiz_backend/internal/model"
	"survey_quiz_backend/internal/repository"
	"survey_quiz_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

// AuthResult is what register and login hand back to the client: identity,
// the two running aggregates, and a fresh token.
type AuthResult struct {
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	SurveysTaken int    `json:"surveysTaken"`
	TotalScore   int    `json:"totalScore"`
	Token        string `json:"token"`
}

func (s *AuthService) Register(username, email, password string) (*AuthResult, error) {
	_, err := s.UserRepo.FindByEmailOrUsername(email, username)
	if err == nil {
		return nil, util.ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:  username,
		Email:     email,
		Password:  string(hashedPassword),
		Role:      model.RoleUser,
		LastLogin: time.Now(),
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}

	return s.authResult(user)
}

func (s *AuthService) Login(email, password string) (*AuthResult, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return nil, util.ErrInvalidLogin
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, util.ErrInvalidLogin
	}

	_ = s.UserRepo.UpdateLastLogin(user.ID)

	return s.authResult(user)
}

func (s *AuthService) authResult(user *model.User) (*AuthResult, error) {
	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		SurveysTaken: user.SurveysTaken,
		TotalScore:   user.TotalScore,
		Token:        token,
	}, nil
}
