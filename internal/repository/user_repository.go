package repository

import (
	"time"

	"survey_quiz_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) FindByEmailOrUsername(email, username string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ? OR username = ?", email, username).First(&user).Error
	return &user, err
}

func (r *UserRepository) UpdateLastLogin(userID uint) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_login", time.Now()).
		Error
}

// ApplySurveyResult bumps both aggregates in a single update expression so
// concurrent completions never lose an increment. Callers run it inside the
// submission transaction.
func ApplySurveyResult(tx *gorm.DB, userID uint, score int) error {
	return tx.Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"surveys_taken": gorm.Expr("surveys_taken + ?", 1),
			"total_score":   gorm.Expr("total_score + ?", score),
		}).Error
}

// FindTopByTotalScore returns ranked users for the leaderboard. Only users
// who have completed at least one survey appear; username breaks score ties
// so the ordering is deterministic.
func (r *UserRepository) FindTopByTotalScore(limit int) ([]model.User, error) {
	var users []model.User
	err := r.DB.Where("surveys_taken > 0").
		Order("total_score DESC").
		Order("username ASC").
		Limit(limit).
		Find(&users).Error
	return users, err
}
