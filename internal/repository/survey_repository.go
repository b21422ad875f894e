package repository

import (
	"survey_quiz_backend/internal/model"
	"survey_quiz_backend/internal/util"

	"gorm.io/gorm"
)

type SurveyRepository struct {
	DB *gorm.DB
}

func NewSurveyRepository(db *gorm.DB) *SurveyRepository {
	return &SurveyRepository{DB: db}
}

// CreateWithQuestions persists a pending survey together with its ordered
// question slots in one transaction.
func (r *SurveyRepository) CreateWithQuestions(survey *model.Survey, questionIDs []uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(survey).Error; err != nil {
			return err
		}
		for i, qid := range questionIDs {
			slot := model.SurveyQuestion{
				SurveyID:   survey.ID,
				QuestionID: qid,
				Position:   i,
			}
			if err := tx.Create(&slot).Error; err != nil {
				return err
			}
			survey.Questions = append(survey.Questions, slot)
		}
		return nil
	})
}

// FindByID loads a survey with its slots in presentation order and the full
// question rows (correctness flags included — callers decide what to reveal).
func (r *SurveyRepository) FindByID(id string) (*model.Survey, error) {
	var survey model.Survey
	err := r.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		Preload("Questions.Question").
		First(&survey, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &survey, nil
}

// FindCompletedByUser returns the user's completed surveys, newest first.
// Pending surveys never show up in history.
func (r *SurveyRepository) FindCompletedByUser(userID uint) ([]model.Survey, error) {
	var surveys []model.Survey
	err := r.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		Preload("Questions.Question").
		Where("user_id = ? AND completed = ?", userID, true).
		Order("created_at desc").
		Find(&surveys).Error
	return surveys, err
}

// FinalizeSubmission writes the grading outcome: aggregates plus the
// completed flag on the survey, the per-slot grading fields, and the owner's
// running counters — all in one transaction. The survey update is
// conditional on completed still being false; if another submission won the
// race, nothing is written and ErrSurveyCompleted is returned.
func (r *SurveyRepository) FinalizeSubmission(survey *model.Survey, gradedSlots []model.SurveyQuestion) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Survey{}).
			Where("id = ? AND completed = ?", survey.ID, false).
			Updates(map[string]interface{}{
				"score":           survey.Score,
				"correct_answers": survey.CorrectAnswers,
				"time_spent":      survey.TimeSpent,
				"completed":       true,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrSurveyCompleted
		}

		for i := range gradedSlots {
			slot := &gradedSlots[i]
			if slot.SelectedOption == nil {
				continue // unanswered slot stays ungraded
			}
			err := tx.Model(&model.SurveyQuestion{}).
				Where("id = ?", slot.ID).
				Updates(map[string]interface{}{
					"selected_option": *slot.SelectedOption,
					"is_correct":      *slot.IsCorrect,
					"time_taken":      *slot.TimeTaken,
				}).Error
			if err != nil {
				return err
			}
		}

		return ApplySurveyResult(tx, survey.UserID, survey.Score)
	})
}
