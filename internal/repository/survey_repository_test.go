package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"survey_quiz_backend/internal/model"
	"survey_quiz_backend/internal/util"
	"survey_quiz_backend/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedUserAndQuestion(t *testing.T, db *gorm.DB) (*model.User, *model.Question) {
	t.Helper()
	user := &model.User{
		Username:  "alice",
		Email:     "alice@example.com",
		Password:  "hashed",
		Role:      model.RoleUser,
		LastLogin: time.Now(),
	}
	require.NoError(t, db.Create(user).Error)

	question := &model.Question{
		Text: "q",
		Options: model.OptionList{
			{Text: "a", IsCorrect: true},
			{Text: "b"},
		},
		Category:   "Science",
		Difficulty: model.DifficultyEasy,
		Points:     10,
	}
	require.NoError(t, db.Create(question).Error)
	return user, question
}

func TestCreateWithQuestionsOrdersSlots(t *testing.T) {
	db := newTestDB(t)
	user, _ := seedUserAndQuestion(t, db)

	var questionIDs []uint
	for i := 0; i < 3; i++ {
		q := &model.Question{
			Text:       fmt.Sprintf("q%d", i),
			Options:    model.OptionList{{Text: "a", IsCorrect: true}, {Text: "b"}},
			Category:   "Science",
			Difficulty: model.DifficultyEasy,
			Points:     10,
		}
		require.NoError(t, db.Create(q).Error)
		questionIDs = append(questionIDs, q.ID)
	}

	repo := NewSurveyRepository(db)
	survey := &model.Survey{UserID: user.ID, TotalQuestions: 3}
	require.NoError(t, repo.CreateWithQuestions(survey, questionIDs))
	require.NotEmpty(t, survey.ID)

	loaded, err := repo.FindByID(survey.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Questions, 3)
	for i, slot := range loaded.Questions {
		assert.Equal(t, i, slot.Position)
		assert.Equal(t, questionIDs[i], slot.QuestionID)
		require.NotNil(t, slot.Question)
	}
}

func TestFinalizeSubmissionExactlyOnce(t *testing.T) {
	db := newTestDB(t)
	user, question := seedUserAndQuestion(t, db)

	repo := NewSurveyRepository(db)
	survey := &model.Survey{UserID: user.ID, TotalQuestions: 1}
	require.NoError(t, repo.CreateWithQuestions(survey, []uint{question.ID}))

	selected, correct, taken := 0, true, 7
	survey.Score = 10
	survey.CorrectAnswers = 1
	survey.TimeSpent = 7
	survey.Questions[0].SelectedOption = &selected
	survey.Questions[0].IsCorrect = &correct
	survey.Questions[0].TimeTaken = &taken

	require.NoError(t, repo.FinalizeSubmission(survey, survey.Questions))

	// The conditional update loses the second time around.
	err := repo.FinalizeSubmission(survey, survey.Questions)
	assert.ErrorIs(t, err, util.ErrSurveyCompleted)

	var fresh model.User
	require.NoError(t, db.First(&fresh, user.ID).Error)
	assert.Equal(t, 1, fresh.SurveysTaken)
	assert.Equal(t, 10, fresh.TotalScore)

	loaded, err := repo.FindByID(survey.ID)
	require.NoError(t, err)
	assert.True(t, loaded.Completed)
	assert.Equal(t, 10, loaded.Score)
	require.NotNil(t, loaded.Questions[0].SelectedOption)
	assert.Equal(t, 0, *loaded.Questions[0].SelectedOption)
}

func TestFindCompletedByUserSkipsPending(t *testing.T) {
	db := newTestDB(t)
	user, question := seedUserAndQuestion(t, db)
	repo := NewSurveyRepository(db)

	pending := &model.Survey{UserID: user.ID, TotalQuestions: 1}
	require.NoError(t, repo.CreateWithQuestions(pending, []uint{question.ID}))

	done := &model.Survey{UserID: user.ID, TotalQuestions: 1}
	require.NoError(t, repo.CreateWithQuestions(done, []uint{question.ID}))
	done.Score = 10
	done.CorrectAnswers = 1
	require.NoError(t, repo.FinalizeSubmission(done, nil))

	surveys, err := repo.FindCompletedByUser(user.ID)
	require.NoError(t, err)
	require.Len(t, surveys, 1)
	assert.Equal(t, done.ID, surveys[0].ID)
}
