package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"survey_quiz_backend/internal/config"
	"survey_quiz_backend/internal/model"
	"survey_quiz_backend/internal/repository"
	"survey_quiz_backend/pkg/database"
	"survey_quiz_backend/pkg/logger"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testEnv struct {
	db        *gorm.DB
	cfg       *config.Config
	auth      *AuthService
	users     *UserService
	questions *QuestionService
	surveys   *SurveyService

	userRepo     *repository.UserRepository
	questionRepo *repository.QuestionRepository
	surveyRepo   *repository.SurveyRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger.Log = zap.NewNop()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:     "test-secret",
			ExpireTime: time.Hour,
		},
		Survey: config.SurveyConfig{
			DefaultQuestionCount: 5,
			MaxQuestionCount:     50,
			LeaderboardLimit:     10,
		},
	}

	userRepo := repository.NewUserRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	surveyRepo := repository.NewSurveyRepository(db)

	return &testEnv{
		db:           db,
		cfg:          cfg,
		auth:         NewAuthService(userRepo, cfg),
		users:        NewUserService(userRepo, nil, cfg),
		questions:    NewQuestionService(questionRepo),
		surveys:      NewSurveyService(surveyRepo, questionRepo, cfg),
		userRepo:     userRepo,
		questionRepo: questionRepo,
		surveyRepo:   surveyRepo,
	}
}

func (e *testEnv) mustCreateUser(t *testing.T, username string) *model.User {
	t.Helper()
	user := &model.User{
		Username:  username,
		Email:     username + "@example.com",
		Password:  "hashed",
		Role:      model.RoleUser,
		LastLogin: time.Now(),
	}
	require.NoError(t, e.userRepo.Create(user))
	return user
}

// mustCreateQuestion stores a four-option question whose correct option sits
// at the given index.
func (e *testEnv) mustCreateQuestion(t *testing.T, text, category string, correctIdx, points int) *model.Question {
	t.Helper()
	options := make(model.OptionList, 4)
	for i := range options {
		options[i] = model.Option{
			Text:      fmt.Sprintf("option %d", i),
			IsCorrect: i == correctIdx,
		}
	}
	q := &model.Question{
		Text:        text,
		Options:     options,
		Category:    category,
		Difficulty:  model.DifficultyEasy,
		Points:      points,
		Explanation: "because",
	}
	require.NoError(t, e.questionRepo.Create(q))
	return q
}

func intPtr(v int) *int { return &v }
