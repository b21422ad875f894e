package service

import (
	"errors"
	"fmt"
	"time"

	"survey_quiz_backend/internal/config"
	"survey_quiz_backend/internal/model"
	"survey_quiz_backend/internal/repository"
	"survey_quiz_backend/internal/util"
	"survey_quiz_backend/pkg/logger"
	"survey_quiz_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SurveyService owns the survey lifecycle: sampling questions into a
// pending survey, grading a single answer batch, and flipping completed
// exactly once.
type SurveyService struct {
	SurveyRepo   *repository.SurveyRepository
	QuestionRepo *repository.QuestionRepository
	Cfg          *config.Config
}

func NewSurveyService(surveyRepo *repository.SurveyRepository, questionRepo *repository.QuestionRepository, cfg *config.Config) *SurveyService {
	return &SurveyService{
		SurveyRepo:   surveyRepo,
		QuestionRepo: questionRepo,
		Cfg:          cfg,
	}
}

type StartSurveyReq struct {
	Category      string `json:"category"`
	QuestionCount int    `json:"questionCount"`
}

type StartSurveyResult struct {
	SurveyID  string            `json:"surveyId"`
	Questions []QuestionForUser `json:"questions"`
}

// StartSurvey samples up to QuestionCount random questions for the user and
// persists a pending survey over them. The caller gets the redacted
// question projection; correctness flags stay server-side until grading.
// A sample smaller than requested is not an error — TotalQuestions records
// the actual size.
func (s *SurveyService) StartSurvey(userID uint, req StartSurveyReq) (*StartSurveyResult, error) {
	count := req.QuestionCount
	if count == 0 {
		count = s.Cfg.Survey.DefaultQuestionCount
	}
	if count < 0 || count > s.Cfg.Survey.MaxQuestionCount {
		return nil, fmt.Errorf("%w: must be between 1 and %d", util.ErrInvalidCount, s.Cfg.Survey.MaxQuestionCount)
	}

	questions, err := s.QuestionRepo.SampleRandom(req.Category, count)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, util.ErrNoQuestions
	}

	survey := &model.Survey{
		UserID:         userID,
		TotalQuestions: len(questions),
	}
	questionIDs := make([]uint, len(questions))
	for i := range questions {
		questionIDs[i] = questions[i].ID
	}
	if err := s.SurveyRepo.CreateWithQuestions(survey, questionIDs); err != nil {
		return nil, err
	}

	redacted := make([]QuestionForUser, len(questions))
	for i := range questions {
		redacted[i] = RedactQuestion(&questions[i])
	}

	logger.Log.Info("survey started",
		zap.String("surveyId", survey.ID),
		zap.Uint("userId", userID),
		zap.Int("questions", len(questions)),
	)

	return &StartSurveyResult{
		SurveyID:  survey.ID,
		Questions: redacted,
	}, nil
}

type AnswerSubmission struct {
	QuestionID     uint `json:"questionId" binding:"required"`
	SelectedOption *int `json:"selectedOption" binding:"required"`
	TimeTaken      int  `json:"timeTaken"`
}

type SubmitSurveyReq struct {
	SurveyID string             `json:"surveyId" binding:"required"`
	Answers  []AnswerSubmission `json:"answers" binding:"required"`
}

// QuestionResult is one graded slot, full options (correctness now safe to
// reveal) plus the user's outcome. SelectedOption, IsCorrect and TimeTaken
// stay null for slots the batch never answered.
type QuestionResult struct {
	QuestionText   string           `json:"question"`
	Options        model.OptionList `json:"options"`
	SelectedOption *int             `json:"selectedOption"`
	IsCorrect      *bool            `json:"isCorrect"`
	Explanation    string           `json:"explanation"`
	TimeTaken      *int             `json:"timeTaken"`
}

type SurveyResult struct {
	Score          int              `json:"score"`
	TotalQuestions int              `json:"totalQuestions"`
	CorrectAnswers int              `json:"correctAnswers"`
	TimeSpent      int              `json:"timeSpent"`
	Results        []QuestionResult `json:"results"`
}

// SubmitSurvey grades one answer batch against the survey's fixed question
// order and finalizes the survey exactly once.
//
// Precondition order matters: missing survey, then ownership, then the
// completed flag — each a distinct failure. The whole batch is validated
// before anything is written, so an out-of-range option index rejects the
// submission and leaves the survey pending and resubmittable.
func (s *SurveyService) SubmitSurvey(callerID uint, req SubmitSurveyReq) (*SurveyResult, error) {
	survey, err := s.SurveyRepo.FindByID(req.SurveyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSurveyNotFound
		}
		return nil, err
	}

	if survey.UserID != callerID {
		return nil, util.ErrNotSurveyOwner
	}

	if survey.Completed {
		return nil, util.ErrSurveyCompleted
	}

	// First answer wins when the batch names a question twice.
	answerByQuestion := make(map[uint]AnswerSubmission, len(req.Answers))
	for _, ans := range req.Answers {
		if _, dup := answerByQuestion[ans.QuestionID]; !dup {
			answerByQuestion[ans.QuestionID] = ans
		}
	}

	// Validation pass before any write: an out-of-range index is a caller
	// error, never silently graded as incorrect.
	for i := range survey.Questions {
		slot := &survey.Questions[i]
		ans, ok := answerByQuestion[slot.QuestionID]
		if !ok {
			continue
		}
		if slot.Question == nil {
			return nil, fmt.Errorf("survey %s slot %d: question %d missing", survey.ID, slot.Position, slot.QuestionID)
		}
		idx := *ans.SelectedOption
		if idx < 0 || idx >= len(slot.Question.Options) {
			return nil, util.ErrInvalidAnswer
		}
	}

	score := 0
	correctAnswers := 0
	start := time.Now()

	for i := range survey.Questions {
		slot := &survey.Questions[i]
		ans, ok := answerByQuestion[slot.QuestionID]
		if !ok {
			continue // unanswered slot contributes nothing
		}

		idx := *ans.SelectedOption
		isCorrect := slot.Question.Options[idx].IsCorrect
		timeTaken := ans.TimeTaken

		slot.SelectedOption = &idx
		slot.IsCorrect = &isCorrect
		slot.TimeTaken = &timeTaken

		if isCorrect {
			score += slot.Question.Points
			correctAnswers++
		}
	}

	// Summed over the submitted batch, not over graded slots: an answer
	// naming a question outside the survey is ignored for grading but its
	// seconds still count.
	timeSpent := 0
	for _, ans := range req.Answers {
		timeSpent += ans.TimeTaken
	}

	survey.Score = score
	survey.CorrectAnswers = correctAnswers
	survey.TimeSpent = timeSpent

	if err := s.SurveyRepo.FinalizeSubmission(survey, survey.Questions); err != nil {
		return nil, err
	}

	monitoring.SurveysCompleted.Inc()
	logger.Log.Info("survey completed",
		zap.String("surveyId", survey.ID),
		zap.Uint("userId", callerID),
		zap.Int("score", score),
		zap.Int("correct", correctAnswers),
		zap.Duration("gradingTime", time.Since(start)),
	)

	return s.buildResult(survey), nil
}

func (s *SurveyService) buildResult(survey *model.Survey) *SurveyResult {
	results := make([]QuestionResult, len(survey.Questions))
	for i := range survey.Questions {
		slot := &survey.Questions[i]
		results[i] = QuestionResult{
			QuestionText:   slot.Question.Text,
			Options:        slot.Question.Options,
			SelectedOption: slot.SelectedOption,
			IsCorrect:      slot.IsCorrect,
			Explanation:    slot.Question.Explanation,
			TimeTaken:      slot.TimeTaken,
		}
	}

	return &SurveyResult{
		Score:          survey.Score,
		TotalQuestions: survey.TotalQuestions,
		CorrectAnswers: survey.CorrectAnswers,
		TimeSpent:      survey.TimeSpent,
		Results:        results,
	}
}

// SurveyHistoryEntry is one completed survey with its per-question detail.
type SurveyHistoryEntry struct {
	SurveyID       string           `json:"surveyId"`
	Score          int              `json:"score"`
	TotalQuestions int              `json:"totalQuestions"`
	CorrectAnswers int              `json:"correctAnswers"`
	TimeSpent      int              `json:"timeSpent"`
	CreatedAt      time.Time        `json:"createdAt"`
	Results        []QuestionResult `json:"results"`
}

// GetSurveyHistory lists the user's completed surveys, newest first.
// Read-only; pending surveys are invisible here.
func (s *SurveyService) GetSurveyHistory(userID uint) ([]SurveyHistoryEntry, error) {
	surveys, err := s.SurveyRepo.FindCompletedByUser(userID)
	if err != nil {
		return nil, err
	}

	history := make([]SurveyHistoryEntry, len(surveys))
	for i := range surveys {
		result := s.buildResult(&surveys[i])
		history[i] = SurveyHistoryEntry{
			SurveyID:       surveys[i].ID,
			Score:          result.Score,
			TotalQuestions: result.TotalQuestions,
			CorrectAnswers: result.CorrectAnswers,
			TimeSpent:      result.TimeSpent,
			CreatedAt:      surveys[i].CreatedAt,
			Results:        result.Results,
		}
	}
	return history, nil
}
