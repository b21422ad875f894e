package service

import (
	"errors"
	"fmt"

	"survey_quiz_backend/internal/model"
	"survey_quiz_backend/internal/repository"
)

type QuestionService struct {
	QuestionRepo *repository.QuestionRepository
}

func NewQuestionService(questionRepo *repository.QuestionRepository) *QuestionService {
	return &QuestionService{QuestionRepo: questionRepo}
}

type OptionReq struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"isCorrect"`
}

type CreateQuestionReq struct {
	Text        string           `json:"questionText" binding:"required"`
	Options     []OptionReq      `json:"options" binding:"required,min=2"`
	Category    string           `json:"category" binding:"required"`
	Difficulty  model.Difficulty `json:"difficulty"`
	Points      int              `json:"points"`
	Explanation string           `json:"explanation"`
}

// CreateQuestion validates and stores a new bank question. Exactly one
// option must be marked correct; questions are immutable once stored.
func (s *QuestionService) CreateQuestion(req CreateQuestionReq) (*model.Question, error) {
	correct := 0
	options := make(model.OptionList, len(req.Options))
	for i, opt := range req.Options {
		options[i] = model.Option{Text: opt.Text, IsCorrect: opt.IsCorrect}
		if opt.IsCorrect {
			correct++
		}
	}
	if correct != 1 {
		return nil, errors.New("exactly one option must be correct")
	}

	if !model.IsValidCategory(req.Category) {
		return nil, fmt.Errorf("unknown category %q", req.Category)
	}

	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = model.DifficultyMedium
	}
	if !model.IsValidDifficulty(difficulty) {
		return nil, fmt.Errorf("unknown difficulty %q", difficulty)
	}

	points := req.Points
	if points == 0 {
		points = 10
	}
	if points < 0 {
		return nil, errors.New("points must be positive")
	}

	question := &model.Question{
		Text:        req.Text,
		Options:     options,
		Category:    req.Category,
		Difficulty:  difficulty,
		Points:      points,
		Explanation: req.Explanation,
	}
	if err := s.QuestionRepo.Create(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) ListQuestions() ([]model.Question, error) {
	return s.QuestionRepo.ListAll()
}

func (s *QuestionService) ListCategories() ([]string, error) {
	return s.QuestionRepo.ListCategories()
}

// RedactedOption is an answer choice with the correctness flag stripped,
// safe to send to a client before grading.
type RedactedOption struct {
	Text string `json:"text"`
}

// QuestionForUser is the redacted projection of a question used while a
// survey is still in progress.
type QuestionForUser struct {
	ID         uint             `json:"id"`
	Text       string           `json:"questionText"`
	Options    []RedactedOption `json:"options"`
	Category   string           `json:"category"`
	Difficulty model.Difficulty `json:"difficulty"`
	Points     int              `json:"points"`
}

func RedactQuestion(q *model.Question) QuestionForUser {
	options := make([]RedactedOption, len(q.Options))
	for i, opt := range q.Options {
		options[i] = RedactedOption{Text: opt.Text}
	}
	return QuestionForUser{
		ID:         q.ID,
		Text:       q.Text,
		Options:    options,
		Category:   q.Category,
		Difficulty: q.Difficulty,
		Points:     q.Points,
	}
}

// RandomQuestions serves the public "give me N random questions" endpoint
// with the same redacted projection the survey flow uses.
func (s *QuestionService) RandomQuestions(category string, count int) ([]QuestionForUser, error) {
	questions, err := s.QuestionRepo.SampleRandom(category, count)
	if err != nil {
		return nil, err
	}

	redacted := make([]QuestionForUser, len(questions))
	for i := range questions {
		redacted[i] = RedactQuestion(&questions[i])
	}
	return redacted, nil
}
