package repository

import (
	"math/rand"

	"survey_quiz_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(question *model.Question) error {
	return r.DB.Create(question).Error
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.First(&q, id).Error
	return &q, err
}

func (r *QuestionRepository) ListAll() ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Order("created_at desc").Find(&qs).Error
	return qs, err
}

// ListCategories returns the distinct categories present in the bank.
func (r *QuestionRepository) ListCategories() ([]string, error) {
	var categories []string
	err := r.DB.Model(&model.Question{}).
		Distinct().
		Order("category asc").
		Pluck("category", &categories).Error
	return categories, err
}

// SampleRandom draws up to count distinct questions uniformly at random,
// optionally filtered by category. The candidate id set is shuffled in
// process rather than ordered by the database's RAND(), which keeps the
// sampling dialect-independent. A sample smaller than count is not an error.
func (r *QuestionRepository) SampleRandom(category string, count int) ([]model.Question, error) {
	query := r.DB.Model(&model.Question{})
	if category != "" && category != "all" {
		query = query.Where("category = ?", category)
	}

	var ids []uint
	if err := query.Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	rand.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})
	if count < len(ids) {
		ids = ids[:count]
	}

	var qs []model.Question
	if err := r.DB.Where("id IN ?", ids).Find(&qs).Error; err != nil {
		return nil, err
	}

	// Restore the shuffled order; Find returns rows in store order.
	byID := make(map[uint]model.Question, len(qs))
	for _, q := range qs {
		byID[q.ID] = q
	}
	ordered := make([]model.Question, 0, len(qs))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			ordered = append(ordered, q)
		}
	}
	return ordered, nil
}
