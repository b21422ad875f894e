package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Categories is the fixed category set a question may belong to.
var Categories = []string{
	"General Knowledge",
	"Science",
	"Technology",
	"Mathematics",
	"History",
	"Sports",
	"Entertainment",
}

func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

func IsValidDifficulty(d Difficulty) bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// Option is one answer choice of a question.
type Option struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// OptionList is stored as a JSON column; order is the presentation order.
type OptionList []Option

func (o OptionList) Value() (driver.Value, error) {
	return json.Marshal(o)
}

func (o *OptionList) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*o = nil
		return nil
	case []byte:
		return json.Unmarshal(v, o)
	case string:
		return json.Unmarshal([]byte(v), o)
	}
	return fmt.Errorf("unsupported option list type %T", value)
}

// CorrectIndex returns the index of the correct option, or -1.
func (o OptionList) CorrectIndex() int {
	for i, opt := range o {
		if opt.IsCorrect {
			return i
		}
	}
	return -1
}

// swagger:model Question
type Question struct {
	BaseModel
	Text        string     `gorm:"type:text;not null" json:"questionText"`
	Options     OptionList `gorm:"type:json" json:"options"`
	Category    string     `gorm:"size:50;index;not null" json:"category"`
	Difficulty  Difficulty `gorm:"size:20;default:'medium'" json:"difficulty"`
	Points      int        `gorm:"default:10" json:"points"`
	Explanation string     `gorm:"type:text" json:"explanation"`
}

func (Question) TableName() string {
	return "questions"
}
