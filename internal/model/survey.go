package model

// Survey is one attempt by one user at a fixed, ordered set of questions.
// It is created pending (Completed=false) and mutated exactly once, during
// the grading pass at submission.
//
// swagger:model Survey
type Survey struct {
	UUIDBase
	UserID         uint `gorm:"index;not null" json:"userId"`
	Score          int  `gorm:"default:0" json:"score"`
	TotalQuestions int  `gorm:"default:5" json:"totalQuestions"`
	CorrectAnswers int  `gorm:"default:0" json:"correctAnswers"`
	TimeSpent      int  `gorm:"default:0" json:"timeSpent"` // seconds
	Completed      bool `gorm:"default:false" json:"completed"`

	Questions []SurveyQuestion `gorm:"foreignKey:SurveyID" json:"questions,omitempty"`
}

func (Survey) TableName() string {
	return "surveys"
}

// SurveyQuestion is one question slot within a survey. Position fixes the
// presentation order at creation time. The grading fields stay nil until the
// survey is submitted; a slot with no matching answer keeps them nil forever.
type SurveyQuestion struct {
	BaseModel
	SurveyID   string `gorm:"size:36;index;not null" json:"surveyId"`
	QuestionID uint   `gorm:"index;not null" json:"questionId"`
	Position   int    `gorm:"not null" json:"position"`

	SelectedOption *int  `json:"selectedOption,omitempty"`
	IsCorrect      *bool `json:"isCorrect,omitempty"`
	TimeTaken      *int  `json:"timeTaken,omitempty"` // seconds

	Question *Question `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
}

func (SurveyQuestion) TableName() string {
	return "survey_questions"
}

// Answered reports whether the slot was graded with a selected option.
func (q *SurveyQuestion) Answered() bool {
	return q.SelectedOption != nil
}
