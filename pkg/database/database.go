package database

import (
	"fmt"
	"log"

	"survey_quiz_backend/internal/config"
	"survey_quiz_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	SeedQuestions(db)

	return db, nil
}

// Migrate creates/updates the schema for all persisted entities.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Question{},
		&model.Survey{},
		&model.SurveyQuestion{},
	)
}

// SeedQuestions fills an empty question bank with a starter set so a fresh
// deployment has something to quiz on.
func SeedQuestions(db *gorm.DB) {
	var count int64
	db.Model(&model.Question{}).Count(&count)
	if count > 0 {
		return
	}

	seed := []model.Question{
		{
			Text: "What is the capital of France?",
			Options: model.OptionList{
				{Text: "London"},
				{Text: "Paris", IsCorrect: true},
				{Text: "Berlin"},
				{Text: "Madrid"},
			},
			Category:    "General Knowledge",
			Difficulty:  model.DifficultyEasy,
			Points:      10,
			Explanation: "Paris is the capital and most populous city of France.",
		},
		{
			Text: "Which planet is known as the Red Planet?",
			Options: model.OptionList{
				{Text: "Venus"},
				{Text: "Mars", IsCorrect: true},
				{Text: "Jupiter"},
				{Text: "Saturn"},
			},
			Category:    "Science",
			Difficulty:  model.DifficultyEasy,
			Points:      10,
			Explanation: "Mars is known as the Red Planet due to iron oxide on its surface.",
		},
		{
			Text: "What is 2 + 2?",
			Options: model.OptionList{
				{Text: "3"},
				{Text: "4", IsCorrect: true},
				{Text: "5"},
				{Text: "6"},
			},
			Category:    "Mathematics",
			Difficulty:  model.DifficultyEasy,
			Points:      5,
			Explanation: "2 + 2 equals 4.",
		},
		{
			Text: "Who wrote 'Romeo and Juliet'?",
			Options: model.OptionList{
				{Text: "Charles Dickens"},
				{Text: "William Shakespeare", IsCorrect: true},
				{Text: "Jane Austen"},
				{Text: "Mark Twain"},
			},
			Category:    "Entertainment",
			Difficulty:  model.DifficultyEasy,
			Points:      10,
			Explanation: "William Shakespeare wrote the famous tragedy 'Romeo and Juliet'.",
		},
		{
			Text: "What is the largest ocean on Earth?",
			Options: model.OptionList{
				{Text: "Atlantic Ocean"},
				{Text: "Indian Ocean"},
				{Text: "Pacific Ocean", IsCorrect: true},
				{Text: "Arctic Ocean"},
			},
			Category:    "General Knowledge",
			Difficulty:  model.DifficultyEasy,
			Points:      10,
			Explanation: "The Pacific Ocean covers about one-third of the Earth's surface.",
		},
		{
			Text: "Which element has the chemical symbol 'O'?",
			Options: model.OptionList{
				{Text: "Gold"},
				{Text: "Oxygen", IsCorrect: true},
				{Text: "Silver"},
				{Text: "Iron"},
			},
			Category:    "Science",
			Difficulty:  model.DifficultyEasy,
			Points:      10,
			Explanation: "Oxygen has the chemical symbol 'O'.",
		},
		{
			Text: "In which year did World War II end?",
			Options: model.OptionList{
				{Text: "1943"},
				{Text: "1944"},
				{Text: "1945", IsCorrect: true},
				{Text: "1946"},
			},
			Category:    "History",
			Difficulty:  model.DifficultyMedium,
			Points:      15,
			Explanation: "World War II ended in 1945.",
		},
		{
			Text: "What does CPU stand for?",
			Options: model.OptionList{
				{Text: "Central Processing Unit", IsCorrect: true},
				{Text: "Computer Personal Unit"},
				{Text: "Central Program Utility"},
				{Text: "Control Processing Unit"},
			},
			Category:    "Technology",
			Difficulty:  model.DifficultyEasy,
			Points:      10,
			Explanation: "CPU stands for Central Processing Unit.",
		},
		{
			Text: "How many players are on a soccer team on the field?",
			Options: model.OptionList{
				{Text: "9"},
				{Text: "10"},
				{Text: "11", IsCorrect: true},
				{Text: "12"},
			},
			Category:    "Sports",
			Difficulty:  model.DifficultyEasy,
			Points:      10,
			Explanation: "A soccer team fields 11 players, including the goalkeeper.",
		},
	}

	for i := range seed {
		db.Create(&seed[i])
	}

	log.Printf("Seeded question bank with %d questions", len(seed))
}
