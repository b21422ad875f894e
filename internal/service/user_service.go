package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"survey_quiz_backend/internal/config"
	"survey_quiz_backend/internal/repository"
	"survey_quiz_backend/internal/util"
	"survey_quiz_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
	Redis    *redis.Client // optional; nil disables leaderboard caching
	Cfg      *config.Config
}

func NewUserService(userRepo *repository.UserRepository, rdb *redis.Client, cfg *config.Config) *UserService {
	return &UserService{
		UserRepo: userRepo,
		Redis:    rdb,
		Cfg:      cfg,
	}
}

type Profile struct {
	ID           uint    `json:"id"`
	Username     string  `json:"username"`
	Email        string  `json:"email"`
	SurveysTaken int     `json:"surveysTaken"`
	TotalScore   int     `json:"totalScore"`
	AverageScore float64 `json:"averageScore"`
}

func (s *UserService) GetProfile(userID uint) (*Profile, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	return &Profile{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		SurveysTaken: user.SurveysTaken,
		TotalScore:   user.TotalScore,
		AverageScore: round2(user.AverageScore()),
	}, nil
}

type LeaderboardEntry struct {
	Rank         int     `json:"rank"`
	Username     string  `json:"username"`
	SurveysTaken int     `json:"surveysTaken"`
	TotalScore   int     `json:"totalScore"`
	AverageScore float64 `json:"averageScore"`
}

// GetLeaderboard ranks users by total score descending (username ascending
// on ties). Rank is positional and 1-based; averages are derived per call,
// never stored. The result is cached in redis for a few seconds when a
// client is wired.
func (s *UserService) GetLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = s.Cfg.Survey.LeaderboardLimit
	}
	if limit > 100 {
		limit = 100
	}

	cacheKey := fmt.Sprintf("leaderboard:%d", limit)
	if entries, ok := s.cachedLeaderboard(ctx, cacheKey); ok {
		return entries, nil
	}

	users, err := s.UserRepo.FindTopByTotalScore(limit)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, len(users))
	for i, user := range users {
		entries[i] = LeaderboardEntry{
			Rank:         i + 1,
			Username:     user.Username,
			SurveysTaken: user.SurveysTaken,
			TotalScore:   user.TotalScore,
			AverageScore: round2(user.AverageScore()),
		}
	}

	s.cacheLeaderboard(ctx, cacheKey, entries)

	return entries, nil
}

func (s *UserService) cachedLeaderboard(ctx context.Context, key string) ([]LeaderboardEntry, bool) {
	if s.Redis == nil || s.Cfg.Survey.LeaderboardCacheSec <= 0 {
		return nil, false
	}

	raw, err := s.Redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}

	var entries []LeaderboardEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false
	}
	return entries, true
}

func (s *UserService) cacheLeaderboard(ctx context.Context, key string, entries []LeaderboardEntry) {
	if s.Redis == nil || s.Cfg.Survey.LeaderboardCacheSec <= 0 {
		return
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		return
	}

	ttl := time.Duration(s.Cfg.Survey.LeaderboardCacheSec) * time.Second
	if err := s.Redis.Set(ctx, key, raw, ttl).Err(); err != nil {
		logger.Log.Warn("leaderboard cache write failed", zap.Error(err))
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
