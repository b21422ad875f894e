package service

import (
	"encoding/json"
	"fmt"
	"testing"

	"survey_quiz_backend/internal/model"
	"survey_quiz_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartSurveySampleSmallerThanRequested(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustCreateUser(t, "alice")
	env.mustCreateQuestion(t, "capital of France?", "General Knowledge", 1, 10)

	result, err := env.surveys.StartSurvey(user.ID, StartSurveyReq{
		Category:      "General Knowledge",
		QuestionCount: 5,
	})
	require.NoError(t, err)

	// One question in the bank: the sample is short, not an error.
	require.Len(t, result.Questions, 1)

	survey, err := env.surveyRepo.FindByID(result.SurveyID)
	require.NoError(t, err)
	assert.Equal(t, 1, survey.TotalQuestions)
	assert.False(t, survey.Completed)
	assert.Len(t, survey.Questions, 1)
}

func TestStartSurveyNeverExceedsRequestedCount(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustCreateUser(t, "alice")
	for i := 0; i < 10; i++ {
		env.mustCreateQuestion(t, "q", "Science", 0, 10)
	}

	result, err := env.surveys.StartSurvey(user.ID, StartSurveyReq{QuestionCount: 3})
	require.NoError(t, err)
	assert.Len(t, result.Questions, 3)

	survey, err := env.surveyRepo.FindByID(result.SurveyID)
	require.NoError(t, err)
	assert.Equal(t, 3, survey.TotalQuestions)
}

func TestStartSurveyRedactsCorrectness(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustCreateUser(t, "alice")
	env.mustCreateQuestion(t, "q", "Science", 2, 10)

	result, err := env.surveys.StartSurvey(user.ID, StartSurveyReq{})
	require.NoError(t, err)

	raw, err := json.Marshal(result)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "isCorrect")
}

func TestStartSurveyEmptyCategoryFails(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustCreateUser(t, "alice")
	env.mustCreateQuestion(t, "q", "Science", 0, 10)

	_, err := env.surveys.StartSurvey(user.ID, StartSurveyReq{Category: "History"})
	assert.ErrorIs(t, err, util.ErrNoQuestions)
}

func TestStartSurveyCountBounds(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustCreateUser(t, "alice")
	env.mustCreateQuestion(t, "q", "Science", 0, 10)

	_, err := env.surveys.StartSurvey(user.ID, StartSurveyReq{QuestionCount: -1})
	assert.ErrorIs(t, err, util.ErrInvalidCount)

	_, err = env.surveys.StartSurvey(user.ID, StartSurveyReq{QuestionCount: 51})
	assert.ErrorIs(t, err, util.ErrInvalidCount)

	// Zero means "use the default".
	result, err := env.surveys.StartSurvey(user.ID, StartSurveyReq{})
	require.NoError(t, err)
	assert.Len(t, result.Questions, 1)
}

func TestSubmitSurveyGradesAndUpdatesAggregates(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustCreateUser(t, "alice")
	q := env.mustCreateQuestion(t, "capital of France?", "General Knowledge", 1, 10)

	started, err := env.surveys.StartSurvey(user.ID, StartSurveyReq{Category: "General Knowledge"})
	require.NoError(t, err)

	result, err := env.surveys.SubmitSurvey(user.ID, SubmitSurveyReq{
		SurveyID: started.SurveyID,
		Answers: []AnswerSubmission{
			{QuestionID: q.ID, SelectedOption: intPtr(1), TimeTaken: 12},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 10, result.Score)
	assert.Equal(t, 1, result.TotalQuestions)
	assert.Equal(t, 1, result.CorrectAnswers)
	assert.Equal(t, 12, result.TimeSpent)

	require.Len(t, result.Results, 1)
	graded := result.Results[0]
	assert.Equal(t, "capital of France?", graded.QuestionText)
	require.NotNil(t, graded.IsCorrect)
	assert.True(t, *graded.IsCorrect)
	assert.Equal(t, "because", graded.Explanation)
	// The full option list, correctness included, is revealed after grading.
	assert.True(t, graded.Options[1].IsCorrect)

	fresh, err := env.userRepo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, fresh.SurveysTaken)
	assert.Equal(t, 10, fresh.TotalScore)
}

func TestSubmitSurveyScoreIdentity(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustCreateUser(t, "alice")
	q1 := env.mustCreateQuestion(t, "q1", "Mathematics", 0, 5)
	q2 := env.mustCreateQuestion(t, "q2", "Mathematics", 1, 15)
	q3 := env.mustCreateQuestion(t, "q3", "Mathematics", 2, 20)

	started, err := env.surveys.StartSurvey(user.ID, StartSurveyReq{Category: "Mathematics", QuestionCount: 3})
	require.NoError(t, err)

	result, err := env.surveys.SubmitSurvey(user.ID, SubmitSurveyReq{
		SurveyID: started.SurveyID,
		Answers: []AnswerSubmission{
			{QuestionID: q1.ID, SelectedOption: intPtr(0), TimeTaken: 5}, // correct, 5 pts
			{QuestionID: q2.ID, SelectedOption: intPtr(3), TimeTaken: 7}, // wrong
			{QuestionID: q3.ID, SelectedOption: intPtr(2), TimeTaken: 9}, // correct, 20 pts
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 25, result.Score)
	assert.Equal(t, 2, result.CorrectAnswers)
	assert.Equal(t, 21, result.TimeSpent)

	// score == sum of points over correct attempts, correctAnswers == their count
	sum, count := 0, 0
	for _, r := range result.Results {
		if r.IsCorrect != nil && *r.IsCorrect {
			count++
		}
	}
	for _, q := range []*model.Question{q1, q3} {
		sum += q.Points
	}
	assert.Equal(t, sum, result.Score)
	assert.Equal(t, count, result.CorrectAnswers)
}

func TestSubmitSurveyUnansweredSlotsStayUngraded(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustCreateUser(t, "alice")
	q1 := env.mustCreateQuestion(t, "q1", "History", 0, 10)
	env.mustCreateQuestion(t, "q2", "History", 0, 10)

	started, err := env.surveys.StartSurvey(user.ID, StartSurveyReq{Category: "History", QuestionCount: 2})
	require.NoError(t, err)

	result, err := env.surveys.SubmitSurvey(user.ID, SubmitSurveyReq{
		SurveyID: started.SurveyID,
		Answers: []AnswerSubmission{
			{QuestionID: q1.ID, SelectedOption: intPtr(0), TimeTaken: 4},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 10, result.Score)
	assert.Equal(t, 1, result.CorrectAnswers)
	assert.Equal(t, 2, result.TotalQuestions)

	ungraded := 0
	for _, r := range result.Results {
		if r.SelectedOption == nil {
			ungraded++
			assert.Nil(t, r.IsCorrect)
			assert.Nil(t, r.TimeTaken)
		}
	}
	assert.Equal(t, 1, ungraded)

	// The persisted survey agrees with the response.
	survey, err := env.surveyRepo.FindByID(started.SurveyID)
	require.NoError(t, err)
	assert.Equal(t, 1, survey.CorrectAnswers)
}

func TestSubmitSurveyStrayAnswerCountsTowardTimeSpent(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustCreateUser(t, "alice")
	q := env.mustCreateQuestion(t, "q", "Sports", 0, 10)

	started, err := env.surveys.StartSurvey(user.ID, StartSurveyReq{Category: "Sports"})
	require.NoError(t, err)

	// An answer naming a question outside the survey is ignored for grading
	// but its seconds still add to timeSpent.
	result, err := env.surveys.SubmitSurvey(user.ID, SubmitSurveyReq{
		SurveyID: started.SurveyID,
		Answers: []AnswerSubmission{
			{QuestionID: q.ID, SelectedOption: intPtr(0), TimeTaken: 10},
			{QuestionID: 99999, SelectedOption: intPtr(0), TimeTaken: 7},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 17, result.TimeSpent)
	assert.Equal(t, 10, result.Score)
	assert.Equal(t, 1, result.CorrectAnswers)
}

func TestSubmitSurveyNotFound(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustCreateUser(t, "alice")

	_, err := env.surveys.SubmitSurvey(user.ID, SubmitSurveyReq{
		SurveyID: "does-not-exist",
		Answers:  []AnswerSubmission{},
	})
	assert.ErrorIs(t, err, util.ErrSurveyNotFound)
}

func TestSubmitSurveyWrongOwner(t *testing.T) {
	env := newTestEnv(t)
	alice := env.mustCreateUser(t, "alice")
	mallory := env.mustCreateUser(t, "mallory")
	q := env.mustCreateQuestion(t, "q", "Science", 0, 10)

	started, err := env.surveys.StartSurvey(alice.ID, StartSurveyReq{})
	require.NoError(t, err)

	_, err = env.surveys.SubmitSurvey(mallory.ID, SubmitSurveyReq{
		SurveyID: started.SurveyID,
		Answers: []AnswerSubmission{
			{QuestionID: q.ID, SelectedOption: intPtr(0), TimeTaken: 1},
		},
	})
	assert.ErrorIs(t, err, util.ErrNotSurveyOwner)

	// Survey state untouched: still pending, still submittable by alice.
	survey, err := env.surveyRepo.FindByID(started.SurveyID)
	require.NoError(t, err)
	assert.False(t, survey.Completed)

	_, err = env.surveys.SubmitSurvey(alice.ID, SubmitSurveyReq{
		SurveyID: started.SurveyID,
		Answers: []AnswerSubmission{
			{QuestionID: q.ID, SelectedOption: intPtr(0), TimeTaken: 1},
		},
	})
	require.NoError(t, err)
}

func TestSubmitSurveyExactlyOnce(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustCreateUser(t, "alice")
	q := env.mustCreateQuestion(t, "q", "Science", 1, 10)

	started, err := env.surveys.StartSurvey(user.ID, StartSurveyReq{})
	require.NoError(t, err)

	first, err := env.surveys.SubmitSurvey(user.ID, SubmitSurveyReq{
		SurveyID: started.SurveyID,
		Answers: []AnswerSubmission{
			{QuestionID: q.ID, SelectedOption: intPtr(1), TimeTaken: 3},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 10, first.Score)

	// Second submission is rejected, not re-graded.
	_, err = env.surveys.SubmitSurvey(user.ID, SubmitSurveyReq{
		SurveyID: started.SurveyID,
		Answers: []AnswerSubmission{
			{QuestionID: q.ID, SelectedOption: intPtr(0), TimeTaken: 100},
		},
	})
	assert.ErrorIs(t, err, util.ErrSurveyCompleted)

	// Grading fields are exactly what the first call produced.
	survey, err := env.surveyRepo.FindByID(started.SurveyID)
	require.NoError(t, err)
	assert.True(t, survey.Completed)
	assert.Equal(t, 10, survey.Score)
	assert.Equal(t, 1, survey.CorrectAnswers)
	assert.Equal(t, 3, survey.TimeSpent)
	require.NotNil(t, survey.Questions[0].SelectedOption)
	assert.Equal(t, 1, *survey.Questions[0].SelectedOption)

	// Aggregates were bumped once.
	fresh, err := env.userRepo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, fresh.SurveysTaken)
	assert.Equal(t, 10, fresh.TotalScore)
}

func TestSubmitSurveyOutOfRangeOptionRejectsWholeBatch(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustCreateUser(t, "alice")
	q := env.mustCreateQuestion(t, "q", "General Knowledge", 1, 10)

	started, err := env.surveys.StartSurvey(user.ID, StartSurveyReq{Category: "General Knowledge"})
	require.NoError(t, err)

	_, err = env.surveys.SubmitSurvey(user.ID, SubmitSurveyReq{
		SurveyID: started.SurveyID,
		Answers: []AnswerSubmission{
			{QuestionID: q.ID, SelectedOption: intPtr(99), TimeTaken: 1},
		},
	})
	assert.ErrorIs(t, err, util.ErrInvalidAnswer)

	// Nothing was written; the survey stays pending and resubmittable.
	survey, err := env.surveyRepo.FindByID(started.SurveyID)
	require.NoError(t, err)
	assert.False(t, survey.Completed)
	assert.Equal(t, 0, survey.Score)
	assert.Nil(t, survey.Questions[0].SelectedOption)

	fresh, err := env.userRepo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, fresh.SurveysTaken)

	result, err := env.surveys.SubmitSurvey(user.ID, SubmitSurveyReq{
		SurveyID: started.SurveyID,
		Answers: []AnswerSubmission{
			{QuestionID: q.ID, SelectedOption: intPtr(1), TimeTaken: 12},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 10, result.Score)
}

func TestAggregateConsistencyOverManySurveys(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustCreateUser(t, "alice")
	q := env.mustCreateQuestion(t, "q", "Technology", 0, 10)

	wantTotal := 0
	const n = 4
	for i := 0; i < n; i++ {
		started, err := env.surveys.StartSurvey(user.ID, StartSurveyReq{})
		require.NoError(t, err)

		// Alternate correct and wrong answers.
		selected := 0
		if i%2 == 1 {
			selected = 1
		} else {
			wantTotal += q.Points
		}
		_, err = env.surveys.SubmitSurvey(user.ID, SubmitSurveyReq{
			SurveyID: started.SurveyID,
			Answers: []AnswerSubmission{
				{QuestionID: q.ID, SelectedOption: intPtr(selected), TimeTaken: 1},
			},
		})
		require.NoError(t, err)
	}

	fresh, err := env.userRepo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, n, fresh.SurveysTaken)
	assert.Equal(t, wantTotal, fresh.TotalScore)
}

func TestSurveyHistoryOnlyCompletedNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustCreateUser(t, "alice")
	q := env.mustCreateQuestion(t, "q", "Science", 0, 10)

	// Two completed surveys plus one abandoned in-progress survey.
	var submitted []string
	for i := 0; i < 2; i++ {
		started, err := env.surveys.StartSurvey(user.ID, StartSurveyReq{})
		require.NoError(t, err)
		_, err = env.surveys.SubmitSurvey(user.ID, SubmitSurveyReq{
			SurveyID: started.SurveyID,
			Answers: []AnswerSubmission{
				{QuestionID: q.ID, SelectedOption: intPtr(0), TimeTaken: i + 1},
			},
		})
		require.NoError(t, err)
		submitted = append(submitted, started.SurveyID)
	}
	_, err := env.surveys.StartSurvey(user.ID, StartSurveyReq{})
	require.NoError(t, err)

	history, err := env.surveys.GetSurveyHistory(user.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)

	for _, entry := range history {
		assert.Contains(t, submitted, entry.SurveyID)
		assert.Equal(t, 10, entry.Score)
		assert.Equal(t, 1, entry.CorrectAnswers)
		require.Len(t, entry.Results, 1)
	}
	assert.False(t, history[0].CreatedAt.Before(history[1].CreatedAt))
}

func TestSubmitSurveyDuplicateAnswerFirstWins(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustCreateUser(t, "alice")
	q := env.mustCreateQuestion(t, "q", "Science", 1, 10)

	started, err := env.surveys.StartSurvey(user.ID, StartSurveyReq{})
	require.NoError(t, err)

	result, err := env.surveys.SubmitSurvey(user.ID, SubmitSurveyReq{
		SurveyID: started.SurveyID,
		Answers: []AnswerSubmission{
			{QuestionID: q.ID, SelectedOption: intPtr(1), TimeTaken: 2},
			{QuestionID: q.ID, SelectedOption: intPtr(0), TimeTaken: 3},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 10, result.Score)
	require.NotNil(t, result.Results[0].SelectedOption)
	assert.Equal(t, 1, *result.Results[0].SelectedOption)
	// Both entries were submitted, so both count toward timeSpent.
	assert.Equal(t, 5, result.TimeSpent)
}

func TestStartSurveyVariesBetweenCalls(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustCreateUser(t, "alice")
	for i := 0; i < 20; i++ {
		env.mustCreateQuestion(t, fmt.Sprintf("q%d", i), "Science", 0, 10)
	}

	seen := make(map[string]bool)
	for i := 0; i < 8; i++ {
		result, err := env.surveys.StartSurvey(user.ID, StartSurveyReq{QuestionCount: 5})
		require.NoError(t, err)
		ids := ""
		for _, q := range result.Questions {
			ids += fmt.Sprintf("%d,", q.ID)
		}
		seen[ids] = true
	}
	// 8 draws of 5 from 20 landing on the identical ordered sample every
	// time would mean the sampler is not random.
	assert.Greater(t, len(seen), 1)
}
