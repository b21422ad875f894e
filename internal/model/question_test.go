package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionListScanRoundTrip(t *testing.T) {
	options := OptionList{
		{Text: "London"},
		{Text: "Paris", IsCorrect: true},
	}

	value, err := options.Value()
	require.NoError(t, err)

	var decoded OptionList
	require.NoError(t, decoded.Scan(value))
	assert.Equal(t, options, decoded)

	// Drivers hand the column back as string or []byte depending on dialect.
	var fromString OptionList
	require.NoError(t, fromString.Scan(`[{"text":"a","isCorrect":true}]`))
	require.Len(t, fromString, 1)
	assert.True(t, fromString[0].IsCorrect)

	var fromNil OptionList
	require.NoError(t, fromNil.Scan(nil))
	assert.Nil(t, fromNil)
}

func TestOptionListCorrectIndex(t *testing.T) {
	options := OptionList{
		{Text: "a"},
		{Text: "b"},
		{Text: "c", IsCorrect: true},
	}
	assert.Equal(t, 2, options.CorrectIndex())

	assert.Equal(t, -1, OptionList{{Text: "a"}}.CorrectIndex())
}

func TestCategoryAndDifficultyValidation(t *testing.T) {
	assert.True(t, IsValidCategory("Science"))
	assert.False(t, IsValidCategory("Astrology"))

	assert.True(t, IsValidDifficulty(DifficultyHard))
	assert.False(t, IsValidDifficulty("impossible"))
}

func TestUserAverageScore(t *testing.T) {
	user := &User{SurveysTaken: 3, TotalScore: 50}
	assert.InDelta(t, 16.666, user.AverageScore(), 0.01)

	assert.Zero(t, (&User{}).AverageScore())
}
