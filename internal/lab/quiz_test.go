package lab

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func threeQuestionQuiz() Quiz {
	return Quiz{
		Questions: []Question{
			{Index: 1, Prompt: "q1", Options: []Option{{ID: "base", Label: "Base"}, {ID: "acid", Label: "Acid"}}},
			{Index: 2, Prompt: "q2", Options: []Option{{ID: "blue", Label: "Blue"}, {ID: "red", Label: "Red"}}},
			{Index: 3, Prompt: "q3", Options: []Option{{ID: "nh3", Label: "NH3"}, {ID: "ch4", Label: "CH4"}}},
		},
		Key: map[int]string{1: "base", 2: "blue", 3: "nh3"},
	}
}

func TestEvaluate(t *testing.T) {
	quiz := threeQuestionQuiz()
	scoring := Scoring{AttemptScores: []int{100, 80, 60}}

	tests := []struct {
		name        string
		answers     map[int]string
		attempt     int
		wantCorrect int
		wantFully   bool
		wantScore   int
		wantTier    FeedbackTier
	}{
		{
			name:        "all correct first attempt",
			answers:     map[int]string{1: "base", 2: "blue", 3: "nh3"},
			attempt:     1,
			wantCorrect: 3,
			wantFully:   true,
			wantScore:   100,
			wantTier:    TierPassed,
		},
		{
			name:        "all correct second attempt",
			answers:     map[int]string{1: "base", 2: "blue", 3: "nh3"},
			attempt:     2,
			wantCorrect: 3,
			wantFully:   true,
			wantScore:   80,
			wantTier:    TierPassed,
		},
		{
			name:        "all correct fifth attempt clamps to last tier",
			answers:     map[int]string{1: "base", 2: "blue", 3: "nh3"},
			attempt:     5,
			wantCorrect: 3,
			wantFully:   true,
			wantScore:   60,
			wantTier:    TierPassed,
		},
		{
			name:        "one wrong first attempt is try-again",
			answers:     map[int]string{1: "base", 2: "red", 3: "nh3"},
			attempt:     1,
			wantCorrect: 2,
			wantFully:   false,
			wantScore:   0,
			wantTier:    TierTryAgain,
		},
		{
			name:        "one wrong second attempt reveals",
			answers:     map[int]string{1: "base", 2: "red", 3: "nh3"},
			attempt:     2,
			wantCorrect: 2,
			wantFully:   false,
			wantScore:   0,
			wantTier:    TierReveal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Evaluate(quiz, tt.answers, tt.attempt, scoring)

			assert.Equal(t, tt.wantCorrect, res.CorrectCount)
			assert.Equal(t, 3, res.TotalQuestions)
			assert.Equal(t, tt.wantFully, res.IsFullyCorrect)
			assert.Equal(t, tt.wantScore, res.Score)
			assert.Equal(t, tt.wantTier, res.Tier)
		})
	}
}

func TestEvaluateTryAgainDoesNotReveal(t *testing.T) {
	res := Evaluate(threeQuestionQuiz(), map[int]string{1: "acid", 2: "red", 3: "ch4"}, 1, Scoring{AttemptScores: []int{100, 80, 60}})

	assert.Equal(t, TierTryAgain, res.Tier)
	assert.Nil(t, res.CorrectAnswers)
}

func TestEvaluateRevealExposesKey(t *testing.T) {
	res := Evaluate(threeQuestionQuiz(), map[int]string{1: "acid", 2: "red", 3: "ch4"}, 2, Scoring{AttemptScores: []int{100, 80, 60}})

	assert.Equal(t, TierReveal, res.Tier)
	assert.Equal(t, map[int]string{1: "base", 2: "blue", 3: "nh3"}, res.CorrectAnswers)
}

func TestScoringFlatTable(t *testing.T) {
	// The metal-reactivity lab awards 100 regardless of attempts.
	flat := Scoring{AttemptScores: []int{100}}

	assert.Equal(t, 100, flat.ScoreFor(1))
	assert.Equal(t, 100, flat.ScoreFor(2))
	assert.Equal(t, 100, flat.ScoreFor(7))
}
