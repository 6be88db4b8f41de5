package lab

// FeedbackTier tells the client how to present a submission result.
type FeedbackTier string

const (
	// TierPassed means every answer was correct; the lab is complete.
	TierPassed FeedbackTier = "passed"
	// TierTryAgain is returned on the first failed attempt. Answers stay
	// editable and the correct key is NOT revealed.
	TierTryAgain FeedbackTier = "try-again"
	// TierReveal is returned on the second and later failed attempts.
	// The correct answers are exposed and the quiz locks until reset.
	TierReveal FeedbackTier = "reveal"
)

type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type Question struct {
	Index   int      `json:"index"` // 1-based
	Prompt  string   `json:"prompt"`
	Options []Option `json:"options"`
}

// Quiz bundles the questions shown to the student with the answer key.
// The key never leaves this package except inside a reveal-tier result.
type Quiz struct {
	Questions []Question
	Key       map[int]string // question index -> correct option id
}

// QuizResult is derived on every submission, never stored independently.
type QuizResult struct {
	CorrectCount   int            `json:"correct_count"`
	TotalQuestions int            `json:"total_questions"`
	AttemptNumber  int            `json:"attempt_number"`
	IsFullyCorrect bool           `json:"is_fully_correct"`
	Score          int            `json:"score"`
	Tier           FeedbackTier   `json:"tier"`
	CorrectAnswers map[int]string `json:"correct_answers,omitempty"` // only on reveal
}

// Scoring maps the attempt number of the winning submission to a score.
// Index 0 is attempt 1; the last entry repeats for later attempts.
// Most labs use {100, 80, 60}; the metal-reactivity lab uses a flat {100}.
type Scoring struct {
	AttemptScores []int
}

func (s Scoring) ScoreFor(attempt int) int {
	if len(s.AttemptScores) == 0 {
		return 0
	}
	if attempt < 1 {
		attempt = 1
	}
	if attempt > len(s.AttemptScores) {
		return s.AttemptScores[len(s.AttemptScores)-1]
	}
	return s.AttemptScores[attempt-1]
}

// Evaluate checks a complete answer set against the quiz key.
// The caller guarantees every question has an answer and that the quiz
// is neither locked nor already passed; Evaluate itself is pure.
func Evaluate(quiz Quiz, answers map[int]string, attempt int, scoring Scoring) QuizResult {
	correct := 0
	for idx, want := range quiz.Key {
		if answers[idx] == want {
			correct++
		}
	}

	res := QuizResult{
		CorrectCount:   correct,
		TotalQuestions: len(quiz.Questions),
		AttemptNumber:  attempt,
		IsFullyCorrect: correct == len(quiz.Questions),
	}

	switch {
	case res.IsFullyCorrect:
		res.Tier = TierPassed
		res.Score = scoring.ScoreFor(attempt)
	case attempt <= 1:
		res.Tier = TierTryAgain
	default:
		res.Tier = TierReveal
		res.CorrectAnswers = make(map[int]string, len(quiz.Key))
		for idx, want := range quiz.Key {
			res.CorrectAnswers[idx] = want
		}
	}

	return res
}
