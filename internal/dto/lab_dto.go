package dto

import (
	"virtual-lab-be/internal/lab"
)

// LabSummary is one catalog card.
type LabSummary struct {
	Id          string `json:"id"`
	Title       string `json:"title"`
	Emoji       string `json:"emoji"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	BestScore   int    `json:"best_score,omitempty"`
}

// LabDetail is the full blueprint the client renders the lab from.
// The quiz key is never included.
type LabDetail struct {
	Id              string           `json:"id"`
	Title           string           `json:"title"`
	Emoji           string           `json:"emoji"`
	Description     string           `json:"description"`
	Steps           []lab.Step       `json:"steps"`
	Supplies        []lab.SupplyItem `json:"supplies"`
	Subjects        []lab.Subject    `json:"subjects"`
	MinObservations int              `json:"min_observations"`
	Quiz            []QuizQuestion   `json:"quiz"`
}

type QuizQuestion struct {
	Index   int          `json:"index"`
	Prompt  string       `json:"prompt"`
	Options []lab.Option `json:"options"`
}

type CollectSupplyRequest struct {
	ItemId string `json:"item_id" validate:"required"`
}

type SelectSubjectRequest struct {
	SubjectId string `json:"subject_id" validate:"required"`
}

type PerformActionRequest struct {
	ActionId string `json:"action_id" validate:"required"`
}

type RecordObservationRequest struct {
	SubjectId string `json:"subject_id" validate:"required"`
}

type SetAnswerRequest struct {
	QuestionIndex int    `json:"question_index" validate:"required,min=1"`
	OptionId      string `json:"option_id" validate:"required"`
}

type QuizResultResponse struct {
	CorrectCount   int            `json:"correct_count"`
	TotalQuestions int            `json:"total_questions"`
	AttemptNumber  int            `json:"attempt_number"`
	IsFullyCorrect bool           `json:"is_fully_correct"`
	Score          int            `json:"score"`
	Tier           string         `json:"tier"`
	CorrectAnswers map[int]string `json:"correct_answers,omitempty"`
	XPEarned       int            `json:"xp_earned,omitempty"`
}
