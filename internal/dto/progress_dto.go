package dto

import "time"

type LabCompletionResponse struct {
	LabId            string     `json:"lab_id"`
	BestScore        int        `json:"best_score"`
	LastScore        int        `json:"last_score"`
	Attempts         int        `json:"attempts"`
	XPAwarded        int        `json:"xp_awarded"`
	TimeSpentSeconds int        `json:"time_spent_seconds"`
	FirstCompletedAt *time.Time `json:"first_completed_at,omitempty"`
	LastCompletedAt  *time.Time `json:"last_completed_at,omitempty"`
}

type ProgressResponse struct {
	TotalXP       int                      `json:"total_xp"`
	CompletedLabs int                      `json:"completed_labs"`
	TotalLabs     int                      `json:"total_labs"`
	Completions   []*LabCompletionResponse `json:"completions"`
}
