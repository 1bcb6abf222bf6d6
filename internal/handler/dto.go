package handler

import "futurenews/internal/model"

type GenerateRequest struct {
	Year     int    `json:"year" binding:"required,min=2030,max=2040"`
	Lang     string `json:"lang" binding:"omitempty,oneof=en zh ja de fr ko es"`
	DeviceID string `json:"device_id"`
	Token    string `json:"token"`
}

type GenerateResponse struct {
	Year    int           `json:"year"`
	Stories []model.Story `json:"stories"`
}

type DetailQuery struct {
	Year int    `form:"year,default=2035" binding:"min=2030,max=2040"`
	Lang string `form:"lang,default=en" binding:"oneof=en zh ja de fr ko es"`
}

type StoryDetailResponse struct {
	StoryID  int             `json:"story_id"`
	Summary  string          `json:"summary"`
	Comments []model.Comment `json:"comments"`
}

type TrialStatusResponse struct {
	HasFreeTrial  bool `json:"has_free_trial"`
	UsesRemaining int  `json:"uses_remaining"`
}

type TokenStatusResponse struct {
	Valid                bool `json:"valid"`
	RemainingGenerations int  `json:"remaining_generations"`
}
