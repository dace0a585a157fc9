package dto

type ScorePreviewRequest struct {
	Text string `json:"text" validate:"max=200000"`
}
