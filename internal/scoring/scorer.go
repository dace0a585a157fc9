// Package scoring turns free project text into a bounded, deterministic score.
//
// Every exported function is pure: the same text always produces the same
// Result, and no input (including the empty string) produces an error.
package scoring

import (
	"math"
	"strings"
)

const (
	MinScore = 1
	MaxScore = 5
)

// Result is the outcome of scoring one analysis text.
type Result struct {
	ClarityScore      int     `json:"clarity_score"`
	CreativityScore   int     `json:"creativity_score"`
	TechnicalityScore int     `json:"technicality_score"`
	OverallScore      float64 `json:"overall_score"`
	Feedback          string  `json:"feedback"`
}

const minimumFeedback = "Not enough content to evaluate. Describe the goal, the approach and the technical details of the project to get a meaningful score."

// Minimum is the lowest valid result, used for empty input and as the
// fallback when the heuristic cannot run.
func Minimum() Result {
	return Result{
		ClarityScore:      MinScore,
		CreativityScore:   MinScore,
		TechnicalityScore: MinScore,
		OverallScore:      float64(MinScore),
		Feedback:          minimumFeedback,
	}
}

// Overall is the arithmetic mean of the three sub-scores rounded half away
// from zero to one decimal place.
func Overall(clarity, creativity, technicality int) float64 {
	mean := float64(clarity+creativity+technicality) / 3
	return math.Round(mean*10) / 10
}

// AnalysisText joins a description with text extracted from an upload.
func AnalysisText(description, extracted string) string {
	if strings.TrimSpace(extracted) == "" {
		return description
	}
	if strings.TrimSpace(description) == "" {
		return extracted
	}
	return description + "\n\n" + extracted
}

// Heuristic is the default Scorer.
type Heuristic struct{}

func (Heuristic) Score(text string) Result { return Score(text) }

// Score maps text features to the three sub-scores, the overall score and a
// feedback sentence.
func Score(text string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Minimum()
		}
	}()

	if strings.TrimSpace(text) == "" {
		return Minimum()
	}
	f := analyze(text)
	if len(f.words) == 0 {
		return Minimum()
	}

	clarity := clamp(1 + lengthBand(len(f.words)) + min(f.clarityHits, 2) + boolPoint(f.readable()))
	technicality := clamp(1 + min(f.technicalHits, 3) + boolPoint(f.codeMarkers))
	creativity := clamp(1 + min(f.creativeHits, 2) + boolPoint(f.richVocabulary()) + boolPoint(f.ideaMarkers > 0))

	overall := Overall(clarity, creativity, technicality)
	return Result{
		ClarityScore:      clarity,
		CreativityScore:   creativity,
		TechnicalityScore: technicality,
		OverallScore:      overall,
		Feedback:          feedback(clarity, creativity, technicality, overall),
	}
}

func lengthBand(words int) int {
	switch {
	case words < 5:
		return 0
	case words < 150:
		return 1
	default:
		return 2
	}
}

func clamp(v int) int {
	if v < MinScore {
		return MinScore
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}

func boolPoint(b bool) int {
	if b {
		return 1
	}
	return 0
}
