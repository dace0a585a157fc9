package scoring

import (
	"fmt"
	"strings"
)

func feedback(clarity, creativity, technicality int, overall float64) string {
	parts := []string{
		fmt.Sprintf("Overall %.1f/5.", overall),
		note(clarity,
			"The description is hard to follow; state the goal and walk through the project step by step.",
			"The description is understandable; a short overview or example would make it clearer.",
			"The description is clear and well organised."),
		note(creativity,
			"Highlight what is new or different about the idea.",
			"There is some originality; push the distinctive angle further.",
			"The idea comes across as original."),
		note(technicality,
			"Add technical depth: architecture, tools and how it was built.",
			"Technical content is present but could go deeper.",
			"Technical depth is strong."),
	}
	return strings.Join(parts, " ")
}

func note(score int, low, mid, high string) string {
	switch {
	case score <= 2:
		return low
	case score == 3:
		return mid
	default:
		return high
	}
}
