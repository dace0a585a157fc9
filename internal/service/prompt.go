package service

import (
	"fmt"
	"unicode/utf8"
)

func summaryPrompt(text string) string {
	return fmt.Sprintf(`You review student and hobby software projects.
Summarize the project below in at most three sentences for a reviewer who has not seen it.
Mention what it does and how it is built. Do not grade it. Reply with plain text only.

Project:
%s
`, truncate(text, maxPromptText))
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
