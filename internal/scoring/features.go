package scoring

import (
	"strings"
	"unicode"
)

type features struct {
	words         []string
	unique        int
	sentences     int
	structure     int
	clarityHits   int
	technicalHits int
	creativeHits  int
	ideaMarkers   int
	codeMarkers   bool
}

// readable reports short sentences or a visibly structured text.
func (f features) readable() bool {
	if f.structure >= 3 {
		return true
	}
	return f.sentences >= 2 && len(f.words)/f.sentences <= 25
}

func (f features) richVocabulary() bool {
	if len(f.words) < 20 {
		return false
	}
	return float64(f.unique)/float64(len(f.words)) >= 0.6
}

var clarityWords = wordSet(
	"clear", "clearly", "documented", "documentation", "detailed", "details", "overview",
	"summary", "goal", "goals", "purpose", "step", "steps", "explains", "explained",
	"describes", "described", "readme", "example", "examples", "structured", "instructions",
	"usage", "guide",
)

var technicalWords = wordSet(
	"architecture", "api", "apis", "database", "algorithm", "algorithms", "technical",
	"implementation", "implemented", "performance", "scalable", "scalability", "framework",
	"server", "backend", "frontend", "protocol", "diagram", "diagrams", "deployment",
	"deployed", "testing", "tests", "concurrency", "cache", "caching", "latency", "schema",
	"infrastructure", "pipeline", "microservices", "docker", "kubernetes", "sql", "http",
	"rest", "optimization", "complexity", "compiler", "encryption",
)

var creativeWords = wordSet(
	"novel", "innovative", "innovation", "creative", "creativity", "unique", "original",
	"experimental", "experiment", "prototype", "reimagined", "imaginative", "playful",
	"artistic", "interactive", "inspired", "unconventional", "inventive",
)

var ideaPhrases = []string{
	"what if", "instead of", "imagine", "unlike", "new way", "for the first time",
	"reimagine", "twist on",
}

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func analyze(text string) features {
	var f features
	f.words = tokenize(text)
	f.sentences = countSentences(text)
	f.structure = countStructureMarkers(text)

	seen := make(map[string]struct{}, len(f.words))
	for _, w := range f.words {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		if _, ok := clarityWords[w]; ok {
			f.clarityHits++
		}
		if _, ok := technicalWords[w]; ok {
			f.technicalHits++
		}
		if _, ok := creativeWords[w]; ok {
			f.creativeHits++
		}
		if !f.codeMarkers && strings.IndexFunc(w, unicode.IsDigit) >= 0 {
			f.codeMarkers = true
		}
	}
	f.unique = len(seen)

	if strings.ContainsAny(text, "`{}=<>/") || strings.Contains(text, "()") {
		f.codeMarkers = true
	}

	joined := " " + strings.Join(f.words, " ") + " "
	for _, p := range ideaPhrases {
		if strings.Contains(joined, " "+p+" ") {
			f.ideaMarkers++
		}
	}
	return f
}

func tokenize(text string) []string {
	var (
		words []string
		b     strings.Builder
	)
	flush := func() {
		if b.Len() > 0 {
			words = append(words, b.String())
			b.Reset()
		}
	}
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		flush()
	}
	flush()
	return words
}

func countSentences(text string) int {
	var n int
	inSentence := false
	for _, r := range text {
		switch {
		case r == '.' || r == '!' || r == '?':
			if inSentence {
				n++
				inSentence = false
			}
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			inSentence = true
		}
	}
	if inSentence {
		n++
	}
	return n
}

func countStructureMarkers(text string) int {
	var n int
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimLeft(line, " \t")
		if line == "" {
			continue
		}
		switch line[0] {
		case '-', '*', '#':
			n++
			continue
		}
		i := 0
		for i < len(line) && line[i] >= '0' && line[i] <= '9' {
			i++
		}
		if i > 0 && i < len(line) && (line[i] == '.' || line[i] == ')') {
			n++
		}
	}
	return n
}
