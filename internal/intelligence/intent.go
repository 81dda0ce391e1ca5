package intelligence

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// IntentKind tags what a user message asks of the assistant.
type IntentKind string

const (
	// IntentGeneral is an ordinary question with no scheduling request.
	IntentGeneral IntentKind = "general"
	// IntentPlanning is an explicit request to build or reorganize the schedule.
	IntentPlanning IntentKind = "planning"
	// IntentPlanningHint is a message that touches on progress or delays
	// without asking for a schedule.
	IntentPlanningHint IntentKind = "planning_hint"
)

// Intent is the classification of one message.
type Intent struct {
	Kind IntentKind
	// Keyword is the normalized keyword that matched, empty for general.
	Keyword string
}

// Classifier decides which intent a message carries.
type Classifier interface {
	Classify(text string) Intent
}

var defaultPlanningKeywords = []string{
	"planning",
	"planing",
	"planifi",
	"retroplanning",
	"organiser",
	"organisation des travaux",
	"prochaines étapes",
	"prioriser",
	"priorités",
	"calendrier",
	"échéancier",
	"ordonnancer",
	"séquencer",
	"programmer les travaux",
	"schedule",
}

var defaultHintKeywords = []string{
	"retard",
	"avancement",
	"prochaine étape",
	"que faire",
	"quoi faire",
	"bloqué",
	"en attente",
	"où en est",
	"délai",
}

// KeywordClassifier matches normalized substrings. Planning keywords win
// over hint keywords.
type KeywordClassifier struct {
	planning []string
	hint     []string
}

// NewKeywordClassifier normalizes the keyword lists once.
func NewKeywordClassifier(planning, hint []string) *KeywordClassifier {
	return &KeywordClassifier{
		planning: normalizeAll(planning),
		hint:     normalizeAll(hint),
	}
}

// DefaultClassifier returns the French construction-site vocabulary.
func DefaultClassifier() *KeywordClassifier {
	return NewKeywordClassifier(defaultPlanningKeywords, defaultHintKeywords)
}

func (c *KeywordClassifier) Classify(text string) Intent {
	s := Normalize(text)
	if s == "" {
		return Intent{Kind: IntentGeneral}
	}
	for _, kw := range c.planning {
		if strings.Contains(s, kw) {
			return Intent{Kind: IntentPlanning, Keyword: kw}
		}
	}
	for _, kw := range c.hint {
		if strings.Contains(s, kw) {
			return Intent{Kind: IntentPlanningHint, Keyword: kw}
		}
	}
	return Intent{Kind: IntentGeneral}
}

// IsPlanningRequest reports whether text explicitly asks for scheduling.
func IsPlanningRequest(text string) bool {
	return DefaultClassifier().Classify(text).Kind == IntentPlanning
}

var ligatures = strings.NewReplacer("œ", "oe", "Œ", "oe", "æ", "ae", "Æ", "ae")

// Normalize lower-cases s and strips diacritics ("Étapes" -> "etapes").
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, ligatures.Replace(s))
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

func normalizeAll(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if n := Normalize(w); n != "" {
			out = append(out, n)
		}
	}
	return out
}
