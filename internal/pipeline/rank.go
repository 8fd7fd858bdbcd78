package pipeline

import (
	"sort"

	"newsagent/internal/core"
)

// Rank orders cards for presentation: multi-source cards first, then newer
// published-at within the same confidence tier. Stable for ties.
func Rank(cards []core.DigestCard) []core.DigestCard {
	ranked := make([]core.DigestCard, len(cards))
	copy(ranked, cards)
	sort.SliceStable(ranked, func(i, j int) bool {
		mi := ranked[i].Confidence == core.ConfidenceMultiSource
		mj := ranked[j].Confidence == core.ConfidenceMultiSource
		if mi != mj {
			return mi
		}
		return ranked[i].PublishedAt.After(ranked[j].PublishedAt)
	})
	return ranked
}

// ApplyQAGate drops cards that fail the citation guarantee: no bullets, an
// empty sources list, or any bullet without a citation. It returns the
// surviving cards, the overall status, and one note per dropped card.
func ApplyQAGate(cards []core.DigestCard) ([]core.DigestCard, core.QAStatus, []string) {
	var (
		passed []core.DigestCard
		notes  []string
	)

	for _, card := range cards {
		if reason := qaFailure(card); reason != "" {
			notes = append(notes, "dropped card "+card.ID+": "+reason)
			continue
		}
		passed = append(passed, card)
	}

	status := core.QAPass
	if len(passed) == 0 {
		status = core.QAFail
	}
	return passed, status, notes
}

func qaFailure(card core.DigestCard) string {
	if len(card.Bullets) == 0 {
		return "no bullets"
	}
	if len(card.Sources) == 0 {
		return "no sources"
	}
	for _, b := range card.Bullets {
		if len(b.Citations) == 0 {
			return "bullet without citation"
		}
	}
	return ""
}
