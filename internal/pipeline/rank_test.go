package pipeline

import (
	"testing"
	"time"

	"newsagent/internal/core"
)

func card(id string, confidence core.ConfidenceTag, publishedAt time.Time) core.DigestCard {
	return core.DigestCard{
		ID:          id,
		Topic:       core.TopicTech,
		Headline:    "Headline " + id,
		Publisher:   "P",
		PublishedAt: publishedAt,
		Confidence:  confidence,
		Bullets: []core.Bullet{
			{Text: "claim", Citations: []core.Citation{{Publisher: "P", URL: "https://p.com/" + id}}},
		},
		Sources: []core.Citation{{Publisher: "P", URL: "https://p.com/" + id}},
	}
}

func TestRankMultiSourceFirst(t *testing.T) {
	now := time.Now().UTC()
	cards := []core.DigestCard{
		card("single-new", core.ConfidenceSingleSource, now),
		card("multi-old", core.ConfidenceMultiSource, now.Add(-48*time.Hour)),
	}

	ranked := Rank(cards)

	// Multi-source outranks single-source regardless of recency.
	if ranked[0].ID != "multi-old" {
		t.Errorf("expected multi-old first, got %s", ranked[0].ID)
	}
}

func TestRankNewerFirstWithinTier(t *testing.T) {
	now := time.Now().UTC()
	cards := []core.DigestCard{
		card("older", core.ConfidenceSingleSource, now.Add(-2*time.Hour)),
		card("newer", core.ConfidenceSingleSource, now),
	}

	ranked := Rank(cards)

	if ranked[0].ID != "newer" {
		t.Errorf("expected newer first, got %s", ranked[0].ID)
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	now := time.Now().UTC()
	cards := []core.DigestCard{
		card("single", core.ConfidenceSingleSource, now),
		card("multi", core.ConfidenceMultiSource, now),
	}

	_ = Rank(cards)

	if cards[0].ID != "single" {
		t.Errorf("input order mutated: %s first", cards[0].ID)
	}
}

func TestApplyQAGateDropsBadCards(t *testing.T) {
	now := time.Now().UTC()
	good := card("good", core.ConfidenceSingleSource, now)

	noBullets := card("no-bullets", core.ConfidenceSingleSource, now)
	noBullets.Bullets = nil

	noSources := card("no-sources", core.ConfidenceSingleSource, now)
	noSources.Sources = nil

	unbackedBullet := card("unbacked", core.ConfidenceSingleSource, now)
	unbackedBullet.Bullets = append(unbackedBullet.Bullets, core.Bullet{Text: "uncited claim"})

	passed, status, notes := ApplyQAGate([]core.DigestCard{good, noBullets, noSources, unbackedBullet})

	if len(passed) != 1 || passed[0].ID != "good" {
		t.Fatalf("expected only the good card, got %+v", passed)
	}
	if status != core.QAPass {
		t.Errorf("expected pass, got %s", status)
	}
	if len(notes) != 3 {
		t.Errorf("expected 3 notes, got %v", notes)
	}
}

func TestApplyQAGateFailWhenNothingSurvives(t *testing.T) {
	now := time.Now().UTC()
	bad := card("bad", core.ConfidenceSingleSource, now)
	bad.Sources = nil

	passed, status, notes := ApplyQAGate([]core.DigestCard{bad})

	if len(passed) != 0 {
		t.Fatalf("expected no survivors, got %+v", passed)
	}
	if status != core.QAFail {
		t.Errorf("expected fail, got %s", status)
	}
	if len(notes) != 1 {
		t.Errorf("expected 1 note, got %v", notes)
	}
}

func TestApplyQAGateEmptyInput(t *testing.T) {
	passed, status, _ := ApplyQAGate(nil)
	if len(passed) != 0 || status != core.QAFail {
		t.Errorf("empty input should fail, got %d cards, %s", len(passed), status)
	}
}
