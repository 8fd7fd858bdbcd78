// Package cards turns article clusters into digest cards: headline, bullets
// with per-bullet citations, merged sources, and a confidence tag.
package cards

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"newsagent/internal/citations"
	"newsagent/internal/core"
)

const (
	maxHeadlineLen = 160
	maxBulletLen   = 230

	// placeholderBullet stands in when the lead has no usable summary, so
	// the card still carries one cited claim.
	placeholderBullet = "No summary available for this story."
)

// DefaultMaxBullets caps bullets per card: the lead plus up to two members.
const DefaultMaxBullets = 3

// Assemble builds one card from a cluster. The cluster's first element is the
// lead: it supplies the id, headline, publisher, timestamp, and first bullet.
// Additional bullets come from members with a distinct usable summary, each
// cited to that member's own citation only. maxBullets values below 1 fall
// back to DefaultMaxBullets.
func Assemble(cluster []core.ArticleCandidate, maxBullets int) core.DigestCard {
	lead := cluster[0]
	if maxBullets < 1 {
		maxBullets = DefaultMaxBullets
	}

	sources := citations.Merge(cluster)

	var publishedAt time.Time
	if lead.PublishedAt != nil {
		publishedAt = *lead.PublishedAt
	}

	card := core.DigestCard{
		ID:          CardID(lead.URL),
		Topic:       lead.Topic,
		Headline:    truncate(lead.Title, maxHeadlineLen),
		Publisher:   lead.Publisher,
		PublishedAt: publishedAt,
		Confidence:  citations.Confidence(sources),
		Sources:     sources,
	}

	leadText := cleanSummary(lead.Summary)
	if leadText == "" {
		leadText = placeholderBullet
	}
	card.Bullets = append(card.Bullets, core.Bullet{
		Text:      leadText,
		Citations: []core.Citation{citations.FromCandidate(lead)},
	})

	for _, member := range cluster[1:] {
		if len(card.Bullets) >= maxBullets {
			break
		}
		text := cleanSummary(member.Summary)
		if text == "" {
			continue
		}
		if duplicatesExisting(text, card.Bullets) {
			continue
		}
		card.Bullets = append(card.Bullets, core.Bullet{
			Text:      text,
			Citations: []core.Citation{citations.FromCandidate(member)},
		})
	}

	return card
}

// CardID derives the stable card id from the lead URL: "card-" plus the first
// 12 lowercase hex digits of the URL's SHA1 UUID. The prefix keeps real ids
// apart from the mock id space.
func CardID(leadURL string) string {
	u := uuid.NewSHA1(uuid.NameSpaceURL, []byte(leadURL))
	return fmt.Sprintf("card-%x", u[:6])
}

// cleanSummary strips HTML-ish content by cutting at the first '<', trims
// whitespace, and caps the length.
func cleanSummary(summary string) string {
	text := summary
	if i := strings.IndexByte(text, '<'); i >= 0 {
		text = text[:i]
	}
	text = strings.TrimSpace(text)
	return truncate(text, maxBulletLen)
}

// duplicatesExisting reports whether the text near-duplicates any existing
// bullet, comparing rune prefixes up to the shorter length.
func duplicatesExisting(text string, bullets []core.Bullet) bool {
	candidate := []rune(text)
	for _, b := range bullets {
		existing := []rune(b.Text)
		n := len(candidate)
		if len(existing) < n {
			n = len(existing)
		}
		if n > 0 && strings.EqualFold(string(candidate[:n]), string(existing[:n])) {
			return true
		}
	}
	return false
}

// truncate caps s at limit characters, not bytes, so multibyte text is never
// cut mid-rune.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
