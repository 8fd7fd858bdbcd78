// Package clustering groups article candidates that report the same story,
// using greedy title-similarity clustering.
package clustering

import (
	"regexp"
	"sort"
	"strings"

	"newsagent/internal/core"
)

// DefaultThreshold is the similarity score at or above which a candidate
// joins an existing cluster.
const DefaultThreshold = 0.60

var wordPattern = regexp.MustCompile(`\w+`)

// TitleSignature tokenizes a title into the set of its lowercase words longer
// than 3 characters.
func TitleSignature(title string) map[string]bool {
	sig := make(map[string]bool)
	for _, w := range wordPattern.FindAllString(strings.ToLower(title), -1) {
		if len(w) > 3 {
			sig[w] = true
		}
	}
	return sig
}

// Similarity is the overlap coefficient between two signatures:
// |A ∩ B| / min(|A|, |B|). Either empty set scores 0.
func Similarity(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	smaller, larger := a, b
	if len(b) < len(a) {
		smaller, larger = b, a
	}
	intersection := 0
	for w := range smaller {
		if larger[w] {
			intersection++
		}
	}
	return float64(intersection) / float64(len(smaller))
}

// Cluster greedily groups candidates by title similarity. Candidates are
// processed newest first (untimed items last, ties kept in input order), so
// each cluster's first element is its most recent member, the lead. A
// candidate joins the first cluster whose lead shares its topic and scores at
// or above the threshold against it; otherwise it starts a new cluster.
// Deterministic for identical input.
func Cluster(items []core.ArticleCandidate, threshold float64) [][]core.ArticleCandidate {
	sorted := make([]core.ArticleCandidate, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, tj := sorted[i].PublishedAt, sorted[j].PublishedAt
		switch {
		case ti == nil:
			return false
		case tj == nil:
			return true
		default:
			return ti.After(*tj)
		}
	})

	var clusters [][]core.ArticleCandidate

	for _, item := range sorted {
		sig := TitleSignature(item.Title)
		assigned := false

		for i, cluster := range clusters {
			lead := cluster[0]
			if lead.Topic != item.Topic {
				continue
			}
			if Similarity(TitleSignature(lead.Title), sig) >= threshold {
				clusters[i] = append(clusters[i], item)
				assigned = true
				break
			}
		}

		if !assigned {
			clusters = append(clusters, []core.ArticleCandidate{item})
		}
	}

	return clusters
}
