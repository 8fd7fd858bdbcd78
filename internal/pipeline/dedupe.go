package pipeline

import "newsagent/internal/core"

// DedupeByCanonicalURL collapses candidates that share a canonical URL,
// keeping one per key in first-seen key order. When a key repeats, the
// incoming item replaces the kept one only if it wins the tie-break: having a
// timestamp beats not having one; among timestamped items the newer wins;
// only when both are untimed does the longer summary win.
func DedupeByCanonicalURL(items []core.ArticleCandidate) []core.ArticleCandidate {
	var (
		order []string
		kept  = make(map[string]core.ArticleCandidate)
	)

	for _, item := range items {
		key := CanonicalizeURL(item.URL)

		existing, ok := kept[key]
		if !ok {
			order = append(order, key)
			kept[key] = item
			continue
		}

		if prefersIncoming(existing, item) {
			kept[key] = item
		}
	}

	result := make([]core.ArticleCandidate, 0, len(order))
	for _, key := range order {
		result = append(result, kept[key])
	}
	return result
}

func prefersIncoming(existing, incoming core.ArticleCandidate) bool {
	switch {
	case incoming.PublishedAt != nil && existing.PublishedAt == nil:
		return true
	case incoming.PublishedAt != nil && existing.PublishedAt != nil:
		return incoming.PublishedAt.After(*existing.PublishedAt)
	case incoming.PublishedAt == nil && existing.PublishedAt == nil:
		return len(incoming.Summary) > len(existing.Summary)
	}
	return false
}
