package topics

import "newsagent/internal/core"

// Filter tags each candidate and keeps those matching a requested topic. The
// feed-assigned topic counts as a tag alongside the keyword tags, and the
// kept candidate's topic is rewritten to the first requested topic that
// matched, so multi-topic items land in one predictable section. When nothing
// matches and daily was not requested, daily-tagged items are returned as a
// fallback so the digest is not empty. Input candidates are not mutated.
func Filter(items []core.ArticleCandidate, requested []core.Topic) []core.ArticleCandidate {
	requestedSet := make(map[core.Topic]bool, len(requested))
	for _, t := range requested {
		requestedSet[t] = true
	}

	var results []core.ArticleCandidate
	for _, item := range items {
		tags := Tag(item.Title, item.Summary)
		tags[item.Topic] = true

		for _, t := range requested {
			if tags[t] {
				results = append(results, item.WithTopic(t))
				break
			}
		}
	}

	if len(results) == 0 && !requestedSet[core.TopicDaily] {
		for _, item := range items {
			tags := Tag(item.Title, item.Summary)
			tags[item.Topic] = true
			if tags[core.TopicDaily] {
				results = append(results, item.WithTopic(core.TopicDaily))
			}
		}
	}

	return results
}

// Refine returns the topic a single candidate should carry: a specific feed
// topic is kept as-is, while daily-tagged candidates are upgraded to the
// first specific topic their text matches.
func Refine(title, summary string, current core.Topic) core.Topic {
	if current != core.TopicDaily {
		return current
	}

	tags := Tag(title, summary)
	for _, t := range []core.Topic{core.TopicTech, core.TopicFinance, core.TopicHealth, core.TopicLearning} {
		if tags[t] {
			return t
		}
	}
	return core.TopicDaily
}
