package topics

import (
	"strings"

	"newsagent/internal/core"
)

// Tag returns every topic whose keyword list matches the candidate's title or
// summary, using whole-word matching on lowercased, whitespace-collapsed
// text. When nothing matches, the result is {daily}.
func Tag(title, summary string) map[core.Topic]bool {
	text := strings.ToLower(title + " " + summary)
	text = strings.Join(strings.Fields(text), " ")

	tags := make(map[core.Topic]bool)
	for topic, patterns := range keywordPatterns {
		for _, p := range patterns {
			if p.MatchString(text) {
				tags[topic] = true
				break
			}
		}
	}

	if len(tags) == 0 {
		tags[core.TopicDaily] = true
	}
	return tags
}
