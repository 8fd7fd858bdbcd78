// Package pipeline implements the ingestion-to-digest pipeline: URL
// canonicalization and deduplication, topic refinement, title clustering,
// card assembly, ranking, and the QA gate that guarantees every emitted
// claim carries a citation.
package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"newsagent/internal/cards"
	"newsagent/internal/clustering"
	"newsagent/internal/core"
	"newsagent/internal/fetch"
	"newsagent/internal/logger"
	"newsagent/internal/sources"
	"newsagent/internal/topics"
)

// Orchestrator wires the pipeline stages together and owns the fallback
// escape hatch for requests no feed can serve.
type Orchestrator struct {
	registry    *sources.Registry
	gatherer    fetch.Gatherer
	concurrency int
	threshold   float64
	maxBullets  int
	log         *slog.Logger
	now         func() time.Time
}

// Options tunes the orchestrator. Zero values fall back to defaults.
type Options struct {
	Concurrency int              // concurrent feed fetches, default 16
	Threshold   float64          // clustering similarity threshold, default 0.60
	MaxBullets  int              // bullets per card, default 3
	Now         func() time.Time // clock override for tests
}

// NewOrchestrator builds an orchestrator over a registry and a gatherer.
func NewOrchestrator(registry *sources.Registry, gatherer fetch.Gatherer, opts Options) *Orchestrator {
	if opts.Concurrency < 1 {
		opts.Concurrency = 16
	}
	if opts.Threshold <= 0 {
		opts.Threshold = clustering.DefaultThreshold
	}
	if opts.MaxBullets < 1 {
		opts.MaxBullets = cards.DefaultMaxBullets
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}

	return &Orchestrator{
		registry:    registry,
		gatherer:    gatherer,
		concurrency: opts.Concurrency,
		threshold:   opts.Threshold,
		maxBullets:  opts.MaxBullets,
		log:         logger.Get(),
		now:         opts.Now,
	}
}

// BuildDigest runs the full pipeline for one request. The request must
// already be validated; defaults must already be applied. It never returns
// an error: every failure mode degrades to a smaller but valid response.
func (o *Orchestrator) BuildDigest(ctx context.Context, req core.DigestRequest) core.DigestResponse {
	now := o.now()

	selections := o.selectFeeds(req)
	if len(selections) == 0 {
		o.log.Warn("No feeds matched request, serving fallback digest",
			"topics", req.Topics, "regions", req.Regions)
		return FallbackDigest(req, now, "No feeds configured for the requested regions and topics; serving mock digest.")
	}

	candidates := o.gatherAll(ctx, selections, req.Range.Cutoff(now))
	if len(candidates) == 0 {
		o.log.Warn("Zero articles gathered, serving fallback digest",
			"feeds", len(selections), "range", req.Range)
		return FallbackDigest(req, now, "No articles gathered from the matched feeds; serving mock digest.")
	}

	deduped := DedupeByCanonicalURL(candidates)
	refined := topics.Filter(deduped, req.Topics)
	clusters := clustering.Cluster(refined, o.threshold)
	assembled := o.assembleCards(clusters, req)
	ranked := Rank(assembled)
	passed, status, notes := ApplyQAGate(ranked)

	o.log.Info("Digest built",
		"gathered", len(candidates),
		"deduped", len(deduped),
		"refined", len(refined),
		"clusters", len(clusters),
		"cards", len(passed),
		"qa_status", status,
	)

	return core.DigestResponse{
		SchemaVersion: core.SchemaVersion,
		GeneratedAt:   now,
		QAStatus:      status,
		Request:       req,
		Cards:         passed,
		QANotes:       notes,
	}
}

// selectFeeds resolves the registry feeds for the request and applies the
// optional publisher allowlist.
func (o *Orchestrator) selectFeeds(req core.DigestRequest) []sources.Selection {
	selections := o.registry.FeedsFor(req.Regions, req.Topics)
	if len(req.Publishers) == 0 {
		return selections
	}

	allowed := make(map[string]bool, len(req.Publishers))
	for _, p := range req.Publishers {
		allowed[p] = true
	}
	var kept []sources.Selection
	for _, sel := range selections {
		if allowed[sel.Publisher.Name] {
			kept = append(kept, sel)
		}
	}
	return kept
}

// gatherAll fetches all selected feeds through a bounded worker pool and
// joins before returning, so the pure stages see a complete snapshot. Result
// order follows selection order regardless of fetch completion order.
func (o *Orchestrator) gatherAll(ctx context.Context, selections []sources.Selection, cutoff time.Time) []core.ArticleCandidate {
	results := make([][]core.ArticleCandidate, len(selections))
	sem := make(chan struct{}, o.concurrency)
	var wg sync.WaitGroup

	for i, sel := range selections {
		wg.Add(1)
		go func(i int, sel sources.Selection) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = o.gatherer.Gather(ctx, sel, cutoff)
		}(i, sel)
	}
	wg.Wait()

	var all []core.ArticleCandidate
	for _, r := range results {
		all = append(all, r...)
	}
	return all
}

// assembleCards converts clusters into cards while enforcing the request
// caps: a topic at its per-topic cap skips further clusters of that topic,
// and assembly stops once max_cards is reached. Clusters arrive newest-lead
// first, so the caps keep the most recent stories.
func (o *Orchestrator) assembleCards(clusters [][]core.ArticleCandidate, req core.DigestRequest) []core.DigestCard {
	var (
		assembled []core.DigestCard
		perTopic  = make(map[core.Topic]int)
	)

	for _, cluster := range clusters {
		if len(assembled) >= req.MaxCards {
			break
		}
		topic := cluster[0].Topic
		if perTopic[topic] >= req.MaxCardsPerTopic {
			continue
		}
		assembled = append(assembled, cards.Assemble(cluster, o.maxBullets))
		perTopic[topic]++
	}

	return assembled
}
