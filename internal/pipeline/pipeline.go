// Package pipeline orchestrates a full classification run: corpus-wide
// passes (graph, bursts), a per-author fan-out across the analyzers, the
// evidence fusion, and the atomic write-back of scores and the run report.
// A run is a pure function of the current corpus snapshot.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"
	"gorm.io/gorm"

	"observatory/internal/analysis/anomaly"
	"observatory/internal/analysis/burst"
	"observatory/internal/analysis/classifier"
	"observatory/internal/analysis/graphcent"
	"observatory/internal/analysis/signature"
	"observatory/internal/analysis/stylometry"
	"observatory/internal/analysis/timing"
	"observatory/internal/config"
	"observatory/internal/middleware"
	"observatory/internal/models"
	"observatory/internal/observability"
	"observatory/internal/repository"
)

// Runner wires the analyzers to the store and drives a run end to end.
type Runner struct {
	cfg *config.Config

	corpus       repository.CorpusRepository
	interactions repository.InteractionRepository
	actors       repository.ActorRepository

	timing    *timing.Analyzer
	hours     *timing.HoursAnalyzer
	style     *stylometry.Extractor
	matcher   *signature.Matcher
	graph     *graphcent.Analyzer
	bursts    *burst.Detector
	anomalies *anomaly.Detector
	fuse      *classifier.Classifier

	reports *ReportWriter
}

// NewRunner builds a runner from the configuration. Optional capabilities
// (POS tagging, anomaly detection) are resolved here, once, not per author.
func NewRunner(cfg *config.Config, db *gorm.DB) (*Runner, error) {
	registry, err := signature.LoadRegistry()
	if err != nil {
		return nil, fmt.Errorf("load signature registry: %w", err)
	}

	var tagger stylometry.POSTagger
	if cfg.EnablePOS {
		tagger = stylometry.NewProseTagger()
	} else {
		observability.NewAnalyzerLogger("pos").LogUnavailable(context.Background(), "disabled by configuration")
	}

	th := cfg.Thresholds
	return &Runner{
		cfg:          cfg,
		corpus:       repository.NewCorpusRepository(db),
		interactions: repository.NewInteractionRepository(db),
		actors:       repository.NewActorRepository(db),
		timing:       timing.NewAnalyzer(th),
		hours:        timing.NewHoursAnalyzer(th),
		style:        stylometry.NewExtractor(th, tagger),
		matcher:      signature.NewMatcher(registry),
		graph:        graphcent.NewAnalyzer(th),
		bursts:       burst.NewDetector(th),
		anomalies:    anomaly.NewDetector(th),
		fuse:         classifier.New(th),
		reports:      NewReportWriter(cfg.ReportDir),
	}, nil
}

// authorOutcome is one author's fan-out result before the population-level
// anomaly pass.
type authorOutcome struct {
	classification models.Classification
	scores         models.ActorScores
	sample         *anomaly.Sample
}

// Run executes one full classification pass and returns the report.
func (r *Runner) Run(ctx context.Context) (*models.RunReport, error) {
	runID := uuid.NewString()
	ctx = middleware.WithRunID(ctx, runID)
	start := time.Now()

	report, err := r.run(ctx, runID)
	observability.PipelineRunDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		observability.PipelineRunsTotal.WithLabelValues("failure").Inc()
		return nil, err
	}
	observability.PipelineRunsTotal.WithLabelValues("success").Inc()
	return report, nil
}

func (r *Runner) run(ctx context.Context, runID string) (*models.RunReport, error) {
	authors, err := r.corpus.ListAuthors(ctx)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	slog.InfoContext(ctx, "pipeline run started", "authors", len(authors))

	netScores, netOK, err := r.computeGraph(ctx)
	if err != nil {
		return nil, err
	}
	burstReport, burstOK, err := r.computeBursts(ctx)
	if err != nil {
		return nil, err
	}

	outcomes, err := r.fanOut(ctx, authors, netScores, burstReport)
	if err != nil {
		return nil, err
	}
	sort.Slice(outcomes, func(i, j int) bool {
		return outcomes[i].classification.Author < outcomes[j].classification.Author
	})

	anomalyRan := r.applyAnomaly(ctx, outcomes)

	for i := range outcomes {
		o := &outcomes[i]
		if err := r.actors.UpdateScores(ctx, o.classification.Author, o.scores); err != nil {
			return nil, fmt.Errorf("write back scores for %s: %w", o.classification.Author, err)
		}
	}

	report := &models.RunReport{
		RunID:        runID,
		GeneratedAt:  time.Now().UTC(),
		AccountCount: len(outcomes),
		Capabilities: map[string]bool{
			"graph":   netOK,
			"burst":   burstOK,
			"anomaly": anomalyRan,
			"pos":     r.cfg.EnablePOS,
		},
		Counts:  make(map[models.Verdict]int),
		Results: make([]models.Classification, 0, len(outcomes)),
	}
	for _, o := range outcomes {
		report.Counts[o.classification.Verdict]++
		report.Results = append(report.Results, o.classification)
	}
	publishVerdictGauge(report.Counts)

	if err := r.reports.Write(report); err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}
	r.reports.Mirror(ctx, report)

	slog.InfoContext(ctx, "pipeline run finished",
		"accounts", report.AccountCount, "counts", report.Counts)
	return report, nil
}

func (r *Runner) computeGraph(ctx context.Context) (map[string]graphcent.Centrality, bool, error) {
	defer observability.TrackAnalyzer("graph")()

	edges, err := r.interactions.ListEdges(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("list interaction edges: %w", err)
	}
	gEdges := make([]graphcent.Edge, 0, len(edges))
	for _, e := range edges {
		gEdges = append(gEdges, graphcent.Edge{From: e.AuthorFrom, To: e.AuthorTo, Weight: float64(e.Weight)})
	}

	scores, ok := r.graph.Compute(gEdges)
	if !ok {
		observability.NewAnalyzerLogger("graph").LogUnavailable(ctx, "interaction graph below minimum size")
	}
	return scores, ok, nil
}

func (r *Runner) computeBursts(ctx context.Context) (*burst.Report, bool, error) {
	defer observability.TrackAnalyzer("burst")()

	events, err := r.corpus.AllCommentEvents(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("list comment events: %w", err)
	}
	bEvents := make([]burst.Event, 0, len(events))
	for _, e := range events {
		bEvents = append(bEvents, burst.Event{PostID: e.PostID, Author: e.Author, At: e.At})
	}

	report, ok := r.bursts.Detect(bEvents)
	if !ok {
		observability.NewAnalyzerLogger("burst").LogUnavailable(ctx, "comment corpus below minimum size")
	}
	return report, ok, nil
}

// fanOut analyzes every author across a bounded worker pool. Authors are
// independent units of work; the first repository error cancels the run.
func (r *Runner) fanOut(ctx context.Context, authors []string, net map[string]graphcent.Centrality, bursts *burst.Report) ([]authorOutcome, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan string)
	var (
		mu       sync.Mutex
		outcomes []authorOutcome
		firstErr error
	)

	var wg sync.WaitGroup
	for w := 0; w < r.cfg.AnalysisWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for author := range jobs {
				out, err := r.analyzeAuthor(ctx, author, net, bursts)
				mu.Lock()
				if err != nil {
					if firstErr == nil {
						firstErr = err
						cancel()
					}
				} else {
					outcomes = append(outcomes, out)
				}
				mu.Unlock()
			}
		}()
	}

dispatch:
	for _, author := range authors {
		select {
		case jobs <- author:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return outcomes, nil
}

func (r *Runner) analyzeAuthor(ctx context.Context, author string, net map[string]graphcent.Centrality, bursts *burst.Report) (authorOutcome, error) {
	pairs, err := r.corpus.ResponsePairs(ctx, author)
	if err != nil {
		return authorOutcome{}, fmt.Errorf("response pairs for %s: %w", author, err)
	}
	samples := make([]timing.Sample, 0, len(pairs))
	for _, p := range pairs {
		samples = append(samples, timing.Sample{CommentAt: p.CommentAt, PostAt: p.PostAt})
	}

	stop := observability.TrackAnalyzer("timing")
	timingRes := r.timing.Analyze(samples)
	stop()
	observability.AuthorsAnalyzed.WithLabelValues("timing", string(timingRes.Quality)).Inc()

	stamps, err := r.corpus.ActivityTimestamps(ctx, author)
	if err != nil {
		return authorOutcome{}, fmt.Errorf("activity timestamps for %s: %w", author, err)
	}
	hoursRes := r.hours.Analyze(stamps)
	observability.AuthorsAnalyzed.WithLabelValues("hours", string(hoursRes.Quality)).Inc()

	texts, err := r.corpus.AuthorTexts(ctx, author)
	if err != nil {
		return authorOutcome{}, fmt.Errorf("texts for %s: %w", author, err)
	}

	stop = observability.TrackAnalyzer("stylometry")
	features := r.style.Extract(texts)
	stop()
	styleQuality := models.QualityInsufficient
	if features != nil {
		styleQuality = models.QualityHigh
	}
	observability.AuthorsAnalyzed.WithLabelValues("stylometry", string(styleQuality)).Inc()

	attribution := r.matcher.Match(features, texts)

	posts, err := r.corpus.PostsByAuthor(ctx, author)
	if err != nil {
		return authorOutcome{}, fmt.Errorf("posts for %s: %w", author, err)
	}
	comments, err := r.corpus.CommentsByAuthor(ctx, author)
	if err != nil {
		return authorOutcome{}, fmt.Errorf("comments for %s: %w", author, err)
	}
	postBodies := make([]string, 0, len(posts))
	for _, p := range posts {
		if p.Content != "" {
			postBodies = append(postBodies, p.Content)
		}
	}
	commentBodies := make([]string, 0, len(comments))
	for _, c := range comments {
		if c.Content != "" {
			commentBodies = append(commentBodies, c.Content)
		}
	}

	outcome := r.fuse.Classify(classifier.Input{
		Timing:        &timingRes,
		Hours:         &hoursRes,
		Style:         features,
		PostBodies:    postBodies,
		CommentBodies: commentBodies,
	})

	sub := make(map[string]float64)
	var scores models.ActorScores
	if c, ok := net[author]; ok {
		sub["network_score"] = c.NetworkScore
		scores.NetworkScore = c.NetworkScore
	}
	if bursts != nil {
		if s, ok := bursts.Accounts[author]; ok {
			sub["burst_score"] = s.Score
			scores.BurstScore = s.Score
		}
	}
	if features != nil {
		sub["lexical_score"] = features.LexicalScore
		scores.LexicalScore = features.LexicalScore
	}

	return authorOutcome{
		classification: models.Classification{
			Author:          author,
			Verdict:         outcome.Verdict,
			Confidence:      outcome.Confidence,
			ModelFamily:     attribution.Family,
			ModelConfidence: attribution.Confidence,
			Evidence:        outcome.Evidence,
			SubScores:       sub,
		},
		scores: scores,
		sample: anomalySample(author, pairs, features, stamps, len(texts)),
	}, nil
}

// applyAnomaly runs the population-level deviation pass and folds the scores
// into the outcomes. Reports whether the pass actually ran.
func (r *Runner) applyAnomaly(ctx context.Context, outcomes []authorOutcome) bool {
	logger := observability.NewAnalyzerLogger("anomaly")
	if !r.cfg.EnableAnomaly {
		logger.LogUnavailable(ctx, "disabled by configuration")
		return false
	}

	defer observability.TrackAnalyzer("anomaly")()
	var samples []anomaly.Sample
	for _, o := range outcomes {
		if o.sample != nil {
			samples = append(samples, *o.sample)
		}
	}

	results, ok := r.anomalies.Score(samples)
	if !ok {
		logger.LogUnavailable(ctx, "population below minimum size")
		return false
	}

	for i := range outcomes {
		o := &outcomes[i]
		if res, found := results[o.classification.Author]; found {
			o.classification.SubScores["anomaly_score"] = res.Score
			o.scores.AnomalyScore = res.Score
		}
	}
	return true
}

// anomalySample builds the account's deviation feature vector, or nil when
// the account lacks the minimum activity for the vector to be meaningful.
func anomalySample(author string, pairs []repository.ResponsePair, features *stylometry.Features, stamps []time.Time, textCount int) *anomaly.Sample {
	var deltas []float64
	for _, p := range pairs {
		d := p.CommentAt.Sub(p.PostAt).Seconds()
		if d > 0 && d <= 86400 {
			deltas = append(deltas, d)
		}
	}
	if len(deltas) < 2 || textCount < 2 {
		return nil
	}

	avg := stat.Mean(deltas, nil)
	std := math.Sqrt(stat.PopVariance(deltas, nil))
	min := deltas[0]
	for _, d := range deltas {
		min = math.Min(min, d)
	}

	var vocab float64
	if features != nil {
		vocab = features.VocabRichness
	}
	uniformity, nightRatio := hourShape(stamps)

	return &anomaly.Sample{
		Account:  author,
		Features: anomaly.Vector(avg, min, std, vocab, uniformity, nightRatio, textCount, len(deltas)),
	}
}

// hourShape computes hour-histogram uniformity and the share of activity in
// UTC 00-06, over whatever stamps exist. Unlike the hours analyzer this has
// no sample minimum; the anomaly eligibility gate covers that.
func hourShape(stamps []time.Time) (uniformity, nightRatio float64) {
	if len(stamps) == 0 {
		return 0, 0
	}
	var histogram [24]int
	var night int
	for _, t := range stamps {
		h := t.UTC().Hour()
		histogram[h]++
		if h < 7 {
			night++
		}
	}
	n := float64(len(stamps))
	var entropy float64
	for _, count := range histogram {
		if count == 0 {
			continue
		}
		p := float64(count) / n
		entropy -= p * math.Log2(p)
	}
	return entropy / math.Log2(24), float64(night) / n
}

func publishVerdictGauge(counts map[models.Verdict]int) {
	for _, v := range []models.Verdict{
		models.VerdictAIAgent, models.VerdictHumanOperator, models.VerdictMixed,
		models.VerdictScriptedBot, models.VerdictUnknown, models.VerdictInsufficientData,
	} {
		observability.VerdictCounts.WithLabelValues(string(v)).Set(float64(counts[v]))
	}
}
