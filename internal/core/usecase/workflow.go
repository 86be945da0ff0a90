package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mlazarev/campaign-engine/internal/core/domain"
	"github.com/mlazarev/campaign-engine/internal/core/ports"
)

const (
	defaultPostCount = 3
	maxPostCount     = 10
)

// WorkflowMetrics is the observability hook the executor reports into.
type WorkflowMetrics interface {
	StartRun()
	FinishRun(status string, duration time.Duration)
	ObserveStage(stage domain.WorkflowState, duration time.Duration)
	ObserveGeneratedItems(count int)
	RecordGuidanceFallback()
}

// stepOutcome is what each transition step hands back: either advance to the
// next state or fail with a structured error.
type stepOutcome struct {
	next    domain.WorkflowState
	failure *domain.WorkflowError
}

func advance(next domain.WorkflowState) stepOutcome {
	return stepOutcome{next: next}
}

func fail(state domain.WorkflowState, kind domain.WorkflowErrorKind, format string, args ...any) stepOutcome {
	return stepOutcome{
		next: domain.StateFailed,
		failure: &domain.WorkflowError{
			Kind:    kind,
			State:   state,
			Message: fmt.Sprintf(format, args...),
		},
	}
}

// WorkflowExecutor sequences profiling, guidance derivation, content
// generation and hashtag attachment, assembling the final WorkflowResult.
// It is safe for concurrent use; each run keeps its state in a runContext.
type WorkflowExecutor struct {
	resolver     *ProfileResolver
	deriver      *GuidanceDeriver
	hashtags     *HashtagGenerator
	contentGen   ports.ContentGenerator
	defaultPosts int
	metrics      WorkflowMetrics
	logger       *slog.Logger
}

func NewWorkflowExecutor(
	resolver *ProfileResolver,
	deriver *GuidanceDeriver,
	hashtags *HashtagGenerator,
	contentGen ports.ContentGenerator,
	defaultPosts int,
	metrics WorkflowMetrics,
	logger *slog.Logger,
) *WorkflowExecutor {
	if defaultPosts <= 0 || defaultPosts > maxPostCount {
		defaultPosts = defaultPostCount
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkflowExecutor{
		resolver:     resolver,
		deriver:      deriver,
		hashtags:     hashtags,
		contentGen:   contentGen,
		defaultPosts: defaultPosts,
		metrics:      metrics,
		logger:       logger,
	}
}

// runContext carries the payload accumulated across state transitions.
type runContext struct {
	req      domain.CampaignRequest
	profile  domain.BusinessProfile
	guidance *domain.CampaignGuidance
	drafts   []domain.ContentDraft
	items    []domain.ContentItem
	notes    []string
}

// Run executes the state machine. The caller always gets a WorkflowResult:
// collaborator errors outside the documented soft-failure contracts are
// converted into a failed result at this boundary, and a panicking
// collaborator is absorbed the same way.
func (e *WorkflowExecutor) Run(ctx context.Context, req domain.CampaignRequest) (result domain.WorkflowResult) {
	start := time.Now()
	if e.metrics != nil {
		e.metrics.StartRun()
	}

	run := &runContext{req: e.normalize(req)}
	result.CampaignID = run.req.ID

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("workflow_panic", "campaign_id", run.req.ID, "panic", r)
			result = e.failedResult(run, &domain.WorkflowError{
				Kind:    domain.ErrorKindInternal,
				State:   domain.StateFailed,
				Message: fmt.Sprintf("unexpected collaborator fault: %v", r),
			})
		}
		if e.metrics != nil {
			status := "success"
			if !result.Success {
				status = string(result.Error.Kind)
			}
			e.metrics.FinishRun(status, time.Since(start))
		}
	}()

	state := domain.StateStart
	for state != domain.StateDone && state != domain.StateFailed {
		stageStart := time.Now()
		outcome := e.step(ctx, state, run)
		if e.metrics != nil {
			e.metrics.ObserveStage(state, time.Since(stageStart))
		}
		if outcome.failure != nil {
			e.logger.Warn("workflow_failed",
				"campaign_id", run.req.ID,
				"state", string(state),
				"kind", string(outcome.failure.Kind),
				"error", outcome.failure.Message,
			)
			return e.failedResult(run, outcome.failure)
		}
		state = outcome.next
	}

	e.logger.Info("workflow_done",
		"campaign_id", run.req.ID,
		"industry", run.profile.Industry,
		"items", len(run.items),
		"duration_ms", float64(time.Since(start).Microseconds())/1000.0,
	)
	if e.metrics != nil {
		e.metrics.ObserveGeneratedItems(len(run.items))
	}

	return domain.WorkflowResult{
		CampaignID: run.req.ID,
		Success:    true,
		BusinessAnalysis: &domain.BusinessAnalysis{
			Profile:  run.profile,
			Guidance: run.guidance,
		},
		GeneratedContent: run.items,
		Notes:            run.notes,
	}
}

func (e *WorkflowExecutor) step(ctx context.Context, state domain.WorkflowState, run *runContext) stepOutcome {
	if err := ctx.Err(); err != nil {
		return fail(state, domain.ErrorKindCanceled, "workflow canceled: %v", err)
	}

	switch state {
	case domain.StateStart:
		return e.validate(run)
	case domain.StateProfiling:
		return e.profile(ctx, run)
	case domain.StateGuidance:
		return e.derive(run)
	case domain.StateContentGeneration:
		return e.generateContent(ctx, run)
	case domain.StateHashtagging:
		return e.attachHashtags(run)
	default:
		return fail(state, domain.ErrorKindInternal, "unexpected workflow state %q", state)
	}
}

// validate is the only precondition check allowed to fail before profiling:
// an empty business description is reported immediately.
func (e *WorkflowExecutor) validate(run *runContext) stepOutcome {
	if strings.TrimSpace(run.req.BusinessDescription) == "" {
		return fail(domain.StateStart, domain.ErrorKindInvalidInput, "business_description must not be empty")
	}
	return advance(domain.StateProfiling)
}

// profile cannot fail: the resolver's contract guarantees a profile even
// with generic input and unreachable URLs.
func (e *WorkflowExecutor) profile(ctx context.Context, run *runContext) stepOutcome {
	profile, evidence := e.resolver.Resolve(ctx, run.req)
	run.profile = profile
	if !run.req.Links.Empty() && evidence.Empty() {
		run.notes = append(run.notes, "website evidence unavailable; profile derived from description only")
	}
	return advance(domain.StateGuidance)
}

// derive treats absent guidance as a normal outcome, not a failure; the
// hashtag generator's fallback tiers pick up the slack later.
func (e *WorkflowExecutor) derive(run *runContext) stepOutcome {
	guidance, ok := e.deriver.Derive(run.profile)
	if !ok {
		run.notes = append(run.notes, fmt.Sprintf("no campaign guidance for industry %q; hashtag fallback applies", run.profile.Industry))
		if e.metrics != nil {
			e.metrics.RecordGuidanceFallback()
		}
		return advance(domain.StateContentGeneration)
	}
	run.guidance = guidance
	return advance(domain.StateContentGeneration)
}

func (e *WorkflowExecutor) generateContent(ctx context.Context, run *runContext) stepOutcome {
	drafts, err := e.contentGen.Generate(ctx, run.profile, run.guidance, run.req.PostCount, run.req.Platform)
	if err != nil && len(drafts) == 0 {
		if domain.IsKind(err, domain.ErrInvalidInput) {
			return fail(domain.StateContentGeneration, domain.ErrorKindInvalidInput, "content generation rejected input: %v", err)
		}
		return fail(domain.StateContentGeneration, domain.ErrorKindContentGeneration, "content generation failed: %v", err)
	}
	if len(drafts) == 0 {
		return fail(domain.StateContentGeneration, domain.ErrorKindContentGeneration, "content generation returned no drafts")
	}

	// Partial success keeps whatever was produced.
	if err != nil || len(drafts) < run.req.PostCount {
		run.notes = append(run.notes, fmt.Sprintf("content generation returned %d of %d requested drafts", len(drafts), run.req.PostCount))
	}
	run.drafts = drafts
	return advance(domain.StateHashtagging)
}

// attachHashtags finalizes every draft in index order. This stage is
// deterministic and in-memory; a generator error here means a programming
// contract was violated upstream.
func (e *WorkflowExecutor) attachHashtags(run *runContext) stepOutcome {
	items := make([]domain.ContentItem, 0, len(run.drafts))
	for _, draft := range run.drafts {
		tags, err := e.hashtags.Generate(run.profile, run.guidance, draft.Content, draft.Platform)
		if err != nil {
			return fail(domain.StateHashtagging, domain.ErrorKindInternal, "hashtag generation for item %d: %v", draft.Index, err)
		}
		items = append(items, domain.ContentItem{
			Index:    draft.Index,
			Content:  draft.Content,
			Platform: draft.Platform,
			Hashtags: tags,
		})
	}
	run.items = items
	return advance(domain.StateDone)
}

func (e *WorkflowExecutor) normalize(req domain.CampaignRequest) domain.CampaignRequest {
	if strings.TrimSpace(req.ID) == "" {
		req.ID = uuid.NewString()
	}
	if req.PostCount <= 0 {
		req.PostCount = e.defaultPosts
	}
	if req.PostCount > maxPostCount {
		req.PostCount = maxPostCount
	}
	req.Platform = domain.NormalizePlatform(string(req.Platform))
	return req
}

func (e *WorkflowExecutor) failedResult(run *runContext, failure *domain.WorkflowError) domain.WorkflowResult {
	result := domain.WorkflowResult{
		CampaignID:       run.req.ID,
		Success:          false,
		GeneratedContent: []domain.ContentItem{},
		Notes:            run.notes,
		Error:            failure,
	}
	// Profiling output is still useful diagnostics on later-stage failures.
	if run.profile.Industry != "" {
		result.BusinessAnalysis = &domain.BusinessAnalysis{
			Profile:  run.profile,
			Guidance: run.guidance,
		}
	}
	return result
}
