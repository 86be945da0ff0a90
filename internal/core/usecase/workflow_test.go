package usecase

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/mlazarev/campaign-engine/internal/core/domain"
)

type contentGenFake struct {
	drafts []domain.ContentDraft
	err    error
	panics bool
	calls  int
}

func (f *contentGenFake) Generate(_ context.Context, _ domain.BusinessProfile, _ *domain.CampaignGuidance, postCount int, platform domain.Platform) ([]domain.ContentDraft, error) {
	f.calls++
	if f.panics {
		panic("collaborator exploded")
	}
	if f.drafts != nil || f.err != nil {
		return f.drafts, f.err
	}
	drafts := make([]domain.ContentDraft, 0, postCount)
	for i := 0; i < postCount; i++ {
		drafts = append(drafts, domain.ContentDraft{
			Index:    i,
			Content:  "draft number " + string(rune('a'+i)),
			Platform: platform,
		})
	}
	return drafts, nil
}

func newExecutor(t *testing.T, website *websiteFake, contentGen *contentGenFake) *WorkflowExecutor {
	t.Helper()
	table := mustTable(t)
	return NewWorkflowExecutor(
		NewProfileResolver(table, website),
		NewGuidanceDeriver(table),
		NewHashtagGenerator(table),
		contentGen,
		0,
		nil,
		nil,
	)
}

func photographyRequest() domain.CampaignRequest {
	return domain.CampaignRequest{
		ID:                  "campaign-1",
		BusinessDescription: "Wedding photography studio for modern couples, portraits and headshots",
		TargetAudience:      "engaged couples",
		Objective:           "bookings",
		CampaignType:        "awareness",
		PostCount:           3,
		Platform:            domain.PlatformInstagram,
	}
}

func TestRunHappyPath(t *testing.T) {
	exec := newExecutor(t, &websiteFake{}, &contentGenFake{})

	result := exec.Run(context.Background(), photographyRequest())

	if !result.Success {
		t.Fatalf("expected success, got %+v", result.Error)
	}
	if result.BusinessAnalysis == nil || result.BusinessAnalysis.Profile.Industry != "Photography" {
		t.Fatalf("expected photography analysis, got %+v", result.BusinessAnalysis)
	}
	if result.BusinessAnalysis.Guidance == nil {
		t.Fatalf("expected embedded guidance")
	}
	if len(result.GeneratedContent) != 3 {
		t.Fatalf("expected 3 items, got %d", len(result.GeneratedContent))
	}
	for i, item := range result.GeneratedContent {
		if item.Index != i {
			t.Fatalf("expected index %d, got %d", i, item.Index)
		}
		if len(item.Hashtags) < domain.MinHashtags {
			t.Fatalf("item %d below hashtag floor: %v", i, item.Hashtags)
		}
		// Guidance tags dominate whenever present.
		if item.Hashtags[0] != result.BusinessAnalysis.Guidance.SuggestedTags[0] {
			t.Fatalf("expected guidance tag first, got %v", item.Hashtags)
		}
	}
}

func TestRunEmptyDescriptionFailsFast(t *testing.T) {
	contentGen := &contentGenFake{}
	exec := newExecutor(t, &websiteFake{}, contentGen)

	result := exec.Run(context.Background(), domain.CampaignRequest{BusinessDescription: "   "})

	if result.Success {
		t.Fatalf("expected failure")
	}
	if result.Error == nil || result.Error.Kind != domain.ErrorKindInvalidInput {
		t.Fatalf("expected invalid_input, got %+v", result.Error)
	}
	if contentGen.calls != 0 {
		t.Fatalf("content generator must not run on precondition violation")
	}
}

func TestRunPartialContentGenerationKeepsSuccessfulDrafts(t *testing.T) {
	contentGen := &contentGenFake{
		drafts: []domain.ContentDraft{
			{Index: 0, Content: "first", Platform: domain.PlatformInstagram},
			{Index: 2, Content: "third", Platform: domain.PlatformInstagram},
		},
		err: errors.New("one draft failed"),
	}
	exec := newExecutor(t, &websiteFake{}, contentGen)

	result := exec.Run(context.Background(), photographyRequest())

	if !result.Success {
		t.Fatalf("partial success must not fail the workflow: %+v", result.Error)
	}
	if len(result.GeneratedContent) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result.GeneratedContent))
	}
	if result.GeneratedContent[0].Index != 0 || result.GeneratedContent[1].Index != 2 {
		t.Fatalf("expected original indices preserved, got %+v", result.GeneratedContent)
	}
	if !hasNoteContaining(result.Notes, "2 of 3") {
		t.Fatalf("expected partial note, got %v", result.Notes)
	}
}

func TestRunTotalContentGenerationFailure(t *testing.T) {
	contentGen := &contentGenFake{err: errors.New("model unavailable"), drafts: []domain.ContentDraft{}}
	exec := newExecutor(t, &websiteFake{}, contentGen)

	result := exec.Run(context.Background(), photographyRequest())

	if result.Success {
		t.Fatalf("expected failure")
	}
	if result.Error.Kind != domain.ErrorKindContentGeneration {
		t.Fatalf("expected content_generation_failed, got %s", result.Error.Kind)
	}
	if result.Error.State != domain.StateContentGeneration {
		t.Fatalf("expected failure state recorded, got %s", result.Error.State)
	}
	// Profiling already succeeded; the analysis is kept for diagnostics.
	if result.BusinessAnalysis == nil {
		t.Fatalf("expected analysis on generation failure")
	}
}

func TestRunGuidanceAbsenceIsNotAFailure(t *testing.T) {
	exec := newExecutor(t, &websiteFake{}, &contentGenFake{})

	req := photographyRequest()
	req.BusinessDescription = "Professional Services"
	result := exec.Run(context.Background(), req)

	if !result.Success {
		t.Fatalf("expected success without guidance, got %+v", result.Error)
	}
	if result.BusinessAnalysis.Guidance != nil {
		t.Fatalf("expected absent guidance")
	}
	for _, item := range result.GeneratedContent {
		if len(item.Hashtags) < domain.MinHashtags {
			t.Fatalf("fallback tiers must reach floor, got %v", item.Hashtags)
		}
	}
	if !hasNoteContaining(result.Notes, "no campaign guidance") {
		t.Fatalf("expected guidance note, got %v", result.Notes)
	}
}

func TestRunUnreachableWebsiteAddsNote(t *testing.T) {
	exec := newExecutor(t, &websiteFake{ok: false}, &contentGenFake{})

	req := photographyRequest()
	req.Links = domain.WebsiteLinks{Website: "https://unreachable.example"}
	result := exec.Run(context.Background(), req)

	if !result.Success {
		t.Fatalf("unreachable website must not fail workflow: %+v", result.Error)
	}
	if result.BusinessAnalysis.Profile.DescriptionSource != domain.SourceDescriptionPlusURL {
		t.Fatalf("expected description_plus_url, got %s", result.BusinessAnalysis.Profile.DescriptionSource)
	}
	if !hasNoteContaining(result.Notes, "website evidence unavailable") {
		t.Fatalf("expected evidence note, got %v", result.Notes)
	}
}

func TestRunCollaboratorPanicBecomesFailedResult(t *testing.T) {
	exec := newExecutor(t, &websiteFake{}, &contentGenFake{panics: true})

	result := exec.Run(context.Background(), photographyRequest())

	if result.Success {
		t.Fatalf("expected failure")
	}
	if result.Error.Kind != domain.ErrorKindInternal {
		t.Fatalf("expected internal kind, got %s", result.Error.Kind)
	}
}

func TestRunCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := newExecutor(t, &websiteFake{}, &contentGenFake{})
	result := exec.Run(ctx, photographyRequest())

	if result.Success {
		t.Fatalf("expected failure on canceled context")
	}
	if result.Error.Kind != domain.ErrorKindCanceled {
		t.Fatalf("expected canceled kind, got %s", result.Error.Kind)
	}
}

func TestRunIsIdempotentWithDeterministicCollaborators(t *testing.T) {
	first := newExecutor(t, &websiteFake{}, &contentGenFake{}).Run(context.Background(), photographyRequest())
	second := newExecutor(t, &websiteFake{}, &contentGenFake{}).Run(context.Background(), photographyRequest())

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical inputs produced different results")
	}
}

func TestRunNormalizesPostCount(t *testing.T) {
	contentGen := &contentGenFake{}
	exec := newExecutor(t, &websiteFake{}, contentGen)

	req := photographyRequest()
	req.PostCount = 0
	result := exec.Run(context.Background(), req)

	if len(result.GeneratedContent) != defaultPostCount {
		t.Fatalf("expected default post count %d, got %d", defaultPostCount, len(result.GeneratedContent))
	}
}

func TestRunUsesConfiguredDefaultPostCount(t *testing.T) {
	table := mustTable(t)
	contentGen := &contentGenFake{}
	exec := NewWorkflowExecutor(
		NewProfileResolver(table, &websiteFake{}),
		NewGuidanceDeriver(table),
		NewHashtagGenerator(table),
		contentGen,
		5,
		nil,
		nil,
	)

	req := photographyRequest()
	req.PostCount = 0
	result := exec.Run(context.Background(), req)

	if len(result.GeneratedContent) != 5 {
		t.Fatalf("expected configured post count 5, got %d", len(result.GeneratedContent))
	}

	// An explicit request count still wins over the configured default.
	req.PostCount = 2
	result = exec.Run(context.Background(), req)
	if len(result.GeneratedContent) != 2 {
		t.Fatalf("expected requested post count 2, got %d", len(result.GeneratedContent))
	}
}

func hasNoteContaining(notes []string, fragment string) bool {
	for _, note := range notes {
		if strings.Contains(note, fragment) {
			return true
		}
	}
	return false
}
