package ports

import (
	"context"

	"github.com/mlazarev/campaign-engine/internal/core/domain"
)

// WebsiteEvidenceExtractor distills business facts from the supplied URLs.
// It never returns an error: any fetch or parse problem is absorbed and
// reported as empty evidence with ok=false.
type WebsiteEvidenceExtractor interface {
	Extract(ctx context.Context, links domain.WebsiteLinks) (evidence domain.WebsiteEvidence, ok bool)
}

// ContentGenerator produces post drafts for a campaign. It may return fewer
// drafts than requested together with a nil error (partial success); a
// non-nil error with zero drafts means the collaborator failed entirely.
type ContentGenerator interface {
	Generate(ctx context.Context, profile domain.BusinessProfile, guidance *domain.CampaignGuidance, postCount int, platform domain.Platform) ([]domain.ContentDraft, error)
}

// CampaignQueue publishes/consumes async campaign jobs.
type CampaignQueue interface {
	PublishCampaignRequested(ctx context.Context, req domain.CampaignRequest) error
	SubscribeCampaignRequested(ctx context.Context, handler func(context.Context, domain.CampaignRequest) error) error
}

// CredentialStore is the mutable key-to-value association for process-wide
// credentials. Adapters read it at the start of any call that needs it.
type CredentialStore interface {
	Get(name string) string
	Set(name, value string)
}

// ResultExporter writes a completed campaign to a review artifact and
// returns its location.
type ResultExporter interface {
	Export(ctx context.Context, result domain.WorkflowResult) (string, error)
}
