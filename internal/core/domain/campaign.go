package domain

import (
	"strings"
	"time"
)

type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformTwitter   Platform = "twitter"
)

const (
	// MinHashtags is the floor every finalized content item must reach.
	MinHashtags = 3

	defaultHashtagCap = 8
)

// HashtagCap returns the per-platform limit on finalized hashtags.
func (p Platform) HashtagCap() int {
	switch p {
	case PlatformInstagram:
		return 10
	case PlatformFacebook:
		return 8
	case PlatformLinkedIn, PlatformTwitter:
		return 5
	default:
		return defaultHashtagCap
	}
}

func NormalizePlatform(raw string) Platform {
	switch Platform(strings.ToLower(strings.TrimSpace(raw))) {
	case PlatformInstagram:
		return PlatformInstagram
	case PlatformFacebook:
		return PlatformFacebook
	case PlatformLinkedIn:
		return PlatformLinkedIn
	case PlatformTwitter:
		return PlatformTwitter
	default:
		return PlatformInstagram
	}
}

// CampaignRequest is the caller's input for one workflow run.
type CampaignRequest struct {
	ID                  string       `json:"id"`
	BusinessDescription string       `json:"business_description"`
	TargetAudience      string       `json:"target_audience,omitempty"`
	Objective           string       `json:"objective,omitempty"`
	CampaignType        string       `json:"campaign_type,omitempty"`
	PostCount           int          `json:"post_count"`
	Platform            Platform     `json:"platform"`
	Links               WebsiteLinks `json:"links"`
	EnqueuedAt          time.Time    `json:"enqueued_at,omitzero"`
}

// ContentDraft is what the content-generation collaborator returns:
// body text and platform, no hashtags yet.
type ContentDraft struct {
	Index    int      `json:"index"`
	Content  string   `json:"content"`
	Platform Platform `json:"platform"`
}

// ContentItem is a finalized post. Hashtags are attached last, after the
// content text exists.
type ContentItem struct {
	Index    int      `json:"index"`
	Content  string   `json:"content"`
	Platform Platform `json:"platform"`
	Hashtags []string `json:"hashtags"`
}

type WorkflowState string

const (
	StateStart             WorkflowState = "start"
	StateProfiling         WorkflowState = "profiling"
	StateGuidance          WorkflowState = "guidance"
	StateContentGeneration WorkflowState = "content_generation"
	StateHashtagging       WorkflowState = "hashtagging"
	StateDone              WorkflowState = "done"
	StateFailed            WorkflowState = "failed"
)

type WorkflowErrorKind string

const (
	ErrorKindInvalidInput      WorkflowErrorKind = "invalid_input"
	ErrorKindContentGeneration WorkflowErrorKind = "content_generation_failed"
	ErrorKindCanceled          WorkflowErrorKind = "canceled"
	ErrorKindInternal          WorkflowErrorKind = "internal"
)

// WorkflowError is the structured error carried by failed workflow results.
type WorkflowError struct {
	Kind    WorkflowErrorKind `json:"kind"`
	State   WorkflowState     `json:"state"`
	Message string            `json:"message"`
}

func (e *WorkflowError) Error() string {
	if e == nil {
		return "workflow error"
	}
	return string(e.Kind) + ": " + e.Message
}

// BusinessAnalysis bundles the resolved profile with the guidance derived
// from it, when any.
type BusinessAnalysis struct {
	Profile  BusinessProfile   `json:"profile"`
	Guidance *CampaignGuidance `json:"guidance,omitempty"`
}

// WorkflowResult is what every workflow run hands back to the caller.
// Error is present iff Success is false.
type WorkflowResult struct {
	CampaignID       string            `json:"campaign_id"`
	Success          bool              `json:"success"`
	BusinessAnalysis *BusinessAnalysis `json:"business_analysis,omitempty"`
	GeneratedContent []ContentItem     `json:"generated_content"`
	Notes            []string          `json:"notes,omitempty"`
	Error            *WorkflowError    `json:"error,omitempty"`
}
