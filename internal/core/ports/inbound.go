package ports

import (
	"context"

	"github.com/mlazarev/campaign-engine/internal/core/domain"
)

// CampaignGenerator runs the full analysis-to-content workflow. It always
// returns a result; failures are carried inside it, never as a panic or a
// bare error escaping the boundary.
type CampaignGenerator interface {
	Run(ctx context.Context, req domain.CampaignRequest) domain.WorkflowResult
}
