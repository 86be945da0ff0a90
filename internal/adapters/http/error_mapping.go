package httpadapter

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/mlazarev/campaign-engine/internal/core/domain"
)

func newCampaignID() string {
	return uuid.NewString()
}

func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrTemporary):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func mapWorkflowErrorToHTTPStatus(workflowErr *domain.WorkflowError) int {
	if workflowErr == nil {
		return http.StatusInternalServerError
	}
	switch workflowErr.Kind {
	case domain.ErrorKindInvalidInput:
		return http.StatusBadRequest
	case domain.ErrorKindContentGeneration:
		return http.StatusBadGateway
	case domain.ErrorKindCanceled:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
