// Package httpadapter exposes the campaign workflow over HTTP: a
// synchronous generate endpoint, an asynchronous enqueue endpoint, and a
// runtime credential update.
package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/mlazarev/campaign-engine/internal/core/domain"
	"github.com/mlazarev/campaign-engine/internal/core/ports"
)

type Router struct {
	generator   ports.CampaignGenerator
	queue       ports.CampaignQueue
	credentials ports.CredentialStore
}

func NewRouter(
	generator ports.CampaignGenerator,
	queue ports.CampaignQueue,
	credentials ports.CredentialStore,
) *Router {
	return &Router{
		generator:   generator,
		queue:       queue,
		credentials: credentials,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/campaigns/generate", rt.generateCampaign)
	mux.HandleFunc("/v1/campaigns", rt.enqueueCampaign)
	mux.HandleFunc("/v1/config/credential", rt.updateCredential)
	return requestIDMiddleware(accessLogMiddleware(mux))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type campaignPayload struct {
	BusinessDescription string              `json:"business_description"`
	TargetAudience      string              `json:"target_audience"`
	Objective           string              `json:"objective"`
	CampaignType        string              `json:"campaign_type"`
	PostCount           int                 `json:"post_count"`
	Platform            string              `json:"platform"`
	Links               domain.WebsiteLinks `json:"links"`
}

func (p campaignPayload) toRequest() domain.CampaignRequest {
	return domain.CampaignRequest{
		BusinessDescription: p.BusinessDescription,
		TargetAudience:      p.TargetAudience,
		Objective:           p.Objective,
		CampaignType:        p.CampaignType,
		PostCount:           p.PostCount,
		Platform:            domain.NormalizePlatform(p.Platform),
		Links:               p.Links,
	}
}

func decodeCampaignPayload(r *http.Request) (campaignPayload, string) {
	var payload campaignPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return payload, "invalid json"
	}
	if strings.TrimSpace(payload.BusinessDescription) == "" {
		return payload, "business_description is required"
	}
	return payload, ""
}

// generateCampaign runs the whole workflow inline and returns the result.
func (rt *Router) generateCampaign(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	payload, problem := decodeCampaignPayload(r)
	if problem != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": problem})
		return
	}

	result := rt.generator.Run(r.Context(), payload.toRequest())
	storeCampaignID(r.Context(), result.CampaignID)
	if !result.Success {
		writeJSON(w, mapWorkflowErrorToHTTPStatus(result.Error), result)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// enqueueCampaign hands the request to the worker over the queue and
// returns immediately.
func (rt *Router) enqueueCampaign(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	payload, problem := decodeCampaignPayload(r)
	if problem != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": problem})
		return
	}

	req := payload.toRequest()
	req.ID = newCampaignID()
	req.EnqueuedAt = time.Now().UTC()
	storeCampaignID(r.Context(), req.ID)

	if err := rt.queue.PublishCampaignRequested(r.Context(), req); err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{
		"campaign_id": req.ID,
		"status":      "queued",
	})
}

func (rt *Router) updateCredential(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	if strings.TrimSpace(req.Value) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "value is required"})
		return
	}

	rt.credentials.Set(req.Name, req.Value)
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
