// Package gemini implements the content-generation collaborator on top of
// the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/mlazarev/campaign-engine/internal/core/domain"
	"github.com/mlazarev/campaign-engine/internal/core/ports"
	"github.com/mlazarev/campaign-engine/internal/infrastructure/resilience"
)

// CredentialName is the configuration key the generator reads its API key
// from at the start of every call.
const CredentialName = "gemini_api_key"

const defaultModel = "gemini-2.0-flash"

type Generator struct {
	credentials ports.CredentialStore
	model       string
	executor    *resilience.Executor

	mu        sync.Mutex
	client    *genai.Client
	clientKey string
}

func NewGenerator(credentials ports.CredentialStore, model string, executor *resilience.Executor) *Generator {
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	return &Generator{
		credentials: credentials,
		model:       model,
		executor:    executor,
	}
}

// Generate asks the model for postCount drafts in one call and parses its
// strict-JSON response. Items that fail to parse are skipped, so a partially
// usable response yields a partial draft set rather than an error.
func (g *Generator) Generate(ctx context.Context, profile domain.BusinessProfile, guidance *domain.CampaignGuidance, postCount int, platform domain.Platform) ([]domain.ContentDraft, error) {
	client, err := g.clientForCurrentKey(ctx)
	if err != nil {
		return nil, err
	}

	prompt := buildDraftsPrompt(profile, guidance, postCount, platform)

	var raw string
	call := func(ctx context.Context) error {
		resp, err := client.Models.GenerateContent(ctx,
			g.model,
			genai.Text(prompt),
			&genai.GenerateContentConfig{
				ResponseMIMEType: "application/json",
			},
		)
		if err != nil {
			return fmt.Errorf("gemini generate: %w", err)
		}
		raw = resp.Text()
		return nil
	}

	if g.executor != nil {
		err = g.executor.Execute(ctx, "gemini.generate", call, classifyGeminiError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return nil, wrapGenerationError(err)
	}

	drafts, err := parseDrafts(raw, postCount, platform)
	if err != nil {
		return nil, domain.WrapError(domain.ErrContentGeneration, "parse drafts", err)
	}
	return drafts, nil
}

// clientForCurrentKey reads the credential store and lazily rebuilds the
// genai client when the key changed since the last call.
func (g *Generator) clientForCurrentKey(ctx context.Context) (*genai.Client, error) {
	key := strings.TrimSpace(g.credentials.Get(CredentialName))
	if key == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "gemini credential",
			errors.New("no API key configured"))
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client != nil && g.clientKey == key {
		return g.client, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: key})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	g.client = client
	g.clientKey = key
	return client, nil
}
