package gemini

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mlazarev/campaign-engine/internal/core/domain"
)

func buildDraftsPrompt(profile domain.BusinessProfile, guidance *domain.CampaignGuidance, postCount int, platform domain.Platform) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, `You are a social media copywriter. Write %d distinct %s post drafts for the business below.
Return a strict JSON array of exactly %d objects, each with a single key "content" holding the post text.
No hashtags, no markdown, no keys other than "content".

Business:
- company: %s
- industry: %s
- type: %s
`, postCount, platform, postCount, profile.CompanyName, profile.Industry, profile.BusinessType)

	if profile.TargetAudience != "" {
		fmt.Fprintf(&builder, "- target audience: %s\n", profile.TargetAudience)
	}
	if len(profile.Products) > 0 {
		fmt.Fprintf(&builder, "- products: %s\n", strings.Join(profile.Products, ", "))
	}

	if guidance != nil {
		builder.WriteString("\nCreative direction:\n")
		fmt.Fprintf(&builder, "- %s\n", guidance.CreativeDirection)
		if len(guidance.SuggestedThemes) > 0 {
			fmt.Fprintf(&builder, "- themes to draw on: %s\n", strings.Join(guidance.SuggestedThemes, "; "))
		}
		if guidance.ProductContext.BrandPersonality != "" {
			fmt.Fprintf(&builder, "- brand personality: %s\n", guidance.ProductContext.BrandPersonality)
		}
	}

	return builder.String()
}

type draftPayload struct {
	Content string `json:"content"`
}

// parseDrafts decodes the model's JSON array. Fewer usable items than
// requested is the partial-success path; zero usable items is a failure.
func parseDrafts(raw string, postCount int, platform domain.Platform) ([]domain.ContentDraft, error) {
	var payloads []draftPayload
	if err := json.Unmarshal([]byte(extractJSONArray(raw)), &payloads); err != nil {
		return nil, fmt.Errorf("decode drafts json: %w", err)
	}

	drafts := make([]domain.ContentDraft, 0, len(payloads))
	for i, payload := range payloads {
		content := strings.TrimSpace(payload.Content)
		if content == "" {
			continue
		}
		drafts = append(drafts, domain.ContentDraft{
			Index:    i,
			Content:  content,
			Platform: platform,
		})
		if len(drafts) == postCount {
			break
		}
	}
	if len(drafts) == 0 {
		return nil, fmt.Errorf("no usable drafts in response")
	}
	return drafts, nil
}

// extractJSONArray trims any stray prose around the JSON array.
func extractJSONArray(raw string) string {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return raw
}
