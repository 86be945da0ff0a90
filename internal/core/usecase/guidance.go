package usecase

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/mlazarev/campaign-engine/internal/core/domain"
	"github.com/mlazarev/campaign-engine/internal/taxonomy"
)

const (
	maxSuggestedTags = 10
	maxBrandTags     = 2
)

// GuidanceDeriver converts a resolved profile into reusable creative
// direction. Derivation is best-effort: an industry outside the taxonomy
// yields absent guidance and downstream hashtag fallback applies.
// Same profile in, same guidance out; no randomness.
type GuidanceDeriver struct {
	taxonomy *taxonomy.Table
}

func NewGuidanceDeriver(table *taxonomy.Table) *GuidanceDeriver {
	return &GuidanceDeriver{taxonomy: table}
}

// Derive returns the guidance for the profile's industry, or ok=false when
// the industry has no taxonomy entry.
func (d *GuidanceDeriver) Derive(profile domain.BusinessProfile) (*domain.CampaignGuidance, bool) {
	entry, ok := d.taxonomy.ByIndustry(profile.Industry)
	if !ok {
		return nil, false
	}

	subject := "this brand"
	if profile.HasKnownCompanyName() {
		subject = profile.CompanyName
	}

	guidance := &domain.CampaignGuidance{
		SuggestedTags:     d.suggestedTags(entry, profile),
		SuggestedThemes:   append([]string(nil), entry.Themes...),
		CreativeDirection: fmt.Sprintf(entry.Direction, subject),
		ProductContext: domain.ProductContext{
			PrimaryProducts:  append([]string(nil), profile.Products...),
			VisualThemes:     append([]string(nil), entry.VisualThemes...),
			BrandPersonality: entry.BrandPersonality,
		},
	}
	return guidance, true
}

// suggestedTags combines the industry's base tags with up to two
// brand-derived tags. Base tags outrank brand tags, so when the combined set
// exceeds the cap the brand tags are dropped first.
func (d *GuidanceDeriver) suggestedTags(entry taxonomy.Entry, profile domain.BusinessProfile) []string {
	tags := newTagList(maxSuggestedTags)
	for _, tag := range entry.Tags {
		tags.add(tag)
	}
	for _, tag := range brandTags(profile.CompanyName) {
		tags.add(tag)
	}
	return tags.items()
}

// brandTags builds camel-cased hashtags from the company name, e.g.
// "Cozy Crumb Bakery" -> #CozyCrumbBakery, #TeamCozyCrumbBakery.
func brandTags(companyName string) []string {
	name := strings.TrimSpace(companyName)
	if name == "" || strings.EqualFold(name, domain.UnknownCompanyName) {
		return nil
	}

	camel := camelCase(name)
	if camel == "" {
		return nil
	}

	out := []string{"#" + camel, "#Team" + camel}
	return out[:maxBrandTags]
}

func camelCase(name string) string {
	var builder strings.Builder
	for _, word := range taxonomy.Tokenize(name) {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		builder.WriteString(string(runes))
	}
	return builder.String()
}
