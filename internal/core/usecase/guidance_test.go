package usecase

import (
	"reflect"
	"strings"
	"testing"

	"github.com/mlazarev/campaign-engine/internal/core/domain"
)

func photographyProfile(company string) domain.BusinessProfile {
	return domain.BusinessProfile{
		CompanyName:       company,
		Industry:          "Photography",
		BusinessType:      domain.BusinessTypeSmallBusiness,
		TargetAudience:    "engaged couples",
		DescriptionSource: domain.SourceDescriptionOnly,
	}
}

func TestDeriveIncludesIndustryBaseTags(t *testing.T) {
	deriver := NewGuidanceDeriver(mustTable(t))

	guidance, ok := deriver.Derive(photographyProfile(domain.UnknownCompanyName))
	if !ok {
		t.Fatalf("expected guidance for Photography")
	}

	if !containsTag(guidance.SuggestedTags, "#Photography") {
		t.Fatalf("expected #Photography in %v", guidance.SuggestedTags)
	}
	if !containsTag(guidance.SuggestedTags, "#WeddingPhotographer") {
		t.Fatalf("expected #WeddingPhotographer in %v", guidance.SuggestedTags)
	}
	if len(guidance.SuggestedThemes) == 0 {
		t.Fatalf("expected suggested themes")
	}
	if guidance.CreativeDirection == "" {
		t.Fatalf("expected creative direction")
	}
}

func TestDeriveAppendsBrandTagsLast(t *testing.T) {
	deriver := NewGuidanceDeriver(mustTable(t))

	guidance, ok := deriver.Derive(photographyProfile("Silver Birch Studio"))
	if !ok {
		t.Fatalf("expected guidance")
	}

	if !containsTag(guidance.SuggestedTags, "#SilverBirchStudio") {
		t.Fatalf("expected brand tag in %v", guidance.SuggestedTags)
	}

	// Industry-base tags outrank brand tags: the brand tag must come after
	// every base tag.
	brandIdx := indexOfTag(guidance.SuggestedTags, "#SilverBirchStudio")
	baseIdx := indexOfTag(guidance.SuggestedTags, "#Photography")
	if brandIdx < baseIdx {
		t.Fatalf("brand tag ordered before base tag: %v", guidance.SuggestedTags)
	}
	if len(guidance.SuggestedTags) > 10 {
		t.Fatalf("suggested tags above cap: %d", len(guidance.SuggestedTags))
	}
}

func TestDeriveSkipsBrandTagsForUnknownCompany(t *testing.T) {
	deriver := NewGuidanceDeriver(mustTable(t))

	guidance, _ := deriver.Derive(photographyProfile("Unknown"))
	for _, tag := range guidance.SuggestedTags {
		if strings.Contains(tag, "Unknown") {
			t.Fatalf("unexpected brand tag for unknown company: %v", guidance.SuggestedTags)
		}
	}
}

func TestDeriveIsDeterministic(t *testing.T) {
	deriver := NewGuidanceDeriver(mustTable(t))
	profile := photographyProfile("Silver Birch Studio")
	profile.Products = []string{"wedding albums", "portrait sessions"}

	first, ok := deriver.Derive(profile)
	if !ok {
		t.Fatalf("expected guidance")
	}
	for i := 0; i < 5; i++ {
		again, _ := deriver.Derive(profile)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("guidance differs between identical derivations")
		}
	}
}

func TestDeriveAbsentForUnmatchedIndustry(t *testing.T) {
	deriver := NewGuidanceDeriver(mustTable(t))

	if _, ok := deriver.Derive(domain.BusinessProfile{Industry: "General"}); ok {
		t.Fatalf("expected absent guidance for General")
	}
}

func TestDeriveCarriesProductContext(t *testing.T) {
	deriver := NewGuidanceDeriver(mustTable(t))
	profile := photographyProfile("Silver Birch Studio")
	profile.Products = []string{"wedding albums"}

	guidance, _ := deriver.Derive(profile)
	if !reflect.DeepEqual(guidance.ProductContext.PrimaryProducts, []string{"wedding albums"}) {
		t.Fatalf("expected products carried into product context, got %v", guidance.ProductContext.PrimaryProducts)
	}
	if guidance.ProductContext.BrandPersonality == "" {
		t.Fatalf("expected brand personality from taxonomy")
	}
	if len(guidance.ProductContext.VisualThemes) == 0 {
		t.Fatalf("expected visual themes from taxonomy")
	}
}

func containsTag(tags []string, want string) bool {
	return indexOfTag(tags, want) >= 0
}

func indexOfTag(tags []string, want string) int {
	for i, tag := range tags {
		if strings.EqualFold(tag, want) {
			return i
		}
	}
	return -1
}
