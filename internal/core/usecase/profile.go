package usecase

import (
	"context"
	"regexp"
	"strings"

	"github.com/mlazarev/campaign-engine/internal/core/domain"
	"github.com/mlazarev/campaign-engine/internal/core/ports"
	"github.com/mlazarev/campaign-engine/internal/taxonomy"
)

const generalIndustry = "General"

// ProfileResolver merges description-derived inference with optional website
// evidence into one canonical BusinessProfile. It never fails: a generic
// description with no usable evidence still yields a profile with
// "Unknown"/"General" defaults.
type ProfileResolver struct {
	taxonomy *taxonomy.Table
	website  ports.WebsiteEvidenceExtractor
}

func NewProfileResolver(table *taxonomy.Table, website ports.WebsiteEvidenceExtractor) *ProfileResolver {
	return &ProfileResolver{
		taxonomy: table,
		website:  website,
	}
}

// Resolve builds the profile. The returned evidence reflects what the
// website extractor contributed; it is empty when no URL was supplied or
// every fetch soft-failed.
func (r *ProfileResolver) Resolve(ctx context.Context, req domain.CampaignRequest) (domain.BusinessProfile, domain.WebsiteEvidence) {
	descriptionWords := taxonomy.Tokenize(req.BusinessDescription)

	profile := domain.BusinessProfile{
		CompanyName:       companyNameFromDescription(req.BusinessDescription),
		Industry:          generalIndustry,
		BusinessType:      inferBusinessType(descriptionWords),
		TargetAudience:    strings.TrimSpace(req.TargetAudience),
		DescriptionSource: domain.SourceDescriptionOnly,
		Products:          productsFromDescription(req.BusinessDescription),
	}

	baselineScore := 0
	if entry, score, ok := r.taxonomy.MatchWords(descriptionWords); ok {
		profile.Industry = entry.Display
		baselineScore = score
	}

	if req.Links.Empty() {
		return profile, domain.WebsiteEvidence{}
	}

	profile.DescriptionSource = domain.SourceDescriptionPlusURL

	evidence, ok := r.website.Extract(ctx, req.Links)
	if !ok || evidence.Empty() {
		return profile, domain.WebsiteEvidence{}
	}

	if evidence.CompanyName != "" && !profile.HasKnownCompanyName() {
		profile.CompanyName = evidence.CompanyName
	}
	if len(profile.Products) == 0 {
		profile.Products = append([]string(nil), evidence.Products...)
	}

	// Re-run industry inference with the combined keyword set. Evidence may
	// upgrade the match to a more specific industry but never replaces a
	// stronger description-derived one.
	combined := append(append([]string(nil), descriptionWords...), evidence.IndustryKeywords...)
	if entry, score, matched := r.taxonomy.MatchWords(combined); matched && score > baselineScore {
		profile.Industry = entry.Display
	}

	return profile, evidence
}

var companyNamePattern = regexp.MustCompile(`(?:called|named)\s+"?([A-Z][A-Za-z0-9&' ]{1,40}?)"?(?:[.,;]|\s+(?:and|that|which|in|for)\b|$)`)

func companyNameFromDescription(description string) string {
	match := companyNamePattern.FindStringSubmatch(description)
	if len(match) < 2 {
		return domain.UnknownCompanyName
	}
	name := strings.TrimSpace(match[1])
	if name == "" {
		return domain.UnknownCompanyName
	}
	return name
}

var (
	creatorMarkers     = wordSet("freelance", "freelancer", "creator", "influencer", "solo", "independent", "artist", "blogger")
	corporationMarkers = wordSet("corporation", "enterprise", "corporate", "inc", "plc", "multinational", "conglomerate")
	smallBizMarkers    = wordSet("shop", "store", "studio", "boutique", "family", "local", "cafe", "salon", "bakery", "agency")
)

func inferBusinessType(words []string) domain.BusinessType {
	switch {
	case containsAny(words, corporationMarkers):
		return domain.BusinessTypeCorporation
	case containsAny(words, creatorMarkers):
		return domain.BusinessTypeIndividualCreator
	case containsAny(words, smallBizMarkers):
		return domain.BusinessTypeSmallBusiness
	default:
		return domain.BusinessTypeUnknown
	}
}

var productLeadPattern = regexp.MustCompile(`(?i)(?:sell(?:s|ing)?|offer(?:s|ing)?|specializ(?:es?|ing) in|making|make[s]?)\s+([^.!?]+)`)

// productsFromDescription pulls a short comma-separated product list out of
// phrases like "we sell candles, soaps and balms".
func productsFromDescription(description string) []string {
	match := productLeadPattern.FindStringSubmatch(description)
	if len(match) < 2 {
		return nil
	}

	segment := strings.ReplaceAll(match[1], " and ", ",")
	parts := strings.Split(segment, ",")
	products := make([]string, 0, len(parts))
	for _, part := range parts {
		product := strings.TrimSpace(part)
		if product == "" || len(taxonomy.Tokenize(product)) > 4 {
			continue
		}
		products = append(products, product)
		if len(products) == 5 {
			break
		}
	}
	return products
}

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, word := range words {
		set[word] = struct{}{}
	}
	return set
}

func containsAny(words []string, set map[string]struct{}) bool {
	for _, word := range words {
		if _, ok := set[word]; ok {
			return true
		}
	}
	return false
}
