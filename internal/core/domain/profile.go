package domain

import "strings"

type BusinessType string

const (
	BusinessTypeIndividualCreator BusinessType = "individual_creator"
	BusinessTypeSmallBusiness     BusinessType = "small_business"
	BusinessTypeCorporation       BusinessType = "corporation"
	BusinessTypeUnknown           BusinessType = "unknown"
)

type DescriptionSource string

const (
	SourceDescriptionOnly    DescriptionSource = "description_only"
	SourceDescriptionPlusURL DescriptionSource = "description_plus_url"
)

const UnknownCompanyName = "Unknown"

// BusinessProfile is the canonical set of facts resolved for one campaign run.
// It is immutable once produced by the resolver.
type BusinessProfile struct {
	CompanyName       string            `json:"company_name"`
	Industry          string            `json:"industry"`
	BusinessType      BusinessType      `json:"business_type"`
	TargetAudience    string            `json:"target_audience"`
	DescriptionSource DescriptionSource `json:"description_source"`
	Products          []string          `json:"products"`
}

func (p BusinessProfile) HasKnownCompanyName() bool {
	name := strings.TrimSpace(p.CompanyName)
	return name != "" && !strings.EqualFold(name, UnknownCompanyName)
}

// WebsiteLinks are the optional URLs a caller may supply alongside the
// business description. The primary website wins company-name extraction.
type WebsiteLinks struct {
	Website     string `json:"business_website,omitempty"`
	AboutPage   string `json:"about_page,omitempty"`
	ProductPage string `json:"product_page,omitempty"`
}

func (l WebsiteLinks) Empty() bool {
	return strings.TrimSpace(l.Website) == "" &&
		strings.TrimSpace(l.AboutPage) == "" &&
		strings.TrimSpace(l.ProductPage) == ""
}

// All returns the supplied URLs in fetch order, primary website first.
func (l WebsiteLinks) All() []string {
	out := make([]string, 0, 3)
	for _, raw := range []string{l.Website, l.AboutPage, l.ProductPage} {
		if url := strings.TrimSpace(raw); url != "" {
			out = append(out, url)
		}
	}
	return out
}

// WebsiteEvidence is the partial record distilled from fetched pages.
// A zero value means no usable evidence.
type WebsiteEvidence struct {
	CompanyName      string   `json:"company_name,omitempty"`
	IndustryKeywords []string `json:"industry_keywords,omitempty"`
	Products         []string `json:"products,omitempty"`
	PageExcerpt      string   `json:"page_excerpt,omitempty"`
}

func (e WebsiteEvidence) Empty() bool {
	return e.CompanyName == "" && len(e.IndustryKeywords) == 0 &&
		len(e.Products) == 0 && e.PageExcerpt == ""
}

type ProductContext struct {
	PrimaryProducts  []string `json:"primary_products"`
	VisualThemes     []string `json:"visual_themes"`
	BrandPersonality string   `json:"brand_personality"`
}

// CampaignGuidance is derived creative direction. It is read-only after
// derivation and may be entirely absent for unmatched industries.
type CampaignGuidance struct {
	SuggestedTags     []string       `json:"suggested_tags"`
	SuggestedThemes   []string       `json:"suggested_themes"`
	CreativeDirection string         `json:"creative_direction"`
	ProductContext    ProductContext `json:"product_context"`
}
