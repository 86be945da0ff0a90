package usecase

import (
	"errors"
	"strings"

	"github.com/mlazarev/campaign-engine/internal/core/domain"
	"github.com/mlazarev/campaign-engine/internal/taxonomy"
)

// tagContext is everything a tag source may draw on for one content item.
type tagContext struct {
	profile  domain.BusinessProfile
	guidance *domain.CampaignGuidance
	content  string
}

// tagSource is one priority tier in the hashtag fallback chain. Sources are
// queried in order until the platform cap is reached; adding a tier means
// appending a source, not growing a conditional.
type tagSource interface {
	tags(ctx tagContext) []string
}

// HashtagGenerator produces the final hashtag set for one content item.
// It is a pure function of its inputs: no network, no randomness.
type HashtagGenerator struct {
	sources []tagSource
}

func NewHashtagGenerator(table *taxonomy.Table) *HashtagGenerator {
	return &HashtagGenerator{
		sources: []tagSource{
			guidanceTagSource{},
			keywordTagSource{taxonomy: table},
			fillerTagSource{},
		},
	}
}

// Generate returns an ordered, deduplicated hashtag list bounded by the
// platform cap, never fewer than the floor. Calling it with neither a usable
// profile nor content text is a programming-contract violation.
func (g *HashtagGenerator) Generate(profile domain.BusinessProfile, guidance *domain.CampaignGuidance, content string, platform domain.Platform) ([]string, error) {
	if profile.Industry == "" && strings.TrimSpace(content) == "" {
		return nil, domain.WrapError(domain.ErrInternal, "generate hashtags",
			errors.New("neither business profile nor content text provided"))
	}

	ctx := tagContext{
		profile:  profile,
		guidance: guidance,
		content:  content,
	}

	list := newTagList(platform.HashtagCap())
	for _, source := range g.sources {
		if list.full() {
			break
		}
		for _, tag := range source.tags(ctx) {
			list.add(tag)
		}
	}
	return list.items(), nil
}

// guidanceTagSource yields the campaign guidance tags verbatim, in order.
// Business-specific tags always dominate fallback-generated ones.
type guidanceTagSource struct{}

func (guidanceTagSource) tags(ctx tagContext) []string {
	if ctx.guidance == nil {
		return nil
	}
	return ctx.guidance.SuggestedTags
}

// keywordTagSource derives tags from taxonomy keywords found in the content
// text and the profile industry, then broad category tags.
type keywordTagSource struct {
	taxonomy *taxonomy.Table
}

var genericTags = []string{"#Business", "#Marketing", "#SmallBusiness"}

func (s keywordTagSource) tags(ctx tagContext) []string {
	out := make([]string, 0, 8)

	if entry, _, ok := s.taxonomy.MatchText(ctx.content); ok {
		out = append(out, entry.Tags...)
	}
	if entry, ok := s.taxonomy.ByIndustry(ctx.profile.Industry); ok {
		out = append(out, entry.Tags...)
	}
	for _, keyword := range s.taxonomy.KnownKeywords(taxonomy.Tokenize(ctx.content)) {
		out = append(out, "#"+capitalize(keyword))
	}
	return append(out, genericTags...)
}

// fillerTagSource is the last resort that lifts every item to the floor.
type fillerTagSource struct{}

var fillerTags = []string{"#Quality", "#Trusted", "#Community", "#Local"}

func (fillerTagSource) tags(tagContext) []string {
	return fillerTags
}

func capitalize(word string) string {
	if word == "" {
		return ""
	}
	return strings.ToUpper(word[:1]) + word[1:]
}

// tagList accumulates hashtags with normalization, case-insensitive
// deduplication and a hard cap, preserving insertion order.
type tagList struct {
	max  int
	seen map[string]struct{}
	out  []string
}

func newTagList(max int) *tagList {
	return &tagList{
		max:  max,
		seen: make(map[string]struct{}, max),
		out:  make([]string, 0, max),
	}
}

func (l *tagList) add(raw string) {
	if l.full() {
		return
	}
	tag := normalizeTag(raw)
	if tag == "" {
		return
	}
	key := strings.ToLower(tag)
	if _, dup := l.seen[key]; dup {
		return
	}
	l.seen[key] = struct{}{}
	l.out = append(l.out, tag)
}

func (l *tagList) full() bool {
	return len(l.out) >= l.max
}

func (l *tagList) items() []string {
	return l.out
}

// normalizeTag enforces the hashtag invariant: non-empty, "#"-prefixed, no
// whitespace.
func normalizeTag(raw string) string {
	tag := strings.TrimSpace(raw)
	tag = strings.TrimLeft(tag, "#")
	tag = strings.Join(strings.Fields(tag), "")
	if tag == "" {
		return ""
	}
	return "#" + tag
}
