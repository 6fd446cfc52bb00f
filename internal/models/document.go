package models

import (
	"sort"
	"time"
)

// Document status values. Status transitions are caller-managed: the
// generator always writes StatusDraft and regeneration never changes the
// status of an existing record.
const (
	StatusDraft     = "draft"
	StatusInReview  = "in_review"
	StatusApproved  = "approved"
	StatusPublished = "published"
)

// Section keys used by the document compiler. Order within the document is
// carried by Section.Order, not by these constants.
const (
	SectionExecutiveSummary     = "executive_summary"
	SectionCompanyOverview      = "company_overview"
	SectionMarketAnalysis       = "market_analysis"
	SectionFinancialAnalysis    = "financial_analysis"
	SectionInvestmentHighlights = "investment_highlights"
	SectionROIProjections       = "roi_projections"
	SectionRiskFactors          = "risk_factors"
	SectionAppendices           = "appendices"
)

// RequiredSections must all be present and non-empty before a document is
// considered exportable.
var RequiredSections = []string{
	SectionExecutiveSummary,
	SectionCompanyOverview,
	SectionMarketAnalysis,
	SectionFinancialAnalysis,
	SectionROIProjections,
}

// ContentKind discriminates the SectionContent variants.
type ContentKind string

const (
	// ContentText is a markdown text block.
	ContentText ContentKind = "text"
	// ContentList is an ordered sequence of nested content items.
	ContentList ContentKind = "list"
	// ContentKeyed is an ordered label -> content mapping.
	ContentKeyed ContentKind = "keyed"
)

// LabeledContent is one entry of a keyed block. A slice preserves insertion
// order, which a map would not.
type LabeledContent struct {
	Label   string         `json:"label"`
	Content SectionContent `json:"content"`
}

// SectionContent is a tagged variant: exactly one of Text, Items or Block is
// meaningful, selected by Kind. Formatting code switches on Kind rather than
// inspecting the payload.
type SectionContent struct {
	Kind  ContentKind      `json:"kind"`
	Text  string           `json:"text,omitempty"`
	Items []SectionContent `json:"items,omitempty"`
	Block []LabeledContent `json:"block,omitempty"`
}

// TextContent builds a text variant.
func TextContent(text string) SectionContent {
	return SectionContent{Kind: ContentText, Text: text}
}

// ListContent builds a list variant.
func ListContent(items ...SectionContent) SectionContent {
	return SectionContent{Kind: ContentList, Items: items}
}

// TextList builds a list variant from plain strings.
func TextList(items []string) SectionContent {
	content := make([]SectionContent, 0, len(items))
	for _, item := range items {
		content = append(content, TextContent(item))
	}
	return SectionContent{Kind: ContentList, Items: content}
}

// KeyedContent builds a keyed-block variant.
func KeyedContent(entries ...LabeledContent) SectionContent {
	return SectionContent{Kind: ContentKeyed, Block: entries}
}

// IsEmpty reports whether the content carries nothing renderable.
func (c SectionContent) IsEmpty() bool {
	switch c.Kind {
	case ContentText:
		return c.Text == ""
	case ContentList:
		return len(c.Items) == 0
	case ContentKeyed:
		return len(c.Block) == 0
	default:
		return true
	}
}

// Section is one ordered unit of the document. Order is unique across the
// document and defines the render sequence.
type Section struct {
	Title   string         `json:"title"`
	Content SectionContent `json:"content"`
	Order   int            `json:"order"`
}

// CIMDocument is the assembled Confidential Information Memorandum: ordered
// sections plus generation metadata. Created fresh on every generation call;
// the pipeline holds no cross-request state.
type CIMDocument struct {
	ID          string              `json:"id" badgerhold:"key"`
	Title       string              `json:"title"`
	CompanyName string              `json:"company_name"`
	Industry    string              `json:"industry"`
	TemplateID  string              `json:"template_id"`
	Status      string              `json:"status"`
	Sections    map[string]*Section `json:"sections"`

	// Series is the normalized financial series the analysis ran on, kept
	// on the document so the renderer can chart it at export time.
	Series FinancialSeries `json:"series"`

	GeneratedAt time.Time `json:"generated_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OrderedSections returns the sections sorted by ascending Order. Insertion
// order of the Sections map is irrelevant to the render sequence.
func (d *CIMDocument) OrderedSections() []*Section {
	sections := make([]*Section, 0, len(d.Sections))
	for _, s := range d.Sections {
		sections = append(sections, s)
	}
	sort.Slice(sections, func(i, j int) bool { return sections[i].Order < sections[j].Order })
	return sections
}

// MissingSections returns the keys of required sections that are absent or
// empty. An empty return value means the document is exportable.
func (d *CIMDocument) MissingSections() []string {
	var missing []string
	for _, key := range RequiredSections {
		section, ok := d.Sections[key]
		if !ok || section == nil || section.Content.IsEmpty() {
			missing = append(missing, key)
		}
	}
	return missing
}

// RenderedOutput is the paginated export of a document. It is produced per
// export call and never persisted by the pipeline.
type RenderedOutput struct {
	Data        []byte    `json:"-"`
	ContentType string    `json:"content_type"`
	Pages       int       `json:"pages"`
	Engine      string    `json:"engine"`
	ChartDrawn  bool      `json:"chart_drawn"`
	RenderedAt  time.Time `json:"rendered_at"`
}
