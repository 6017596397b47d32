package pagelens

// Heading is a single heading (h1-h6) in document order.
type Heading struct {
	Tag  string `json:"tag"`
	Text string `json:"text"`
}

// Keyword is a single keyword with its frequency and density.
type Keyword struct {
	Keyword string  `json:"keyword"`
	Count   int     `json:"count"`
	Density float64 `json:"density"`
}

// Readability holds the Flesch Reading Ease score and the counts it was
// computed from. FleschReadingEase is nil when the document has no words
// or sentences to score.
type Readability struct {
	FleschReadingEase *float64 `json:"fleschReadingEase"`
	Sentences         int      `json:"sentences"`
	Words             int      `json:"words"`
	Syllables         int      `json:"syllables"`
}

// ArticleData holds structured data extracted from an article page.
type ArticleData struct {
	Title           string    `json:"title"`
	MetaDescription string    `json:"metaDescription,omitempty"`
	Headings        []Heading `json:"headings,omitempty"`
	Paragraphs      []string  `json:"paragraphs"`
	Links           []string  `json:"links,omitempty"`
	Stats           TextStats `json:"stats"`
}

// Text returns the concatenated paragraph text of the article.
func (a *ArticleData) Text() string {
	return joinNonEmpty(a.Paragraphs, " ")
}

// AnalysisText returns the text that word, sentence, and keyword metrics
// are computed over: heading texts followed by paragraph text, in document
// order.
func (a *ArticleData) AnalysisText() string {
	parts := make([]string, 0, len(a.Headings)+len(a.Paragraphs))
	for _, h := range a.Headings {
		parts = append(parts, h.Text)
	}
	parts = append(parts, a.Paragraphs...)
	return joinNonEmpty(parts, " ")
}

// ProductData holds structured data extracted from a product listing.
// Fields that no heuristic could resolve are left at their zero value and
// reported as caveats, never as errors.
type ProductData struct {
	Name        string     `json:"name,omitempty"`
	Brand       string     `json:"brand,omitempty"`
	Price       PriceValue `json:"price"`
	MRP         PriceValue `json:"mrp"`
	Discount    *float64   `json:"discount,omitempty"`
	Rating      *float64   `json:"rating,omitempty"`
	RatingScale float64    `json:"ratingScale,omitempty"`
	ReviewCount *int       `json:"reviewCount,omitempty"`
	Features    []string   `json:"features,omitempty"`
}

// ComputeDiscount sets Discount to (MRP-Price)/MRP when both amounts are
// present and MRP is positive, and clears it otherwise.
func (p *ProductData) ComputeDiscount() {
	p.Discount = nil
	if p.Price.Amount == nil || p.MRP.Amount == nil || *p.MRP.Amount <= 0 {
		return
	}
	d := (*p.MRP.Amount - *p.Price.Amount) / *p.MRP.Amount
	p.Discount = &d
}

// SEOResult holds the outcome of SEO analysis for a document.
type SEOResult struct {
	Title           string      `json:"title"`
	MetaDescription string      `json:"metaDescription"`
	Headings        []Heading   `json:"headings,omitempty"`
	TopKeywords     []Keyword   `json:"topKeywords"`
	Readability     Readability `json:"readability"`
	Suggestions     []string    `json:"suggestions"`
	AIRewrite       *string     `json:"aiRewrite,omitempty"`
}

// Result is the envelope attached to a done job. At most one of Article or
// Product is populated depending on the mode; seo mode populates neither.
// SEO is populated for article and seo modes. Caveats record every non-fatal degradation encountered
// while producing the result.
type Result struct {
	Article         *ArticleData `json:"article,omitempty"`
	Product         *ProductData `json:"product,omitempty"`
	SEO             *SEOResult   `json:"seo,omitempty"`
	AISummary       *string      `json:"aiSummary,omitempty"`
	ContentMarkdown string       `json:"contentMarkdown,omitempty"`
	ContentHash     string       `json:"contentHash,omitempty"`
	Caveats         []string     `json:"caveats"`
}

// AddCaveat appends a non-fatal annotation to the result.
func (r *Result) AddCaveat(caveat string) {
	if caveat == "" {
		return
	}
	r.Caveats = append(r.Caveats, caveat)
}

func joinNonEmpty(parts []string, sep string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += sep
		}
		out += p
	}
	return out
}
