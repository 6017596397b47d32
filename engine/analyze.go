package engine

import (
	"context"
	"fmt"
	"strings"

	pb "github.com/PuerkitoBio/goquery"
	"github.com/cespare/xxhash/v2"
	"github.com/pagelens/pagelens"
	"github.com/pagelens/pagelens/goquery"
	"github.com/pagelens/pagelens/seo"
)

// Analyze runs the full extraction pipeline over the request's HTML and
// returns the assembled result. Document-level failures (blank input, no
// usable content) return an error; everything recoverable degrades into
// result caveats instead.
func (e *Engine) Analyze(ctx context.Context, req pagelens.Request) (*pagelens.Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	doc, err := goquery.Normalize(req.HTML)
	if err != nil {
		return nil, err
	}

	result := &pagelens.Result{}

	region, caveats := goquery.SelectContent(doc, req.Selector)
	for _, c := range caveats {
		result.AddCaveat(c)
	}

	switch req.Mode {
	case pagelens.ModeArticle, pagelens.ModeSEO:
		article := goquery.ExtractArticle(doc, region)

		if strings.TrimSpace(article.AnalysisText()) == "" && e.Fallback != nil {
			article = e.extractWithFallback(req.HTML, article, result)
		}
		if strings.TrimSpace(article.AnalysisText()) == "" {
			return nil, pagelens.Errorf(pagelens.EEMPTYDOC, "document contains no content")
		}

		seoResult, seoCaveats := seo.Analyze(article, e.Config)
		for _, c := range seoCaveats {
			result.AddCaveat(c)
		}
		result.SEO = seoResult

		if req.Mode == pagelens.ModeArticle {
			result.Article = article
		}

		if req.Mode == pagelens.ModeSEO && req.AIRequested {
			e.rewriteDescription(ctx, seoResult, result)
		}

		e.convertMarkdown(region, article.Text(), result)
		e.summarize(ctx, article, req.AIRequested, result)

	case pagelens.ModeProduct:
		product, productCaveats := goquery.ExtractProduct(doc, region, e.Config.CurrencyTable())
		for _, c := range productCaveats {
			result.AddCaveat(c)
		}
		result.Product = product

		regionText := strings.Join(strings.Fields(region.Text()), " ")
		e.convertMarkdown(region, regionText, result)
	}

	return result, nil
}

// extractWithFallback reruns extraction over the fallback extractor's
// cleaned content. The original article is returned unchanged when the
// fallback cannot do better.
func (e *Engine) extractWithFallback(rawHTML string, article *pagelens.ArticleData, result *pagelens.Result) *pagelens.ArticleData {
	extracted, err := e.Fallback.Extract(rawHTML)
	if err != nil || strings.TrimSpace(extracted.ContentHTML) == "" {
		return article
	}

	doc, err := goquery.Normalize(extracted.ContentHTML)
	if err != nil {
		return article
	}

	region, _ := goquery.SelectContent(doc, "")
	recovered := goquery.ExtractArticle(doc, region)
	if strings.TrimSpace(recovered.AnalysisText()) == "" {
		return article
	}

	if recovered.Title == "" {
		recovered.Title = extracted.Title
	}
	if recovered.Title == "" {
		recovered.Title = article.Title
	}
	if recovered.MetaDescription == "" {
		recovered.MetaDescription = extracted.Description
	}
	if recovered.MetaDescription == "" {
		recovered.MetaDescription = article.MetaDescription
	}

	result.AddCaveat("heuristic selection found no content: used fallback extractor")
	return recovered
}

// convertMarkdown renders the content region to markdown, hashes it, and
// flags content already seen by earlier jobs. Conversion failures degrade
// to a caveat; the hash then covers the plain text instead.
func (e *Engine) convertMarkdown(region *pb.Selection, plainText string, result *pagelens.Result) {
	content := plainText

	if e.Converter != nil {
		markdown, err := e.Converter.Convert(goquery.Render(region))
		if err != nil {
			result.AddCaveat("markdown conversion failed: " + pagelens.ErrorMessage(err))
		} else {
			result.ContentMarkdown = strings.TrimSpace(markdown)
			content = result.ContentMarkdown
		}
	}

	if strings.TrimSpace(content) == "" {
		return
	}

	result.ContentHash = HashContent(content)
	if e.Seen != nil && e.Seen.Observe(result.ContentHash) {
		result.AddCaveat("content hash seen before: possible duplicate page")
	}
}

// HashContent computes a stable xxHash hex digest of content.
func HashContent(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}
