package goquery

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pagelens/pagelens"
)

const maxFeatures = 20

// priceSelectors are common price containers, in priority order.
var priceSelectors = []string{
	"[itemprop=price]",
	"meta[itemprop=price]",
	".price",
	".product-price",
	".price-current",
	".priceSale",
	"#price",
	"#priceblock_ourprice",
	".offer-price",
	".product-price__amount",
}

// mrpSelectors locate the list price / MRP, usually struck through.
var mrpSelectors = []string{
	".mrp",
	".list-price",
	".price-old",
	".price-was",
	"del",
	"s",
	"strike",
}

var featureSelectors = []string{
	"#feature-bullets li",
	".features li",
	".product-features li",
	".specs li",
	"ul.features li",
}

var (
	priceLabelRe  = regexp.MustCompile(`(?i)\bprice\s*[:=]\s*((?:[₹$€£¥₩₽₺₫฿₴]|[A-Z]{3} )?\s*[0-9][0-9.,\s]*[0-9]|[0-9])`)
	mrpLabelRe    = regexp.MustCompile(`(?i)\b(?:MRP|M\.R\.P\.?|list price|was)\s*[:=]?\s*((?:[₹$€£¥₩₽₺₫฿₴]|[A-Z]{3} )?\s*[0-9][0-9.,\s]*[0-9]|[0-9])`)
	ratingScaleRe = regexp.MustCompile(`([0-9]{1,2}(?:\.[0-9]+)?)\s*/\s*(5|10)\b`)
	ratingWordRe  = regexp.MustCompile(`([0-9](?:\.[0-9]+)?)\s*(?:stars?|★|out of)`)
	reviewsRe     = regexp.MustCompile(`([0-9][0-9,]*)\s*(?:customer )?(?:reviews?|ratings?)`)
)

// ExtractProduct pulls product fields from the selected content region.
// Each field runs an ordered list of heuristics and the first plausible
// value wins; fields no heuristic resolves are reported as caveats, never
// as errors.
func ExtractProduct(doc *Document, region *goquery.Selection, currencies pagelens.CurrencyTable) (*pagelens.ProductData, []string) {
	var caveats []string
	p := &pagelens.ProductData{RatingScale: 5}

	regionText := collapseWhitespace(region.Text())

	p.Name = extractName(doc, region)
	if p.Name == "" {
		caveats = append(caveats, "product name not found")
	}

	p.Brand = extractBrand(doc, region)
	if p.Brand == "" {
		caveats = append(caveats, "product brand not found")
	}

	p.Price = extractPrice(doc, region, regionText, currencies)
	if p.Price.Amount == nil {
		caveats = append(caveats, "product price not found")
	}

	p.MRP = extractMRP(region, regionText, currencies)
	p.ComputeDiscount()

	if rating, scale, ok := extractRating(doc, region, regionText); ok {
		p.Rating, p.RatingScale = clampRating(rating, scale), scale
	} else {
		caveats = append(caveats, "product rating not found")
	}

	if count, ok := extractReviewCount(doc, region, regionText); ok {
		p.ReviewCount = &count
	}

	p.Features = extractFeatures(region)

	return p, caveats
}

func extractName(doc *Document, region *goquery.Selection) string {
	if name := firstText(region, "[itemprop=name]"); name != "" {
		return name
	}
	if name := firstText(region, "h1"); name != "" {
		return name
	}
	if name := doc.Meta("og:title"); name != "" {
		return name
	}
	return doc.Title()
}

func extractBrand(doc *Document, region *goquery.Selection) string {
	if brand := contentOrText(region.Find("[itemprop=brand]").First()); brand != "" {
		return brand
	}
	if brand := firstText(region, ".brand"); brand != "" {
		return brand
	}
	return doc.Meta("product:brand", "og:brand")
}

func extractPrice(doc *Document, region *goquery.Selection, regionText string, currencies pagelens.CurrencyTable) pagelens.PriceValue {
	// 1) microdata and common price containers
	for _, sel := range priceSelectors {
		text := contentOrText(region.Find(sel).First())
		if text == "" {
			continue
		}
		if pv := pagelens.ParsePrice(text, currencies); pv.Amount != nil {
			if pv.Currency == "" {
				pv.Currency = microdataCurrency(region)
			}
			return pv
		}
	}

	// 2) OpenGraph / product meta
	if amount := doc.Meta("product:price:amount", "og:price:amount"); amount != "" {
		if pv := pagelens.ParsePrice(amount, currencies); pv.Amount != nil {
			if cur := doc.Meta("product:price:currency", "og:price:currency"); cur != "" {
				pv.Currency = strings.ToUpper(cur)
			}
			return pv
		}
	}

	// 3) labeled "Price:" text
	if m := priceLabelRe.FindStringSubmatch(regionText); m != nil {
		if pv := pagelens.ParsePrice(m[1], currencies); pv.Amount != nil {
			pv.Raw = strings.TrimSpace(m[1])
			return pv
		}
	}

	// 4) first currency-marked pattern anywhere in the region; bare
	// numbers don't count at region scope
	if pv := pagelens.ParsePrice(regionText, currencies); pv.Currency != "" {
		return pv
	}
	return pagelens.PriceValue{}
}

func extractMRP(region *goquery.Selection, regionText string, currencies pagelens.CurrencyTable) pagelens.PriceValue {
	for _, sel := range mrpSelectors {
		text := contentOrText(region.Find(sel).First())
		if text == "" {
			continue
		}
		if pv := pagelens.ParsePrice(text, currencies); pv.Amount != nil {
			return pv
		}
	}
	if m := mrpLabelRe.FindStringSubmatch(regionText); m != nil {
		if pv := pagelens.ParsePrice(m[1], currencies); pv.Amount != nil {
			pv.Raw = strings.TrimSpace(m[1])
			return pv
		}
	}
	return pagelens.PriceValue{}
}

func extractRating(doc *Document, region *goquery.Selection, regionText string) (float64, float64, bool) {
	if text := contentOrText(region.Find("[itemprop=ratingValue]").First()); text != "" {
		if v, err := strconv.ParseFloat(strings.TrimSpace(text), 64); err == nil {
			return v, 5, true
		}
	}
	if m := ratingScaleRe.FindStringSubmatch(regionText); m != nil {
		v, err1 := strconv.ParseFloat(m[1], 64)
		scale, err2 := strconv.ParseFloat(m[2], 64)
		if err1 == nil && err2 == nil {
			return v, scale, true
		}
	}
	if m := ratingWordRe.FindStringSubmatch(regionText); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return v, 5, true
		}
	}
	return 0, 0, false
}

func extractReviewCount(doc *Document, region *goquery.Selection, regionText string) (int, bool) {
	if text := contentOrText(region.Find("[itemprop=reviewCount]").First()); text != "" {
		if n, err := strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(text), ",", "")); err == nil {
			return n, true
		}
	}
	if m := reviewsRe.FindStringSubmatch(regionText); m != nil {
		if n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", "")); err == nil {
			return n, true
		}
	}
	return 0, false
}

func extractFeatures(region *goquery.Selection) []string {
	var features []string
	seen := make(map[string]bool)
	for _, sel := range featureSelectors {
		region.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := collapseWhitespace(s.Text())
			if text == "" || seen[text] {
				return true
			}
			seen[text] = true
			features = append(features, text)
			return len(features) < maxFeatures
		})
		if len(features) > 0 {
			break
		}
	}
	return features
}

// clampRating bounds a rating to [0, scale].
func clampRating(v, scale float64) *float64 {
	if v < 0 {
		v = 0
	}
	if v > scale {
		v = scale
	}
	return &v
}

// microdataCurrency reads an itemprop=priceCurrency annotation near the price.
func microdataCurrency(region *goquery.Selection) string {
	return strings.ToUpper(contentOrText(region.Find("[itemprop=priceCurrency]").First()))
}

// contentOrText prefers a meta-style content attribute over element text.
func contentOrText(sel *goquery.Selection) string {
	if content, ok := sel.Attr("content"); ok && strings.TrimSpace(content) != "" {
		return strings.TrimSpace(content)
	}
	return collapseWhitespace(sel.Text())
}

func firstText(region *goquery.Selection, selector string) string {
	return collapseWhitespace(region.Find(selector).First().Text())
}
