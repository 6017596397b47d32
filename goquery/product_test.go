package goquery_test

import (
	"testing"

	"github.com/pagelens/pagelens"
	"github.com/pagelens/pagelens/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extractProductFrom(t *testing.T, html string) (*pagelens.ProductData, []string) {
	t.Helper()

	doc, err := goquery.Normalize(html)
	require.NoError(t, err)
	region, _ := goquery.SelectContent(doc, "")
	return goquery.ExtractProduct(doc, region, nil)
}

func TestExtractProduct(t *testing.T) {
	t.Parallel()

	t.Run("labeled MRP and price text", func(t *testing.T) {
		t.Parallel()

		product, _ := extractProductFrom(t,
			`<html><body><h1>Widget</h1><p>MRP: ₹2,000  Price: ₹1,500</p></body></html>`)

		require.NotNil(t, product.Price.Amount)
		assert.InDelta(t, 1500.00, *product.Price.Amount, 0.001)
		assert.Equal(t, "INR", product.Price.Currency)

		require.NotNil(t, product.MRP.Amount)
		assert.InDelta(t, 2000.00, *product.MRP.Amount, 0.001)

		require.NotNil(t, product.Discount)
		assert.InDelta(t, 0.25, *product.Discount, 0.001)
	})

	t.Run("microdata price outranks text scan", func(t *testing.T) {
		t.Parallel()

		product, _ := extractProductFrom(t, `<html><body>
			<h1 itemprop="name">Gadget Pro</h1>
			<meta itemprop="price" content="19.99">
			<meta itemprop="priceCurrency" content="usd">
			<p>Suggested value $99.99</p></body></html>`)

		assert.Equal(t, "Gadget Pro", product.Name)
		require.NotNil(t, product.Price.Amount)
		assert.InDelta(t, 19.99, *product.Price.Amount, 0.001)
		assert.Equal(t, "USD", product.Price.Currency)
	})

	t.Run("price class selector", func(t *testing.T) {
		t.Parallel()

		product, _ := extractProductFrom(t, `<html><body>
			<span class="product-price">€1.299,00</span></body></html>`)

		require.NotNil(t, product.Price.Amount)
		assert.InDelta(t, 1299.00, *product.Price.Amount, 0.001)
		assert.Equal(t, "EUR", product.Price.Currency)
	})

	t.Run("strikethrough list price", func(t *testing.T) {
		t.Parallel()

		product, _ := extractProductFrom(t, `<html><body>
			<span class="price">$80</span> <del>$100</del></body></html>`)

		require.NotNil(t, product.Price.Amount)
		assert.InDelta(t, 80.00, *product.Price.Amount, 0.001)
		require.NotNil(t, product.MRP.Amount)
		assert.InDelta(t, 100.00, *product.MRP.Amount, 0.001)
		require.NotNil(t, product.Discount)
		assert.InDelta(t, 0.20, *product.Discount, 0.001)
	})

	t.Run("rating with explicit scale", func(t *testing.T) {
		t.Parallel()

		product, _ := extractProductFrom(t, `<html><body>
			<h1>Thing</h1><p>Rated 8.5/10 · 1,234 reviews</p></body></html>`)

		require.NotNil(t, product.Rating)
		assert.InDelta(t, 8.5, *product.Rating, 0.001)
		assert.Equal(t, 10.0, product.RatingScale)
		require.NotNil(t, product.ReviewCount)
		assert.Equal(t, 1234, *product.ReviewCount)
	})

	t.Run("two digit rating value", func(t *testing.T) {
		t.Parallel()

		product, _ := extractProductFrom(t, `<html><body>
			<h1>Thing</h1><p>A perfect 10/10 experience</p></body></html>`)

		require.NotNil(t, product.Rating)
		assert.InDelta(t, 10.0, *product.Rating, 0.001)
		assert.Equal(t, 10.0, product.RatingScale)
	})

	t.Run("rating clamps to scale", func(t *testing.T) {
		t.Parallel()

		product, _ := extractProductFrom(t, `<html><body>
			<span itemprop="ratingValue">7.3</span></body></html>`)

		require.NotNil(t, product.Rating)
		assert.Equal(t, 5.0, *product.Rating)
		assert.Equal(t, 5.0, product.RatingScale)
	})

	t.Run("brand and features", func(t *testing.T) {
		t.Parallel()

		product, _ := extractProductFrom(t, `<html><body>
			<h1>Laptop</h1><span class="brand">Acme</span>
			<ul class="features"><li>16GB RAM</li><li>1TB SSD</li><li>16GB RAM</li></ul>
			</body></html>`)

		assert.Equal(t, "Acme", product.Brand)
		assert.Equal(t, []string{"16GB RAM", "1TB SSD"}, product.Features)
	})

	t.Run("missing fields become caveats not errors", func(t *testing.T) {
		t.Parallel()

		product, caveats := extractProductFrom(t, `<html><body><div>nothing useful</div></body></html>`)

		assert.Nil(t, product.Price.Amount)
		assert.Contains(t, caveats, "product price not found")
		assert.Contains(t, caveats, "product rating not found")
	})
}
