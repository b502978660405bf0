package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func testNormalizer() *Normalizer {
	return &Normalizer{Phone: "+13055550100", QuotePath: "/quote/"}
}

const rawArticle = `<h1>Septic Tank Pumping in Miami, FL</h1>
<figure class="mb-8"><img src="/hero.jpg" alt=""></figure>
<nav class="toc mb-8"><h2>On this page</h2><ul><li><a href="#cost">Cost</a></li></ul></nav>
<div class="bg-blue-50 p-6"><h3>At a glance</h3><ul><li><strong>Cost</strong>: $250–$600</li></ul></div>
<h2 id="cost">What Does It Cost?</h2>
<div class="bg-green-50 p-6"><h3>Average Septic Tank Pumping Cost</h3><ul><li>Minimum Cost: $250</li><li>Maximum Cost: $1200</li></ul></div>
<h2>How It Works</h2>
<p>A licensed hauler vacuums the tank.</p>
<hr>
<h2 id="faqs">Frequently Asked Questions</h2>
<h3>How often should I pump?</h3><p>Every three to five years for most homes.</p>
<h2>Sources &amp; References</h2><div class="refs"><a href="https://example.com">EPA</a></div>`

func TestBodyIdempotent(t *testing.T) {
	n := testNormalizer()
	once := n.Body(rawArticle, "Septic Tank Pumping")
	twice := n.Body(once, "Septic Tank Pumping")
	require.Equal(t, once, twice)
}

func TestBodyRemovesExtractedBlocks(t *testing.T) {
	out := testNormalizer().Body(rawArticle, "Septic Tank Pumping")

	require.NotContains(t, out, "<h1")
	require.NotContains(t, out, "At a glance")
	require.NotContains(t, out, "On this page")
	require.NotContains(t, out, "Frequently Asked Questions")
	require.NotContains(t, out, "Sources")
	require.NotContains(t, out, "<hr")
	require.NotContains(t, out, "bg-green-50")

	require.Contains(t, out, "article-table-wrapper")
	require.Contains(t, out, "<td>$250</td><td>$1200</td><td>$450</td>")
	require.Contains(t, out, `<h2 id="how-it-works">How It Works</h2>`)
}

func TestCTAAfterCostSection(t *testing.T) {
	html := `<h2 id="cost">Cost</h2><p>Numbers.</p><h2 id="next">Next Steps</h2><p>More.</p>`
	out := testNormalizer().Body(html, "Septic Tank Pumping")

	require.Equal(t, 2, strings.Count(out, "<!-- article-cta -->"))
	mid := strings.Index(out, "Ready to Schedule Your Septic Tank Pumping?")
	next := strings.Index(out, `<h2 id="next"`)
	require.True(t, mid > 0 && mid < next, "mid CTA must land inside the cost section")
	require.Contains(t, out, "(305) 555-0100")
	require.Contains(t, out, `href="/quote/"`)
	require.Contains(t, out, "Still have questions about Septic Tank Pumping?")
}

func TestCTAFallsBackToFirstSection(t *testing.T) {
	html := `<h2>Overview</h2><p>Text.</p><h2>Details</h2><p>More.</p>`
	out := testNormalizer().Body(html, "Drain Cleaning")

	mid := strings.Index(out, "Ready to Schedule")
	details := strings.Index(out, `<h2 id="details"`)
	require.True(t, mid >= 0 && mid < details)
}

func TestCTAAppendedWithoutHeadings(t *testing.T) {
	html := `<p>Just a paragraph.</p>`
	out := testNormalizer().Body(html, "")

	require.True(t, strings.HasPrefix(out, "<p>Just a paragraph.</p>"))
	require.Equal(t, 2, strings.Count(out, "<!-- article-cta -->"))
	require.Contains(t, out, "Ready to Schedule Your Septic Service?")
}

func TestRewriteCostCardDefaults(t *testing.T) {
	html := `<div class="bg-green-50"><h3>Average Drain Field Repair Cost</h3><p>Minimum Cost: $500</p></div>`
	out := RewriteCostCard(html, "Drain Field Repair")

	require.Contains(t, out, "<td>Drain Field Repair</td>")
	require.Contains(t, out, "<td>$500</td><td>$1200</td><td>$450</td>")
	require.NotContains(t, out, "bg-green-50")
}

func TestRewriteCostCardNoDigits(t *testing.T) {
	html := `<div class="bg-green-50"><h3>Average Cost</h3><p>Call for pricing.</p></div>`
	require.Equal(t, html, RewriteCostCard(html, ""))
}

func TestEnsureHeadingIDs(t *testing.T) {
	out := EnsureHeadingIDs(`<h2>How It Works</h2><h3 id="kept">Kept</h3><h4>Why Choose Us?</h4>`)

	require.Contains(t, out, `<h2 id="how-it-works">How It Works</h2>`)
	require.Contains(t, out, `<h3 id="kept">Kept</h3>`)
	require.Contains(t, out, `<h4 id="why-choose-us">Why Choose Us?</h4>`)
}

func TestDisplayPhone(t *testing.T) {
	require.Equal(t, "(305) 555-0100", displayPhone("+13055550100"))
	require.Equal(t, "305-555", displayPhone("305-555"))
}
