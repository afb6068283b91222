// Package tooltip fetches item tooltips and parses their semi-structured
// stat text into normalized stat records.
package tooltip

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tbctxt/readycheck/internal/model"
)

// Parse converts raw tooltip markup into a fully-populated stat record.
// Malformed or empty input yields the all-zero record, never an error, and
// output depends only on the input text.
func Parse(markup string) model.StatRecord {
	stats := model.ZeroStats()
	if strings.TrimSpace(markup) == "" {
		return stats
	}

	text := plainText(markup)
	text = socketBonusRe.ReplaceAllString(text, "$1")

	for _, rule := range statRules {
		for _, m := range rule.re.FindAllStringSubmatch(text, -1) {
			v, _ := strconv.Atoi(m[1])
			stats.Add(rule.stat, v)
		}
		text = rule.re.ReplaceAllString(text, " ")
	}
	return stats
}

// plainText strips markup and collapses all whitespace (including decoded
// non-breaking spaces) to single spaces. Every tag is padded with a leading
// space first: minified tooltip markup has no whitespace between elements,
// and without the padding text from adjacent elements fuses into one token
// ("Requires Level 70</span><span>450 Armor" must not read as 70450 armor).
// goquery tolerates malformed and partial HTML.
func plainText(markup string) string {
	spaced := strings.ReplaceAll(markup, "<", " <")
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(spaced))
	if err != nil {
		// The html5 parser does not fail on malformed markup; this guards
		// against reader errors only.
		return strings.Join(strings.Fields(markup), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
