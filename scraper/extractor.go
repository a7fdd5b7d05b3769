// Package scraper fetches e-lactancia pages and turns their HTML into
// medication records.
package scraper

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/giygas/lactancia-api/entities"
)

// ExtractedFields is what could be read from one detail page. Every field is
// already set to its default when the page did not provide it.
type ExtractedFields struct {
	Name           string
	RiskLevel      entities.RiskLevel
	Compatibility  string
	Recommendation string
	Alternatives   []entities.AlternativeEntry
}

// Strategy tries to read one text field from a document
type Strategy func(doc *goquery.Document) (string, bool)

// Locator finds a container element. An empty selection means not found.
type Locator func(doc *goquery.Document) *goquery.Selection

// Extractor reads a detail page through ordered fallback chains, one per field
type Extractor struct {
	Name           []Strategy
	Risk           []Locator
	Comment        []Locator
	Alternatives   []Locator
	CommentMarkers []string // keywords for the loose recommendation scan
}

// NewExtractor returns an extractor with the selector chains for e-lactancia pages
func NewExtractor() *Extractor {
	return &Extractor{
		Name: []Strategy{
			textOf("h1.term-header"),
			textOf("h1"),
			func(doc *goquery.Document) (string, bool) {
				return nonEmpty(doc.Find(".small.last-update").First().Next())
			},
		},
		Risk: []Locator{
			first(`.box.grey-box.squared[class*="risk-level"]`),
			first(`[class*="risk-level"]`),
		},
		Comment: []Locator{
			first(`.box.grey-box.squared[class*="risk-comment-level"]`),
			first(`[class*="risk-comment-level"]`),
		},
		Alternatives: []Locator{
			first(".box.grey-box.squared.risk-alt"),
			first(`[class*="risk-alt"]`),
			func(doc *goquery.Document) *goquery.Selection {
				return doc.Find("div").FilterFunction(func(_ int, s *goquery.Selection) bool {
					return strings.Contains(s.Text(), "Alternatives") && s.Find("h3").Length() > 0
				}).First()
			},
		},
		CommentMarkers: []string{"lactancia", "leche", "breastfeeding"},
	}
}

// ExtractHTML parses body and extracts it. Unparseable input yields the defaults.
func (e *Extractor) ExtractHTML(body []byte) ExtractedFields {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return defaults()
	}
	return e.Extract(doc)
}

// Extract reads every field from doc
func (e *Extractor) Extract(doc *goquery.Document) ExtractedFields {
	out := defaults()
	if doc == nil {
		return out
	}

	for _, try := range e.Name {
		if name, ok := try(doc); ok {
			out.Name = name
			break
		}
	}

	if box := locate(doc, e.Risk); box != nil {
		out.Compatibility = strings.TrimSpace(box.Find("h4").First().Text())
		out.RiskLevel = riskFromClasses(box)
	}

	if box := locate(doc, e.Comment); box != nil {
		if text := joinParagraphs(box); text != "" {
			out.Recommendation = text
		}
	} else if text, ok := e.scanParagraphs(doc); ok {
		out.Recommendation = text
	}

	if box := locate(doc, e.Alternatives); box != nil {
		out.Alternatives = alternativesIn(box)
	}

	return out
}

func defaults() ExtractedFields {
	return ExtractedFields{
		Name:           entities.DefaultMedicationName,
		RiskLevel:      entities.RiskUnknown,
		Recommendation: entities.ConsultSourceText,
		Alternatives:   []entities.AlternativeEntry{},
	}
}

func textOf(selector string) Strategy {
	return func(doc *goquery.Document) (string, bool) {
		return nonEmpty(doc.Find(selector).First())
	}
}

func nonEmpty(s *goquery.Selection) (string, bool) {
	if s.Length() == 0 {
		return "", false
	}
	text := strings.TrimSpace(s.Text())
	return text, text != ""
}

func first(selector string) Locator {
	return func(doc *goquery.Document) *goquery.Selection {
		return doc.Find(selector).First()
	}
}

func locate(doc *goquery.Document, chain []Locator) *goquery.Selection {
	for _, find := range chain {
		if s := find(doc); s != nil && s.Length() > 0 {
			return s
		}
	}
	return nil
}

// riskFromClasses maps the first risk-level<N> class token to a level
func riskFromClasses(box *goquery.Selection) entities.RiskLevel {
	class, _ := box.Attr("class")
	for _, token := range strings.Fields(class) {
		if n, ok := strings.CutPrefix(token, "risk-level"); ok {
			return entities.RiskLevelFromIndex(n)
		}
	}
	return entities.RiskUnknown
}

func joinParagraphs(box *goquery.Selection) string {
	var parts []string
	box.Find("p").Each(func(_ int, p *goquery.Selection) {
		if text := strings.TrimSpace(p.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, "\n\n")
}

// scanParagraphs returns the first long paragraph that mentions breastfeeding
func (e *Extractor) scanParagraphs(doc *goquery.Document) (string, bool) {
	var found string
	doc.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		text := strings.TrimSpace(p.Text())
		if len([]rune(text)) <= 50 {
			return true
		}
		lower := strings.ToLower(text)
		for _, marker := range e.CommentMarkers {
			if strings.Contains(lower, marker) {
				found = text
				return false
			}
		}
		return true
	})
	return found, found != ""
}

func alternativesIn(box *goquery.Selection) []entities.AlternativeEntry {
	alts := []entities.AlternativeEntry{}

	if list := box.Find("ul").First(); list.Length() > 0 {
		list.Find("li").Each(func(_ int, li *goquery.Selection) {
			link := li.Find("a").First()
			if link.Length() == 0 {
				return
			}
			name := strings.TrimSpace(link.Text())
			href, _ := link.Attr("href")
			alts = append(alts, entities.AlternativeEntry{
				Name:        name,
				URL:         href,
				Description: describe(li.Text(), name),
			})
		})
		return alts
	}

	if p := box.Find("p").First(); p.Length() > 0 {
		alts = append(alts, entities.NoAlternative(strings.TrimSpace(p.Text())))
	}
	return alts
}

// describe removes the first occurrence of name from the item text and
// strips one wrapping parenthesis on each side.
func describe(itemText, name string) string {
	text := strings.TrimSpace(strings.Replace(itemText, name, "", 1))
	if strings.HasPrefix(text, "(") || strings.HasPrefix(text, ")") {
		text = text[1:]
	}
	if strings.HasSuffix(text, "(") || strings.HasSuffix(text, ")") {
		text = text[:len(text)-1]
	}
	return strings.TrimSpace(text)
}
