// Package classify assigns a news title to a class by keyword substring match.
package classify

import (
	"strings"

	"github.com/zappabad/lojistik/internal/news"
)

// Rule is the keyword table and presentation of one class.
type Rule struct {
	Keywords []string
	Icon     string
	Style    string
}

// Verdict is the classification of a single title.
type Verdict struct {
	Class news.Classification
	Icon  string
	Style string
}

// Classifier matches titles against keyword tables in precedence order.
type Classifier struct {
	rules   map[news.Classification]Rule
	neutral Rule
}

// New builds a Classifier. Keywords are lowercased; rules for
// news.ClassNeutral only contribute presentation.
func New(rules map[news.Classification]Rule) *Classifier {
	c := &Classifier{
		rules:   make(map[news.Classification]Rule, len(rules)),
		neutral: DefaultRules()[news.ClassNeutral],
	}
	for class, r := range rules {
		kw := make([]string, 0, len(r.Keywords))
		for _, k := range r.Keywords {
			if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
				kw = append(kw, k)
			}
		}
		r.Keywords = kw
		if class == news.ClassNeutral {
			c.neutral = r
			continue
		}
		c.rules[class] = r
	}
	return c
}

// Classify returns the first class in precedence whose table has a keyword
// contained in the lowercased title. Matching is plain substring
// containment, so "war" matches "warehouse".
func (c *Classifier) Classify(title string) Verdict {
	lower := strings.ToLower(title)
	for _, class := range news.Precedence {
		r, ok := c.rules[class]
		if !ok {
			continue
		}
		for _, k := range r.Keywords {
			if strings.Contains(lower, k) {
				return Verdict{Class: class, Icon: r.Icon, Style: r.Style}
			}
		}
	}
	return Verdict{Class: news.ClassNeutral, Icon: c.neutral.Icon, Style: c.neutral.Style}
}

// DefaultRules returns the shipping keyword tables.
func DefaultRules() map[news.Classification]Rule {
	return map[news.Classification]Rule{
		news.ClassRisk: {
			Keywords: []string{"strike", "war", "attack", "fire", "sink", "houthi", "delay", "crash", "sanction", "ban", "crisis", "conflict", "tariff", "collision"},
			Icon:     "⚠",
			Style:    "bold red",
		},
		news.ClassCargo: {
			Keywords: []string{"soybean", "grain", "lng", "oil", "container", "vessel", "freight", "iron ore", "coal", "wheat", "export"},
			Icon:     "📦",
			Style:    "bold yellow",
		},
		news.ClassPositive: {
			Keywords: []string{"profit", "surge", "record", "deal", "growth", "boom", "dividend", "buy"},
			Icon:     "💰",
			Style:    "bold green",
		},
		news.ClassNeutral: {
			Icon:  "•",
			Style: "white",
		},
	}
}
