package service

import (
	"github.com/zappabad/lojistik/internal/news"
	"github.com/zappabad/lojistik/internal/news/classify"
	newsview "github.com/zappabad/lojistik/internal/news/view"
)

// Config holds configuration for the news service.
type Config struct {
	// Sources are scanned in order.
	Sources []news.Source
	// Rules are the keyword tables per class.
	Rules map[news.Classification]classify.Rule
	// TitleWidth is the rune width of neutral titles.
	TitleWidth int
}

// DefaultConfig returns the maritime, supply, energy and economy sources.
func DefaultConfig() Config {
	return Config{
		Sources: []news.Source{
			{Name: "gCaptain", URL: "https://gcaptain.com/feed/", Tag: "DENİZCİLİK", Color: "blue", ScanLimit: 10, ShowLimit: 2},
			{Name: "FreightWaves", URL: "https://www.freightwaves.com/feed", Tag: "TEDARİK", Color: "magenta", ScanLimit: 8, ShowLimit: 2},
			{Name: "OilPrice", URL: "https://oilprice.com/rss/main", Tag: "ENERJİ", Color: "red", ScanLimit: 6, ShowLimit: 1},
			{Name: "CNBC World", URL: "https://search.cnbc.com/rs/search/combinedcms/view.xml?partnerId=wrss01&id=100727362", Tag: "EKONOMİ", Color: "green", ScanLimit: 5, ShowLimit: 1},
		},
		Rules:      classify.DefaultRules(),
		TitleWidth: newsview.DefaultTitleWidth,
	}
}
