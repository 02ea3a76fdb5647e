package service

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"cublex/internal/domain/model"

	"github.com/gosimple/slug"
)

//go:embed data/catalog.json
var defaultCatalog []byte

type seedLog struct {
	Level   string  `json:"level"`
	Message string  `json:"message"`
	Player  *string `json:"player"`
}

type adminCatalog struct {
	Stats     model.ServerStats  `json:"stats"`
	Players   []model.PlayerStat `json:"players"`
	Logs      []seedLog          `json:"logs"`
	Config    model.ServerConfig `json:"config"`
	Analytics model.Analytics    `json:"analytics"`
}

// Catalog is the configured content served by the site.
type Catalog struct {
	Server       model.ServerInfo      `json:"server"`
	Features     []model.Feature       `json:"features"`
	Community    model.CommunityStats  `json:"community"`
	Timeline     []model.TimelinePhase `json:"timeline"`
	Players      []model.Player        `json:"players"`
	Rules        []string              `json:"rules"`
	Consequences []string              `json:"consequences"`
	FAQ          []model.FAQEntry      `json:"faq"`
	News         []model.NewsItem      `json:"news"`
	Admin        adminCatalog          `json:"admin"`
}

func LoadDefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	for i := range c.Features {
		if c.Features[i].Key == "" {
			c.Features[i].Key = slug.Make(c.Features[i].Title)
		}
	}
	return &c, nil
}
