package tracker

import (
	"context"

	"github.com/Adda-Baaj/launch-harvester/internal/domain"
	"github.com/Adda-Baaj/launch-harvester/pkg/publishers"
	"github.com/Adda-Baaj/launch-harvester/pkg/spacex"
)

// LaunchSource is the subset of the SpaceX client a harvest pass needs.
type LaunchSource interface {
	NextLaunch(ctx context.Context) (*spacex.Launch, error)
	LatestLaunches(ctx context.Context, filter spacex.LaunchFilter) ([]spacex.Launch, error)
	Launchpad(ctx context.Context, id string) (*spacex.Launchpad, error)
	Payloads(ctx context.Context, ids []string) ([]spacex.Payload, error)
}

// ArticleScraper extracts OG metadata from a launch's press article.
type ArticleScraper interface {
	Scrape(ctx context.Context, url string) (*domain.ArticleMeta, error)
}

// EventPublisher publishes launch events downstream and reports how many sinks accepted them.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}

// Deduper remembers which launch states were already published.
type Deduper interface {
	SeenLaunch(key string) (bool, error)
	MarkLaunch(key string) error
}
