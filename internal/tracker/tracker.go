package tracker

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Adda-Baaj/launch-harvester/internal/domain"
	"github.com/Adda-Baaj/launch-harvester/internal/logger"
	"github.com/Adda-Baaj/launch-harvester/pkg/publishers"
	"github.com/Adda-Baaj/launch-harvester/pkg/spacex"
)

// Options tunes a Service. Zero values disable scraping and dedup.
type Options struct {
	Filter  spacex.LaunchFilter
	Scraper ArticleScraper
	Deduper Deduper
}

// Service runs harvest passes: it fetches the next and latest launches,
// resolves their launchpad and payload references, and publishes reports for
// launch states not yet published.
type Service struct {
	source    LaunchSource
	publisher EventPublisher
	scraper   ArticleScraper
	deduper   Deduper
	filter    spacex.LaunchFilter
	log       logger.Logger
}

// NewService wires a tracker with its launch source and publisher.
func NewService(source LaunchSource, publisher EventPublisher, log logger.Logger, opts Options) *Service {
	if log == nil {
		log = &logger.NopLogger{}
	}
	filter := opts.Filter
	if filter == "" {
		filter = spacex.FilterAll
	}
	return &Service{
		source:    source,
		publisher: publisher,
		scraper:   opts.Scraper,
		deduper:   opts.Deduper,
		filter:    filter,
		log:       log,
	}
}

// Run executes one harvest pass. Failures of individual launches are joined;
// the remaining launches are still processed.
func (s *Service) Run(ctx context.Context) error {
	if s == nil || s.source == nil || s.publisher == nil {
		return fmt.Errorf("tracker service is not initialized")
	}

	var errs []error
	if err := s.runNext(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := s.runLatest(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (s *Service) runNext(ctx context.Context) error {
	launch, err := s.source.NextLaunch(ctx)
	if err != nil {
		return fmt.Errorf("fetch next launch: %w", err)
	}
	if launch == nil {
		s.log.InfoObj("no upcoming launch scheduled", "tracker_state", map[string]any{
			"stage": "next_launch",
		})
		return nil
	}
	if err := s.process(ctx, publishers.EventLaunchUpcoming, *launch); err != nil {
		s.logLaunchFailure(*launch, err)
		return err
	}
	return nil
}

func (s *Service) runLatest(ctx context.Context) error {
	launches, err := s.source.LatestLaunches(ctx, s.filter)
	if err != nil {
		return fmt.Errorf("fetch latest launches: %w", err)
	}

	var errs []error
	for _, launch := range launches {
		if ctx.Err() != nil {
			break
		}
		if err := s.process(ctx, publishers.EventLaunchResult, launch); err != nil {
			s.logLaunchFailure(launch, err)
			errs = append(errs, err)
		}
	}

	s.log.InfoObj("latest launches processed", "tracker_result", map[string]any{
		"filter":   s.filter.String(),
		"launches": len(launches),
		"failed":   len(errs),
	})
	return errors.Join(errs...)
}

func (s *Service) process(ctx context.Context, kind publishers.EventKind, launch spacex.Launch) error {
	key := reportKey(launch)
	if s.alreadyReported(key) {
		s.log.DebugObj("launch already reported", "launch_dedup", map[string]any{
			"launch_id": launch.ID,
			"key":       key,
		})
		return nil
	}

	report, err := s.buildReport(ctx, launch)
	if err != nil {
		return fmt.Errorf("build report for launch %s: %w", launch.ID, err)
	}

	delivered, err := s.publisher.Publish(ctx, publishers.NewEvent(kind, report))
	if delivered > 0 && s.deduper != nil {
		if markErr := s.deduper.MarkLaunch(key); markErr != nil {
			s.log.WarnObj("launch dedup mark failed", "dedup_error", map[string]any{
				"launch_id": launch.ID,
				"error":     markErr.Error(),
			})
		}
	}
	if err != nil {
		return fmt.Errorf("publish launch %s: %w", launch.ID, err)
	}

	s.log.InfoObj("launch report published", "launch_report", map[string]any{
		"launch_id":  launch.ID,
		"name":       launch.Name,
		"kind":       string(kind),
		"publishers": delivered,
	})
	return nil
}

func (s *Service) alreadyReported(key string) bool {
	if s.deduper == nil {
		return false
	}
	seen, err := s.deduper.SeenLaunch(key)
	if err != nil {
		s.log.WarnObj("launch dedup lookup failed", "dedup_error", map[string]any{
			"key":   key,
			"error": err.Error(),
		})
		return false
	}
	return seen
}

// buildReport resolves the launch's id references with one request per
// related entity, then optionally scrapes the press article.
func (s *Service) buildReport(ctx context.Context, launch spacex.Launch) (domain.LaunchReport, error) {
	report := newReport(launch)

	if launch.Launchpad != "" {
		pad, err := s.source.Launchpad(ctx, launch.Launchpad)
		if err != nil {
			return report, fmt.Errorf("resolve launchpad %s: %w", launch.Launchpad, err)
		}
		report.Launchpad = &domain.LaunchSite{
			ID:       pad.ID,
			Name:     pad.Name,
			FullName: pad.FullName,
			Locality: pad.Locality,
			Region:   pad.Region,
			Timezone: pad.Timezone,
		}
	}

	payloads, err := s.source.Payloads(ctx, launch.Payloads)
	if err != nil {
		return report, fmt.Errorf("resolve payloads: %w", err)
	}
	for _, p := range payloads {
		report.Payloads = append(report.Payloads, domain.PayloadInfo{
			ID:        p.ID,
			Name:      p.Name,
			Type:      p.Type,
			Orbit:     p.Orbit,
			MassKg:    p.MassKg,
			Customers: p.Customers,
		})
	}

	if s.scraper != nil && launch.Links.Article != "" {
		meta, err := s.scraper.Scrape(ctx, launch.Links.Article)
		if err != nil {
			s.log.WarnObj("article metadata scrape failed", "metadata_error", map[string]any{
				"launch_id": launch.ID,
				"url":       launch.Links.Article,
				"error":     err.Error(),
			})
		} else {
			report.Article = meta
		}
	}

	return report, nil
}

func (s *Service) logLaunchFailure(launch spacex.Launch, err error) {
	s.log.ErrorObj("launch report failed", "launch_error", map[string]any{
		"launch_id": launch.ID,
		"name":      launch.Name,
		"error":     err.Error(),
	})
}

func newReport(launch spacex.Launch) domain.LaunchReport {
	report := domain.LaunchReport{
		LaunchID:     launch.ID,
		FlightNumber: launch.FlightNumber,
		Name:         launch.Name,
		DateUTC:      launch.DateUTC,
		DateUnix:     launch.DateUnix,
		Precision:    launch.DatePrecision,
		Upcoming:     launch.Upcoming,
		Success:      launch.Success,
		Details:      launch.Details,
		Webcast:      launch.Links.Webcast,
	}
	for _, f := range launch.Failures {
		report.Failures = append(report.Failures, f.Reason)
	}
	return report
}

// reportKey changes whenever a launch is rescheduled or its outcome becomes
// known, so each state is published once.
func reportKey(launch spacex.Launch) string {
	if launch.Upcoming {
		return "launch:" + launch.ID + ":upcoming:" + strconv.FormatInt(launch.DateUnix, 10)
	}
	outcome := "unknown"
	if launch.Success != nil {
		outcome = strconv.FormatBool(*launch.Success)
	}
	return "launch:" + launch.ID + ":success:" + outcome
}
