package tracker

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/Adda-Baaj/launch-harvester/internal/domain"
	"github.com/Adda-Baaj/launch-harvester/pkg/publishers"
	"github.com/Adda-Baaj/launch-harvester/pkg/spacex"
)

// fakeSource serves canned launches and resolves references from maps.
type fakeSource struct {
	next       *spacex.Launch
	nextErr    error
	latest     []spacex.Launch
	latestErr  error
	pads       map[string]spacex.Launchpad
	payloads   map[string]spacex.Payload
	gotFilter  spacex.LaunchFilter
	padCalls   int
	payloadIDs [][]string
}

func (f *fakeSource) NextLaunch(context.Context) (*spacex.Launch, error) {
	return f.next, f.nextErr
}

func (f *fakeSource) LatestLaunches(_ context.Context, filter spacex.LaunchFilter) ([]spacex.Launch, error) {
	f.gotFilter = filter
	return f.latest, f.latestErr
}

func (f *fakeSource) Launchpad(_ context.Context, id string) (*spacex.Launchpad, error) {
	f.padCalls++
	pad, ok := f.pads[id]
	if !ok {
		return nil, spacex.ErrNotFound
	}
	return &pad, nil
}

func (f *fakeSource) Payloads(_ context.Context, ids []string) ([]spacex.Payload, error) {
	f.payloadIDs = append(f.payloadIDs, ids)
	out := make([]spacex.Payload, 0, len(ids))
	for _, id := range ids {
		p, ok := f.payloads[id]
		if !ok {
			return nil, errors.New("payload " + id + " missing")
		}
		out = append(out, p)
	}
	return out, nil
}

// fakePublisher records published events and can inject errors.
type fakePublisher struct {
	mu      sync.Mutex
	events  []publishers.Event
	errOnID string
}

func (f *fakePublisher) Publish(_ context.Context, evt publishers.Event) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if evt.Report.LaunchID == f.errOnID {
		return 0, errors.New("boom")
	}
	f.events = append(f.events, evt)
	return 1, nil
}

// fakeDeduper tracks seen keys.
type fakeDeduper struct {
	seen    map[string]bool
	failKey string
}

func (f *fakeDeduper) SeenLaunch(key string) (bool, error) {
	if key == f.failKey {
		return false, errors.New("lookup failed")
	}
	return f.seen[key], nil
}

func (f *fakeDeduper) MarkLaunch(key string) error {
	if f.seen == nil {
		f.seen = make(map[string]bool)
	}
	f.seen[key] = true
	return nil
}

type fakeScraper struct {
	meta *domain.ArticleMeta
	err  error
}

func (f fakeScraper) Scrape(context.Context, string) (*domain.ArticleMeta, error) {
	return f.meta, f.err
}

func boolPtr(b bool) *bool { return &b }

func sampleSource() *fakeSource {
	upcoming := spacex.Launch{ID: "next", Name: "Crew-9", Upcoming: true, DateUnix: 1700000000, Launchpad: "pad-a", Payloads: []string{"p1"}}
	return &fakeSource{
		next: &upcoming,
		latest: []spacex.Launch{
			{ID: "old-1", Name: "Starlink", Success: boolPtr(true), Launchpad: "pad-a", Payloads: []string{"p1", "p2"}},
			{ID: "old-2", Name: "FalconSat", Success: boolPtr(false), Failures: []spacex.Failure{{Time: 33, Reason: "merlin engine failure"}}},
		},
		pads: map[string]spacex.Launchpad{
			"pad-a": {ID: "pad-a", Name: "SLC 40", Timezone: "America/New_York"},
		},
		payloads: map[string]spacex.Payload{
			"p1": {ID: "p1", Name: "Dragon"},
			"p2": {ID: "p2", Name: "Starlink v2"},
		},
	}
}

func TestServiceRunPublishesResolvedReports(t *testing.T) {
	source := sampleSource()
	pub := &fakePublisher{}
	deduper := &fakeDeduper{}

	svc := NewService(source, pub, nil, Options{Filter: spacex.FilterSuccess, Deduper: deduper})
	if err := svc.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if source.gotFilter != spacex.FilterSuccess {
		t.Fatalf("filter = %s", source.gotFilter)
	}
	if len(pub.events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(pub.events))
	}

	first := pub.events[0]
	if first.Kind != publishers.EventLaunchUpcoming || first.Report.LaunchID != "next" {
		t.Fatalf("unexpected first event %+v", first)
	}
	if first.Report.Launchpad == nil || first.Report.Launchpad.Name != "SLC 40" {
		t.Fatalf("launchpad not resolved: %+v", first.Report.Launchpad)
	}
	if len(first.Report.Payloads) != 1 || first.Report.Payloads[0].Name != "Dragon" {
		t.Fatalf("payloads not resolved: %+v", first.Report.Payloads)
	}

	failed := pub.events[2]
	if failed.Kind != publishers.EventLaunchResult || failed.Report.Launchpad != nil {
		t.Fatalf("unexpected failed-launch event %+v", failed)
	}
	if len(failed.Report.Failures) != 1 || failed.Report.Failures[0] != "merlin engine failure" {
		t.Fatalf("failures = %v", failed.Report.Failures)
	}

	// one launchpad request per launch that references one
	if source.padCalls != 2 {
		t.Fatalf("expected 2 launchpad requests, got %d", source.padCalls)
	}
	if !deduper.seen["launch:next:upcoming:1700000000"] || !deduper.seen["launch:old-2:success:false"] {
		t.Fatalf("keys not marked: %v", deduper.seen)
	}
}

func TestServiceRunSkipsReportedLaunches(t *testing.T) {
	source := sampleSource()
	pub := &fakePublisher{}
	deduper := &fakeDeduper{seen: map[string]bool{
		"launch:next:upcoming:1700000000": true,
		"launch:old-1:success:true":       true,
	}}

	if err := NewService(source, pub, nil, Options{Deduper: deduper}).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(pub.events) != 1 || pub.events[0].Report.LaunchID != "old-2" {
		t.Fatalf("expected only old-2 published, got %+v", pub.events)
	}
}

func TestServiceRunRepublishesRescheduledLaunch(t *testing.T) {
	source := sampleSource()
	source.latest = nil
	deduper := &fakeDeduper{seen: map[string]bool{"launch:next:upcoming:1690000000": true}}
	pub := &fakePublisher{}

	if err := NewService(source, pub, nil, Options{Deduper: deduper}).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(pub.events) != 1 {
		t.Fatalf("expected rescheduled launch to be republished, got %d events", len(pub.events))
	}
}

func TestServiceRunContinuesAfterLaunchFailure(t *testing.T) {
	source := sampleSource()
	delete(source.payloads, "p2")
	pub := &fakePublisher{errOnID: "old-2"}
	deduper := &fakeDeduper{}

	err := NewService(source, pub, nil, Options{Deduper: deduper}).Run(context.Background())
	if err == nil {
		t.Fatal("expected joined error")
	}
	if !strings.Contains(err.Error(), "payload p2 missing") || !strings.Contains(err.Error(), "publish launch old-2") {
		t.Fatalf("unexpected error %v", err)
	}
	if len(pub.events) != 1 || pub.events[0].Report.LaunchID != "next" {
		t.Fatalf("expected next launch still published, got %+v", pub.events)
	}
	if deduper.seen["launch:old-2:success:false"] {
		t.Fatal("undelivered launch must not be marked")
	}
}

func TestServiceRunHandlesNoUpcomingLaunch(t *testing.T) {
	source := sampleSource()
	source.next = nil
	source.latest = nil
	pub := &fakePublisher{}

	if err := NewService(source, pub, nil, Options{}).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(pub.events) != 0 {
		t.Fatalf("expected nothing published, got %d", len(pub.events))
	}
}

func TestServiceRunPropagatesSourceErrors(t *testing.T) {
	source := sampleSource()
	source.nextErr = errors.New("next down")
	source.latestErr = errors.New("latest down")

	err := NewService(source, &fakePublisher{}, nil, Options{}).Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "next down") || !strings.Contains(err.Error(), "latest down") {
		t.Fatalf("expected both source errors, got %v", err)
	}
}

func TestServiceRunUnresolvableLaunchpad(t *testing.T) {
	source := sampleSource()
	source.latest = nil
	source.next.Launchpad = "gone"

	err := NewService(source, &fakePublisher{}, nil, Options{}).Run(context.Background())
	if !errors.Is(err, spacex.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestServiceAttachesArticleMetadata(t *testing.T) {
	source := sampleSource()
	source.latest = nil
	source.next.Links.Article = "https://example.com/crew-9"
	pub := &fakePublisher{}

	scraper := fakeScraper{meta: &domain.ArticleMeta{URL: "https://example.com/crew-9", Title: "Crew-9 ready"}}
	if err := NewService(source, pub, nil, Options{Scraper: scraper}).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if pub.events[0].Report.Article == nil || pub.events[0].Report.Article.Title != "Crew-9 ready" {
		t.Fatalf("article not attached: %+v", pub.events[0].Report.Article)
	}

	pub = &fakePublisher{}
	failing := fakeScraper{err: errors.New("403")}
	if err := NewService(source, pub, nil, Options{Scraper: failing}).Run(context.Background()); err != nil {
		t.Fatalf("scrape failures must not fail the pass: %v", err)
	}
	if pub.events[0].Report.Article != nil {
		t.Fatal("expected no article on scrape failure")
	}
}

func TestDedupLookupErrorTreatsLaunchAsNew(t *testing.T) {
	source := sampleSource()
	source.latest = nil
	pub := &fakePublisher{}
	deduper := &fakeDeduper{failKey: "launch:next:upcoming:1700000000"}

	if err := NewService(source, pub, nil, Options{Deduper: deduper}).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(pub.events) != 1 {
		t.Fatalf("expected launch published despite lookup error, got %d", len(pub.events))
	}
}

func TestRunRequiresInitializedService(t *testing.T) {
	var svc *Service
	if err := svc.Run(context.Background()); err == nil {
		t.Fatal("expected error for nil service")
	}
	if err := NewService(nil, &fakePublisher{}, nil, Options{}).Run(context.Background()); err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestReportKey(t *testing.T) {
	cases := []struct {
		launch spacex.Launch
		want   string
	}{
		{spacex.Launch{ID: "a", Upcoming: true, DateUnix: 42}, "launch:a:upcoming:42"},
		{spacex.Launch{ID: "b", Success: boolPtr(true)}, "launch:b:success:true"},
		{spacex.Launch{ID: "c"}, "launch:c:success:unknown"},
	}
	for _, tc := range cases {
		if got := reportKey(tc.launch); got != tc.want {
			t.Errorf("reportKey(%s) = %s want %s", tc.launch.ID, got, tc.want)
		}
	}
}
