package spacex

import (
	"fmt"
	"strings"
)

// LaunchFilter selects which past launches LatestLaunches returns.
type LaunchFilter string

const (
	FilterAll     LaunchFilter = "all"
	FilterSuccess LaunchFilter = "success"
	FilterFailed  LaunchFilter = "failed"
)

// ParseLaunchFilter maps user input onto a LaunchFilter. Empty input means all.
func ParseLaunchFilter(raw string) (LaunchFilter, error) {
	switch f := LaunchFilter(strings.ToLower(strings.TrimSpace(raw))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterSuccess, FilterFailed:
		return f, nil
	default:
		return "", fmt.Errorf("unknown launch filter %q (expected all, success or failed)", raw)
	}
}

func (f LaunchFilter) String() string { return string(f) }

type sortOrder string

const (
	sortAsc  sortOrder = "asc"
	sortDesc sortOrder = "desc"
)

const (
	nextLaunchLimit    = 1
	latestLaunchLimit  = 10
	launchesQueryPath  = "/launches/query"
	launchpadPathFmt   = "/launchpads/%s"
	payloadPathFmt     = "/payloads/%s"
	contentTypeJSON    = "application/json"
	headerContentType  = "Content-Type"
	maxErrorBodyLength = 512
)

// launchQuery is the body of POST /launches/query.
type launchQuery struct {
	Query   launchPredicate `json:"query"`
	Options queryOptions    `json:"options"`
}

type launchPredicate struct {
	Upcoming bool  `json:"upcoming"`
	Success  *bool `json:"success,omitempty"`
}

type queryOptions struct {
	Limit int          `json:"limit"`
	Sort  querySortKey `json:"sort"`
}

type querySortKey struct {
	DateUnix sortOrder `json:"date_unix"`
}

func nextLaunchQuery() launchQuery {
	return launchQuery{
		Query:   launchPredicate{Upcoming: true},
		Options: queryOptions{Limit: nextLaunchLimit, Sort: querySortKey{DateUnix: sortAsc}},
	}
}

func latestLaunchesQuery(filter LaunchFilter) (launchQuery, error) {
	pred := launchPredicate{Upcoming: false}
	switch filter {
	case FilterAll, "":
	case FilterSuccess:
		pred.Success = boolPtr(true)
	case FilterFailed:
		pred.Success = boolPtr(false)
	default:
		return launchQuery{}, fmt.Errorf("unknown launch filter %q", string(filter))
	}
	return launchQuery{
		Query:   pred,
		Options: queryOptions{Limit: latestLaunchLimit, Sort: querySortKey{DateUnix: sortDesc}},
	}, nil
}

func boolPtr(b bool) *bool { return &b }
