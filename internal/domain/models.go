package domain

import "time"

// Domain contains core models and interfaces.

// LaunchReport is a launch with its launchpad and payload references resolved,
// flattened for downstream consumers.
type LaunchReport struct {
	LaunchID     string        `json:"launch_id"`
	FlightNumber int           `json:"flight_number"`
	Name         string        `json:"name"`
	DateUTC      time.Time     `json:"date_utc"`
	DateUnix     int64         `json:"date_unix"`
	Precision    string        `json:"date_precision"`
	Upcoming     bool          `json:"upcoming"`
	Success      *bool         `json:"success,omitempty"`
	Details      string        `json:"details,omitempty"`
	Failures     []string      `json:"failures,omitempty"`
	Launchpad    *LaunchSite   `json:"launchpad,omitempty"`
	Payloads     []PayloadInfo `json:"payloads,omitempty"`
	Webcast      string        `json:"webcast,omitempty"`
	Article      *ArticleMeta  `json:"article,omitempty"`
}

type LaunchSite struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	Locality string `json:"locality"`
	Region   string `json:"region"`
	Timezone string `json:"timezone"`
}

type PayloadInfo struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	Orbit     string   `json:"orbit"`
	MassKg    *float64 `json:"mass_kg,omitempty"`
	Customers []string `json:"customers,omitempty"`
}

// ArticleMeta is the OG metadata scraped from a launch's press article.
type ArticleMeta struct {
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}
