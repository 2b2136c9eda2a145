package spacex

import "time"

// Launch is one flight record. Related entities (payloads, crew, ships,
// capsules, launchpad, rocket) are referenced by id only.
type Launch struct {
	ID                 string     `json:"id"`
	FlightNumber       int        `json:"flight_number"`
	Name               string     `json:"name"`
	DateUTC            time.Time  `json:"date_utc"`
	DateUnix           int64      `json:"date_unix"`
	DateLocal          string     `json:"date_local"`
	DatePrecision      string     `json:"date_precision"`
	StaticFireDateUTC  *time.Time `json:"static_fire_date_utc"`
	StaticFireDateUnix *int64     `json:"static_fire_date_unix"`
	TBD                bool       `json:"tbd"`
	NET                bool       `json:"net"`
	Window             *int       `json:"window"`
	Rocket             string     `json:"rocket"`
	Success            *bool      `json:"success"`
	Failures           []Failure  `json:"failures"`
	Upcoming           bool       `json:"upcoming"`
	Details            string     `json:"details"`
	Fairings           Fairings   `json:"fairings"`
	Crew               []string   `json:"crew"`
	Ships              []string   `json:"ships"`
	Capsules           []string   `json:"capsules"`
	Payloads           []string   `json:"payloads"`
	Launchpad          string     `json:"launchpad"`
	Cores              []Core     `json:"cores"`
	Links              Links      `json:"links"`
	AutoUpdate         bool       `json:"auto_update"`
}

// Failure describes why a launch failed.
type Failure struct {
	Time     int    `json:"time"`
	Altitude *int   `json:"altitude"`
	Reason   string `json:"reason"`
}

type Fairings struct {
	Reused          *bool    `json:"reused"`
	RecoveryAttempt *bool    `json:"recovery_attempt"`
	Recovered       *bool    `json:"recovered"`
	Ships           []string `json:"ships"`
}

// Core is the per-booster reuse and landing data of a launch.
type Core struct {
	Core           string `json:"core"`
	Flight         *int   `json:"flight"`
	Gridfins       *bool  `json:"gridfins"`
	Legs           *bool  `json:"legs"`
	Reused         *bool  `json:"reused"`
	LandingAttempt *bool  `json:"landing_attempt"`
	LandingSuccess *bool  `json:"landing_success"`
	LandingType    string `json:"landing_type"`
	Landpad        string `json:"landpad"`
}

type Links struct {
	Patch struct {
		Small string `json:"small"`
		Large string `json:"large"`
	} `json:"patch"`
	Reddit struct {
		Campaign string `json:"campaign"`
		Launch   string `json:"launch"`
		Media    string `json:"media"`
		Recovery string `json:"recovery"`
	} `json:"reddit"`
	Flickr struct {
		Small    []string `json:"small"`
		Original []string `json:"original"`
	} `json:"flickr"`
	Presskit  string `json:"presskit"`
	Webcast   string `json:"webcast"`
	YoutubeID string `json:"youtube_id"`
	Article   string `json:"article"`
	Wikipedia string `json:"wikipedia"`
}

// Launchpad is a launch site.
type Launchpad struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	FullName        string   `json:"full_name"`
	Locality        string   `json:"locality"`
	Region          string   `json:"region"`
	Latitude        float64  `json:"latitude"`
	Longitude       float64  `json:"longitude"`
	LaunchAttempts  int      `json:"launch_attempts"`
	LaunchSuccesses int      `json:"launch_successes"`
	Rockets         []string `json:"rockets"`
	Timezone        string   `json:"timezone"`
	Launches        []string `json:"launches"`
	Status          string   `json:"status"`
	Details         string   `json:"details"`
}

// Payload is one cargo item carried by a launch.
type Payload struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Type            string   `json:"type"`
	MassKg          *float64 `json:"mass_kg"`
	MassLbs         *float64 `json:"mass_lbs"`
	Orbit           string   `json:"orbit"`
	ReferenceSystem string   `json:"reference_system"`
	Regime          string   `json:"regime"`
	Customers       []string `json:"customers"`
	Nationalities   []string `json:"nationalities"`
	Manufacturers   []string `json:"manufacturers"`
	Launch          string   `json:"launch"`
}

// LaunchDoc is the paginated envelope returned by the query endpoint.
// Only Docs is consumed by this package.
type LaunchDoc struct {
	Docs          []Launch `json:"docs"`
	TotalDocs     int      `json:"totalDocs"`
	Offset        int      `json:"offset"`
	Limit         int      `json:"limit"`
	TotalPages    int      `json:"totalPages"`
	Page          int      `json:"page"`
	PagingCounter int      `json:"pagingCounter"`
	HasPrevPage   bool     `json:"hasPrevPage"`
	HasNextPage   bool     `json:"hasNextPage"`
	PrevPage      *int     `json:"prevPage"`
	NextPage      *int     `json:"nextPage"`
}
