package api

import (
	"net/url"
	"strconv"
	"time"
)

// Filter narrows analytics queries. All fields are independently
// optional; nil fields are omitted from the request entirely.
type Filter struct {
	Year  *int
	Month *int
	Start *time.Time
	End   *time.Time
}

// Values serializes only the present fields into query parameters.
func (f Filter) Values() url.Values {
	q := url.Values{}
	if f.Year != nil {
		q.Set("year", strconv.Itoa(*f.Year))
	}
	if f.Month != nil {
		q.Set("month", strconv.Itoa(*f.Month))
	}
	if f.Start != nil {
		q.Set("start", f.Start.Format("2006-01-02"))
	}
	if f.End != nil {
		q.Set("end", f.End.Format("2006-01-02"))
	}
	return q
}

// IsZero reports whether no filter field is set.
func (f Filter) IsZero() bool {
	return f.Year == nil && f.Month == nil && f.Start == nil && f.End == nil
}

// AuthStatus is the backend's view of the current session.
type AuthStatus struct {
	Username      string `json:"username"`
	Authenticated bool   `json:"authenticated"`
}

// Summary holds the headline figures of one analytics fetch.
type Summary struct {
	TopCategory string  `json:"top_cat"`
	PeakDay     string  `json:"peak_day"`
	Total       float64 `json:"total"`
	PeakAmount  float64 `json:"peak_amount"`
}

// MonthlyPoint is one month's total in the trend series.
type MonthlyPoint struct {
	MonthYear string  `json:"month_year"`
	Amount    float64 `json:"amount"`
}

// CategoryTotal is one category's total, sorted descending by amount.
type CategoryTotal struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// DailyPeak is one of the highest-spend days.
type DailyPeak struct {
	Day    string  `json:"day"`
	Amount float64 `json:"amount"`
}

// YearlyPoint is one year's total.
type YearlyPoint struct {
	Year   int     `json:"year"`
	Amount float64 `json:"amount"`
}

// AnalyticsResult is the full payload of one analytics fetch. It is
// immutable once received and replaced wholesale by the next fetch.
type AnalyticsResult struct {
	Summary  Summary         `json:"summary"`
	Monthly  []MonthlyPoint  `json:"monthly"`
	Category []CategoryTotal `json:"category"`
	Peak     []DailyPeak     `json:"peak"`
	Yearly   []YearlyPoint   `json:"yearly"`
}

// UploadResult confirms a successful CSV upload.
type UploadResult struct {
	Message string   `json:"message"`
	Columns []string `json:"columns"`
	Rows    int      `json:"rows"`
}
