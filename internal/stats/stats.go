package stats

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Hike is the slice of a hike record the aggregator needs. Distance,
// elevation and duration arrive as free text from legacy clients.
type Hike struct {
	Date      string `json:"date"`
	Status    string `json:"status"`
	Distance  string `json:"distance"`
	Elevation string `json:"elevation"`
	Duration  string `json:"duration"`
	Location  string `json:"location"`
}

const StatusCompleted = "completed"

// Summary is the derived aggregate merged onto a user profile. It is always
// recomputed wholesale from the full hike set, never patched incrementally.
type Summary struct {
	TotalHikes     int     `json:"total_hikes"`
	TotalDistance  float64 `json:"total_distance"`
	TotalElevation int     `json:"total_elevation"`
	TotalDuration  int     `json:"total_duration"`
	StatesExplored int     `json:"states_explored"`
	UniqueTrails   int     `json:"unique_trails"`
	CurrentStreak  int     `json:"current_streak"`
	LongestStreak  int     `json:"longest_streak"`
}

var numberPattern = regexp.MustCompile(`\d+(\.\d+)?`)

// LeadingNumber extracts the first numeric token from free text, so that
// "8.5 km" yields 8.5. Anything without a numeric token contributes zero.
func LeadingNumber(s string) float64 {
	token := numberPattern.FindString(s)
	if token == "" {
		return 0
	}
	n, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0
	}
	return n
}

// Aggregate recomputes the whole summary from a user's hike set. It never
// fails: malformed input degrades to zero contributions.
func Aggregate(hikes []Hike, today time.Time) Summary {
	var distance, elevation, duration float64
	states := map[string]struct{}{}
	trails := map[string]struct{}{}

	for _, h := range hikes {
		distance += LeadingNumber(h.Distance)
		elevation += LeadingNumber(h.Elevation)
		duration += LeadingNumber(h.Duration)

		loc := strings.TrimSpace(h.Location)
		if loc == "" {
			continue
		}
		trails[loc] = struct{}{}
		parts := strings.Split(loc, ",")
		if state := strings.TrimSpace(parts[len(parts)-1]); state != "" {
			states[state] = struct{}{}
		}
	}

	current, longest := Streaks(hikes, today)

	return Summary{
		TotalHikes:     len(hikes),
		TotalDistance:  math.Round(distance*10) / 10,
		TotalElevation: int(math.Round(elevation)),
		TotalDuration:  int(math.Round(duration)),
		StatesExplored: len(states),
		UniqueTrails:   len(trails),
		CurrentStreak:  current,
		LongestStreak:  longest,
	}
}

// Streaks returns the current and longest run of consecutive calendar days
// with at least one completed hike. Records without a resolvable date are
// skipped; an empty completed set yields {0,0}.
func Streaks(hikes []Hike, today time.Time) (current, longest int) {
	days := map[time.Time]struct{}{}
	for _, h := range hikes {
		if h.Status != StatusCompleted {
			continue
		}
		day, ok := parseDay(h.Date)
		if !ok {
			continue
		}
		days[day] = struct{}{}
	}
	if len(days) == 0 {
		return 0, 0
	}

	expected := dayOf(today)
	for {
		if _, ok := days[expected]; !ok {
			break
		}
		current++
		expected = expected.AddDate(0, 0, -1)
	}

	sorted := make([]time.Time, 0, len(days))
	for day := range days {
		sorted = append(sorted, day)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].After(sorted[j]) })

	longest = 1
	run := 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].AddDate(0, 0, -1).Equal(sorted[i]) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return current, longest
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05", "01/02/2006"}

func parseDay(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return dayOf(t), true
		}
	}
	return time.Time{}, false
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
