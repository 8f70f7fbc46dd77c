// Package timeexpr turns user-supplied time expressions ("5 minutes", "3pm",
// "tomorrow at 9am", "next friday") into a positive delay relative to a
// reference instant. Clock-time forms are read in a single fixed zone.
package timeexpr

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	naturaldate "github.com/tj/go-naturaldate"
)

const DefaultZone = "America/Los_Angeles"

// UnparseableMessage is shown whenever an expression cannot be read.
const UnparseableMessage = "Could not parse time. Please use formats like '5 minutes', 'tomorrow at 3pm', '2 hours', '30 seconds', etc."

var (
	relativePattern = regexp.MustCompile(`^([+-]?\d+(?:\.\d*)?)\s*(seconds?|secs?|s|minutes?|mins?|m|hours?|hrs?|h|days?|d|weeks?|w)$`)
	clock12Pattern  = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?\s*(am|pm)$`)
	clock24Pattern  = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	tomorrowPattern = regexp.MustCompile(`^tomorrow(?:\s+at)?\s+(.+)$`)
)

// keyed by the first letter of the unit word
var unitDurations = map[byte]time.Duration{
	's': time.Second,
	'm': time.Minute,
	'h': time.Hour,
	'd': 24 * time.Hour,
	'w': 7 * 24 * time.Hour,
}

var maxMillis = float64(math.MaxInt64 / int64(time.Millisecond))

// NaturalParser resolves free-form phrases to an absolute instant.
type NaturalParser interface {
	Parse(text string, ref time.Time) (time.Time, error)
}

type forwardNaturalParser struct{}

func (forwardNaturalParser) Parse(text string, ref time.Time) (time.Time, error) {
	return naturaldate.Parse(text, ref, naturaldate.WithDirection(naturaldate.Future))
}

type Parser struct {
	loc     *time.Location
	natural NaturalParser
}

type Option func(*Parser)

func WithNaturalParser(np NaturalParser) Option {
	return func(p *Parser) { p.natural = np }
}

func NewParser(loc *time.Location, opts ...Option) *Parser {
	if loc == nil {
		loc = time.UTC
	}
	p := &Parser{loc: loc, natural: forwardNaturalParser{}}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// LoadLocation falls back to DefaultZone for an empty name.
func LoadLocation(name string) (*time.Location, error) {
	if strings.TrimSpace(name) == "" {
		name = DefaultZone
	}
	return time.LoadLocation(name)
}

func (p *Parser) Location() *time.Location { return p.loc }

// Parse returns the delay from ref to the instant text denotes. The second
// result is false when text is not understood or does not land strictly
// after ref. Forms are tried in order and the first form that matches decides.
func (p *Parser) Parse(text string, ref time.Time) (time.Duration, bool) {
	input := strings.ToLower(strings.TrimSpace(text))
	if input == "" {
		return 0, false
	}

	if m := relativePattern.FindStringSubmatch(input); m != nil {
		return parseRelative(m[1], m[2])
	}

	local := ref.In(p.loc)

	if isClockShape(input) {
		hour, minute, ok := parseClock(input)
		if !ok {
			return 0, false
		}
		target := atClock(local, 0, hour, minute)
		if !target.After(ref) {
			target = atClock(local, 1, hour, minute)
		}
		return positive(target.Sub(ref))
	}

	// "tomorrow afternoon" is left to the natural language stage
	if m := tomorrowPattern.FindStringSubmatch(input); m != nil && isClockShape(strings.TrimSpace(m[1])) {
		hour, minute, ok := parseClock(strings.TrimSpace(m[1]))
		if !ok {
			return 0, false
		}
		return positive(atClock(local, 1, hour, minute).Sub(ref))
	}

	if p.natural == nil {
		return 0, false
	}
	target, err := p.natural.Parse(input, local)
	if err != nil || !target.After(ref) {
		return 0, false
	}
	return positive(target.Sub(ref))
}

func parseRelative(amountText, unit string) (time.Duration, bool) {
	amount, err := strconv.ParseFloat(amountText, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return 0, false
	}
	per, ok := unitDurations[unit[0]]
	if !ok {
		return 0, false
	}
	ms := math.Round(amount * float64(per/time.Millisecond))
	if ms <= 0 || ms > maxMillis {
		return 0, false
	}
	return time.Duration(ms) * time.Millisecond, true
}

func isClockShape(s string) bool {
	return clock12Pattern.MatchString(s) || clock24Pattern.MatchString(s)
}

// parseClock reads "3pm", "2:30 pm" and 24-hour "14:30".
func parseClock(s string) (hour, minute int, ok bool) {
	if m := clock12Pattern.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		if h < 1 || h > 12 {
			return 0, 0, false
		}
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		if minute > 59 {
			return 0, 0, false
		}
		h %= 12
		if m[3] == "pm" {
			h += 12
		}
		return h, minute, true
	}
	if m := clock24Pattern.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		minute, _ = strconv.Atoi(m[2])
		if h > 23 || minute > 59 {
			return 0, 0, false
		}
		return h, minute, true
	}
	return 0, 0, false
}

// atClock advances the civil date of local by days and sets the wall clock.
func atClock(local time.Time, days, hour, minute int) time.Time {
	y, mo, d := local.Date()
	return time.Date(y, mo, d+days, hour, minute, 0, 0, local.Location())
}

func positive(d time.Duration) (time.Duration, bool) {
	d = d.Round(time.Millisecond)
	if d <= 0 {
		return 0, false
	}
	return d, true
}
