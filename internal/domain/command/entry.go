package command

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/kankrittapon/calendar/internal/domain"
)

// ErrMissingFields is set on entries without title, date and start time
var ErrMissingFields = errors.New("entry needs title, date and start time")

// Entry is one parsed add-schedule item. Err is set when the entry is malformed;
// the other fields then hold whatever could be read, for the failure line.
type Entry struct {
	Raw        string
	Title      string
	Date       string
	StartTime  string
	Location   string
	CategoryID string
	Err        error
}

// ParseEntries splits an add-schedule payload on '|' and parses each entry on its own.
// A malformed entry never affects its siblings.
func ParseEntries(payload string, now time.Time) []Entry {
	var entries []Entry
	for _, segment := range strings.Split(payload, "|") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		// "เพิ่มงาน a ... | เพิ่มงาน b ..." repeats the trigger per entry
		if rest, ok := stripTrigger(segment, addTriggers); ok {
			segment = rest
		}
		entries = append(entries, parseEntry(segment, now))
	}
	return entries
}

func parseEntry(segment string, now time.Time) Entry {
	entry := Entry{Raw: segment, CategoryID: domain.DefaultCategoryID}

	var fields []string
	joiner := " "
	if strings.Contains(segment, ",") {
		for _, f := range strings.Split(segment, ",") {
			fields = append(fields, strings.TrimSpace(f))
		}
		joiner = ", "
	} else {
		fields = groupTitle(strings.Fields(segment), now)
	}

	if len(fields) > 0 {
		entry.Title = fields[0]
	}
	if len(fields) < 3 || fields[0] == "" || fields[1] == "" || fields[2] == "" {
		entry.Err = ErrMissingFields
		return entry
	}

	date, err := normalizeDate(fields[1], now)
	if err != nil {
		entry.Err = err
		return entry
	}
	entry.Date = date

	start, err := domain.NormalizeClock(fields[2])
	if err != nil {
		entry.Err = err
		return entry
	}
	entry.StartTime = start

	entry.Location, entry.CategoryID = splitOptional(fields[3:], joiner)
	return entry
}

// groupTitle lets whitespace-mode titles span several words: everything before the
// first "<date> <time>" pair is the title. Without such a pair tokens stay positional.
func groupTitle(tokens []string, now time.Time) []string {
	for i := 1; i+1 < len(tokens); i++ {
		if _, err := normalizeDate(tokens[i], now); err != nil {
			continue
		}
		if _, err := domain.NormalizeClock(tokens[i+1]); err != nil {
			continue
		}
		fields := []string{strings.Join(tokens[:i], " ")}
		return append(fields, tokens[i:]...)
	}
	return tokens
}

// splitOptional pulls a category out of the fields after the start time and joins
// the rest into the location. A '#'-token names a category anywhere; a bare category
// word only counts as the last of at least two optional fields.
func splitOptional(fields []string, joiner string) (location string, categoryID string) {
	categoryID = domain.DefaultCategoryID
	found := false
	var kept []string

	for i, f := range fields {
		if f == "" {
			continue
		}
		if !found && i == len(fields)-1 && i > 0 && !strings.HasPrefix(f, "#") {
			if c, ok := domain.CategoryByToken(f); ok {
				categoryID, found = c.ID, true
				continue
			}
		}
		if !found {
			var id string
			f, id = takeHashCategory(f)
			if id != "" {
				categoryID, found = id, true
			}
		}
		if f != "" {
			kept = append(kept, f)
		}
	}

	return strings.Join(kept, joiner), categoryID
}

// takeHashCategory removes the first known "#category" word from field
func takeHashCategory(field string) (string, string) {
	words := strings.Fields(field)
	for i, w := range words {
		if !strings.HasPrefix(w, "#") {
			continue
		}
		if c, ok := domain.CategoryByToken(w); ok {
			rest := append(words[:i:i], words[i+1:]...)
			return strings.Join(rest, " "), c.ID
		}
	}
	return field, ""
}

// normalizeDate passes ISO dates through and resolves a bare day of month
// against the month and year of now
func normalizeDate(token string, now time.Time) (string, error) {
	if _, err := domain.ParseDate(token); err == nil {
		return token, nil
	}
	if len(token) == 0 || len(token) > 2 {
		return "", domain.ErrInvalidDate
	}
	day, err := strconv.Atoi(token)
	if err != nil || day < 1 {
		return "", domain.ErrInvalidDate
	}
	d := time.Date(now.Year(), now.Month(), day, 0, 0, 0, 0, now.Location())
	if d.Month() != now.Month() {
		return "", domain.ErrInvalidDate
	}
	return domain.DateOf(d), nil
}
