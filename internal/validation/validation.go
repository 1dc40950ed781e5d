// Package validation checks e-pass drafts before they reach the lifecycle
// controller. It never touches storage.
package validation

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"epass-service/internal/model"
)

const dateLayout = "2006-01-02"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Errors maps a draft field name to its message. It is an error so callers
// can return it through ordinary error paths and recover it with errors.As.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "invalid fields: " + strings.Join(fields, ", ")
}

type required struct {
	field   string
	value   func(*model.Draft) string
	message string
}

var requiredFields = []required{
	{"categoryId", func(d *model.Draft) string { return d.CategoryID }, "Please select a category"},
	{"fullName", func(d *model.Draft) string { return d.FullName }, "Full name is required"},
	{"email", func(d *model.Draft) string { return d.Email }, "Email is required"},
	{"phone", func(d *model.Draft) string { return d.Phone }, "Phone number is required"},
	{"address", func(d *model.Draft) string { return d.Address }, "Address is required"},
	{"destination", func(d *model.Draft) string { return d.Destination }, "Destination is required"},
	{"purpose", func(d *model.Draft) string { return d.Purpose }, "Purpose is required"},
	{"startDate", func(d *model.Draft) string { return d.StartDate }, "Start date is required"},
	{"endDate", func(d *model.Draft) string { return d.EndDate }, "End date is required"},
	{"startTime", func(d *model.Draft) string { return d.StartTime }, "Start time is required"},
	{"endTime", func(d *model.Draft) string { return d.EndTime }, "End time is required"},
}

// Validate returns every rule violation of d. An empty result means the draft
// may be submitted. now fixes "today": only its calendar day in its own
// location matters.
//
// categoryId is checked for presence only, not against the category list.
func Validate(d *model.Draft, now time.Time) Errors {
	errs := Errors{}

	for _, r := range requiredFields {
		if strings.TrimSpace(r.value(d)) == "" {
			errs[r.field] = r.message
		}
	}

	email := strings.TrimSpace(d.Email)
	if email != "" && !emailPattern.MatchString(email) {
		errs["email"] = "Please enter a valid email address"
	}

	start, startOK := parseDate("startDate", d.StartDate, now.Location(), errs)
	end, endOK := parseDate("endDate", d.EndDate, now.Location(), errs)
	if startOK && endOK {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if start.Before(today) {
			errs["startDate"] = "Start date cannot be in the past"
		}
		if end.Before(start) {
			errs["endDate"] = "End date cannot be before start date"
		}
	}

	return errs
}

func parseDate(field, value string, loc *time.Location, errs Errors) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(dateLayout, value, loc)
	if err != nil {
		errs[field] = "Please enter a valid date (YYYY-MM-DD)"
		return time.Time{}, false
	}
	return t, true
}
