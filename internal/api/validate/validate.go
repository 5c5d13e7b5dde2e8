// Package validate holds pure, side-effect-free request validation. Each
// function returns either a normalized value or an error whose message is the
// exact client-facing string written into the response envelope.
package validate

import (
	"errors"
	"html"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/moodtrack/moodtrack/internal/model"
)

const (
	// NoteMaxLen is the maximum sanitized note length.
	NoteMaxLen = 1000

	// FieldMaxLen bounds onboarding free-text fields.
	FieldMaxLen = 255

	// DefaultPage and DefaultLimit apply when pagination params are absent.
	DefaultPage  = 1
	DefaultLimit = 20
)

var (
	ErrInvalidDateFormat = errors.New("Invalid date format")
	ErrInvalidPagination = errors.New("Invalid pagination parameters")
	ErrMissingMoodType   = errors.New("Mood type is required")
	ErrInvalidMoodType   = errors.New("Invalid mood type")
	ErrNoteTooLong       = errors.New("Note cannot exceed 1000 characters")
	ErrInvalidEntryID    = errors.New("Invalid mood entry ID format")
	ErrInvalidUserID     = errors.New("Invalid user ID")
	ErrInvalidStepID     = errors.New("Invalid step ID")
	ErrMissingFields     = errors.New("Missing required fields")
	ErrInvalidEmail      = errors.New("Invalid email format")
	ErrFieldsTooLong     = errors.New("Field values too long")
)

// stripPolicy removes all HTML markup from notes.
var stripPolicy = bluemonday.StrictPolicy()

var emailRx = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// dateLayouts accepted for query-string date bounds.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

func parseDate(v string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidDateFormat
}

// DateRange parses optional start/end bounds. An empty string means the bound
// is absent and yields nil; a present but unparsable string fails.
func DateRange(start, end string) (*time.Time, *time.Time, error) {
	var s, e *time.Time
	if start != "" {
		t, err := parseDate(start)
		if err != nil {
			return nil, nil, err
		}
		s = &t
	}
	if end != "" {
		t, err := parseDate(end)
		if err != nil {
			return nil, nil, err
		}
		e = &t
	}
	return s, e, nil
}

// Pagination parses optional page/limit params, defaulting absent values.
// Values below 1 or non-numeric values fail.
func Pagination(page, limit string) (int, int, error) {
	p, l := DefaultPage, DefaultLimit
	if page != "" {
		n, err := strconv.Atoi(page)
		if err != nil || n < 1 {
			return 0, 0, ErrInvalidPagination
		}
		p = n
	}
	if limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 {
			return 0, 0, ErrInvalidPagination
		}
		l = n
	}
	return p, l, nil
}

// MoodType validates a mandatory mood value.
func MoodType(v string) (model.MoodType, error) {
	if v == "" {
		return "", ErrMissingMoodType
	}
	m := model.MoodType(v)
	if !m.Valid() {
		return "", ErrInvalidMoodType
	}
	return m, nil
}

// MoodTypeFilter validates an optional mood filter; empty means no filter.
func MoodTypeFilter(v string) (*model.MoodType, error) {
	if v == "" {
		return nil, nil
	}
	m := model.MoodType(v)
	if !m.Valid() {
		return nil, ErrInvalidMoodType
	}
	return &m, nil
}

// Note strips HTML markup, unescapes entities left behind by the sanitizer and
// trims surrounding whitespace. The sanitized result must fit NoteMaxLen.
func Note(v string) (string, error) {
	s := stripPolicy.Sanitize(v)
	s = html.UnescapeString(s)
	s = strings.TrimSpace(s)
	if len(s) > NoteMaxLen {
		return "", ErrNoteTooLong
	}
	return s, nil
}

// EntryID checks that an id matches the store's identifier shape (UUID).
func EntryID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidEntryID
	}
	return nil
}

// UserID checks an onboarding user identifier.
func UserID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidUserID
	}
	return nil
}

// StepID checks an onboarding step identifier.
func StepID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidStepID
	}
	return nil
}

// Email validates an address for the onboarding flow.
func Email(v string) error {
	if len(v) > 320 || !emailRx.MatchString(v) {
		return ErrInvalidEmail
	}
	return nil
}

// OnboardingFields validates the start-onboarding payload after trimming.
// Email, first and last name are mandatory; company and role are not.
func OnboardingFields(email, firstName, lastName, company, role string) error {
	if email == "" || firstName == "" || lastName == "" {
		return ErrMissingFields
	}
	if err := Email(email); err != nil {
		return err
	}
	for _, v := range []string{firstName, lastName, company, role} {
		if len(v) > FieldMaxLen {
			return ErrFieldsTooLong
		}
	}
	return nil
}
