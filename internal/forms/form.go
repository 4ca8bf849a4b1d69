// Package forms holds the transient, UI-facing representation of a route
// and the stateless conversions between it and the persisted record shape.
package forms

import (
	"strconv"
	"strings"
	"time"

	"github.com/traillog/route-log-backend/internal/models"
)

// defaultRating is pre-filled when a record without a rating is opened for
// editing. It is not treated specially on the way back, so saving the form
// untouched persists it.
const defaultRating = 3

// RouteForm is the editable representation of a route: numeric fields are
// held as text exactly as typed, the date as a date value. It only exists
// for the duration of a create/edit interaction and is never persisted.
type RouteForm struct {
	Name           string            `json:"name"`
	Zone           string            `json:"zone"`
	CompletedOn    Date              `json:"completed_on"`
	DurationHours  string            `json:"duration_hours"`
	DistanceKm     string            `json:"distance_km"`
	Difficulty     models.Difficulty `json:"difficulty"`
	ElevationGainM string            `json:"elevation_gain_m"`
	Rating         int               `json:"rating"` // 0 means unset
	Notes          string            `json:"notes"`
	Photo          *string           `json:"photo,omitempty"`
	StartLat       *float64          `json:"start_lat,omitempty"`
	StartLon       *float64          `json:"start_lon,omitempty"`
}

// NewRouteForm returns the blank draft a create screen starts from.
func NewRouteForm() RouteForm {
	return RouteForm{
		CompletedOn: NewDate(time.Now()),
		Difficulty:  models.DifficultyModerate,
		Rating:      defaultRating,
	}
}

// FormFromRoute converts a persisted route into its editable form. Absent
// optional fields come back as editable defaults: empty text for elevation
// and notes, defaultRating for the rating.
func FormFromRoute(route *models.Route) RouteForm {
	form := RouteForm{
		Name:          route.Name,
		Zone:          route.Zone,
		DurationHours: formatNumber(route.DurationHours),
		DistanceKm:    formatNumber(route.DistanceKm),
		Difficulty:    route.Difficulty,
		Rating:        defaultRating,
		Photo:         route.Photo,
		StartLat:      route.StartLat,
		StartLon:      route.StartLon,
	}

	if date, err := ParseDate(route.CompletedOn); err == nil {
		form.CompletedOn = date
	}
	if route.ElevationGainM != nil {
		form.ElevationGainM = strconv.Itoa(*route.ElevationGainM)
	}
	if route.Rating != nil {
		form.Rating = *route.Rating
	}
	if route.Notes != nil {
		form.Notes = *route.Notes
	}

	return form
}

// ToInput converts the draft into the shape the record store persists.
// Unparsable duration or distance text becomes 0 rather than an error;
// Validate is expected to have rejected such drafts before this runs.
func (f RouteForm) ToInput() *models.RouteInput {
	input := &models.RouteInput{
		Name:          strings.TrimSpace(f.Name),
		Zone:          strings.TrimSpace(f.Zone),
		CompletedOn:   f.CompletedOn.String(),
		DurationHours: parseNumber(f.DurationHours),
		DistanceKm:    parseNumber(f.DistanceKm),
		Difficulty:    f.Difficulty,
		Photo:         f.Photo,
		StartLat:      f.StartLat,
		StartLon:      f.StartLon,
	}

	if text := strings.TrimSpace(f.ElevationGainM); text != "" {
		if meters, err := strconv.Atoi(text); err == nil {
			input.ElevationGainM = &meters
		}
	}

	if f.Rating != 0 {
		rating := f.Rating
		input.Rating = &rating
	}

	if notes := strings.TrimSpace(f.Notes); notes != "" {
		input.Notes = &notes
	}

	return input
}

// Validate checks the draft before any storage call and returns per-field
// errors keyed by JSON field name. An empty map means the draft is valid.
func (f RouteForm) Validate() map[string]string {
	errors := map[string]string{}

	if strings.TrimSpace(f.Name) == "" {
		errors["name"] = "name is required"
	}

	if strings.TrimSpace(f.Zone) == "" {
		errors["zone"] = "zone is required"
	}

	if f.CompletedOn.IsZero() {
		errors["completed_on"] = "completion date is required"
	} else if f.CompletedOn.After(time.Now()) {
		errors["completed_on"] = "completion date cannot be in the future"
	}

	if hours, err := strconv.ParseFloat(strings.TrimSpace(f.DurationHours), 64); err != nil || hours <= 0 {
		errors["duration_hours"] = "must be a number greater than 0"
	}

	if km, err := strconv.ParseFloat(strings.TrimSpace(f.DistanceKm), 64); err != nil || km <= 0 {
		errors["distance_km"] = "must be a number greater than 0"
	}

	if !f.Difficulty.Valid() {
		errors["difficulty"] = "must be one of: Fácil, Moderada, Difícil, Muy Difícil"
	}

	if text := strings.TrimSpace(f.ElevationGainM); text != "" {
		if _, err := strconv.Atoi(text); err != nil {
			errors["elevation_gain_m"] = "must be a whole number"
		}
	}

	if f.Rating != 0 && (f.Rating < 1 || f.Rating > 5) {
		errors["rating"] = "must be between 1 and 5"
	}

	return errors
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func parseNumber(text string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0
	}
	return value
}
