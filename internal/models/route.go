package models

import "fmt"

// Difficulty classifies how demanding a route is. The values are the ones
// persisted in the dificultad column and enforced by its CHECK constraint.
type Difficulty string

const (
	DifficultyEasy     Difficulty = "Fácil"
	DifficultyModerate Difficulty = "Moderada"
	DifficultyHard     Difficulty = "Difícil"
	DifficultyVeryHard Difficulty = "Muy Difícil"
)

// Difficulties lists every valid difficulty, in ascending order of effort.
var Difficulties = []Difficulty{
	DifficultyEasy,
	DifficultyModerate,
	DifficultyHard,
	DifficultyVeryHard,
}

// Valid reports whether d is one of the four persisted difficulty values.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyModerate, DifficultyHard, DifficultyVeryHard:
		return true
	}
	return false
}

// Route represents one logged hike, mapping directly to a row in the
// rutas table. Optional columns are pointers so that NULL and zero stay
// distinguishable across the storage boundary.
type Route struct {
	ID             int64      `json:"id" db:"id"`
	Name           string     `json:"name" db:"nombre"`
	Zone           string     `json:"zone" db:"zona"`
	CompletedOn    string     `json:"completed_on" db:"fecha_realizacion"` // YYYY-MM-DD
	DurationHours  float64    `json:"duration_hours" db:"duracion_horas"`
	DistanceKm     float64    `json:"distance_km" db:"distancia_km"`
	Difficulty     Difficulty `json:"difficulty" db:"dificultad"`
	ElevationGainM *int       `json:"elevation_gain_m,omitempty" db:"desnivel_positivo"`
	StartLat       *float64   `json:"start_lat,omitempty" db:"punto_inicio_lat"`
	StartLon       *float64   `json:"start_lon,omitempty" db:"punto_inicio_lon"`
	Rating         *int       `json:"rating,omitempty" db:"valoracion"`
	Notes          *string    `json:"notes,omitempty" db:"notas"`
	Photo          *string    `json:"photo,omitempty" db:"foto_principal"`
	CreatedAt      string     `json:"created_at" db:"fecha_creacion"`
}

// RouteInput holds the caller-supplied fields of a route, i.e. everything
// except the storage-assigned id and creation timestamp.
type RouteInput struct {
	Name           string     `json:"name"`
	Zone           string     `json:"zone"`
	CompletedOn    string     `json:"completed_on"`
	DurationHours  float64    `json:"duration_hours"`
	DistanceKm     float64    `json:"distance_km"`
	Difficulty     Difficulty `json:"difficulty"`
	ElevationGainM *int       `json:"elevation_gain_m,omitempty"`
	StartLat       *float64   `json:"start_lat,omitempty"`
	StartLon       *float64   `json:"start_lon,omitempty"`
	Rating         *int       `json:"rating,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
	Photo          *string    `json:"photo,omitempty"`
}

// HasStartPoint reports whether both start coordinates are present.
func (r *Route) HasStartPoint() bool {
	return r.StartLat != nil && r.StartLon != nil
}

// StartPointLabel returns the start coordinates formatted for display,
// or the empty string when no start point was recorded.
func (r *Route) StartPointLabel() string {
	if !r.HasStartPoint() {
		return ""
	}
	return fmt.Sprintf("%.6f, %.6f", *r.StartLat, *r.StartLon)
}

// Statistics is the on-demand aggregate summary over all logged routes.
// AverageRating is 0 when no route carries a rating; RatedRoutes lets
// callers tell that apart from a genuine average of zero.
type Statistics struct {
	TotalRoutes   int     `json:"total_routes"`
	TotalKm       float64 `json:"total_km"`
	TotalHours    float64 `json:"total_hours"`
	RatedRoutes   int     `json:"rated_routes"`
	AverageRating float64 `json:"average_rating"`
	// LongestRoute is the route with the greatest distance; when several
	// tie, the first in storage order wins.
	LongestRoute *Route `json:"longest_route,omitempty"`
	// HardestRecent is the most recently completed route among those
	// rated "Muy Difícil". Lesser difficulties never appear here.
	HardestRecent *Route `json:"hardest_recent,omitempty"`
}
