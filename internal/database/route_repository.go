package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/traillog/route-log-backend/internal/models"
)

// ErrRouteNotFound is returned by Update when no route has the given id.
var ErrRouteNotFound = errors.New("route not found")

// RouteRepository handles database operations for the rutas table. It is
// the sole writer of persisted state.
type RouteRepository struct {
	db DB
}

// NewRouteRepository creates a new RouteRepository
func NewRouteRepository(db DB) *RouteRepository {
	return &RouteRepository{db: db}
}

// routeColumns is the column list shared by every SELECT in this file.
const routeColumns = `id, nombre, zona, fecha_realizacion, duracion_horas, distancia_km,
	   dificultad, desnivel_positivo, punto_inicio_lat, punto_inicio_lon,
	   valoracion, notas, foto_principal, fecha_creacion`

// Init ensures the rutas table exists. Safe to call on every start.
func (r *RouteRepository) Init() error {
	schema := `
		CREATE TABLE IF NOT EXISTS rutas (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			nombre TEXT NOT NULL,
			zona TEXT NOT NULL,
			fecha_realizacion TEXT NOT NULL,
			duracion_horas REAL NOT NULL,
			distancia_km REAL NOT NULL,
			dificultad TEXT CHECK(dificultad IN ('Fácil', 'Moderada', 'Difícil', 'Muy Difícil')) NOT NULL,
			desnivel_positivo INTEGER,
			punto_inicio_lat REAL,
			punto_inicio_lon REAL,
			valoracion INTEGER CHECK(valoracion >= 1 AND valoracion <= 5),
			notas TEXT,
			foto_principal TEXT,
			fecha_creacion TEXT DEFAULT (datetime('now'))
		)
	`

	if _, err := r.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create rutas table: %w", err)
	}

	return nil
}

// Insert persists a new route and returns the assigned id. Optional fields
// are stored as NULL when absent. The creation timestamp is assigned by the
// schema default.
func (r *RouteRepository) Insert(input *models.RouteInput) (int64, error) {
	query := `
		INSERT INTO rutas (
			nombre, zona, fecha_realizacion, duracion_horas, distancia_km,
			dificultad, desnivel_positivo, punto_inicio_lat, punto_inicio_lon,
			valoracion, notas, foto_principal
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(query,
		input.Name, input.Zone, input.CompletedOn, input.DurationHours, input.DistanceKm,
		input.Difficulty, input.ElevationGainM, input.StartLat, input.StartLon,
		input.Rating, input.Notes, input.Photo,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert route: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted route id: %w", err)
	}

	return id, nil
}

// GetAll returns every route ordered by completion date, most recent first.
func (r *RouteRepository) GetAll() ([]models.Route, error) {
	query := `
		SELECT ` + routeColumns + `
		FROM rutas
		ORDER BY fecha_realizacion DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch routes: %w", err)
	}
	defer rows.Close()

	routes := []models.Route{}
	for rows.Next() {
		route, err := scanRoute(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan route: %w", err)
		}
		routes = append(routes, *route)
	}

	return routes, rows.Err()
}

// GetByID returns the route with the given id, or nil when no such route
// exists. A missing id is not an error.
func (r *RouteRepository) GetByID(id int64) (*models.Route, error) {
	query := `
		SELECT ` + routeColumns + `
		FROM rutas
		WHERE id = ?
	`

	route, err := scanRoute(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch route: %w", err)
	}

	return route, nil
}

// Update replaces every mutable field of the route with the given id.
// Returns ErrRouteNotFound when no route has that id; the store is left
// unchanged in that case.
func (r *RouteRepository) Update(id int64, input *models.RouteInput) error {
	query := `
		UPDATE rutas SET
			nombre = ?,
			zona = ?,
			fecha_realizacion = ?,
			duracion_horas = ?,
			distancia_km = ?,
			dificultad = ?,
			desnivel_positivo = ?,
			punto_inicio_lat = ?,
			punto_inicio_lon = ?,
			valoracion = ?,
			notas = ?,
			foto_principal = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query,
		input.Name, input.Zone, input.CompletedOn, input.DurationHours, input.DistanceKm,
		input.Difficulty, input.ElevationGainM, input.StartLat, input.StartLon,
		input.Rating, input.Notes, input.Photo,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to update route: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return ErrRouteNotFound
	}

	return nil
}

// Delete removes the route with the given id. Deleting an id that does not
// exist is a no-op, not an error.
func (r *RouteRepository) Delete(id int64) error {
	if _, err := r.db.Exec(`DELETE FROM rutas WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete route: %w", err)
	}
	return nil
}

// GetStatistics computes the aggregate summary over all routes in one
// logical read pass.
func (r *RouteRepository) GetStatistics() (*models.Statistics, error) {
	stats := &models.Statistics{}

	err := r.db.QueryRow(`SELECT COUNT(*) FROM rutas`).Scan(&stats.TotalRoutes)
	if err != nil {
		return nil, fmt.Errorf("failed to count routes: %w", err)
	}

	err = r.db.QueryRow(`
		SELECT COALESCE(SUM(distancia_km), 0), COALESCE(SUM(duracion_horas), 0)
		FROM rutas
	`).Scan(&stats.TotalKm, &stats.TotalHours)
	if err != nil {
		return nil, fmt.Errorf("failed to sum route totals: %w", err)
	}

	err = r.db.QueryRow(`
		SELECT COUNT(valoracion), COALESCE(AVG(valoracion), 0)
		FROM rutas
		WHERE valoracion IS NOT NULL
	`).Scan(&stats.RatedRoutes, &stats.AverageRating)
	if err != nil {
		return nil, fmt.Errorf("failed to average ratings: %w", err)
	}

	// Longest route; on a distance tie the first row in storage order wins.
	longest, err := scanRoute(r.db.QueryRow(`
		SELECT ` + routeColumns + `
		FROM rutas
		ORDER BY distancia_km DESC
		LIMIT 1
	`))
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to fetch longest route: %w", err)
	}
	if err == nil {
		stats.LongestRoute = longest
	}

	// Most recent completion among 'Muy Difícil' routes only.
	hardest, err := scanRoute(r.db.QueryRow(`
		SELECT `+routeColumns+`
		FROM rutas
		WHERE dificultad = ?
		ORDER BY fecha_realizacion DESC
		LIMIT 1
	`, models.DifficultyVeryHard))
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to fetch hardest route: %w", err)
	}
	if err == nil {
		stats.HardestRecent = hardest
	}

	return stats, nil
}

// Seed inserts the three sample routes when the table is empty, so a fresh
// install has something to browse. Existing data is never touched.
func (r *RouteRepository) Seed() error {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM rutas`).Scan(&count); err != nil {
		return fmt.Errorf("failed to check for existing routes: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, input := range sampleRoutes() {
		if _, err := r.Insert(&input); err != nil {
			return fmt.Errorf("failed to seed sample route %q: %w", input.Name, err)
		}
	}

	return nil
}

func sampleRoutes() []models.RouteInput {
	elevation := func(m int) *int { return &m }
	rating := func(v int) *int { return &v }
	notes := func(s string) *string { return &s }

	return []models.RouteInput{
		{
			Name:           "Vereda de la Estrella",
			Zone:           "Sierra Nevada",
			CompletedOn:    "2024-12-20",
			DurationHours:  5.5,
			DistanceKm:     14.2,
			Difficulty:     models.DifficultyHard,
			ElevationGainM: elevation(800),
			Rating:         rating(5),
			Notes:          notes("Vistas impresionantes del Mulhacén"),
		},
		{
			Name:           "Cahorros del Monachil",
			Zone:           "Monachil",
			CompletedOn:    "2024-12-28",
			DurationHours:  3.0,
			DistanceKm:     8.5,
			Difficulty:     models.DifficultyModerate,
			ElevationGainM: elevation(300),
			Rating:         rating(4),
			Notes:          notes("Ruta circular con puentes colgantes"),
		},
		{
			Name:          "Paseo de los Tristes",
			Zone:          "Granada Centro",
			CompletedOn:   "2025-01-01",
			DurationHours: 1.5,
			DistanceKm:    3.2,
			Difficulty:    models.DifficultyEasy,
			Rating:        rating(3),
			Notes:         notes("Paseo urbano con vistas a la Alhambra"),
		},
	}
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRoute(row rowScanner) (*models.Route, error) {
	route := &models.Route{}
	var elevationGain sql.NullInt64
	var startLat, startLon sql.NullFloat64
	var ratingValue sql.NullInt64
	var routeNotes, photo sql.NullString

	err := row.Scan(
		&route.ID, &route.Name, &route.Zone, &route.CompletedOn,
		&route.DurationHours, &route.DistanceKm, &route.Difficulty,
		&elevationGain, &startLat, &startLon,
		&ratingValue, &routeNotes, &photo, &route.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Convert sql.Null* types
	if elevationGain.Valid {
		meters := int(elevationGain.Int64)
		route.ElevationGainM = &meters
	}
	if startLat.Valid {
		route.StartLat = &startLat.Float64
	}
	if startLon.Valid {
		route.StartLon = &startLon.Float64
	}
	if ratingValue.Valid {
		stars := int(ratingValue.Int64)
		route.Rating = &stars
	}
	if routeNotes.Valid {
		route.Notes = &routeNotes.String
	}
	if photo.Valid {
		route.Photo = &photo.String
	}

	return route, nil
}
