package database

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/traillog/route-log-backend/internal/models"
)

var routeRows = []string{
	"id", "nombre", "zona", "fecha_realizacion", "duracion_horas", "distancia_km",
	"dificultad", "desnivel_positivo", "punto_inicio_lat", "punto_inicio_lon",
	"valoracion", "notas", "foto_principal", "fecha_creacion",
}

func testInput() *models.RouteInput {
	elevation := 800
	rating := 5
	notes := "Vistas impresionantes del Mulhacén"
	return &models.RouteInput{
		Name:           "Vereda de la Estrella",
		Zone:           "Sierra Nevada",
		CompletedOn:    "2024-12-20",
		DurationHours:  5.5,
		DistanceKm:     14.2,
		Difficulty:     models.DifficultyHard,
		ElevationGainM: &elevation,
		Rating:         &rating,
		Notes:          &notes,
	}
}

func TestInsertRoute(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRouteRepository(&mockDatabase{db: db})

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO rutas`).
			WithArgs(
				"Vereda de la Estrella", "Sierra Nevada", "2024-12-20", 5.5, 14.2,
				"Difícil", 800, nil, nil, 5, "Vistas impresionantes del Mulhacén", nil,
			).
			WillReturnResult(sqlmock.NewResult(42, 1))

		id, err := repo.Insert(testInput())
		require.NoError(t, err)
		assert.Equal(t, int64(42), id)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO rutas`).
			WillReturnError(fmt.Errorf("database is locked"))

		id, err := repo.Insert(testInput())
		assert.Error(t, err)
		assert.Zero(t, id)
		assert.Contains(t, err.Error(), "failed to insert route")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetRouteByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRouteRepository(&mockDatabase{db: db})

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM rutas\s+WHERE id`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows(routeRows).AddRow(
				7, "Cahorros del Monachil", "Monachil", "2024-12-28", 3.0, 8.5,
				"Moderada", 300, nil, nil, 4, "Ruta circular", nil, "2024-12-28 10:00:00",
			))

		route, err := repo.GetByID(7)
		require.NoError(t, err)
		require.NotNil(t, route)
		assert.Equal(t, int64(7), route.ID)
		assert.Equal(t, "Cahorros del Monachil", route.Name)
		assert.Equal(t, models.DifficultyModerate, route.Difficulty)
		require.NotNil(t, route.ElevationGainM)
		assert.Equal(t, 300, *route.ElevationGainM)
		assert.Nil(t, route.StartLat)
		assert.Nil(t, route.Photo)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM rutas\s+WHERE id`).
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)

		route, err := repo.GetByID(99)
		assert.NoError(t, err)
		assert.Nil(t, route)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM rutas\s+WHERE id`).
			WithArgs(int64(7)).
			WillReturnError(fmt.Errorf("disk I/O error"))

		route, err := repo.GetByID(7)
		assert.Error(t, err)
		assert.Nil(t, route)
		assert.Contains(t, err.Error(), "failed to fetch route")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetAllRoutes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRouteRepository(&mockDatabase{db: db})

	t.Run("Empty Store", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM rutas\s+ORDER BY fecha_realizacion DESC`).
			WillReturnRows(sqlmock.NewRows(routeRows))

		routes, err := repo.GetAll()
		require.NoError(t, err)
		assert.Empty(t, routes)
		assert.NotNil(t, routes)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM rutas\s+ORDER BY fecha_realizacion DESC`).
			WillReturnError(fmt.Errorf("database is locked"))

		routes, err := repo.GetAll()
		assert.Error(t, err)
		assert.Nil(t, routes)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateRoute(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRouteRepository(&mockDatabase{db: db})

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE rutas SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(7, testInput())
		assert.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectExec(`UPDATE rutas SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(99, testInput())
		assert.ErrorIs(t, err, ErrRouteNotFound)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectExec(`UPDATE rutas SET`).
			WillReturnError(fmt.Errorf("database is locked"))

		err := repo.Update(7, testInput())
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrRouteNotFound)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeleteRoute(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRouteRepository(&mockDatabase{db: db})

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM rutas WHERE id`).
			WithArgs(int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(7))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Absent Id Is Not An Error", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM rutas WHERE id`).
			WithArgs(int64(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, repo.Delete(99))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM rutas WHERE id`).
			WithArgs(int64(7)).
			WillReturnError(fmt.Errorf("disk I/O error"))

		err := repo.Delete(7)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to delete route")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetStatisticsEmptyStore(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRouteRepository(&mockDatabase{db: db})

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM rutas`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT COALESCE\(SUM`).
		WillReturnRows(sqlmock.NewRows([]string{"km", "horas"}).AddRow(0, 0))
	mock.ExpectQuery(`SELECT COUNT\(valoracion\)`).
		WillReturnRows(sqlmock.NewRows([]string{"count", "media"}).AddRow(0, 0))
	mock.ExpectQuery(`ORDER BY distancia_km DESC`).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`WHERE dificultad`).
		WithArgs("Muy Difícil").
		WillReturnError(sql.ErrNoRows)

	stats, err := repo.GetStatistics()
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalRoutes)
	assert.Zero(t, stats.TotalKm)
	assert.Zero(t, stats.TotalHours)
	assert.Equal(t, 0, stats.RatedRoutes)
	assert.Zero(t, stats.AverageRating)
	assert.Nil(t, stats.LongestRoute)
	assert.Nil(t, stats.HardestRecent)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// mockDatabase adapts a sqlmock *sql.DB to the DB interface.
type mockDatabase struct {
	db *sql.DB
}

func (m *mockDatabase) Get(dest interface{}, query string, args ...interface{}) error {
	return fmt.Errorf("Get not implemented in mock")
}

func (m *mockDatabase) Select(dest interface{}, query string, args ...interface{}) error {
	return fmt.Errorf("Select not implemented in mock")
}

func (m *mockDatabase) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return m.db.Query(query, args...)
}

func (m *mockDatabase) QueryRow(query string, args ...interface{}) *sql.Row {
	return m.db.QueryRow(query, args...)
}

func (m *mockDatabase) Exec(query string, args ...interface{}) (sql.Result, error) {
	return m.db.Exec(query, args...)
}

func (m *mockDatabase) Close() error {
	return m.db.Close()
}

func (m *mockDatabase) Ping() error {
	return m.db.Ping()
}
