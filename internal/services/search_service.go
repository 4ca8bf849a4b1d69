package services

import (
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/traillog/route-log-backend/internal/models"
)

// SearchService filters the logged routes by what the user typed in the
// search box.
type SearchService struct {
	logger *logrus.Logger
}

// NewSearchService creates a new search service
func NewSearchService(logger *logrus.Logger) *SearchService {
	return &SearchService{logger: logger}
}

// Filter returns the routes whose name or zone contains the query,
// case-insensitively. A blank query returns the input unchanged; relative
// order is always preserved.
func (s *SearchService) Filter(routes []models.Route, query string) []models.Route {
	query = strings.TrimSpace(query)
	if query == "" {
		return routes
	}

	needle := strings.ToLower(query)
	matches := []models.Route{}
	for _, route := range routes {
		if strings.Contains(strings.ToLower(route.Name), needle) ||
			strings.Contains(strings.ToLower(route.Zone), needle) {
			matches = append(matches, route)
		}
	}

	s.logger.WithFields(logrus.Fields{
		"query":   query,
		"matched": len(matches),
		"total":   len(routes),
	}).Debug("Filtered routes")

	return matches
}
