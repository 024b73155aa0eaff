package stations

import (
	"strings"

	"github.com/ngmaloney/uk-tide-terminal/internal/models"
)

// FilterByPrefix returns the stations whose name starts with query,
// ignoring case. Order is preserved and unnamed stations are skipped.
func FilterByPrefix(list []models.Station, query string) []models.Station {
	query = strings.ToLower(query)

	matches := make([]models.Station, 0, len(list))
	for _, s := range list {
		if !s.HasName() {
			continue
		}
		if strings.HasPrefix(strings.ToLower(*s.Name), query) {
			matches = append(matches, s)
		}
	}
	return matches
}

// FindByName returns the first station whose name equals name, ignoring case
func FindByName(list []models.Station, name string) (models.Station, bool) {
	name = strings.ToLower(name)
	for _, s := range list {
		if s.HasName() && strings.ToLower(*s.Name) == name {
			return s, true
		}
	}
	return models.Station{}, false
}
