package delivery

import (
	"strings"

	"fulfillment/internal/entities"
)

func isValidLocation(geo entities.GeoPoint) bool {
	return geo.Lat >= -90 && geo.Lat <= 90 && geo.Lng >= -180 && geo.Lng <= 180
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
