package list_bookings

import (
	"net/http"
	"strings"

	"github.com/m04kA/SMC-WorkshopService/internal/api/handlers"
	"github.com/m04kA/SMC-WorkshopService/internal/service/bookings/models"
)

// parseRequest читает фильтры из query: ?date=2026-05-01&status=pending&mechanicId=3&search=B12&page=1&pageSize=10
func parseRequest(r *http.Request) (*models.ListBookingsRequest, error) {
	page, err := handlers.ParsePage(r)
	if err != nil {
		return nil, err
	}

	mechanicID, err := handlers.QueryInt64(r, "mechanicId")
	if err != nil {
		return nil, err
	}

	return &models.ListBookingsRequest{
		Date:       handlers.QueryString(r, "date"),
		Status:     handlers.QueryString(r, "status"),
		MechanicID: mechanicID,
		Search:     strings.TrimSpace(r.URL.Query().Get("search")),
		Page:       page.Number,
		PageSize:   page.Size,
	}, nil
}
