package api

import (
	"net/http"

	"github.com/bashlor/Rapid-Work-Tracker-sub000/internal/api/shared"
	"github.com/bashlor/Rapid-Work-Tracker-sub000/internal/service"
)

// DashboardHandler handles the weekly dashboard API requests.
type DashboardHandler struct {
	dashboardService service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler with the given dependencies.
func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// WeekReport handles GET /dashboard/week. An optional date query parameter
// selects the week; the current week is reported when absent.
func (h *DashboardHandler) WeekReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	report, err := h.dashboardService.GetWeekReport(r.Context(), userID, r.URL.Query().Get("date"))
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, report.Serialize())
}
