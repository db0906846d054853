package httpx

import (
	"net/http"

	"local.dev/prepcircle-backend/internal/models"
)

// GET /circles ; each entry carries how many posts the circle holds.
func HandleCircles(app *AppCtx) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		type circleOut struct {
			models.CircleInfo
			Posts int `json:"posts"`
		}
		counts := app.Store.Overview().PostsByCircle
		out := make([]circleOut, 0, len(models.Circles()))
		for _, c := range models.Circles() {
			out = append(out, circleOut{CircleInfo: c, Posts: counts[c.ID]})
		}
		writeJSON(w, http.StatusOK, out)
	}
}
