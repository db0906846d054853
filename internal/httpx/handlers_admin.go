package httpx

import "net/http"

// GET /admin/overview
func HandleAdminOverview(app *AppCtx) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, app.Store.Overview())
	}
}

// POST /admin/reset ; reloads everything from the fixtures.
func HandleAdminReset(app *AppCtx) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		app.Store.Reset()
		app.Logger.Warnw("store reset", "uid", currentUID(r))
		writeJSON(w, http.StatusOK, app.Store.Overview())
	}
}
