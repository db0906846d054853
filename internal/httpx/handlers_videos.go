package httpx

import (
	"net/http"

	"github.com/gorilla/mux"

	"local.dev/prepcircle-backend/internal/models"
	"local.dev/prepcircle-backend/internal/store"
)

// GET /videos?module=
func HandleVideos(app *AppCtx) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var module models.Module
		if m := r.URL.Query().Get("module"); m != "" {
			var err error
			if module, err = models.ParseModule(m); err != nil {
				badRequest(w, err.Error())
				return
			}
		}
		writeJSON(w, http.StatusOK, app.Store.Videos(module))
	}
}

// POST /videos/{id}/open ; replaces whatever the user was watching.
func HandleOpenVideo(app *AppCtx) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, ok := app.Store.Video(mux.Vars(r)["id"])
		if !ok {
			writeFail(w, http.StatusNotFound, string(store.KindNotFound), "Video not found.")
			return
		}
		writeJSON(w, http.StatusOK, app.Playback.Open(currentUID(r), v))
	}
}

// GET /videos/session
func HandleVideoSession(app *AppCtx) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := app.Playback.Status(currentUID(r))
		if err != nil {
			writeError(app, w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, snap)
	}
}

// POST /videos/session/close ; 409 until progress reaches 100.
func HandleCloseVideo(app *AppCtx) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := app.Playback.Close(currentUID(r))
		if err != nil {
			writeError(app, w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, snap)
	}
}
