package httpx

import (
	"errors"
	"net/http"

	"local.dev/prepcircle-backend/internal/playback"
	"local.dev/prepcircle-backend/internal/store"
)

const kindConflict = "conflict"

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func writeFail(w http.ResponseWriter, status int, kind, msg string) {
	writeJSON(w, status, errorBody{Error: msg, Kind: kind})
}

// writeError maps domain errors to status codes. Anything unrecognized is a
// 500 and gets logged.
func writeError(app *AppCtx, w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, playback.ErrNotComplete):
		writeFail(w, http.StatusConflict, kindConflict, err.Error())
		return
	case errors.Is(err, playback.ErrNoSession):
		writeFail(w, http.StatusNotFound, string(store.KindNotFound), err.Error())
		return
	}

	var se *store.Error
	if errors.As(err, &se) {
		app.Logger.Debugw("rejected", "path", r.URL.Path, "uid", currentUID(r), "kind", se.Kind, "error", se.Msg)
		switch se.Kind {
		case store.KindValidation:
			writeFail(w, http.StatusBadRequest, string(se.Kind), se.Msg)
		case store.KindAuthorization:
			writeFail(w, http.StatusForbidden, string(se.Kind), se.Msg)
		case store.KindNotFound:
			writeFail(w, http.StatusNotFound, string(se.Kind), se.Msg)
		default:
			writeFail(w, http.StatusBadRequest, string(se.Kind), se.Msg)
		}
		return
	}

	app.Logger.Errorw("request failed", "path", r.URL.Path, "error", err)
	writeFail(w, http.StatusInternalServerError, "internal", "Internal server error")
}

func badRequest(w http.ResponseWriter, msg string) {
	writeFail(w, http.StatusBadRequest, string(store.KindValidation), msg)
}
