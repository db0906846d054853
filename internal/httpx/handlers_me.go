package httpx

import (
	"encoding/json"
	"net/http"

	"local.dev/prepcircle-backend/internal/models"
	"local.dev/prepcircle-backend/internal/store"
)

type meOut struct {
	models.Profile
	DisplayName    string `json:"displayName"`
	CanParticipate bool   `json:"canParticipate"`
}

// GET|PATCH /me ; age and birthday only take effect while none is on record.
func HandleMe(app *AppCtx) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := currentUID(r)
		switch r.Method {
		case http.MethodGet:
		case http.MethodPatch:
			var p models.Profile
			if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
				badRequest(w, "invalid json")
				return
			}
			if p.Age < 0 {
				badRequest(w, "age must not be negative")
				return
			}
			if p.Birthday != "" && !store.ValidBirthday(p.Birthday) {
				badRequest(w, "birthday must be a yyyy-MM-dd date")
				return
			}
			p.ID = uid
			p.IsVerified = false
			app.Store.UpsertProfile(p)
		default:
			writeFail(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
			return
		}
		writeJSON(w, http.StatusOK, meOut{
			Profile:        app.Store.Actor(uid),
			DisplayName:    app.Store.DisplayName(uid),
			CanParticipate: app.Store.CanParticipate(uid),
		})
	}
}

// GET|PATCH /me/privacy ; PATCH changes only the fields present in the body.
func HandlePrivacy(app *AppCtx) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := currentUID(r)
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, app.Store.Privacy(uid))
		case http.MethodPatch:
			var patch models.PrivacyPatch
			if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
				badRequest(w, "invalid json")
				return
			}
			writeJSON(w, http.StatusOK, app.Store.UpdatePrivacy(uid, patch))
		default:
			writeFail(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		}
	}
}
