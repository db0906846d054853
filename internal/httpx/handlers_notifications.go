package httpx

import (
	"net/http"

	"github.com/gorilla/mux"

	"local.dev/prepcircle-backend/internal/models"
)

type inboxOut struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unreadCount"`
}

func inbox(app *AppCtx, uid string) inboxOut {
	return inboxOut{
		Notifications: app.Store.Notifications(uid),
		UnreadCount:   app.Store.UnreadCount(uid),
	}
}

// GET /notifications
func HandleNotifications(app *AppCtx) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, inbox(app, currentUID(r)))
	}
}

// POST /notifications/{id}/read
func HandleMarkRead(app *AppCtx) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := currentUID(r)
		if err := app.Store.MarkRead(uid, mux.Vars(r)["id"]); err != nil {
			writeError(app, w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, inbox(app, uid))
	}
}

// POST /notifications/read-all
func HandleMarkAllRead(app *AppCtx) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := currentUID(r)
		app.Store.MarkAllRead(uid)
		writeJSON(w, http.StatusOK, inbox(app, uid))
	}
}
