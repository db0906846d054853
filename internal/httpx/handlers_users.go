package httpx

import (
	"net/http"

	"github.com/gorilla/mux"
)

type publicProfile struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Institution string `json:"institution"`
	IsVerified  bool   `json:"isVerified"`
}

// GET /users/{id} ; age and birthday stay private.
func HandleUserProfile(app *AppCtx) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		p := app.Store.Actor(id)
		writeJSON(w, http.StatusOK, publicProfile{
			ID:          id,
			Name:        app.Store.DisplayName(id),
			Institution: p.Institution,
			IsVerified:  p.IsVerified,
		})
	}
}
