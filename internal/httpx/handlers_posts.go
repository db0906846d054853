package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"local.dev/prepcircle-backend/internal/models"
)

// GET /posts?view=feed|trending|bookmarks&circle=
func HandleListPosts(app *AppCtx) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		view, err := models.ParseView(q.Get("view"))
		if err != nil {
			badRequest(w, err.Error())
			return
		}
		var circle models.Circle
		if c := q.Get("circle"); c != "" && c != "all" {
			if circle, err = models.ParseCircle(c); err != nil {
				badRequest(w, err.Error())
				return
			}
		}
		writeJSON(w, http.StatusOK, app.Store.VisiblePosts(view, circle, tryViewerUID(app, r)))
	}
}

// GET /posts/{id}
func HandleGetPost(app *AppCtx) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := app.Store.Post(mux.Vars(r)["id"], tryViewerUID(app, r))
		if err != nil {
			writeError(app, w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

// POST /posts  body: {"content": "...", "module": "Fire Safety"}
// The author always comes from the token.
func HandleCreatePost(app *AppCtx) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Content string `json:"content"`
			Module  string `json:"module"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, "invalid json")
			return
		}
		uid := currentUID(r)
		p, err := app.Store.SubmitPost(app.Store.Actor(uid), req.Content, models.Module(req.Module), app.Store.Privacy(uid))
		if err != nil {
			writeError(app, w, r, err)
			return
		}
		app.Logger.Infow("post created", "uid", uid, "post", p.ID, "module", p.Module)
		writeJSON(w, http.StatusCreated, p)
	}
}

func HandleUpvote(app *AppCtx) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := currentUID(r)
		p, err := app.Store.ToggleUpvote(mux.Vars(r)["id"], app.Store.Actor(uid))
		if err != nil {
			writeError(app, w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

func HandleBookmark(app *AppCtx) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := currentUID(r)
		p, err := app.Store.ToggleBookmark(mux.Vars(r)["id"], app.Store.Actor(uid))
		if err != nil {
			writeError(app, w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

// POST /posts/{id}/replies  body: {"content": "..."}
func HandleCreateReply(app *AppCtx) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Content string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, "invalid json")
			return
		}
		uid := currentUID(r)
		reply, err := app.Store.SubmitReply(mux.Vars(r)["id"], app.Store.Actor(uid), req.Content, app.Store.Privacy(uid))
		if err != nil {
			writeError(app, w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, reply)
	}
}

func HandleUpvoteReply(app *AppCtx) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		reply, err := app.Store.UpvoteReply(vars["id"], vars["replyId"], app.Store.Actor(currentUID(r)))
		if err != nil {
			writeError(app, w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, reply)
	}
}

// POST /posts/{id}/report  body: {"reason": "..."}
func HandleReport(app *AppCtx) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Reason string `json:"reason"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, "invalid json")
			return
		}
		uid := currentUID(r)
		rep, err := app.Store.SubmitReport(mux.Vars(r)["id"], app.Store.Actor(uid), req.Reason)
		if err != nil {
			writeError(app, w, r, err)
			return
		}
		app.Logger.Infow("post reported", "uid", uid, "post", rep.PostID, "report", rep.ID)
		writeJSON(w, http.StatusCreated, map[string]any{
			"report":  rep,
			"message": "Thank you. Our moderators will review this post.",
		})
	}
}
