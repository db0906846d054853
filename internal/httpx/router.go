package httpx

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires every route behind CORS, panic recovery and the access log.
func NewRouter(app *AppCtx) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// feed
	r.HandleFunc("/posts", HandleListPosts(app)).Methods(http.MethodGet)
	r.HandleFunc("/posts", WithAuth(app, HandleCreatePost(app))).Methods(http.MethodPost)
	r.HandleFunc("/posts/{id}", HandleGetPost(app)).Methods(http.MethodGet)
	r.HandleFunc("/posts/{id}/upvote", WithAuth(app, HandleUpvote(app))).Methods(http.MethodPost)
	r.HandleFunc("/posts/{id}/bookmark", WithAuth(app, HandleBookmark(app))).Methods(http.MethodPost)
	r.HandleFunc("/posts/{id}/replies", WithAuth(app, HandleCreateReply(app))).Methods(http.MethodPost)
	r.HandleFunc("/posts/{id}/replies/{replyId}/upvote", WithAuth(app, HandleUpvoteReply(app))).Methods(http.MethodPost)
	r.HandleFunc("/posts/{id}/report", WithAuth(app, HandleReport(app))).Methods(http.MethodPost)
	r.HandleFunc("/circles", HandleCircles(app)).Methods(http.MethodGet)

	// notifications
	r.HandleFunc("/notifications", WithAuth(app, HandleNotifications(app))).Methods(http.MethodGet)
	r.HandleFunc("/notifications/read-all", WithAuth(app, HandleMarkAllRead(app))).Methods(http.MethodPost)
	r.HandleFunc("/notifications/{id}/read", WithAuth(app, HandleMarkRead(app))).Methods(http.MethodPost)

	// profile & privacy
	r.HandleFunc("/me", WithAuth(app, HandleMe(app))).Methods(http.MethodGet, http.MethodPatch)
	r.HandleFunc("/me/privacy", WithAuth(app, HandlePrivacy(app))).Methods(http.MethodGet, http.MethodPatch)
	r.HandleFunc("/users/{id}", HandleUserProfile(app)).Methods(http.MethodGet)

	// training videos
	r.HandleFunc("/videos", HandleVideos(app)).Methods(http.MethodGet)
	r.HandleFunc("/videos/session", WithAuth(app, HandleVideoSession(app))).Methods(http.MethodGet)
	r.HandleFunc("/videos/session/close", WithAuth(app, HandleCloseVideo(app))).Methods(http.MethodPost)
	r.HandleFunc("/videos/{id}/open", WithAuth(app, HandleOpenVideo(app))).Methods(http.MethodPost)

	// admin
	r.HandleFunc("/admin/overview", WithAdmin(app, HandleAdminOverview(app))).Methods(http.MethodGet)
	r.HandleFunc("/admin/reset", WithAdmin(app, HandleAdminReset(app))).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeFail(w, http.StatusNotFound, "not_found", "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeFail(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	var h http.Handler = r
	h = AccessLog(app.Logger, h)
	h = Recover(app.Logger, h)
	return CORS(h)
}
