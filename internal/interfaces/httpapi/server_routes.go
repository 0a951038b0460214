package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/seasons/{season}/weeks/{week}/games", handler.ListWeekGames)
	mux.HandleFunc("GET /v1/seasons/{season}/weeks/{week}/leaderboard", handler.GetWeeklyLeaderboard)
	mux.HandleFunc("GET /v1/seasons/{season}/standings", handler.GetSeasonStandings)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("PUT /v1/seasons/{season}/weeks/{week}/games/{gameID}/pick", RequireAuth(verifier, http.HandlerFunc(handler.SubmitPick)))
	mux.Handle("GET /v1/seasons/{season}/weeks/{week}/picks/me", RequireAuth(verifier, http.HandlerFunc(handler.ListMyWeekPicks)))
	mux.Handle("POST /v1/internal/ingestion/results", RequireAuth(verifier, http.HandlerFunc(handler.IngestResults)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/settle", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSettleJob)))
	mux.Handle("POST /v1/internal/jobs/recompute", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRecomputeJob)))
	mux.Handle("POST /v1/internal/jobs/feed-sync", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunFeedSyncJob)))
}
