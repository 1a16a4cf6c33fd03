package handlers

import "net/http"

// Dashboard returns the dashboard aggregate. It needs no token.
func (a *API) Dashboard(w http.ResponseWriter, r *http.Request) {
	payload, err := a.dashboard.Build(r.Context())
	if err != nil {
		a.logger.Error("dashboard failed", "err", err)
		writeError(w, http.StatusInternalServerError, "Failed to load dashboard data")
		return
	}
	writeJSON(w, http.StatusOK, payload)
}
