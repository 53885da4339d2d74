package api

import "net/http"

// handleDashboard serves the single-snapshot read API: the ranked
// application list and every derived aggregate, all computed from one
// consistent snapshot.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	recruiterID, ok := queryUint(r, "recruiter_id")
	if !ok {
		respondBadRequest(w, "recruiter_id is required")
		return
	}

	snapshot, err := s.synchronizer.Snapshot(r.Context(), recruiterID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, snapshot)
}
