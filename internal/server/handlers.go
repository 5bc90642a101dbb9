package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/andrea/gig-matcher/internal/types"
)

// FeedResponse is the payload for GET /feed.
type FeedResponse struct {
	Jobs        []types.ScoredJob      `json:"jobs"`
	SwipeStatus types.SwipeLimitStatus `json:"swipe_status"`
	CanRewind   bool                   `json:"can_rewind"`
	Exhausted   bool                   `json:"exhausted"`
}

// SwipeRequest is the request body for POST /swipe.
type SwipeRequest struct {
	UserID string `json:"user_id"`
	JobID  string `json:"job_id"`
	Action string `json:"action"`
}

// SwipeResponse is the payload for POST /swipe.
type SwipeResponse struct {
	Status      string                 `json:"status"`
	SwipeStatus types.SwipeLimitStatus `json:"swipe_status"`
}

// RewindRequest is the request body for POST /rewind and /feed/retry.
type RewindRequest struct {
	UserID string `json:"user_id"`
}

// RewindResponse is the payload for POST /rewind.
type RewindResponse struct {
	Job       types.ScoredJob `json:"job"`
	CanRewind bool            `json:"can_rewind"`
}

// handleFeed returns the visible buffer and quota, creating the session
// on first use.
func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		s.errorResponse(w, http.StatusBadRequest, "user_id is required")
		return
	}

	sess, err := s.sessions.Get(r.Context(), userID)
	if err != nil {
		s.log.Error("failed to open session", zap.String("user_id", userID), zap.Error(err))
		s.errorResponse(w, HTTPStatus(err), "Failed to load feed")
		return
	}

	s.jsonResponse(w, http.StatusOK, FeedResponse{
		Jobs:        sess.VisibleJobs(),
		SwipeStatus: sess.LimitStatus(),
		CanRewind:   sess.CanRewind(),
		Exhausted:   sess.FeedExhausted(),
	})
}

// handleFeedRetry clears the exhausted state and fetches the next page.
func (s *Server) handleFeedRetry(w http.ResponseWriter, r *http.Request) {
	var req RewindRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.UserID == "" {
		s.errorResponse(w, http.StatusBadRequest, "user_id is required")
		return
	}

	sess, err := s.sessions.Get(r.Context(), req.UserID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), "Failed to load feed")
		return
	}
	if err := sess.RetryFeed(r.Context()); err != nil {
		s.log.Warn("feed retry failed", zap.String("user_id", req.UserID), zap.Error(err))
	}

	s.jsonResponse(w, http.StatusOK, FeedResponse{
		Jobs:        sess.VisibleJobs(),
		SwipeStatus: sess.LimitStatus(),
		CanRewind:   sess.CanRewind(),
		Exhausted:   sess.FeedExhausted(),
	})
}

// handleSwipe accepts one gesture. The decision is queued; 202 means
// accepted, not committed.
func (s *Server) handleSwipe(w http.ResponseWriter, r *http.Request) {
	var req SwipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.UserID == "" || req.JobID == "" {
		s.errorResponse(w, http.StatusBadRequest, "user_id and job_id are required")
		return
	}

	sess, ok := s.sessions.Lookup(req.UserID)
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "No active session; load the feed first")
		return
	}

	if err := sess.OnSwipe(r.Context(), req.JobID, types.SwipeAction(req.Action)); err != nil {
		s.errorResponse(w, HTTPStatus(err), friendlyMessage(err))
		return
	}

	s.jsonResponse(w, http.StatusAccepted, SwipeResponse{
		Status:      "queued",
		SwipeStatus: sess.LimitStatus(),
	})
}

// handleRewind undoes the most recent swipe of the session.
func (s *Server) handleRewind(w http.ResponseWriter, r *http.Request) {
	var req RewindRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.UserID == "" {
		s.errorResponse(w, http.StatusBadRequest, "user_id is required")
		return
	}

	sess, ok := s.sessions.Lookup(req.UserID)
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "No active session; load the feed first")
		return
	}

	restored, err := sess.OnRewind(r.Context())
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), friendlyMessage(err))
		return
	}

	s.jsonResponse(w, http.StatusOK, RewindResponse{
		Job:       restored,
		CanRewind: sess.CanRewind(),
	})
}

// handleLimit returns the current quota snapshot.
func (s *Server) handleLimit(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		s.errorResponse(w, http.StatusBadRequest, "user_id is required")
		return
	}

	sess, ok := s.sessions.Lookup(userID)
	if !ok {
		// No session yet: answer from the authoritative store.
		status, err := s.backend.Swipes.GetSwipeLimitStatus(r.Context(), userID)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Failed to load swipe limit")
			return
		}
		s.jsonResponse(w, http.StatusOK, status)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess.LimitStatus())
}

// handleHealth is the liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON payload with the given status.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error("failed to encode response", zap.Error(err))
	}
}

// errorResponse writes a JSON error payload.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
