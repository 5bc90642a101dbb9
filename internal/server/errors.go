package server

import (
	"errors"
	"net/http"

	"github.com/andrea/gig-matcher/internal/engine"
)

// HTTPStatus maps engine errors to HTTP status codes.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, engine.ErrInvalidAction):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrSwipeLimitReached):
		return http.StatusConflict
	case errors.Is(err, engine.ErrJobNotInFeed):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrNothingToRewind):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// friendlyMessage converts gesture rejections into the non-blocking,
// user-facing copy the client shows.
func friendlyMessage(err error) string {
	switch {
	case errors.Is(err, engine.ErrSwipeLimitReached):
		return "You've used all your swipes for today. Come back tomorrow!"
	case errors.Is(err, engine.ErrJobNotInFeed):
		return "That job is no longer in your feed."
	case errors.Is(err, engine.ErrNothingToRewind):
		return "Nothing to undo right now."
	case errors.Is(err, engine.ErrInvalidAction):
		return "Unknown swipe action."
	default:
		return "Something went wrong. Please try again."
	}
}
