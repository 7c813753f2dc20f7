package web

import (
	"net/http"

	"github.com/Jason910315/gentle-gains/internal/domain"
)

func (s *Server) handleWorkout(w http.ResponseWriter, r *http.Request) {
	var req domain.WorkoutLogRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ExerciseName == "" || req.BodyPart == "" {
		s.writeError(w, http.StatusBadRequest, "exercise_name and body_part are required")
		return
	}
	// Weight zero is allowed (bodyweight exercises); negative is not.
	if req.Sets <= 0 || req.Reps <= 0 || req.Weight < 0 {
		s.writeError(w, http.StatusBadRequest, "sets and reps must be positive and weight non-negative")
		return
	}

	rec, err := s.workouts.Insert(r.Context(), req)
	if err != nil {
		s.logger.Error("failed to save workout log", "exercise_name", req.ExerciseName, "error", err)
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, rec)
}
