package web

import (
	"net/http"

	"github.com/Jason910315/gentle-gains/internal/domain"
)

// handleAnalyze runs the analysis flow: validate the request, ask the vision
// model for a verdict, persist it best-effort, and return the verdict with
// is_saved reflecting the persistence outcome. Analysis failures are fatal to
// the request; persistence failures are not.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req domain.AnalyzeRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ImageBase64 == "" || req.FoodName == "" || req.MealType == "" {
		s.writeError(w, http.StatusBadRequest, "image_base64, food_name and meal_type are required")
		return
	}

	result, err := s.analyzer.AnalyzeFood(r.Context(), req.ImageBase64, req.FoodName, req.MealType)
	if err != nil {
		s.logger.Error("analyze failed", "food_name", req.FoodName, "error", err)
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if _, err := s.foods.Insert(r.Context(), result, req.ImageBase64, req.FoodName, req.MealType); err != nil {
		// The verdict is still worth returning; the caller learns about the
		// lost write through is_saved.
		s.logger.Error("failed to save food log", "food_name", req.FoodName, "error", err)
		result.IsSaved = false
	} else {
		result.IsSaved = true
	}

	s.writeJSON(w, http.StatusOK, result)
}
