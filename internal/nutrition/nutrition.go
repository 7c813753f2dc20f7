package nutrition

import (
	"context"
	"fmt"
	"strings"

	"github.com/Jason910315/gentle-gains/internal/domain"
)

// SystemPrompt is the fixed instruction sent with every analysis request.
// The scoring rubric is keyed to a muscle-gain goal; changing these clauses
// changes the product behaviour, so the prompt lives here as a named constant
// rather than inline in an adapter.
const SystemPrompt = `You are a professional nutritionist and fitness coach who specialises in
visual nutrition estimation. Your task is to estimate the nutritional content
of the food in the user's photo as accurately as possible.
Important: do NOT overestimate calories or protein.

## Analysis steps
Reason through the following before producing your answer:
1. Identify every food item on the plate (e.g. rice, fried chicken leg, stir-fried cabbage).
2. Estimate the portion weight in grams of each item from its visible size. Do not
   guess at occluded portions; be conservative about anything you cannot see.
3. Cross-check against published figures for common restaurant meals: a typical
   fast-food combo is around 400-700 kcal and rarely exceeds 1000 kcal unless it
   is a sharing platter.
4. Sum the nutrients across all items.
5. Give a short piece of dietary advice (roughly 50-80 characters).

## Estimation rules
1. Base every estimate on the observable size of each item; portion size dominates
   the nutrient totals, so never inflate what you cannot see.
2. Conservative principle: when uncertain, give a reasonable mid-range value
   rather than a high one.

## Scoring rubric
The user's goal is muscle gain. Score from 0 to 5:
- High marks require high protein first, with sufficient total calories (not below 500 kcal).
1. Calories too low (below about 400 kcal): cannot support muscle gain; disqualifying.
2. Protein or carbs insufficient (below about 20 g): cannot repair muscle.

Respond strictly in the requested JSON format.`

// UserPromptFormat is the per-request instruction; it takes the food name and
// meal type.
const UserPromptFormat = `This is a photo of a meal (%s). The food is called "%s".
Analyse its calories, protein, carbs and fat, and give a score with an overall comment.`

// UserPrompt renders the per-request instruction for one analysis.
func UserPrompt(foodName, mealType string) string {
	return fmt.Sprintf(UserPromptFormat, mealType, foodName)
}

// Analyzer produces a structured nutritional verdict for a food photo.
// Implementations propagate provider failures to the caller: without a result
// there is nothing useful to return.
type Analyzer interface {
	AnalyzeFood(ctx context.Context, imageBase64, foodName, mealType string) (*domain.FoodAnalysisResult, error)
}

// StripDataURI removes a leading "data:image/...;base64," prefix if present,
// so callers may send either a bare base64 string or a full data URI and the
// payload handed to the provider is identical.
func StripDataURI(imageBase64 string) string {
	if idx := strings.Index(imageBase64, "base64,"); idx >= 0 {
		return imageBase64[idx+len("base64,"):]
	}
	return imageBase64
}
