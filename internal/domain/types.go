package domain

import "time"

// Role identifies the author of a chat turn. Values match the hosted model's
// message roles so stored history can be replayed verbatim.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one turn in a session's conversation log. CreatedAt is
// assigned by the store and only used for ordering and display; it is zero
// on model-facing messages.
type ChatMessage struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// FoodAnalysisResult is the structured verdict returned by the vision model
// for a single food photo. IsSaved is set by the HTTP layer after the
// persistence attempt; the model never supplies it.
type FoodAnalysisResult struct {
	Calories     int     `json:"calories"`
	Protein      int     `json:"protein"`
	Fat          int     `json:"fat"`
	Carbs        int     `json:"carbs"`
	Score        float64 `json:"score"`
	CoachComment string  `json:"coach_comment"`
	Reasoning    string  `json:"reasoning"`
	IsSaved      bool    `json:"is_saved"`
}

// AnalyzeRequest is the POST /api/v1/analyze body. ImageBase64 may arrive
// with a data-URI prefix; the analyzer strips it before use.
type AnalyzeRequest struct {
	ImageBase64 string `json:"image_base64"`
	FoodName    string `json:"food_name"`
	MealType    string `json:"meal_type"`
}

// FoodLogRecord is a persisted food analysis. ImageURL holds the base64
// payload the caller uploaded, mirroring the food_logs.image_url column.
type FoodLogRecord struct {
	ID           int64     `json:"id"`
	FoodName     string    `json:"food_name"`
	ImageURL     string    `json:"image_url"`
	MealType     string    `json:"meal_type"`
	Calories     int       `json:"calories"`
	Protein      int       `json:"protein"`
	Fat          int       `json:"fat"`
	Carbs        int       `json:"carbs"`
	Score        float64   `json:"score"`
	CoachComment string    `json:"coach_comment"`
	CreatedAt    time.Time `json:"created_at"`
}

// WorkoutLogRequest is the POST /api/v1/workout body.
type WorkoutLogRequest struct {
	ExerciseName string  `json:"exercise_name"`
	BodyPart     string  `json:"body_part"`
	Weight       float64 `json:"weight"`
	Sets         int     `json:"sets"`
	Reps         int     `json:"reps"`
}

// WorkoutLogRecord is a persisted workout entry.
type WorkoutLogRecord struct {
	ID           int64     `json:"id"`
	ExerciseName string    `json:"exercise_name"`
	BodyPart     string    `json:"body_part"`
	Weight       float64   `json:"weight"`
	Sets         int       `json:"sets"`
	Reps         int       `json:"reps"`
	CreatedAt    time.Time `json:"created_at"`
}

// ChatRequest is the POST /api/v1/chat body. SessionID is an opaque
// caller-supplied identifier; the set of messages sharing it is the session.
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Content   string `json:"content"`
}
