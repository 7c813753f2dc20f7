package coach

import (
	"context"
	"log/slog"

	"github.com/Jason910315/gentle-gains/internal/domain"
)

// Persona is the fixed system instruction prepended to every completion.
// Kept as a named constant so tone and tool rules can be audited and tested
// independently of the call sites.
const Persona = `You are GentleCoach, a professional fitness coach and nutrition expert with
deep training and dietary knowledge.

Your duties and conduct:
1. Answer the user's questions about fitness, diet and health.
2. Keep the tone positive and encouraging, but grounded in scientific fact.

Tool usage rules:
3. You have access to system tools (logging workouts, looking up meals). Read the
   user's intent and pick the most suitable tool for the task.
4. Before calling any tool, if the user has not supplied enough information to fill
   its required parameters, never fabricate or guess the missing data; ask the user
   for it first.
5. After a tool succeeds, give a short, natural confirmation and encouragement
   based on its result.`

// Apology is returned as the assistant turn when the model call fails. A
// broken upstream must never surface as an error inside a chat thread.
const Apology = "Sorry, GentleCoach's brain short-circuited for a moment. Please try again later."

const (
	// historyLimit bounds the context window handed to the model per turn.
	historyLimit = 10
	// displayLimit is the larger page served to the UI, which wants more
	// context than the model needs.
	displayLimit = 50
)

// ChatLog is the subset of store.ChatStore the agent requires.
type ChatLog interface {
	Append(ctx context.Context, sessionID string, role domain.Role, content string) error
	RecentBySession(ctx context.Context, sessionID string, limit int) ([]domain.ChatMessage, error)
}

// Completer produces one free-text assistant reply for an ordered message list.
type Completer interface {
	Complete(ctx context.Context, messages []domain.ChatMessage) (string, error)
}

type Agent struct {
	chatLog   ChatLog
	completer Completer
	logger    *slog.Logger
}

func NewAgent(chatLog ChatLog, completer Completer, logger *slog.Logger) *Agent {
	return &Agent{chatLog: chatLog, completer: completer, logger: logger}
}

// Chat runs one conversation turn: persist the user message, re-read recent
// history, complete, persist the reply, return it. All persistence is
// best-effort; only the model call affects what the caller sees, and even a
// model failure degrades to a fixed apology rather than an error.
func (a *Agent) Chat(ctx context.Context, sessionID, userQuery string) domain.ChatMessage {
	if err := a.chatLog.Append(ctx, sessionID, domain.RoleUser, userQuery); err != nil {
		a.logger.Error("failed to persist user message", "session_id", sessionID, "error", err)
	}

	history, err := a.chatLog.RecentBySession(ctx, sessionID, historyLimit)
	if err != nil {
		a.logger.Error("failed to fetch chat history", "session_id", sessionID, "error", err)
		history = nil
	}

	// The history normally already contains the user turn persisted above.
	// If the append or the fetch failed, fall back to the in-request turn so
	// the model always sees the question being asked.
	if len(history) == 0 || history[len(history)-1].Content != userQuery || history[len(history)-1].Role != domain.RoleUser {
		history = append(history, domain.ChatMessage{Role: domain.RoleUser, Content: userQuery})
	}

	messages := make([]domain.ChatMessage, 0, len(history)+1)
	messages = append(messages, domain.ChatMessage{Role: domain.RoleSystem, Content: Persona})
	messages = append(messages, history...)

	reply, err := a.completer.Complete(ctx, messages)
	if err != nil {
		a.logger.Error("chat completion failed", "session_id", sessionID, "error", err)
		return domain.ChatMessage{Role: domain.RoleAssistant, Content: Apology}
	}

	if err := a.chatLog.Append(ctx, sessionID, domain.RoleAssistant, reply); err != nil {
		a.logger.Error("failed to persist assistant message", "session_id", sessionID, "error", err)
	}

	return domain.ChatMessage{Role: domain.RoleAssistant, Content: reply}
}

// History returns up to 50 of the session's messages in chronological order
// for display. Store failures degrade to an empty list.
func (a *Agent) History(ctx context.Context, sessionID string) []domain.ChatMessage {
	msgs, err := a.chatLog.RecentBySession(ctx, sessionID, displayLimit)
	if err != nil {
		a.logger.Error("failed to fetch chat history", "session_id", sessionID, "error", err)
		return nil
	}
	return msgs
}
