package ai

import (
	"errors"
	"strings"

	"github.com/sunbeekim/MainProject/internal/model/chat"
)

// historyWindow is how many trailing turns of the caller's history make
// it into the prompt. Older turns are never read.
const historyWindow = 4

// ErrInvalidTurn signals a history turn without user text, which the
// request contract requires.
var ErrInvalidTurn = errors.New("history turn missing user text")

// BuildPrompt assembles the text sent to the completion backend: the
// persona wrapped in a system tag, the last turns of the caller's
// history, then the new message followed by an open assistant tag so
// the model continues from there.
func BuildPrompt(systemPrompt string, history []chat.Turn, message string) (string, error) {
	var b strings.Builder

	b.WriteString("<system>")
	b.WriteString(systemPrompt)
	b.WriteString("</system>\n")

	start := 0
	if len(history) > historyWindow {
		start = len(history) - historyWindow
	}
	for _, turn := range history[start:] {
		if turn.User == "" {
			return "", ErrInvalidTurn
		}
		b.WriteString("<user>")
		b.WriteString(turn.User)
		b.WriteString("</user>\n")
		if turn.Answered() {
			b.WriteString("<assistant>")
			b.WriteString(turn.Assistant)
			b.WriteString("</assistant>\n")
		}
	}

	b.WriteString("<user>")
	b.WriteString(message)
	b.WriteString("</user>\n<assistant>")

	return b.String(), nil
}
