package ai

import (
	"errors"
	"strings"
	"testing"

	"github.com/sunbeekim/MainProject/internal/model/chat"
)

func TestBuildPromptUsesOnlyLastFourTurns(t *testing.T) {
	history := []chat.Turn{
		{User: "turn-1", Assistant: "reply-1"},
		{User: "turn-2", Assistant: "reply-2"},
		{User: "turn-3", Assistant: "reply-3"},
		{User: "turn-4", Assistant: "reply-4"},
		{User: "turn-5", Assistant: "reply-5"},
		{User: "turn-6", Assistant: "reply-6"},
	}

	prompt, err := BuildPrompt("persona", history, "latest")
	if err != nil {
		t.Fatalf("BuildPrompt err: %v", err)
	}

	for _, dropped := range []string{"turn-1", "turn-2", "reply-1", "reply-2"} {
		if strings.Contains(prompt, dropped) {
			t.Fatalf("prompt contains dropped turn %q", dropped)
		}
	}

	// The kept turns appear oldest first.
	last := -1
	for _, kept := range []string{"turn-3", "turn-4", "turn-5", "turn-6", "latest"} {
		idx := strings.Index(prompt, kept)
		if idx < 0 {
			t.Fatalf("prompt missing %q", kept)
		}
		if idx < last {
			t.Fatalf("prompt orders %q before preceding turn", kept)
		}
		last = idx
	}
}

func TestBuildPromptShape(t *testing.T) {
	history := []chat.Turn{
		{User: "q1", Assistant: "a1"},
	}

	prompt, err := BuildPrompt("persona text", history, "q2")
	if err != nil {
		t.Fatalf("BuildPrompt err: %v", err)
	}

	want := "<system>persona text</system>\n" +
		"<user>q1</user>\n<assistant>a1</assistant>\n" +
		"<user>q2</user>\n<assistant>"
	if prompt != want {
		t.Fatalf("unexpected prompt:\n got %q\nwant %q", prompt, want)
	}
	if strings.HasSuffix(prompt, "</assistant>") {
		t.Fatal("final assistant tag must stay open")
	}
}

func TestBuildPromptUnansweredTurn(t *testing.T) {
	history := []chat.Turn{
		{User: "pending question"},
	}

	prompt, err := BuildPrompt("persona", history, "next")
	if err != nil {
		t.Fatalf("BuildPrompt err: %v", err)
	}

	if strings.Contains(prompt, "<assistant></assistant>") {
		t.Fatal("unanswered turn must not emit an assistant pair")
	}
	if got := strings.Count(prompt, "<assistant>"); got != 1 {
		t.Fatalf("expected only the trailing assistant tag, got %d", got)
	}
}

func TestBuildPromptMissingUserText(t *testing.T) {
	history := []chat.Turn{
		{Assistant: "orphan reply"},
	}

	if _, err := BuildPrompt("persona", history, "next"); !errors.Is(err, ErrInvalidTurn) {
		t.Fatalf("expected ErrInvalidTurn, got %v", err)
	}
}
