package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSlackNotifier_buildBlockKitPayload(t *testing.T) {
	t.Run("TC-1: should link the title when LinkURL is set", func(t *testing.T) {
		// Arrange
		n := NewSlackNotifier(SlackConfig{LinkURL: "https://newsroom.example/newspaper"})

		// Act
		payload := n.buildBlockKitPayload(testPaper())

		// Assert
		if payload.Text != "Daily Digest - 3/1/2026" {
			t.Errorf("fallback text = %q", payload.Text)
		}
		if len(payload.Blocks) != 4 {
			t.Fatalf("expected section, divider, highlights and context; got %d blocks", len(payload.Blocks))
		}
		head := payload.Blocks[0].Text.Text
		if !strings.HasPrefix(head, "*<https://newsroom.example/newspaper|Daily Digest - 3/1/2026>*") {
			t.Errorf("title block = %q", head)
		}
		if !strings.Contains(payload.Blocks[2].Text.Text, "*Technology: Rust in 2026*") {
			t.Errorf("highlights block = %q", payload.Blocks[2].Text.Text)
		}
		if got := payload.Blocks[3].Elements[0].Text; got != "2 newsletters • 2026-03-01" {
			t.Errorf("context = %q", got)
		}
	})

	t.Run("TC-2: should omit highlights when none are marked", func(t *testing.T) {
		n := NewSlackNotifier(SlackConfig{})
		paper := testPaper()
		for _, item := range paper.Items {
			item.Highlight = false
		}

		payload := n.buildBlockKitPayload(paper)

		if len(payload.Blocks) != 2 {
			t.Fatalf("expected 2 blocks, got %d", len(payload.Blocks))
		}
		if !strings.HasPrefix(payload.Blocks[0].Text.Text, "*Daily Digest - 3/1/2026*") {
			t.Errorf("title block = %q", payload.Blocks[0].Text.Text)
		}
	})

	t.Run("TC-3: should truncate section text", func(t *testing.T) {
		n := NewSlackNotifier(SlackConfig{})
		paper := testPaper()
		paper.Summary = strings.Repeat("x", maxSectionTextLength*2)

		text := n.buildBlockKitPayload(paper).Blocks[0].Text.Text

		if len([]rune(text)) != maxSectionTextLength {
			t.Errorf("section length = %d", len([]rune(text)))
		}
	})
}

func TestSlackNotifier_Send(t *testing.T) {
	var got SlackWebhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()
	n := NewSlackNotifier(SlackConfig{Enabled: true, WebhookURL: srv.URL})

	if err := n.Send(context.Background(), testPaper()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Text != "Daily Digest - 3/1/2026" {
		t.Errorf("fallback text = %q", got.Text)
	}
	if n.Name() != "slack" {
		t.Errorf("name = %q", n.Name())
	}
}
