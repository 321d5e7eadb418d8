package bot

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcusworks/deckherald/internal/deckcode"
	"github.com/arcusworks/deckherald/internal/library"
	"github.com/arcusworks/deckherald/internal/render"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	root := t.TempDir()
	manifest := "[library]\nid = \"t\"\nname = \"t\"\nversion = \"1.0\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "library.toml"), []byte(manifest), 0644))
	lib, err := library.Load(root)
	require.NoError(t, err)

	renderer := render.New(lib, render.Options{CardWidth: 20, CardHeight: 28, CacheDir: t.TempDir()})
	return NewHandler(deckcode.NewDecoder(), renderer, nil)
}

func TestHandleRendersDeck(t *testing.T) {
	h := newTestHandler(t)

	reply, err := h.Handle(context.Background(), "KCG-YDqjwgKJkG")
	require.NoError(t, err)
	require.NotNil(t, reply)
	assert.Contains(t, reply.Text, "5 cards, 2 distinct")
	assert.Contains(t, reply.Text, "AA-11 x3")
	assert.NotEmpty(t, reply.Image)
	assert.Equal(t, "deck.png", reply.ImageName)
}

func TestHandleIgnores(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name    string
		content string
	}{
		{name: "plain chatter", content: "good game everyone"},
		{name: "empty message", content: ""},
		{name: "marker with bad symbol", content: "KCG-@"},
		{name: "marker with empty payload", content: "KCG-"},
		{name: "valid code with no surviving cards", content: "KCG-YDi"},
		{name: "descriptor only", content: "KCG-Y"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, err := h.Handle(context.Background(), tt.content)
			require.NoError(t, err)
			assert.Nil(t, reply)
		})
	}
}

func TestHandleTrimsWhitespace(t *testing.T) {
	h := newTestHandler(t)
	reply, err := h.Handle(context.Background(), "  KCG-YDqjwgKJkG \n")
	require.NoError(t, err)
	assert.NotNil(t, reply)
}

func TestRunRepliesAndStops(t *testing.T) {
	h := newTestHandler(t)

	in := strings.NewReader("hello\nKCG-YDqjwgKJkG\n")
	var out strings.Builder
	gw := NewStdioGateway(in, &out, t.TempDir())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Input is exhausted, so Run returns once both lines are handled.
	err := Run(ctx, gw, h, nil)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "AA-11 x3")
	assert.NotContains(t, out.String(), "hello")
}

func TestMessagesUnblockOnCancel(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer w.Close()
	gw := NewStdioGateway(r, &strings.Builder{}, t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	messages, err := gw.Messages(ctx)
	require.NoError(t, err)

	// Nothing is ever written; cancellation must still end the stream.
	cancel()
	select {
	case _, ok := <-messages:
		assert.False(t, ok, "channel should close without delivering")
	case <-time.After(5 * time.Second):
		t.Fatal("Messages did not unblock on context cancellation")
	}
}

func TestRunHonorsContext(t *testing.T) {
	h := newTestHandler(t)

	// A reader that never delivers anything keeps the stream open.
	blocked, w, err := os.Pipe()
	require.NoError(t, err)
	defer blocked.Close()
	defer w.Close()
	gw := NewStdioGateway(blocked, &strings.Builder{}, t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, gw, h, nil) }()

	cancel()
	select {
	case err := <-done:
		// Cancellation either surfaces directly or closes the input
		// stream first, ending the loop cleanly.
		if err != nil {
			assert.ErrorIs(t, err, context.Canceled)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop on context cancellation")
	}
}
