package bot

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// StdioGateway reads one message per input line and writes replies to
// an output stream, saving reply images next to the process. It exists
// so the serve loop can run without platform credentials.
type StdioGateway struct {
	In       io.Reader
	Out      io.Writer
	ImageDir string
}

func NewStdioGateway(in io.Reader, out io.Writer, imageDir string) *StdioGateway {
	return &StdioGateway{In: in, Out: out, ImageDir: imageDir}
}

// Messages streams one message per input line. The channel closes when
// the input stream ends; if In is closable, cancelling ctx closes it so
// a blocked read does not outlive the loop.
func (g *StdioGateway) Messages(ctx context.Context) (<-chan Message, error) {
	if closer, ok := g.In.(io.Closer); ok {
		go func() {
			<-ctx.Done()
			_ = closer.Close()
		}()
	}

	messages := make(chan Message)
	go func() {
		defer close(messages)
		scanner := bufio.NewScanner(g.In)
		seq := 0
		for scanner.Scan() {
			seq++
			msg := Message{
				ID:      fmt.Sprintf("stdin-%d", seq),
				Channel: "stdin",
				Content: scanner.Text(),
			}
			select {
			case <-ctx.Done():
				return
			case messages <- msg:
			}
		}
	}()
	return messages, nil
}

func (g *StdioGateway) Reply(ctx context.Context, to Message, reply Reply) error {
	if len(reply.Image) > 0 {
		dir := g.ImageDir
		if dir == "" {
			dir = os.TempDir()
		}
		path := filepath.Join(dir, fmt.Sprintf("%s-%s", to.ID, reply.ImageName))
		if err := os.WriteFile(path, reply.Image, 0644); err != nil {
			return fmt.Errorf("write reply image: %w", err)
		}
		fmt.Fprintf(g.Out, "%s (sheet: %s)\n", reply.Text, path)
		return nil
	}
	fmt.Fprintln(g.Out, reply.Text)
	return nil
}
