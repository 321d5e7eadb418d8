// Package bot turns chat messages into rendered deck-sheet replies.
// The messaging platform itself stays behind the Gateway interface;
// this package only decides, per message, whether there is a deck to
// render and what the reply looks like.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/arcusworks/deckherald/internal/card"
	"github.com/arcusworks/deckherald/internal/deckcode"
	"github.com/arcusworks/deckherald/internal/render"
)

// Message is one incoming chat message.
type Message struct {
	ID      string
	Channel string
	Author  string
	Content string
}

// Reply is what gets dispatched back for a decoded deck.
type Reply struct {
	Text      string
	Image     []byte
	ImageName string
}

// Gateway is the messaging platform adapter.
type Gateway interface {
	// Messages delivers incoming messages until ctx is done or the
	// connection closes, then closes the channel.
	Messages(ctx context.Context) (<-chan Message, error)

	// Reply dispatches a reply to the message's channel.
	Reply(ctx context.Context, to Message, reply Reply) error
}

// Handler decodes message content and renders replies.
type Handler struct {
	decoder  *deckcode.Decoder
	renderer *render.Renderer
	logger   *zap.Logger
}

func NewHandler(decoder *deckcode.Decoder, renderer *render.Renderer, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{decoder: decoder, renderer: renderer, logger: logger}
}

// Handle inspects one message's content. It returns a nil reply for
// anything that should render nothing: non-candidate text, codes with
// an invalid shape, and codes whose chunks all drop. Only a render
// failure on a real deck surfaces as an error.
func (h *Handler) Handle(ctx context.Context, content string) (*Reply, error) {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, deckcode.Marker) {
		return nil, nil
	}

	ids, err := h.decoder.Decode(content)
	if err != nil {
		var ferr *deckcode.FormatError
		if errors.As(err, &ferr) {
			// Chat traffic that happens to start with the marker.
			h.logger.Debug("ignoring malformed deck code",
				zap.String("reason", ferr.Reason),
				zap.String("offending", ferr.Offending))
			return nil, nil
		}
		return nil, err
	}

	entries := card.Tally(ids)
	if len(entries) == 0 {
		return nil, nil
	}

	img, err := h.renderer.Compose(entries)
	if err != nil {
		return nil, fmt.Errorf("compose sheet: %w", err)
	}
	data, err := render.EncodePNG(img)
	if err != nil {
		return nil, err
	}

	return &Reply{
		Text:      fmt.Sprintf("%d cards, %d distinct: %s", len(ids), len(entries), card.Summary(entries)),
		Image:     data,
		ImageName: "deck.png",
	}, nil
}

// Run consumes the gateway's messages until the context ends or the
// message channel closes. One bad message never stops the loop.
func Run(ctx context.Context, gw Gateway, h *Handler, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	messages, err := gw.Messages(ctx)
	if err != nil {
		return fmt.Errorf("open message stream: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			reply, err := h.Handle(ctx, msg.Content)
			if err != nil {
				logger.Warn("failed to handle message",
					zap.String("message_id", msg.ID), zap.Error(err))
				continue
			}
			if reply == nil {
				continue
			}
			if err := gw.Reply(ctx, msg, *reply); err != nil {
				logger.Warn("failed to dispatch reply",
					zap.String("message_id", msg.ID), zap.Error(err))
				continue
			}
			logger.Info("replied with deck sheet",
				zap.String("message_id", msg.ID),
				zap.String("channel", msg.Channel))
		}
	}
}
