package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/chzyer/readline"
	"github.com/sandevgo/deskbot/internal/config"
	"github.com/sandevgo/deskbot/internal/core"
	"github.com/sandevgo/deskbot/internal/service/ui"
	"github.com/sandevgo/deskbot/pkg/log"
)

const (
	defaultUserID = "cli-local"

	// clearLine returns the cursor to column 0 and erases the line.
	clearLine = "\r\033[K"

	previewWidth = 60
)

// payloadMarkers start the machine-readable part of a completion, which
// the preview must never show.
var payloadMarkers = []string{"{", "SUMMARY_BLOCK", "```"}

// Desk is the conversation core the console drives.
type Desk interface {
	Handle(ctx context.Context, in core.Inbound) ([]core.Intent, error)
}

type ReadLine struct {
	cfg    *config.AppConfig
	desk   Desk
	router core.CmdRouter
	rl     *readline.Instance
	out    io.Writer

	mu          sync.Mutex
	lastBooking string
}

func NewReadLine(desk Desk, router core.CmdRouter, cfg *config.AppConfig) (*ReadLine, error) {
	// Ensure runtime directory exists
	if err := os.MkdirAll(cfg.RuntimePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ">>> ",
		HistoryFile:     cfg.GetInputHistoryPath(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		cfg:    cfg,
		desk:   desk,
		router: router,
		rl:     rl,
		out:    rl.Stdout(),
	}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Str("history", filepath.Base(r.cfg.GetInputHistoryPath())).Msg("ReadLine chat started. Type 'exit' to quit.")

	for {
		// Check context before blocking read
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if len(line) == 0 {
					return nil // Exit on Ctrl+C
				}
				continue
			} else if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}

		r.handleLine(ctx, line)
	}
}

func (r *ReadLine) handleLine(ctx context.Context, line string) {
	if line == "/approve" {
		r.approve(ctx)
		return
	}

	if reply, ok := r.router.Execute(ctx, defaultUserID, line); ok {
		fmt.Fprintln(r.out, reply)
		return
	}

	var (
		streamed strings.Builder
		shown    string
	)
	in := core.Inbound{
		UserID: defaultUserID,
		Kind:   core.InboundText,
		Text:   line,
		OnChunk: func(chunk string) {
			streamed.WriteString(chunk)
			preview := safePreview(streamed.String())
			if preview == shown {
				return
			}
			shown = preview
			fmt.Fprint(r.out, clearLine+ui.PreviewStyle.Render(preview))
		},
	}

	intents, err := r.desk.Handle(ctx, in)
	if streamed.Len() > 0 {
		fmt.Fprint(r.out, clearLine)
	}
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("message not handled")
		return
	}
	r.render(intents)
}

func (r *ReadLine) approve(ctx context.Context) {
	r.mu.Lock()
	ref := r.lastBooking
	r.mu.Unlock()

	if ref == "" {
		fmt.Fprintln(r.out, ui.SystemStyle.Render("No booking awaiting approval."))
		return
	}

	intents, err := r.desk.Handle(ctx, core.Inbound{
		UserID:    defaultUserID,
		Kind:      core.InboundApproval,
		BookingID: ref,
		From:      core.Sender{FullName: "console"},
	})
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("approval not handled")
		return
	}
	r.render(intents)
}

func (r *ReadLine) render(intents []core.Intent) {
	for _, in := range intents {
		switch in.Kind {
		case core.IntentText:
			fmt.Fprintln(r.out, in.Text)
		case core.IntentVoice:
			fmt.Fprintln(r.out, ui.SystemStyle.Render(fmt.Sprintf("Voice reply, %d bytes.", len(in.Audio))))
		case core.IntentCard:
			if in.Card == nil {
				continue
			}
			fmt.Fprintln(r.out, ui.CardStyle.Render(in.Card.Summary()))
			for _, a := range in.Actions {
				if a.Name == core.ActionApprove {
					r.mu.Lock()
					r.lastBooking = a.Ref
					r.mu.Unlock()
					fmt.Fprintln(r.out, ui.SystemStyle.Render(fmt.Sprintf("Type /approve to confirm (%s).", a.Label)))
				}
			}
		}
	}
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}

// safePreview returns the tail of the current line of a partial completion,
// cut before any payload marker. The preview is transient; the extracted
// reply is printed after the turn completes.
func safePreview(partial string) string {
	for _, m := range payloadMarkers {
		if i := strings.Index(partial, m); i >= 0 {
			partial = partial[:i]
		}
	}
	partial = strings.TrimRight(partial, " \t\n")
	if i := strings.LastIndexByte(partial, '\n'); i >= 0 {
		partial = partial[i+1:]
	}
	partial = strings.TrimSpace(partial)

	runes := []rune(partial)
	if len(runes) > previewWidth {
		partial = "…" + string(runes[len(runes)-previewWidth:])
	}
	return partial
}
