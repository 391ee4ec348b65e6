package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/sandevgo/deskbot/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDesk struct {
	inbound []core.Inbound
	reply   []core.Intent
	chunks  []string
}

func (f *fakeDesk) Handle(_ context.Context, in core.Inbound) ([]core.Intent, error) {
	f.inbound = append(f.inbound, in)
	for _, c := range f.chunks {
		in.OnChunk(c)
	}
	return f.reply, nil
}

type fakeRouter struct{}

func (fakeRouter) Execute(_ context.Context, _, input string) (string, bool) {
	if input == "/help" {
		return "HELP", true
	}
	return "", false
}

func (fakeRouter) ListCommands() []core.Command { return nil }

func newTestReadLine(desk *fakeDesk) (*ReadLine, *bytes.Buffer) {
	var out bytes.Buffer
	return &ReadLine{desk: desk, router: fakeRouter{}, out: &out}, &out
}

func TestHandleLine_Command(t *testing.T) {
	desk := &fakeDesk{}
	r, out := newTestReadLine(desk)

	r.handleLine(context.Background(), "/help")

	assert.Equal(t, "HELP\n", out.String())
	assert.Empty(t, desk.inbound)
}

func TestHandleLine_TextAndApproval(t *testing.T) {
	desk := &fakeDesk{reply: []core.Intent{
		core.TextIntent("Отлично!"),
		{
			Kind:    core.IntentCard,
			Card:    &core.BookingPayload{Name: "Alex"},
			Actions: []core.Action{{Name: core.ActionApprove, Ref: "ref-1", Label: "OK"}},
		},
	}}
	r, out := newTestReadLine(desk)
	ctx := context.Background()

	r.handleLine(ctx, "да")

	require.Len(t, desk.inbound, 1)
	assert.Equal(t, core.InboundText, desk.inbound[0].Kind)
	assert.Equal(t, defaultUserID, desk.inbound[0].UserID)
	assert.Contains(t, out.String(), "Отлично!")
	assert.Contains(t, out.String(), "Name: Alex")
	assert.Contains(t, out.String(), "/approve")

	desk.reply = []core.Intent{core.TextIntent("sent")}
	r.handleLine(ctx, "/approve")

	require.Len(t, desk.inbound, 2)
	assert.Equal(t, core.InboundApproval, desk.inbound[1].Kind)
	assert.Equal(t, "ref-1", desk.inbound[1].BookingID)
}

func TestHandleLine_ApproveWithoutCard(t *testing.T) {
	desk := &fakeDesk{}
	r, out := newTestReadLine(desk)

	r.handleLine(context.Background(), "/approve")

	assert.Contains(t, out.String(), "No booking")
	assert.Empty(t, desk.inbound)
}

func TestHandleLine_StreamedPayloadNeverPrinted(t *testing.T) {
	desk := &fakeDesk{
		chunks: []string{"Отлично, ", "Алекс!\n", `{"booking_`, `confirmed": true, "name": "Alex"}`},
		reply:  []core.Intent{core.TextIntent("Отлично, Алекс!")},
	}
	r, out := newTestReadLine(desk)

	r.handleLine(context.Background(), "да")

	got := out.String()
	assert.NotContains(t, got, "booking")
	assert.NotContains(t, got, "{")
	assert.True(t, strings.HasSuffix(got, clearLine+"Отлично, Алекс!\n"), got)
}

func TestSafePreview(t *testing.T) {
	tests := []struct {
		name    string
		partial string
		want    string
	}{
		{name: "plain", partial: "При", want: "При"},
		{name: "json cut", partial: `Готово {"booking_confirmed"`, want: "Готово"},
		{name: "block cut", partial: "Итог:\nSUMMARY_BLOCK:\nName: A", want: "Итог:"},
		{name: "fence cut", partial: "Вот\n```json", want: "Вот"},
		{name: "last line", partial: "first\nsecond", want: "second"},
		{name: "long", partial: strings.Repeat("a", previewWidth+5), want: "…" + strings.Repeat("a", previewWidth)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, safePreview(tt.partial))
		})
	}
}
