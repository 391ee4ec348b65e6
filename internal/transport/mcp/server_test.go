package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/client"
	mcpproto "github.com/mark3labs/mcp-go/mcp"
	"github.com/sandevgo/deskbot/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	services []core.Service
	err      error
}

func (f *fakeCatalog) ListServices(context.Context) ([]core.Service, error) {
	return f.services, f.err
}

type fakeBookings struct {
	bookings  []core.Booking
	lastLimit int
}

func (f *fakeBookings) SaveBooking(context.Context, core.Booking) error { return nil }

func (f *fakeBookings) ListBookings(_ context.Context, limit int) ([]core.Booking, error) {
	f.lastLimit = limit
	if limit < len(f.bookings) {
		return f.bookings[:limit], nil
	}
	return f.bookings, nil
}

type fakeContacts struct {
	records map[string]core.ContactRecord
}

func (f *fakeContacts) GetContact(_ context.Context, userID string) (*core.ContactRecord, error) {
	rec, ok := f.records[userID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeContacts) SaveContact(context.Context, string, core.ContactRecord) error { return nil }

func (f *fakeContacts) DeleteContact(context.Context, string) (bool, error) { return false, nil }

func callRequest(name string, args map[string]any) mcpproto.CallToolRequest {
	req := mcpproto.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcpproto.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	text, ok := mcpproto.AsTextContent(res.Content[0])
	require.True(t, ok)
	return text.Text
}

func newTestServer() (*Server, *fakeBookings) {
	bookings := &fakeBookings{bookings: []core.Booking{
		{ID: "b2", UserID: "1", Payload: core.BookingPayload{Name: "Bea"}},
		{ID: "b1", UserID: "2", Payload: core.BookingPayload{Name: "Al"}},
	}}
	s := NewServer(
		&fakeCatalog{services: []core.Service{{ID: 1, Name: "Audit", PriceRange: "от 500$"}}},
		bookings,
		&fakeContacts{records: map[string]core.ContactRecord{"42": {Name: "Alex", Phone: "+100"}}},
	)
	return s, bookings
}

func TestListServices(t *testing.T) {
	s, _ := newTestServer()

	res, err := s.listServices(context.Background(), callRequest(toolListServices, nil))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	var got []core.Service
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Audit", got[0].Name)
}

func TestListServices_StoreError(t *testing.T) {
	s := NewServer(&fakeCatalog{err: errors.New("db locked")}, &fakeBookings{}, &fakeContacts{})

	res, err := s.listServices(context.Background(), callRequest(toolListServices, nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.NotContains(t, resultText(t, res), "db locked")
}

func TestListBookings_Limit(t *testing.T) {
	tests := []struct {
		name      string
		args      map[string]any
		wantErr   bool
		wantLimit int
		wantLen   int
	}{
		{name: "default", args: nil, wantLimit: defaultBookingsLimit, wantLen: 2},
		{name: "explicit", args: map[string]any{"limit": float64(1)}, wantLimit: 1, wantLen: 1},
		{name: "zero", args: map[string]any{"limit": float64(0)}, wantErr: true},
		{name: "too large", args: map[string]any{"limit": float64(maxBookingsLimit + 1)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, bookings := newTestServer()

			res, err := s.listBookings(context.Background(), callRequest(toolListBookings, tt.args))
			require.NoError(t, err)
			assert.Equal(t, tt.wantErr, res.IsError)
			if tt.wantErr {
				return
			}

			assert.Equal(t, tt.wantLimit, bookings.lastLimit)
			var got []core.Booking
			require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestGetContact(t *testing.T) {
	s, _ := newTestServer()
	ctx := context.Background()

	res, err := s.getContact(ctx, callRequest(toolGetContact, map[string]any{"user_id": "42"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), "+100")

	res, err = s.getContact(ctx, callRequest(toolGetContact, map[string]any{"user_id": "7"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = s.getContact(ctx, callRequest(toolGetContact, nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestServer_InProcessClient(t *testing.T) {
	s, _ := newTestServer()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cli, err := client.NewInProcessClient(s.mcp)
	require.NoError(t, err)
	defer cli.Close()
	require.NoError(t, cli.Start(ctx))

	initReq := mcpproto.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcpproto.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcpproto.Implementation{Name: "test", Version: "0"}
	_, err = cli.Initialize(ctx, initReq)
	require.NoError(t, err)

	tools, err := cli.ListTools(ctx, mcpproto.ListToolsRequest{})
	require.NoError(t, err)
	names := make([]string, 0, len(tools.Tools))
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{toolListServices, toolListBookings, toolGetContact}, names)

	res, err := cli.CallTool(ctx, callRequest(toolGetContact, map[string]any{"user_id": "42"}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), "Alex")
}
