package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	mcpproto "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sandevgo/deskbot/internal/core"
	"github.com/sandevgo/deskbot/pkg/log"
)

const (
	toolListServices = "list_services"
	toolListBookings = "list_bookings"
	toolGetContact   = "get_contact"

	defaultBookingsLimit = 20
	maxBookingsLimit     = 200
)

// Server exposes the price list, approved bookings and verified contacts
// to MCP clients over stdio.
type Server struct {
	catalog  core.CatalogStore
	bookings core.BookingStore
	contacts core.ContactStore
	mcp      *server.MCPServer
}

func NewServer(catalog core.CatalogStore, bookings core.BookingStore, contacts core.ContactStore) *Server {
	s := &Server{
		catalog:  catalog,
		bookings: bookings,
		contacts: contacts,
		mcp: server.NewMCPServer(
			core.DeskName,
			core.DeskVersion,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
	}
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	s.mcp.AddTool(mcpproto.NewTool(toolListServices,
		mcpproto.WithDescription("List the services offered with their price ranges."),
	), s.listServices)

	s.mcp.AddTool(mcpproto.NewTool(toolListBookings,
		mcpproto.WithDescription("List approved bookings, newest first."),
		mcpproto.WithNumber("limit",
			mcpproto.Description(fmt.Sprintf("Maximum number of bookings (default %d)", defaultBookingsLimit)),
		),
	), s.listBookings)

	s.mcp.AddTool(mcpproto.NewTool(toolGetContact,
		mcpproto.WithDescription("Get the verified contact a user shared."),
		mcpproto.WithString("user_id",
			mcpproto.Required(),
			mcpproto.Description("Messenger user id"),
		),
	), s.getContact)
}

func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("MCP stdio server started")
	stdio := server.NewStdioServer(s.mcp)
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return nil
}

func (s *Server) listServices(ctx context.Context, _ mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
	services, err := s.catalog.ListServices(ctx)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to list services")
		return mcpproto.NewToolResultError("catalog is unavailable"), nil
	}
	if services == nil {
		services = []core.Service{}
	}
	return jsonResult(services)
}

func (s *Server) listBookings(ctx context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
	limit := req.GetInt("limit", defaultBookingsLimit)
	if limit <= 0 || limit > maxBookingsLimit {
		return mcpproto.NewToolResultError(fmt.Sprintf("limit must be between 1 and %d", maxBookingsLimit)), nil
	}

	bookings, err := s.bookings.ListBookings(ctx, limit)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to list bookings")
		return mcpproto.NewToolResultError("bookings are unavailable"), nil
	}
	if bookings == nil {
		bookings = []core.Booking{}
	}
	return jsonResult(bookings)
}

func (s *Server) getContact(ctx context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
	userID, err := req.RequireString("user_id")
	if err != nil {
		return mcpproto.NewToolResultError(err.Error()), nil
	}

	rec, err := s.contacts.GetContact(ctx, userID)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Str("user_id", userID).Msg("failed to load contact")
		return mcpproto.NewToolResultError("contacts are unavailable"), nil
	}
	if rec == nil {
		return mcpproto.NewToolResultError("no contact shared by user " + userID), nil
	}
	return jsonResult(rec)
}

func jsonResult(v any) (*mcpproto.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcpproto.NewToolResultText(string(data)), nil
}
