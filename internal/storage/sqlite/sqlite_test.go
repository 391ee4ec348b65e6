package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandevgo/deskbot/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := NewDB(context.Background(), filepath.Join(t.TempDir(), "nested", "desk.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestContactsRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewContactsRepo(newTestDB(t))

	rec, err := repo.GetContact(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, rec)

	require.NoError(t, repo.SaveContact(ctx, "u1", core.ContactRecord{Name: "Alex", Phone: "+1"}))
	require.NoError(t, repo.SaveContact(ctx, "u1", core.ContactRecord{Name: "Alex B", Phone: "+2"}))

	rec, err = repo.GetContact(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "Alex B", rec.Name)
	assert.Equal(t, "+2", rec.Phone)
	assert.WithinDuration(t, time.Now(), rec.UpdatedAt, time.Minute)

	deleted, err := repo.DeleteContact(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.DeleteContact(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestCatalogRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewCatalogRepo(newTestDB(t))

	_, err := repo.ContextText(ctx)
	assert.Error(t, err)

	services, err := LoadServices(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, services)

	n, err := repo.Seed(ctx, services)
	require.NoError(t, err)
	assert.Equal(t, len(services), n)

	// reseeding updates in place
	services[0].PriceRange = "бесплатно"
	_, err = repo.Seed(ctx, append(services, core.Service{Name: " "}))
	require.NoError(t, err)

	listed, err := repo.ListServices(ctx)
	require.NoError(t, err)
	require.Len(t, listed, len(services))
	assert.Equal(t, "бесплатно", listed[0].PriceRange)

	text, err := repo.ContextText(ctx)
	require.NoError(t, err)
	assert.Contains(t, text, "Информация о ценах и услугах:")
	assert.Contains(t, text, "- "+listed[0].Name+": бесплатно. ")
	assert.Contains(t, text, "**Важно знать:**")
}

func TestLoadServices_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "services.yaml")
	data := "services:\n  - name: Bot\n    price_range: \"100\"\n    description: Simple\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	services, err := LoadServices(path)
	require.NoError(t, err)
	assert.Equal(t, []core.Service{{Name: "Bot", PriceRange: "100", Description: "Simple"}}, services)
}

func TestRenderCatalog_NoDescription(t *testing.T) {
	text := RenderCatalog([]core.Service{{Name: "Bot", PriceRange: "100"}})
	assert.Contains(t, text, "- Bot: 100\n")
}

func TestBookingsRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingsRepo(newTestDB(t))

	base := time.Now().Add(-time.Hour)
	for i, id := range []string{"b1", "b2", "b3"} {
		err := repo.SaveBooking(ctx, core.Booking{
			ID:        id,
			UserID:    "u1",
			Username:  "alex",
			Payload:   core.BookingPayload{Name: "Alex", Service: "Bot", Topic: id, Contact: "+1", Confirmed: true},
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	assert.Error(t, repo.SaveBooking(ctx, core.Booking{ID: "b1", UserID: "u1"}))

	got, err := repo.ListBookings(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b3", got[0].ID)
	assert.Equal(t, "b2", got[1].ID)
	assert.Equal(t, "b3", got[0].Payload.Topic)
	assert.True(t, got[0].Payload.Confirmed)
}
