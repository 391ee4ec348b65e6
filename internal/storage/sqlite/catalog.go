package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/sandevgo/deskbot/internal/core"
)

const (
	catalogHeader = "Информация о ценах и услугах:\n" +
		"Мы предлагаем разработку Telegram-ботов по ценам в среднем в 2 раза ниже рыночных.\n\n" +
		"**Прайс-лист (ориентировочный):**\n"
	catalogNotes = "\n**Важно знать:**\n" +
		"- Точная стоимость определяется после обсуждения технического задания.\n" +
		"- Сроки разработки простого бота: от 3 до 5 дней.\n" +
		"- Для оформления заявки нужны имя, услуга, тема проекта и контакт.\n"
)

type CatalogRepo struct {
	db *sql.DB
}

func NewCatalogRepo(db *sql.DB) *CatalogRepo {
	return &CatalogRepo{db: db}
}

func (r *CatalogRepo) ListServices(ctx context.Context) ([]core.Service, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, price_range, description FROM services ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer rows.Close()

	var services []core.Service
	for rows.Next() {
		var s core.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.PriceRange, &s.Description); err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		services = append(services, s)
	}
	return services, rows.Err()
}

// Seed upserts services by name and returns how many rows it touched.
func (r *CatalogRepo) Seed(ctx context.Context, services []core.Service) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO services (name, price_range, description) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			price_range = excluded.price_range,
			description = excluded.description`

	n := 0
	for _, s := range services {
		if strings.TrimSpace(s.Name) == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, query, s.Name, s.PriceRange, s.Description); err != nil {
			return 0, fmt.Errorf("failed to seed service %q: %w", s.Name, err)
		}
		n++
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit seed: %w", err)
	}
	return n, nil
}

// ContextText renders the price list for the system prompt.
func (r *CatalogRepo) ContextText(ctx context.Context) (string, error) {
	services, err := r.ListServices(ctx)
	if err != nil {
		return "", err
	}
	if len(services) == 0 {
		return "", fmt.Errorf("service catalog is empty")
	}
	return RenderCatalog(services), nil
}

func RenderCatalog(services []core.Service) string {
	var sb strings.Builder
	sb.WriteString(catalogHeader)
	for _, s := range services {
		sb.WriteString("- ")
		sb.WriteString(s.Name)
		sb.WriteString(": ")
		sb.WriteString(s.PriceRange)
		if s.Description != "" {
			sb.WriteString(". ")
			sb.WriteString(s.Description)
		}
		sb.WriteString("\n")
	}
	sb.WriteString(catalogNotes)
	return sb.String()
}
