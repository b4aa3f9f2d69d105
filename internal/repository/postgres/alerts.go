package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/avdonin/event_safety_system/internal/models"
	"github.com/jackc/pgx/v5"
)

const alertColumns = `
	id,
	title,
	summary,
	type,
	severity,
	priority,
	status,
	latitude,
	longitude,
	zone,
	source,
	created_at,
	assigned_responder
`

func scanAlert(row pgx.Row) (*models.Alert, error) {
	alert := &models.Alert{}
	var zone, assignedResponder *string
	err := row.Scan(
		&alert.ID,
		&alert.Title,
		&alert.Summary,
		&alert.Type,
		&alert.Severity,
		&alert.Priority,
		&alert.Status,
		&alert.Location.Lat,
		&alert.Location.Lng,
		&zone,
		&alert.Source,
		&alert.Timestamp,
		&assignedResponder,
	)
	if err != nil {
		return nil, err
	}
	if zone != nil {
		alert.Zone = *zone
	}
	if assignedResponder != nil {
		alert.AssignedResponder = *assignedResponder
	}
	return alert, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// CreateAlert создает новую запись об алерте в бд
func (r *Repository) CreateAlert(ctx context.Context, alert *models.Alert) error {
	query := `
		INSERT INTO alerts (id, title, summary, type, severity, priority, status, latitude, longitude, zone, source, created_at, assigned_responder)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.db.Exec(ctx, query,
		alert.ID,
		alert.Title,
		alert.Summary,
		alert.Type,
		alert.Severity,
		alert.Priority,
		alert.Status,
		alert.Location.Lat,
		alert.Location.Lng,
		nullable(alert.Zone),
		alert.Source,
		alert.Timestamp,
		nullable(alert.AssignedResponder),
	)
	if err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}
	return nil
}

// GetAlert возвращает алерт по идентификатору, сначала пробуя кэш
func (r *Repository) GetAlert(ctx context.Context, id string) (*models.Alert, error) {
	if cached, err := r.getAlertFromCache(ctx, id); err == nil && cached != nil {
		return cached, nil
	}

	query := `SELECT ` + alertColumns + ` FROM alerts WHERE id = $1;`
	alert, err := scanAlert(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("alert with id %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get alert by id: %w", err)
	}

	// Запись в кэш негарантированная, промах не мешает чтению
	_ = r.setAlertCache(ctx, alert)
	return alert, nil
}

// UpdateAlert перезаписывает алерт и инвалидирует кэш
func (r *Repository) UpdateAlert(ctx context.Context, alert *models.Alert) error {
	query := `
		UPDATE alerts SET
			title = $1,
			summary = $2,
			type = $3,
			severity = $4,
			priority = $5,
			status = $6,
			latitude = $7,
			longitude = $8,
			zone = $9,
			source = $10,
			assigned_responder = $11
		WHERE id = $12;
	`
	cmdTag, err := r.db.Exec(ctx, query,
		alert.Title,
		alert.Summary,
		alert.Type,
		alert.Severity,
		alert.Priority,
		alert.Status,
		alert.Location.Lat,
		alert.Location.Lng,
		nullable(alert.Zone),
		alert.Source,
		nullable(alert.AssignedResponder),
		alert.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update alert: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("alert with id %s: %w", alert.ID, models.ErrNotFound)
	}

	_ = r.invalidateAlertCache(ctx, alert.ID)
	return nil
}

// ListAlerts возвращает алерты, по умолчанию без завершенных
func (r *Repository) ListAlerts(ctx context.Context, includeResolved bool) ([]*models.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts`
	if !includeResolved {
		query += ` WHERE status <> 'RESOLVED'`
	}
	query += ` ORDER BY created_at DESC;`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer rows.Close()

	alerts := make([]*models.Alert, 0)
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert row: %w", err)
		}
		alerts = append(alerts, alert)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error alert list iteration: %w", err)
	}
	return alerts, nil
}
