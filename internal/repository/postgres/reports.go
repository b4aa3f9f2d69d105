package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/avdonin/event_safety_system/internal/models"
	"github.com/jackc/pgx/v5"
)

const reportColumns = `
	id,
	attendee_id,
	type,
	latitude,
	longitude,
	description,
	photo_url,
	created_at,
	status
`

func scanReport(row pgx.Row) (*models.Report, error) {
	report := &models.Report{}
	var description, photoURL *string
	err := row.Scan(
		&report.ID,
		&report.AttendeeID,
		&report.Type,
		&report.Location.Lat,
		&report.Location.Lng,
		&description,
		&photoURL,
		&report.Timestamp,
		&report.Status,
	)
	if err != nil {
		return nil, err
	}
	if description != nil {
		report.Description = *description
	}
	if photoURL != nil {
		report.PhotoURL = *photoURL
	}
	return report, nil
}

// CreateReport создает новую запись о сообщении в бд
func (r *Repository) CreateReport(ctx context.Context, report *models.Report) error {
	query := `
		INSERT INTO reports (id, attendee_id, type, latitude, longitude, description, photo_url, created_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.db.Exec(ctx, query,
		report.ID,
		report.AttendeeID,
		report.Type,
		report.Location.Lat,
		report.Location.Lng,
		nullable(report.Description),
		nullable(report.PhotoURL),
		report.Timestamp,
		report.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

// GetReport возвращает сообщение по идентификатору
func (r *Repository) GetReport(ctx context.Context, id string) (*models.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1;`
	report, err := scanReport(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("report with id %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get report by id: %w", err)
	}
	return report, nil
}

// UpdateReport перезаписывает сообщение
func (r *Repository) UpdateReport(ctx context.Context, report *models.Report) error {
	query := `
		UPDATE reports SET
			attendee_id = $1,
			type = $2,
			latitude = $3,
			longitude = $4,
			description = $5,
			photo_url = $6,
			status = $7
		WHERE id = $8;
	`
	cmdTag, err := r.db.Exec(ctx, query,
		report.AttendeeID,
		report.Type,
		report.Location.Lat,
		report.Location.Lng,
		nullable(report.Description),
		nullable(report.PhotoURL),
		report.Status,
		report.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update report: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("report with id %s: %w", report.ID, models.ErrNotFound)
	}
	return nil
}

// ListReports возвращает все сообщения
func (r *Repository) ListReports(ctx context.Context) ([]*models.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports ORDER BY created_at DESC;`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	reports := make([]*models.Report, 0)
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error report list iteration: %w", err)
	}
	return reports, nil
}
