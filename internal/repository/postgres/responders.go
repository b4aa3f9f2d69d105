package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/avdonin/event_safety_system/internal/models"
	"github.com/jackc/pgx/v5"
)

const responderColumns = `
	id,
	name,
	status,
	latitude,
	longitude,
	assigned_alert_id
`

func scanResponder(row pgx.Row) (*models.Responder, error) {
	responder := &models.Responder{}
	var assignedAlertID *string
	err := row.Scan(
		&responder.ID,
		&responder.Name,
		&responder.Status,
		&responder.Location.Lat,
		&responder.Location.Lng,
		&assignedAlertID,
	)
	if err != nil {
		return nil, err
	}
	if assignedAlertID != nil {
		responder.AssignedAlertID = *assignedAlertID
	}
	return responder, nil
}

// CreateResponder добавляет респондера в ростер
func (r *Repository) CreateResponder(ctx context.Context, responder *models.Responder) error {
	query := `
		INSERT INTO responders (id, name, status, latitude, longitude, assigned_alert_id)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.db.Exec(ctx, query,
		responder.ID,
		responder.Name,
		responder.Status,
		responder.Location.Lat,
		responder.Location.Lng,
		nullable(responder.AssignedAlertID),
	)
	if err != nil {
		return fmt.Errorf("failed to create responder: %w", err)
	}
	return nil
}

// GetResponder возвращает респондера по идентификатору
func (r *Repository) GetResponder(ctx context.Context, id string) (*models.Responder, error) {
	query := `SELECT ` + responderColumns + ` FROM responders WHERE id = $1;`
	responder, err := scanResponder(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("responder with id %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get responder by id: %w", err)
	}
	return responder, nil
}

// ListResponders возвращает ростер, опционально отфильтрованный по статусу
func (r *Repository) ListResponders(ctx context.Context, status models.ResponderStatus) ([]*models.Responder, error) {
	query := `SELECT ` + responderColumns + ` FROM responders`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY name;`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list responders: %w", err)
	}
	defer rows.Close()

	responders := make([]*models.Responder, 0)
	for rows.Next() {
		responder, err := scanResponder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan responder row: %w", err)
		}
		responders = append(responders, responder)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error responder list iteration: %w", err)
	}
	return responders, nil
}

// updateResponderTx перезаписывает респондера внутри транзакции
func updateResponderTx(ctx context.Context, tx pgx.Tx, responder *models.Responder) error {
	query := `
		UPDATE responders SET
			status = $1,
			assigned_alert_id = $2
		WHERE id = $3;
	`
	cmdTag, err := tx.Exec(ctx, query,
		responder.Status,
		nullable(responder.AssignedAlertID),
		responder.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update responder: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("responder with id %s: %w", responder.ID, models.ErrNotFound)
	}
	return nil
}

// updateAlertDispatchTx перезаписывает статус и назначение алерта внутри транзакции
func updateAlertDispatchTx(ctx context.Context, tx pgx.Tx, alert *models.Alert) error {
	query := `
		UPDATE alerts SET
			status = $1,
			assigned_responder = $2
		WHERE id = $3;
	`
	cmdTag, err := tx.Exec(ctx, query,
		alert.Status,
		nullable(alert.AssignedResponder),
		alert.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update alert: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("alert with id %s: %w", alert.ID, models.ErrNotFound)
	}
	return nil
}

// ApplyAssignment сохраняет пару алерт+респондер в одной транзакции:
// либо обе записи, либо ни одной
func (r *Repository) ApplyAssignment(ctx context.Context, alert *models.Alert, responder *models.Responder) error {
	return r.applyPair(ctx, alert, responder)
}

// ApplyResolution сохраняет завершение алерта и освобождение респондера
// (responder может быть nil) в одной транзакции
func (r *Repository) ApplyResolution(ctx context.Context, alert *models.Alert, responder *models.Responder) error {
	return r.applyPair(ctx, alert, responder)
}

func (r *Repository) applyPair(ctx context.Context, alert *models.Alert, responder *models.Responder) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin dispatch transaction: %w", err)
	}
	// Откат после успешного коммита - no-op
	defer func() { _ = tx.Rollback(ctx) }()

	if err := updateAlertDispatchTx(ctx, tx, alert); err != nil {
		return err
	}
	if responder != nil {
		if err := updateResponderTx(ctx, tx, responder); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit dispatch transaction: %w", err)
	}

	_ = r.invalidateAlertCache(ctx, alert.ID)
	return nil
}
