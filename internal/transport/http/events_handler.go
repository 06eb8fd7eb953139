package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/light-bringer/pricetracker/internal/app/pricing/queries/list_events"
)

// Event represents a ledger event in the HTTP response.
type Event struct {
	EventID     string  `json:"event_id"`
	EventType   string  `json:"event_type"`
	AggregateID string  `json:"aggregate_id"`
	Payload     string  `json:"payload"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	ProcessedAt *string `json:"processed_at,omitempty"`
}

// ListEventsResponse represents the HTTP response for listing events.
type ListEventsResponse struct {
	Events     []Event `json:"events"`
	TotalCount int64   `json:"total_count"`
}

// ListEvents handles GET /api/v1/provinces/:province/events.
func (h *Handler) ListEvents(c echo.Context) error {
	req := &list_events.Request{Province: province(c)}
	if eventType := c.QueryParam("event_type"); eventType != "" {
		req.EventType = &eventType
	}
	if aggregateID := c.QueryParam("aggregate_id"); aggregateID != "" {
		req.AggregateID = &aggregateID
	}
	if status := c.QueryParam("status"); status != "" {
		req.Status = &status
	}
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			req.Limit = limit
		}
	}

	rows, total, err := h.uc.ListEvents.Execute(c.Request().Context(), req)
	if err != nil {
		return err
	}

	events := make([]Event, 0, len(rows))
	for _, row := range rows {
		event := Event{
			EventID:     row.EventID,
			EventType:   row.EventType,
			AggregateID: row.AggregateID,
			Status:      row.Status,
			CreatedAt:   row.CreatedAt.Format(time.RFC3339),
		}
		if row.Payload.Valid {
			// NullJSON.Value is interface{}, marshal it back to a JSON string
			if payload, err := json.Marshal(row.Payload.Value); err == nil {
				event.Payload = string(payload)
			}
		}
		if row.ProcessedAt.Valid {
			processedAt := row.ProcessedAt.Time.Format(time.RFC3339)
			event.ProcessedAt = &processedAt
		}
		events = append(events, event)
	}

	return c.JSON(http.StatusOK, ListEventsResponse{
		Events:     events,
		TotalCount: total,
	})
}
