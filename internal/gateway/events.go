package gateway

import (
	"context"
	"net/http"

	"github.com/rm-hull/medevents-gateway/internal/models"
)

func (c *Client) AddEvent(ctx context.Context, input models.EventInput) Result[models.Document] {
	return invoke[models.Document](ctx, c, call{
		method: http.MethodPost,
		path:   resourcePath("events"),
		body:   input,
		action: "adding event",
	})
}

func (c *Client) GetEvents(ctx context.Context) Result[[]models.Document] {
	result := invoke[[]models.Document](ctx, c, call{
		method: http.MethodGet,
		path:   resourcePath("events"),
		action: "fetching events",
	})
	return mapResult(result, orEmpty)
}

func (c *Client) GetEventByID(ctx context.Context, id string) Result[models.Document] {
	return invoke[models.Document](ctx, c, call{
		method: http.MethodGet,
		path:   resourcePath("events", id),
		action: "fetching event",
	})
}

func (c *Client) UpdateEvent(ctx context.Context, id string, input models.EventInput) Result[models.Document] {
	return invoke[models.Document](ctx, c, call{
		method: http.MethodPut,
		path:   resourcePath("events", id),
		body:   input,
		action: "updating event",
	})
}

func (c *Client) DeleteEvent(ctx context.Context, id string) Result[models.Document] {
	return invoke[models.Document](ctx, c, call{
		method: http.MethodDelete,
		path:   resourcePath("events", id),
		action: "deleting event",
	})
}

func (c *Client) GetEventParticipants(ctx context.Context, eventID string) Result[[]models.Document] {
	result := invoke[[]models.Document](ctx, c, call{
		method: http.MethodGet,
		path:   resourcePath("events", eventID, "participants"),
		action: "fetching event participants",
	})
	return mapResult(result, orEmpty)
}

func (c *Client) AddEventParticipant(ctx context.Context, eventID string, input models.ParticipantInput) Result[models.Document] {
	return invoke[models.Document](ctx, c, call{
		method: http.MethodPost,
		path:   resourcePath("events", eventID, "participants"),
		body:   input,
		action: "adding event participant",
	})
}

func (c *Client) GetParticipantByID(ctx context.Context, participantID string) Result[models.Document] {
	result := invoke[models.ParticipantEnvelope](ctx, c, call{
		method: http.MethodGet,
		path:   resourcePath("participants", participantID),
		action: "fetching participant details",
	})
	return mapResult(result, func(e models.ParticipantEnvelope) models.Document {
		return e.Participant
	})
}

// GetParticipantMedicalStatus returns the checkup recorded for a user at an event.
func (c *Client) GetParticipantMedicalStatus(ctx context.Context, eventID, userID string) Result[models.Document] {
	return invoke[models.Document](ctx, c, call{
		method: http.MethodGet,
		path:   resourcePath("events", eventID, "checkups", userID),
		action: "fetching medical status",
	})
}

func (c *Client) CreateParticipantCheckup(ctx context.Context, eventID string, checkup models.Document) Result[models.Document] {
	return invoke[models.Document](ctx, c, call{
		method: http.MethodPost,
		path:   resourcePath("events", eventID, "checkups"),
		body:   checkup,
		action: "creating checkup",
	})
}

func (c *Client) UpdateParticipantCheckup(ctx context.Context, eventID, userID string, checkup models.Document) Result[models.Document] {
	return invoke[models.Document](ctx, c, call{
		method: http.MethodPut,
		path:   resourcePath("events", eventID, "checkups", userID),
		body:   checkup,
		action: "updating checkup",
	})
}

func (c *Client) GetEventMedicalStaff(ctx context.Context, eventID string) Result[[]models.Document] {
	result := invoke[[]models.Document](ctx, c, call{
		method: http.MethodGet,
		path:   resourcePath("events", eventID, "medical-staff"),
		action: "fetching event medical staff",
	})
	return mapResult(result, orEmpty)
}

func (c *Client) AddEventMedicalStaff(ctx context.Context, eventID string, payload models.Document) Result[models.Document] {
	return invoke[models.Document](ctx, c, call{
		method: http.MethodPost,
		path:   resourcePath("events", eventID, "medical-staff"),
		body:   payload,
		action: "assigning medical staff",
	})
}

func (c *Client) DeleteEventMedicalStaff(ctx context.Context, staffID string) Result[models.Document] {
	return invoke[models.Document](ctx, c, call{
		method: http.MethodDelete,
		path:   resourcePath("events", "medical-staff", staffID),
		action: "removing medical staff",
	})
}

// GetAvailableStaffForEvent lists hospital staff not yet assigned to the event.
func (c *Client) GetAvailableStaffForEvent(ctx context.Context, eventID string) Result[[]models.Document] {
	result := invoke[[]models.Document](ctx, c, call{
		method: http.MethodGet,
		path:   resourcePath("events", eventID, "available-staff"),
		action: "fetching available staff",
	})
	return mapResult(result, orEmpty)
}
