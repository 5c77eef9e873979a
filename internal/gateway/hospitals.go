package gateway

import (
	"context"
	"net/http"

	"github.com/rm-hull/medevents-gateway/internal/models"
)

func (c *Client) GetHospitals(ctx context.Context) Result[[]models.Document] {
	result := invoke[models.HospitalList](ctx, c, call{
		method: http.MethodGet,
		path:   resourcePath("hospitals"),
		action: "fetching hospitals",
	})
	return mapResult(result, func(list models.HospitalList) []models.Document {
		return orEmpty(list)
	})
}

func (c *Client) GetHospitalByID(ctx context.Context, id string) Result[models.Document] {
	return invoke[models.Document](ctx, c, call{
		method: http.MethodGet,
		path:   resourcePath("hospitals", id),
		action: "fetching hospital",
	})
}

func (c *Client) AddHospital(ctx context.Context, payload models.Document) Result[models.Document] {
	return invoke[models.Document](ctx, c, call{
		method:  http.MethodPost,
		path:    resourcePath("hospitals"),
		body:    payload,
		action:  "adding hospital",
		enhance: hospitalWriteMessage(false),
	})
}

func (c *Client) UpdateHospital(ctx context.Context, id string, payload models.Document) Result[models.Document] {
	return invoke[models.Document](ctx, c, call{
		method:  http.MethodPut,
		path:    resourcePath("hospitals", id),
		body:    payload,
		action:  "updating hospital",
		enhance: hospitalWriteMessage(true),
	})
}

func (c *Client) DeleteHospital(ctx context.Context, id string) Result[models.Document] {
	return invoke[models.Document](ctx, c, call{
		method:  http.MethodDelete,
		path:    resourcePath("hospitals", id),
		action:  "deleting hospital",
		enhance: hospitalDeleteMessage,
	})
}

func hospitalWriteMessage(existing bool) func(int, string) string {
	return func(status int, message string) string {
		switch {
		case status == http.StatusConflict || containsAny(message, "already exists", "unique"):
			return "A hospital with this information already exists. Please check the name and try again."
		case status == http.StatusBadRequest:
			return "Please check your input: " + message
		case existing && status == http.StatusNotFound:
			return "Hospital not found. It may have been deleted by another user."
		}
		return message
	}
}

func hospitalDeleteMessage(status int, message string) string {
	switch {
	case status == http.StatusNotFound:
		return "Hospital not found. It may have already been deleted."
	case status == http.StatusConflict || containsAny(message, "constraint", "reference"):
		return "Cannot delete hospital as it has associated data (staff, events, etc.). Please remove all related data first."
	case status == http.StatusForbidden:
		return "You don't have permission to delete this hospital."
	}
	return message
}

func (c *Client) GetHospitalStaff(ctx context.Context, hospitalID string) Result[[]models.Document] {
	result := invoke[[]models.Document](ctx, c, call{
		method: http.MethodGet,
		path:   resourcePath("hospitals", hospitalID, "staff"),
		action: "fetching hospital staff",
	})
	return mapResult(result, orEmpty)
}

func (c *Client) AddHospitalStaff(ctx context.Context, hospitalID string, payload models.Document) Result[models.Document] {
	return invoke[models.Document](ctx, c, call{
		method: http.MethodPost,
		path:   resourcePath("hospitals", hospitalID, "staff"),
		body:   payload,
		action: "adding hospital staff",
	})
}

func (c *Client) UpdateHospitalStaff(ctx context.Context, staffID string, payload models.Document) Result[models.Document] {
	return invoke[models.Document](ctx, c, call{
		method: http.MethodPut,
		path:   resourcePath("hospitals", "staff", staffID),
		body:   payload,
		action: "updating hospital staff",
	})
}

func (c *Client) DeleteHospitalStaff(ctx context.Context, staffID string) Result[models.Document] {
	return invoke[models.Document](ctx, c, call{
		method: http.MethodDelete,
		path:   resourcePath("hospitals", "staff", staffID),
		action: "deleting hospital staff",
	})
}
