package cmd

import (
	"context"

	"github.com/rm-hull/medevents-gateway/internal/gateway"
)

func ListEvents(dbPath string) error {
	return withClient(dbPath, func(ctx context.Context, client *gateway.Client) error {
		return report(client.GetEvents(ctx))
	})
}

func GetEvent(dbPath, id string) error {
	return withClient(dbPath, func(ctx context.Context, client *gateway.Client) error {
		return report(client.GetEventByID(ctx, id))
	})
}

func DeleteEvent(dbPath, id string) error {
	return withClient(dbPath, func(ctx context.Context, client *gateway.Client) error {
		return report(client.DeleteEvent(ctx, id))
	})
}

func ListParticipants(dbPath, eventID string) error {
	return withClient(dbPath, func(ctx context.Context, client *gateway.Client) error {
		return report(client.GetEventParticipants(ctx, eventID))
	})
}

func ListMedicalStaff(dbPath, eventID string) error {
	return withClient(dbPath, func(ctx context.Context, client *gateway.Client) error {
		return report(client.GetEventMedicalStaff(ctx, eventID))
	})
}

func GetCheckup(dbPath, eventID, userID string) error {
	return withClient(dbPath, func(ctx context.Context, client *gateway.Client) error {
		return report(client.GetParticipantMedicalStatus(ctx, eventID, userID))
	})
}

func ListHospitals(dbPath string) error {
	return withClient(dbPath, func(ctx context.Context, client *gateway.Client) error {
		return report(client.GetHospitals(ctx))
	})
}

func GetHospital(dbPath, id string) error {
	return withClient(dbPath, func(ctx context.Context, client *gateway.Client) error {
		return report(client.GetHospitalByID(ctx, id))
	})
}

func DeleteHospital(dbPath, id string) error {
	return withClient(dbPath, func(ctx context.Context, client *gateway.Client) error {
		return report(client.DeleteHospital(ctx, id))
	})
}

func ListHospitalStaff(dbPath, hospitalID string) error {
	return withClient(dbPath, func(ctx context.Context, client *gateway.Client) error {
		return report(client.GetHospitalStaff(ctx, hospitalID))
	})
}
