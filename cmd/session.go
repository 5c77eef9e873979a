package cmd

import (
	"context"
	"errors"

	"github.com/rm-hull/medevents-gateway/internal/gateway"
	"github.com/rm-hull/medevents-gateway/internal/models"
)

func Login(dbPath, username, password string) error {
	return withClient(dbPath, func(ctx context.Context, client *gateway.Client) error {
		result := client.Login(ctx, username, password)
		if result.Error {
			return report(result)
		}
		// tokens are persisted, never echoed
		return printJSON(gateway.Success(map[string]string{"username": username}))
	})
}

func Logout(dbPath string) error {
	return withClient(dbPath, func(ctx context.Context, client *gateway.Client) error {
		return report(client.Logout(ctx))
	})
}

func Register(dbPath string, input models.RegisterRequest) error {
	return withClient(dbPath, func(ctx context.Context, client *gateway.Client) error {
		return report(client.Register(ctx, input))
	})
}

func WhoAmI(dbPath string) error {
	return withClient(dbPath, func(ctx context.Context, client *gateway.Client) error {
		return report(client.CurrentUser(ctx))
	})
}

func Health(dbPath string) error {
	return withClient(dbPath, func(ctx context.Context, client *gateway.Client) error {
		up := client.CheckBackendStatus(ctx)
		if err := printJSON(map[string]any{"backend": client.BaseURL(), "up": up}); err != nil {
			return err
		}
		if !up {
			return errors.New("backend is down")
		}
		return nil
	})
}
