package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/rm-hull/medevents-gateway/internal/gateway"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var stdout io.Writer = os.Stdout

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(stdout, string(out))
	return err
}

// report prints a result and turns a failed one into the command's error.
func report[T any](result gateway.Result[T]) error {
	if err := printJSON(result); err != nil {
		return err
	}
	return result.Err()
}

func withClient(dbPath string, fn func(ctx context.Context, client *gateway.Client) error) error {
	a, err := bootstrap(dbPath)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(context.Background(), a.client)
}
