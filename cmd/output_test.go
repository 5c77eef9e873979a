package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rm-hull/medevents-gateway/internal/gateway"
)

func captureStdout(t *testing.T) *bytes.Buffer {
	buf := &bytes.Buffer{}
	orig := stdout
	stdout = buf
	t.Cleanup(func() { stdout = orig })
	return buf
}

func TestReport(t *testing.T) {
	t.Run("Success prints data and returns nil", func(t *testing.T) {
		buf := captureStdout(t)

		err := report(gateway.Success(map[string]string{"id": "evt-1"}))
		require.NoError(t, err)
		assert.Contains(t, buf.String(), `"id": "evt-1"`)
		assert.Contains(t, buf.String(), `"error": false`)
	})

	t.Run("Failure prints the result and returns its message", func(t *testing.T) {
		buf := captureStdout(t)

		failed := gateway.Result[any]{Error: true, Message: "Hospital not found.", Type: gateway.TypeInfo}
		err := report(failed)
		require.Error(t, err)
		assert.Equal(t, "Hospital not found.", err.Error())

		var resultErr *gateway.ResultError
		require.ErrorAs(t, err, &resultErr)
		assert.Equal(t, gateway.TypeInfo, resultErr.Type)
		assert.Contains(t, buf.String(), `"type": "info"`)
	})
}

func TestBootstrap(t *testing.T) {
	t.Setenv("MEDEVENTS_BASE_URL", "http://backend.test:5000/")
	dbPath := t.TempDir() + "/nested/medevents.db"

	a, err := bootstrap(dbPath)
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, "http://backend.test:5000", a.client.BaseURL())

	last, err := a.repo.LastUpdated("events")
	require.NoError(t, err)
	assert.Nil(t, last)
}
