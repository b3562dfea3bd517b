package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	previous := logrus.StandardLogger().Out
	logrus.SetOutput(buf)
	t.Cleanup(func() { logrus.SetOutput(previous) })
	return buf
}

func TestCorrelationID(t *testing.T) {
	assert.Empty(t, GetCorrelationID(context.Background()))

	ctx, id := WithCorrelationID(context.Background())
	assert.NotEmpty(t, id)
	assert.Equal(t, id, GetCorrelationID(ctx))
}

func TestForContext_IncludesCorrelationID(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	SetupTestLogger()
	buf := captureOutput(t)

	ctx, id := WithCorrelationID(context.Background())
	ForContext(ctx).Info("teste")

	assert.Contains(t, buf.String(), id)
}

func TestWithFields_DevelopmentFiltersFields(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	SetupTestLogger()
	buf := captureOutput(t)

	L.WithFields(Fields{"path": "/v1/dashboard", "user_agent": "curl"}).Info("requisição")

	assert.Contains(t, buf.String(), "/v1/dashboard")
	assert.NotContains(t, buf.String(), "curl")
}

func TestWithFields_ProductionKeepsAllFields(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	SetupTestLogger()
	buf := captureOutput(t)

	L.WithFields(Fields{"path": "/v1/dashboard", "user_agent": "curl"}).Info("requisição")

	assert.Contains(t, buf.String(), "curl")
}

func TestSetup_InvalidLevelFallsBackToInfo(t *testing.T) {
	previous := logrus.GetLevel()
	t.Cleanup(func() { logrus.SetLevel(previous) })

	Setup("barulhento")
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())

	Setup("warn")
	assert.Equal(t, logrus.WarnLevel, logrus.GetLevel())
}
