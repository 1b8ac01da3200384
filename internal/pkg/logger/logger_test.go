package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_FieldsAndLevels(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := FromZap(zap.New(core))

	log.Debug("descartado", nil)
	log.Info("item atualizado", map[string]interface{}{"item_name": "Widget", "new_quantity": 15})
	log.Warn("estoque insuficiente", map[string]interface{}{"requested": 20})
	log.Error("falha no DB", errors.New("connection refused"))

	entries := logs.All()
	assert.Len(t, entries, 3)

	assert.Equal(t, "item atualizado", entries[0].Message)
	assert.Equal(t, "Widget", entries[0].ContextMap()["item_name"])
	assert.EqualValues(t, 15, entries[0].ContextMap()["new_quantity"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "connection refused", entries[2].ContextMap()["error"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("qualquer"))
}
