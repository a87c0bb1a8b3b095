package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithContextAddsRequestAndOperatorIDs(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := &Logger{Logger: zap.New(core)}

	ctx := context.WithValue(context.Background(), RequestIdKey, "req-1")
	ctx = context.WithValue(ctx, OperatorIdKey, "op-7")
	l.WithContext(ctx).Info("hello")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["request_id"] != "req-1" {
		t.Errorf("expected request_id 'req-1', got %v", fields["request_id"])
	}
	if fields["operator_id"] != "op-7" {
		t.Errorf("expected operator_id 'op-7', got %v", fields["operator_id"])
	}
}

func TestWithContextNoValues(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := &Logger{Logger: zap.New(core)}

	l.WithContext(context.Background()).Info("plain")

	if len(logs.All()[0].Context) != 0 {
		t.Errorf("expected no context fields, got %v", logs.All()[0].Context)
	}
}

func TestGetGlobalLoggerFallsBackToNop(t *testing.T) {
	SetGlobalLogger(nil)
	if GetGlobalLogger() == nil {
		t.Fatal("expected a non-nil fallback logger")
	}

	l := Nop()
	SetGlobalLogger(l)
	defer SetGlobalLogger(nil)
	if GetGlobalLogger() != l {
		t.Error("expected the logger that was set")
	}
}

func TestNewDevelopmentAndProduction(t *testing.T) {
	if New(DevelopmentMode).Logger == nil {
		t.Error("expected development logger")
	}
	if New(ProductionMode).Logger == nil {
		t.Error("expected production logger")
	}
}
