package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestToZapLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		DebugLevel: zapcore.DebugLevel,
		InfoLevel:  zapcore.InfoLevel,
		WarnLevel:  zapcore.WarnLevel,
		ErrorLevel: zapcore.ErrorLevel,
		"verbose":  zapcore.InfoLevel,
		"":         zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := toZapLevel(in); got != want {
			t.Errorf("toZapLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestGet_Singleton(t *testing.T) {
	a := Get(" DEBUG ")
	b := Get(ErrorLevel)
	if a != b {
		t.Fatalf("Get should return the same instance")
	}
	if !a.Desugar().Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("first call level should win")
	}
}

func TestComponent(t *testing.T) {
	var nilLogger *Logger
	if nilLogger.Component("x") != nil {
		t.Fatalf("nil logger should stay nil")
	}
	if NewNop().Component("monitor") == nil {
		t.Fatalf("expected child logger")
	}
}
