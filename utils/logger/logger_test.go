package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type LoggerTestSuite struct {
	suite.Suite
	originalLogger *zap.Logger
	observedLogs   *observer.ObservedLogs
}

func (s *LoggerTestSuite) SetupSuite() {
	s.originalLogger = zap.L()
}

func (s *LoggerTestSuite) TearDownSuite() {
	zap.ReplaceGlobals(s.originalLogger)
}

func (s *LoggerTestSuite) SetupTest() {
	core, logs := observer.New(zap.DebugLevel)
	zap.ReplaceGlobals(zap.New(core))
	s.observedLogs = logs
}

func (s *LoggerTestSuite) TestGetLogLevelFromString() {
	testCases := []struct {
		name     string
		input    string
		expected zapcore.Level
	}{
		{"debug lowercase", "debug", zapcore.DebugLevel},
		{"debug short", "dbg", zapcore.DebugLevel},
		{"info lowercase", "info", zapcore.InfoLevel},
		{"info long", "information", zapcore.InfoLevel},
		{"warn", "warn", zapcore.WarnLevel},
		{"warning", "warning", zapcore.WarnLevel},
		{"error", "error", zapcore.ErrorLevel},
		{"err", "err", zapcore.ErrorLevel},
		{"fatal", "fatal", zapcore.FatalLevel},
		{"mixed case", "DeBuG", zapcore.DebugLevel},
		{"padded", "  info  ", zapcore.InfoLevel},
		{"unknown defaults to info", "verbose", zapcore.InfoLevel},
		{"empty defaults to info", "", zapcore.InfoLevel},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			assert.Equal(s.T(), tc.expected, getLogLevelFromString(tc.input))
		})
	}
}

func (s *LoggerTestSuite) TestLogHelpers() {
	LogInfo("session restored", zap.String("kind", "demo"))
	LogWarnf("probe %s failed", "backend")
	LogError("store corrupted")
	LogDebugf("no args message")

	entries := s.observedLogs.TakeAll()
	s.Require().Len(entries, 4)

	s.Equal(zapcore.InfoLevel, entries[0].Level)
	s.Equal("session restored", entries[0].Message)
	s.Equal("demo", entries[0].ContextMap()["kind"])

	s.Equal(zapcore.WarnLevel, entries[1].Level)
	s.Equal("probe backend failed", entries[1].Message)

	s.Equal(zapcore.ErrorLevel, entries[2].Level)
	s.Equal(zapcore.DebugLevel, entries[3].Level)
	s.Equal("no args message", entries[3].Message)
}

func TestLoggerTestSuite(t *testing.T) {
	suite.Run(t, new(LoggerTestSuite))
}
