package backend

import (
	"fmt"
	"log/slog"
)

// DebugMessage is one message delivered by the native debug output channel.
type DebugMessage struct {
	Source   Enum
	Type     Enum
	ID       uint32
	Severity Enum
	Message  string
}

// DebugClass is the handling a debug message receives.
type DebugClass int

const (
	// DebugClassVerbose messages are only logged when verbose logging is requested.
	DebugClassVerbose DebugClass = iota
	// DebugClassInfo messages are always logged.
	DebugClassInfo
	// DebugClassFatal messages mean the context can no longer be trusted.
	DebugClassFatal
)

// Classify sorts a debug message into its handling class. API errors, undefined behavior and
// high severity messages are fatal; low severity and notifications are verbose.
func Classify(msg DebugMessage) DebugClass {
	if msg.Type == DebugTypeError || msg.Type == DebugTypeUndefinedBehavior || msg.Severity == DebugSeverityHigh {
		return DebugClassFatal
	}
	if msg.Severity == DebugSeverityLow || msg.Severity == DebugSeverityNotification {
		return DebugClassVerbose
	}
	return DebugClassInfo
}

// Level maps a class to the slog level it is logged at.
func (c DebugClass) Level() slog.Level {
	switch c {
	case DebugClassFatal:
		return slog.LevelError
	case DebugClassInfo:
		return slog.LevelInfo
	}
	return slog.LevelDebug
}

// SourceName returns the tag used for a debug message source.
func SourceName(source Enum) string {
	switch source {
	case DebugSourceAPI:
		return "api"
	case DebugSourceWindowSystem:
		return "window system"
	case DebugSourceShaderCompiler:
		return "shader compiler"
	case DebugSourceThirdParty:
		return "third party"
	case DebugSourceApplication:
		return "application"
	case DebugSourceOther:
		return "other"
	}
	return "unknown"
}

// TypeName returns the tag used for a debug message type.
func TypeName(t Enum) string {
	switch t {
	case DebugTypeError:
		return "error"
	case DebugTypeDeprecatedBehavior:
		return "deprecated behavior"
	case DebugTypeUndefinedBehavior:
		return "undefined behavior"
	case DebugTypePortability:
		return "portability"
	case DebugTypePerformance:
		return "performance"
	case DebugTypeOther:
		return "other"
	}
	return "unknown"
}

// SeverityName returns the tag used for a debug message severity.
func SeverityName(severity Enum) string {
	switch severity {
	case DebugSeverityHigh:
		return "high"
	case DebugSeverityMedium:
		return "medium"
	case DebugSeverityLow:
		return "low"
	case DebugSeverityNotification:
		return "notification"
	}
	return "unknown"
}

// Attrs returns the structured logging attributes for a message.
func (m DebugMessage) Attrs() []any {
	return []any{
		slog.String("source", SourceName(m.Source)),
		slog.String("type", TypeName(m.Type)),
		slog.String("severity", SeverityName(m.Severity)),
		slog.Uint64("id", uint64(m.ID)),
	}
}

func (m DebugMessage) String() string {
	return fmt.Sprintf("[%s/%s/%s] %s", SourceName(m.Source), TypeName(m.Type), SeverityName(m.Severity), m.Message)
}
