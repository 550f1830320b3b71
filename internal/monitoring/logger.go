package monitoring

import (
	"log/slog"
	"os"
	"time"
)

// Logger provides structured JSON logging with domain-specific helpers.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a JSON slog logger writing to stdout.
func NewLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   "timestamp",
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	})

	return &Logger{Logger: slog.New(handler)}
}

// RequestLogger logs HTTP request details.
func (l *Logger) RequestLogger(method, path, ip, requestID string, statusCode int, duration time.Duration) {
	l.Info("http request",
		"method", method,
		"path", path,
		"ip", ip,
		"request_id", requestID,
		"status_code", statusCode,
		"duration_ms", duration.Milliseconds(),
	)
}

// EvaluationLogger logs a completed scoring run.
func (l *Logger) EvaluationLogger(username, role string, matchScore float64, matchLevel string, duration time.Duration) {
	l.Info("evaluation completed",
		"username", username,
		"role", role,
		"match_score", matchScore,
		"match_level", matchLevel,
		"duration_ms", duration.Milliseconds(),
	)
}

// CalculatorLogger logs a single-axis calculation.
func (l *Logger) CalculatorLogger(calculator, username string, score float64, duration time.Duration) {
	l.Info("score computed",
		"calculator", calculator,
		"username", username,
		"score", score,
		"duration_ms", duration.Milliseconds(),
	)
}
