package logger

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/logging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Logger stores the needed functionality to print a log.
type Logger struct {
	mu       sync.Mutex
	trace    string
	started  time.Time
	severity logging.Severity
	labels   map[string]string
}

func newDefaultLogger() *Logger {
	return &Logger{
		started: time.Now(),
		trace:   getTrace(uuid.NewString()),
		labels:  make(map[string]string),
	}
}

// Trace returns the trace stored in logger.
func (l *Logger) Trace() string {
	return l.trace
}

func (l *Logger) SetLabel(key, value string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.labels[key] = value
}

func (l *Logger) SetLabels(labels map[string]string) {
	for key, value := range labels {
		l.SetLabel(key, value)
	}
}

// End writes the summarized request entry with the highest severity seen.
func (l *Logger) End(ctx *gin.Context) {
	if !cloudLogging || parentLogger == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	parentLogger.Log(logging.Entry{
		Trace:    l.trace,
		Severity: l.severity,
		HTTPRequest: &logging.HTTPRequest{
			Request:      ctx.Request,
			Status:       ctx.Writer.Status(),
			Latency:      time.Since(l.started),
			ResponseSize: int64(ctx.Writer.Size()),
		},
		Labels:   l.labels,
		Resource: resource,
	})
}

func logReqEntry(s logging.Severity, l *Logger, msg string) {
	l.mu.Lock()
	if s > l.severity {
		l.severity = s
	}
	e := newEntry(l, s, msg)
	l.mu.Unlock()

	if cloudLogging && childLogger != nil {
		childLogger.Log(e)
	}

	if gin.Mode() != gin.ReleaseMode {
		log.Printf("[%s] %s\n", strings.ToLower(s.String()), msg)
	}
}

func (l *Logger) Debug(v ...interface{}) {
	logReqEntry(logging.Debug, l, fmt.Sprint(v...))
}

func (l *Logger) Info(v ...interface{}) {
	logReqEntry(logging.Info, l, fmt.Sprint(v...))
}

func (l *Logger) Warning(v ...interface{}) {
	logReqEntry(logging.Warning, l, fmt.Sprint(v...))
}

func (l *Logger) Error(v ...interface{}) {
	logReqEntry(logging.Error, l, fmt.Sprint(v...))
}

func (l *Logger) Debugf(format string, v ...interface{}) {
	logReqEntry(logging.Debug, l, fmt.Sprintf(format, v...))
}

func (l *Logger) Infof(format string, v ...interface{}) {
	logReqEntry(logging.Info, l, fmt.Sprintf(format, v...))
}

func (l *Logger) Warningf(format string, v ...interface{}) {
	logReqEntry(logging.Warning, l, fmt.Sprintf(format, v...))
}

func (l *Logger) Errorf(format string, v ...interface{}) {
	logReqEntry(logging.Error, l, fmt.Sprintf(format, v...))
}
