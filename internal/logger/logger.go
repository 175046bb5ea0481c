package logger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/logging"
	"github.com/gin-gonic/gin"
	"google.golang.org/genproto/googleapis/api/monitoredres"
)

const (
	// CtxLoggerKey is how the request logger is stored/retrieved.
	CtxLoggerKey = "app-logger"

	parentLogID = "booking_functions_requests"
	childLogID  = "booking_functions"

	cloudRunRevisionType = "cloud_run_revision"
)

var (
	projectID    string
	parentLogger *logging.Logger
	childLogger  *logging.Logger
	resource     *monitoredres.MonitoredResource
	cloudLogging bool
)

type Options struct {
	ProjectID    string
	Service      string
	Revision     string
	CloudLogging bool
}

// Init sets up the Cloud Logging parent & child loggers. Without CloudLogging entries only go to stdout.
// The returned func flushes and closes the client.
func Init(ctx context.Context, opts Options) (func() error, error) {
	projectID = opts.ProjectID
	cloudLogging = opts.CloudLogging

	if !cloudLogging {
		return func() error { return nil }, nil
	}

	client, err := logging.NewClient(ctx, opts.ProjectID)
	if err != nil {
		return nil, err
	}

	parentLogger = client.Logger(parentLogID)
	childLogger = client.Logger(childLogID)

	resource = &monitoredres.MonitoredResource{
		Type: cloudRunRevisionType,
		Labels: map[string]string{
			"project_id":    opts.ProjectID,
			"service_name":  opts.Service,
			"revision_name": opts.Revision,
		},
	}

	return client.Close, nil
}

// Middleware creates the request logger, linked to the google trace id when one is sent.
func Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		l := newDefaultLogger()

		if h := ctx.Request.Header.Get("X-Cloud-Trace-Context"); h != "" {
			if i := strings.IndexByte(h, '/'); i > 0 {
				if t := h[:i]; strings.Count(t, "0") != len(t) {
					l.trace = getTrace(t)
				}
			}
		}

		ctx.Set(CtxLoggerKey, l)
		ctx.Next()
		l.End(ctx)
	}
}

// FromContext returns the logger that was stored in context.
// If there isn't logger stored, returns a new logger.
func FromContext(ctx context.Context) ILogger {
	if l, ok := ctx.Value(CtxLoggerKey).(*Logger); ok {
		return l
	}

	return newDefaultLogger()
}

func getTrace(id string) string {
	return fmt.Sprintf("projects/%s/traces/%s", projectID, id)
}

func newEntry(l *Logger, s logging.Severity, msg string) logging.Entry {
	return logging.Entry{
		Timestamp: time.Now(),
		Payload:   msg,
		Severity:  s,
		Trace:     l.trace,
		Labels:    l.labels,
		Resource:  resource,
	}
}
