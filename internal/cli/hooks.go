package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tstore/pkg/observability"
)

// logHooks forwards observability events to the debug log.
type logHooks struct {
	logger *log.Logger
}

// registerHooks routes HTTP, resolve and archive events to l.
func registerHooks(l *log.Logger) {
	h := &logHooks{logger: l}
	observability.SetHTTPHooks(h)
	observability.SetResolveHooks(h)
	observability.SetArchiveHooks(h)
}

func (h *logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("request", "method", method, "host", host, "path", path)
}

func (h *logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "path", path, "status", status, "took", d.Round(time.Millisecond))
}

func (h *logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("request failed", "method", method, "host", host, "path", path, "err", err)
}

func (h *logHooks) OnResolveStart(_ context.Context, root string) {
	h.logger.Debug("resolving dependencies", "root", root)
}

func (h *logHooks) OnResolveComplete(_ context.Context, root string, count int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("resolution failed", "root", root, "err", err)
		return
	}
	h.logger.Debug("resolved dependencies", "root", root, "packages", count, "took", d.Round(time.Millisecond))
}

func (h *logHooks) OnArchiveSaved(_ context.Context, fullName, path string, size int, d time.Duration) {
	h.logger.Debug("archive saved", "package", fullName, "path", path, "bytes", size, "took", d.Round(time.Millisecond))
}
