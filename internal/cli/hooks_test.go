package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tstore/pkg/observability"
)

func TestRegisterHooks(t *testing.T) {
	var buf bytes.Buffer
	registerHooks(newLogger(&buf, log.DebugLevel))
	t.Cleanup(observability.Reset)

	ctx := context.Background()
	observability.HTTP().OnRequest(ctx, "GET", "thunderstore.io", "/experimental/package/A/B/")
	observability.HTTP().OnResponse(ctx, "GET", "thunderstore.io", "/experimental/package/A/B/", 200, time.Millisecond)
	observability.Resolve().OnResolveComplete(ctx, "A-B", 3, time.Second, nil)
	observability.Archive().OnArchiveSaved(ctx, "A-B", "A-B-1.0.0.zip", 42, time.Millisecond)

	got := buf.String()
	for _, want := range []string{"/experimental/package/A/B/", "status=200", "packages=3", "A-B-1.0.0.zip"} {
		if !strings.Contains(got, want) {
			t.Errorf("log output missing %q:\n%s", want, got)
		}
	}
}

func TestLogHooksQuietAtInfo(t *testing.T) {
	var buf bytes.Buffer
	h := &logHooks{logger: newLogger(&buf, log.InfoLevel)}

	h.OnRequest(context.Background(), "GET", "h", "/p")
	h.OnError(context.Background(), "GET", "h", "/p", errors.New("reset"))
	h.OnResolveStart(context.Background(), "A-B")
	if buf.Len() != 0 {
		t.Errorf("hooks should log at debug level only, got %q", buf.String())
	}
}
