package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplateIncludesBuildInfo(t *testing.T) {
	tmpl := Template()
	for _, want := range []string{Version, Commit, Date, "{{.Name}}"} {
		if !strings.Contains(tmpl, want) {
			t.Errorf("Template() = %q, missing %q", tmpl, want)
		}
	}
}

func TestUserAgent(t *testing.T) {
	if ua := UserAgent(); !strings.HasPrefix(ua, "tstore/"+Version) {
		t.Errorf("UserAgent() = %q, want prefix %q", ua, "tstore/"+Version)
	}
}
