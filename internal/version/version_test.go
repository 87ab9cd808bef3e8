package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func buildInfo(p, v string) func() (*debug.BuildInfo, bool) {
	return func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Main: debug.Module{Path: p, Version: v}}, true
	}
}

func noBuildInfo() (*debug.BuildInfo, bool) {
	return nil, false
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		company string
		product string
		version string
		read    func() (*debug.BuildInfo, bool)
		want    Info
	}{
		{
			name:    "ldflags",
			company: "Acme", product: "perft", version: "v1.0.0",
			read: noBuildInfo,
			want: Info{Company: "Acme", Product: "perft", Version: "v1.0.0", Available: true},
		},
		{
			name: "build info",
			read: buildInfo("github.com/hailam/perft", "v0.3.1"),
			want: Info{Product: "perft", Version: "v0.3.1", Available: true},
		},
		{
			name: "devel build",
			read: buildInfo("github.com/hailam/perft", "(devel)"),
			want: Info{Product: "perft"},
		},
		{
			name: "nothing",
			read: noBuildInfo,
			want: Info{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolve(tt.company, tt.product, tt.version, tt.read))
		})
	}
}

func TestBanner(t *testing.T) {
	assert.Equal(t, "Hello Acme!\nProduct perft v1.0.0!",
		Info{Company: "Acme", Product: "perft", Version: "v1.0.0", Available: true}.Banner())
	assert.Equal(t, "Product perft v1.0.0!",
		Info{Product: "perft", Version: "v1.0.0", Available: true}.Banner())
	assert.Equal(t, "No version info available", Info{Product: "perft"}.Banner())
	assert.Equal(t, "unknown", Info{}.String())
}
