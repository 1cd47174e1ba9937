package discovery

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/standardbeagle/codeintel/internal/types"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		content  []byte
		excluded bool
		want     types.SkipReason
		parse    bool
	}{
		{
			name:    "plain rust source",
			path:    "internal/foo/bar.rs",
			content: []byte("fn main() {\n    println!(\"hi\");\n}\n"),
			parse:   true,
		},
		{
			name:     "vendor excluded",
			path:     "vendor/lib/x.rs",
			content:  []byte("fn x() {}"),
			excluded: true,
			want:     types.SkipVendorDir,
		},
		{
			name:    "png by extension",
			path:    "assets/logo.png",
			content: []byte{0x89, 0x50, 0x4E, 0x47, 0, 0, 0},
			want:    types.SkipBinary,
		},
		{
			name:    "gzip by magic number despite unknown extension",
			path:    "data.bin2",
			content: []byte{0x1F, 0x8B, 0x08, 0, 0, 0, 0},
			want:    types.SkipBinary,
		},
		{
			name:    "pyc build artifact",
			path:    "module.pyc",
			content: []byte{0x42, 0x0d, 0x0d, 0x0a},
			want:    types.SkipBuildArtifact,
		},
		{
			name:    "minified js by extension carve-out still parses",
			path:    "dist/app.min.js",
			content: []byte("function a(b){return b+1}"),
			parse:   true,
		},
		{
			name:    "overlong line rejected",
			path:    "generated.ts",
			content: []byte(strings.Repeat("x", DefaultMaxLineLength+1)),
			want:    types.SkipLineTooLong,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.path, tc.content, tc.excluded, DefaultMaxFileSize, DefaultMaxLineLength)
			assert.Equal(t, tc.parse, got.Parseable)
			if !tc.parse {
				assert.Equal(t, tc.want, got.Reason)
			}
		})
	}
}

func TestLanguageOf(t *testing.T) {
	assert.Equal(t, types.LangRust, LanguageOf("src/main.rs"))
	assert.Equal(t, types.LangTypeScript, LanguageOf("src/index.tsx"))
	assert.Equal(t, types.LangCython, LanguageOf("pkg/mod.pyx"))
	assert.Equal(t, types.LangCPP, LanguageOf("include/thing.hpp"))
	assert.Equal(t, types.LangUnknown, LanguageOf("README.md"))
}

func TestShannonEntropy(t *testing.T) {
	uniform := make([]byte, 256)
	for i := range uniform {
		uniform[i] = byte(i)
	}
	assert.InDelta(t, 8.0, shannonEntropy(uniform), 0.01)

	constant := make([]byte, 64)
	assert.Equal(t, 0.0, shannonEntropy(constant))
}
