package fsutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/rustfix/pkg/fsutil"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		content string
		want    fsutil.Kind
	}{
		{
			name:    "rust source",
			path:    "src/lib.rs",
			content: "pub fn foo() -> u32 { let mut x = 3; x }\n",
			want:    fsutil.KindSource,
		},
		{
			name:    "binary",
			path:    "src/blob.rs",
			content: "\x00\x01\x02\x7fELF\x00\x00",
			want:    fsutil.KindBinary,
		},
		{
			name:    "generated lock file",
			path:    "web/package-lock.json",
			content: "{\n  \"lockfileVersion\": 3\n}\n",
			want:    fsutil.KindGenerated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := fsutil.Classify(tt.path, []byte(tt.content))
			assert.Equal(t, tt.want, got, "got %s", got)
		})
	}
}

func TestKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "source", fsutil.KindSource.String())
	assert.Equal(t, "binary", fsutil.KindBinary.String())
	assert.Equal(t, "generated", fsutil.KindGenerated.String())
}
