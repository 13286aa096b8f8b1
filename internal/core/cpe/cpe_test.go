package cpe

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSynthesize(t *testing.T) {
	tests := []struct {
		name   string
		part   string
		chunks []string
		want   string
	}{
		{"three fields", "a", []string{"haxx", "curl", "3.3.4"}, "cpe:2.3:a:haxx:curl:3.3.4:*:*:*:*:*:*:*"},
		{"with arch", "a", []string{"haxx", "curl", "3.3.4", "arm64"}, "cpe:2.3:a:haxx:curl:3.3.4:*:*:*:arm64:*:*:*"},
		{"extra fields ignored", "a", []string{"haxx", "curl", "3.3.4", "arm64", "x"}, "cpe:2.3:a:haxx:curl:3.3.4:*:*:*:arm64:*:*:*"},
		{"two fields", "a", []string{"haxx", "curl"}, ""},
		{"no fields", "a", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Synthesize(tt.part, tt.chunks...))
		})
	}
}

func TestSynthesizeFieldCount(t *testing.T) {
	name := Synthesize("a", "nlnetlabs", "routinator", "0.13.2", "amd64")
	assert.Len(t, strings.Split(name, ":"), 13)
	assert.Regexp(t, Pattern, name)
}

func TestOSName(t *testing.T) {
	assert.Equal(t, "cpe:2.3:o:canonical:ubuntu_linux:16.04:*:*:*:*:*:*:*", OSName("canonical", "ubuntu", "16.04"))
	assert.Equal(t, "cpe:2.3:o:redhat:enterprise_linux:8.6:*:*:*:*:*:*:*", OSName("redhat", "enterprise", "8.6"))
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "11.2.3-4ubuntu1", Sanitize("1:1.2.3-4ubuntu1"))
	assert.Equal(t, "libc6", Sanitize("libc6 "))
	assert.Equal(t, "a/b_c.d-e", Sanitize("a/b_c.d-e"))
	assert.Equal(t, "2.0build1", Sanitize("2.0+build1~"))
	assert.Equal(t, "", Sanitize("::"))
}
