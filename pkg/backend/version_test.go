package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Version
		wantErr bool
	}{
		{
			name:  "plain",
			input: "6.3.0",
			want:  Version{Major: 6, Minor: 3, Patch: 0},
		},
		{
			name:  "v prefix",
			input: "v1.2.3",
			want:  Version{Major: 1, Minor: 2, Patch: 3},
		},
		{
			name:  "prerelease stripped from ordering",
			input: "6.3.0-rc.1",
			want:  Version{Major: 6, Minor: 3, Patch: 0},
		},
		{
			name:  "build metadata",
			input: "6.3.0+build.5",
			want:  Version{Major: 6, Minor: 3, Patch: 0},
		},
		{
			name:  "prerelease and build metadata",
			input: "0.7.0-beta+exp.sha.5114f85",
			want:  Version{Major: 0, Minor: 7, Patch: 0},
		},
		{
			name:    "missing patch",
			input:   "6.3",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "not a version at all",
			input:   "HEAD-20230401",
			wantErr: true,
		},
		{
			name:    "trailing garbage",
			input:   "6.3.0 final",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVersion(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid semver")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVersionCompare(t *testing.T) {
	tests := []struct {
		name string
		a    Version
		b    Version
		want int
	}{
		{"equal", Version{Major: 6, Minor: 3}, Version{Major: 6, Minor: 3}, 0},
		{"major below", Version{Major: 5, Minor: 9, Patch: 9}, Version{Major: 6}, -1},
		{"major above", Version{Major: 7}, Version{Major: 6, Minor: 9, Patch: 9}, 1},
		{"minor below", Version{Major: 6, Minor: 1}, Version{Major: 6, Minor: 2}, -1},
		{"minor above", Version{Major: 6, Minor: 3}, Version{Major: 6, Minor: 2, Patch: 9}, 1},
		{"patch below", Version{Major: 6, Minor: 2}, Version{Major: 6, Minor: 2, Patch: 1}, -1},
		{"patch above", Version{Major: 6, Minor: 2, Patch: 2}, Version{Major: 6, Minor: 2, Patch: 1}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Compare(tt.b))
			assert.Equal(t, -tt.want, tt.b.Compare(tt.a))
		})
	}
}

func TestVersionAtLeast(t *testing.T) {
	threshold := Version{Major: 6, Minor: 2}

	assert.True(t, Version{Major: 6, Minor: 2}.AtLeast(threshold))
	assert.True(t, Version{Major: 6, Minor: 2, Patch: 3}.AtLeast(threshold))
	assert.True(t, Version{Major: 6, Minor: 3}.AtLeast(threshold))
	assert.True(t, Version{Major: 7}.AtLeast(threshold))
	assert.False(t, Version{Major: 6, Minor: 1, Patch: 9}.AtLeast(threshold))
	assert.False(t, Version{Major: 5, Minor: 9, Patch: 9}.AtLeast(threshold))
}

func TestVersionString(t *testing.T) {
	assert.Equal(t, "6.3.0", Version{Major: 6, Minor: 3}.String())
	assert.Equal(t, "0.0.0", Version{}.String())
}

func TestVersionIsZero(t *testing.T) {
	assert.True(t, Version{}.IsZero())
	assert.False(t, Version{Patch: 1}.IsZero())
}
