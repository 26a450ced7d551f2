package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanModelJSON(t *testing.T) {
	type testCase struct {
		name string
		in   string
		want string
	}

	tests := []testCase{
		{
			name: "BareArray",
			in:   `[{"date":"2025-01-01"}]`,
			want: `[{"date":"2025-01-01"}]`,
		},
		{
			name: "FencedWithLanguage",
			in:   "```json\n[{\"date\":\"2025-01-01\"}]\n```",
			want: `[{"date":"2025-01-01"}]`,
		},
		{
			name: "FencedWithoutLanguage",
			in:   "```\n[]\n```",
			want: `[]`,
		},
		{
			name: "SurroundingWhitespace",
			in:   "  \n[1, 2]\n  ",
			want: `[1, 2]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanModelJSON(tt.in))
		})
	}
}
