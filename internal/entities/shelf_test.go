package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestAuthor_FullName(t *testing.T) {
	tests := []struct {
		name   string
		author Author
		want   string
	}{
		{
			name:   "last name only",
			author: Author{LastName: "Homer"},
			want:   "Homer",
		},
		{
			name:   "first and last",
			author: Author{FirstName: strPtr("Frank"), LastName: "Herbert"},
			want:   "Frank Herbert",
		},
		{
			name: "all parts",
			author: Author{
				FirstName:  strPtr("J"),
				MiddleName: strPtr("R.R."),
				LastName:   "Tolkien",
				Suffix:     strPtr("Jr."),
			},
			want: "J R.R. Tolkien, Jr.",
		},
		{
			name:   "middle without first",
			author: Author{MiddleName: strPtr("Scott"), LastName: "Fitzgerald"},
			want:   "Scott Fitzgerald",
		},
		{
			name:   "suffix without middle",
			author: Author{FirstName: strPtr("Kurt"), LastName: "Vonnegut", Suffix: strPtr("Jr.")},
			want:   "Kurt Vonnegut, Jr.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.author.FullName())
		})
	}
}
