// AngelaMos | 2026
// pagination_test.go

package core

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePageParams(t *testing.T) {
	tests := []struct {
		query    string
		wantPage int
		wantSize int
	}{
		{"", 1, DefaultPageSize},
		{"?page=3&size=25", 3, 25},
		{"?page=0&size=0", 1, DefaultPageSize},
		{"?page=-2&size=1000", 1, MaxPageSize},
		{"?page=abc&size=x", 1, DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			p := ParsePageParams(httptest.NewRequest("GET", "/"+tt.query, nil))
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantSize, p.Size)
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, PageParams{Page: 1, Size: 10}.Offset())
	assert.Equal(t, 20, PageParams{Page: 3, Size: 10}.Offset())
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off\_sale \\ x`, EscapeLike(`50% off_sale \ x`))
	assert.Equal(t, "laptop", EscapeLike("laptop"))
}
