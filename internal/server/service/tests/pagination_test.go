package tests

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Altair788/AdHub/internal/server/models"
	"github.com/Altair788/AdHub/internal/server/service"
	serr "github.com/Altair788/AdHub/internal/shared/errors"
)

func TestPaginator_Request(t *testing.T) {
	p := service.NewPaginator(4, 4)

	tests := []struct {
		name       string
		page, size int
		want       models.PageRequest
		wantErr    error
	}{
		{"default size", 1, 0, models.PageRequest{Page: 1, Size: 4}, nil},
		{"capped size", 2, 50, models.PageRequest{Page: 2, Size: 4}, nil},
		{"smaller size", 3, 2, models.PageRequest{Page: 3, Size: 2}, nil},
		{"zero page", 0, 4, models.PageRequest{}, serr.ErrInvalidPage},
		{"negative page", -1, 4, models.PageRequest{}, serr.ErrInvalidPage},
		{"last safe page", math.MaxInt / 4, 4, models.PageRequest{Page: math.MaxInt / 4, Size: 4}, nil},
		{"offset overflow", math.MaxInt/4 + 1, 4, models.PageRequest{}, serr.ErrInvalidPage},
		{"max int page", math.MaxInt, 0, models.PageRequest{}, serr.ErrInvalidPage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Request(tt.page, tt.size)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestNewPaginator_Defaults(t *testing.T) {
	p := service.NewPaginator(0, 0)
	req, err := p.Request(1, 100)
	require.NoError(t, err)
	require.Equal(t, 4, req.Size)
}

func TestPage_Links(t *testing.T) {
	page := models.Page[int]{Count: 9, Request: models.PageRequest{Page: 2, Size: 4}}
	require.True(t, page.HasNext())
	require.True(t, page.HasPrevious())

	page.Request.Page = 3
	require.False(t, page.HasNext())
}
