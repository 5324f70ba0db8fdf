package datefmt

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatter_FormatShort(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 22, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		layout   string
		timezone string
		want     string
	}{
		{name: "utc", layout: "01/02/2006 - 15:04", timezone: "UTC", want: "03/05/2024 - 22:30"},
		{name: "shifted across midnight", layout: "2006-01-02 15:04", timezone: "Asia/Tokyo", want: "2024-03-06 07:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := New(tt.layout, tt.timezone)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.FormatShort(ts))
		})
	}
}

func TestNew_Errors(t *testing.T) {
	_, err := New("", "UTC")
	assert.Error(t, err)

	_, err = New("2006", "Mars/Olympus_Mons")
	assert.Error(t, err)
}
