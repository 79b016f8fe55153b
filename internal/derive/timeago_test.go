package derive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeAgo(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"under a minute", now.Add(-30 * time.Second), "just now"},
		{"exact minute boundary", now.Add(-time.Minute), "1m ago"},
		{"minutes", now.Add(-45 * time.Minute), "45m ago"},
		{"hour boundary", now.Add(-time.Hour), "1h ago"},
		{"hours", now.Add(-23 * time.Hour), "23h ago"},
		{"day boundary", now.Add(-24 * time.Hour), "1d ago"},
		{"days", now.Add(-72 * time.Hour), "3d ago"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TimeAgo(now, tt.at))
		})
	}
}
