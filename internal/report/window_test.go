package report

import (
	"testing"
	"time"
)

func TestReviewWindowStart(t *testing.T) {
	// 2024-06-10 is a Monday.
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "Tuesday looks back to Monday",
			now:  time.Date(2024, 6, 11, 15, 0, 0, 0, time.UTC),
			want: time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC), // 11:00 UTC+2
		},
		{
			name: "Monday looks back to Friday",
			now:  time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC),
			want: time.Date(2024, 6, 7, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "Sunday looks back to Friday",
			now:  time.Date(2024, 6, 9, 15, 0, 0, 0, time.UTC),
			want: time.Date(2024, 6, 7, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "Saturday looks back to Friday",
			now:  time.Date(2024, 6, 8, 15, 0, 0, 0, time.UTC),
			want: time.Date(2024, 6, 7, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "late UTC Sunday is already Monday in business time",
			now:  time.Date(2024, 6, 9, 23, 30, 0, 0, time.UTC),
			want: time.Date(2024, 6, 7, 9, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReviewWindowStart(tt.now)
			if !got.Equal(tt.want) {
				t.Errorf("ReviewWindowStart(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}
