package services

import (
	"testing"

	"rendezvous_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntersect(t *testing.T) {
	tests := []struct {
		name   string
		a, b   []models.TimeSlot
		want   *models.TimeSlot
		minLen int
	}{
		{
			name:   "overlap shorter than the minimum",
			a:      []models.TimeSlot{slot("2024-06-01", "10:00", "11:00")},
			b:      []models.TimeSlot{slot("2024-06-01", "10:45", "12:00")},
			minLen: 30,
		},
		{
			name:   "forty minute overlap",
			a:      []models.TimeSlot{slot("2024-06-01", "10:00", "11:00")},
			b:      []models.TimeSlot{slot("2024-06-01", "10:20", "12:00")},
			minLen: 30,
			want:   &models.TimeSlot{Date: "2024-06-01", StartTime: "10:20", EndTime: "11:00"},
		},
		{
			name:   "different dates never intersect",
			a:      []models.TimeSlot{slot("2024-06-01", "10:00", "12:00")},
			b:      []models.TimeSlot{slot("2024-06-02", "10:00", "12:00")},
			minLen: 30,
		},
		{
			name:   "touching windows do not overlap",
			a:      []models.TimeSlot{slot("2024-06-01", "10:00", "11:00")},
			b:      []models.TimeSlot{slot("2024-06-01", "11:00", "12:00")},
			minLen: 0,
		},
		{
			name:   "exactly the minimum",
			a:      []models.TimeSlot{slot("2024-06-01", "18:00", "19:00")},
			b:      []models.TimeSlot{slot("2024-06-01", "18:30", "20:00")},
			minLen: 30,
			want:   &models.TimeSlot{Date: "2024-06-01", StartTime: "18:30", EndTime: "19:00"},
		},
		{
			name: "first qualifying pair wins over a longer later one",
			a: []models.TimeSlot{
				slot("2024-06-01", "09:00", "10:00"),
				slot("2024-06-01", "13:00", "18:00"),
			},
			b: []models.TimeSlot{
				slot("2024-06-01", "13:00", "18:00"),
				slot("2024-06-01", "09:15", "10:00"),
			},
			minLen: 30,
			want:   &models.TimeSlot{Date: "2024-06-01", StartTime: "09:15", EndTime: "10:00"},
		},
		{
			name:   "malformed slots are skipped",
			a:      []models.TimeSlot{slot("2024-06-01", "25:00", "26:00"), slot("2024-06-01", "08:00", "09:00")},
			b:      []models.TimeSlot{slot("2024-06-01", "08:00", "09:00")},
			minLen: 30,
			want:   &models.TimeSlot{Date: "2024-06-01", StartTime: "08:00", EndTime: "09:00"},
		},
		{
			name:   "empty input",
			b:      []models.TimeSlot{slot("2024-06-01", "08:00", "09:00")},
			minLen: 30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Intersect(tt.a, tt.b, tt.minLen)
			if tt.want == nil {
				assert.False(t, ok)
				assert.Nil(t, got)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIntersectIsOrderSensitive(t *testing.T) {
	a := []models.TimeSlot{slot("2024-06-01", "09:00", "10:00"), slot("2024-06-01", "14:00", "15:00")}
	b := []models.TimeSlot{slot("2024-06-01", "14:00", "15:00"), slot("2024-06-01", "09:00", "10:00")}

	fromA, ok := Intersect(a, b, 30)
	require.True(t, ok)
	assert.Equal(t, "09:00", fromA.StartTime)

	fromB, ok := Intersect(b, a, 30)
	require.True(t, ok)
	assert.Equal(t, "14:00", fromB.StartTime)
}
