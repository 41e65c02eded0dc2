package services

import (
	"cylinder-route-service/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(day time.Weekday, hour int) time.Time {
	// 2024-03-04 is a Monday.
	base := time.Date(2024, 3, 4, hour, 30, 0, 0, time.UTC)
	offset := (int(day) - int(time.Monday) + 7) % 7
	return base.AddDate(0, 0, offset)
}

func TestClassifyTrafficWeekday(t *testing.T) {
	tests := []struct {
		hour int
		want domain.TrafficBand
	}{
		{3, domain.TrafficLight},
		{6, domain.TrafficLight},
		{7, domain.TrafficHeavy},
		{8, domain.TrafficHeavy},
		{9, domain.TrafficHeavy},
		{10, domain.TrafficModerate},
		{15, domain.TrafficModerate},
		{16, domain.TrafficHeavy},
		{18, domain.TrafficHeavy},
		{19, domain.TrafficModerate},
		{20, domain.TrafficModerate},
		{21, domain.TrafficLight},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyTraffic(at(time.Wednesday, tt.hour)), "hour=%d", tt.hour)
	}
}

func TestClassifyTrafficWeekend(t *testing.T) {
	assert.Equal(t, domain.TrafficLight, ClassifyTraffic(at(time.Saturday, 8)))
	assert.Equal(t, domain.TrafficModerate, ClassifyTraffic(at(time.Saturday, 9)))
	assert.Equal(t, domain.TrafficModerate, ClassifyTraffic(at(time.Sunday, 17)))
	assert.Equal(t, domain.TrafficLight, ClassifyTraffic(at(time.Sunday, 18)))
}

func TestTrafficMultiplier(t *testing.T) {
	assert.Equal(t, 1.2, TrafficMultiplier(domain.TrafficHeavy))
	assert.Equal(t, 1.0, TrafficMultiplier(domain.TrafficModerate))
	assert.Equal(t, 0.85, TrafficMultiplier(domain.TrafficLight))
	assert.Equal(t, 1.0, TrafficMultiplier("unknown"))
}
