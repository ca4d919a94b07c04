package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/shopper-funnel/internal/entity"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(entity.DateLayout, s)
	require.NoError(t, err)
	return d
}

// TestPartitionWeeksSingleDay - a single Friday expands to the week around it
func TestPartitionWeeksSingleDay(t *testing.T) {
	weeks := entity.PartitionWeeks(date(t, "2021-01-01"), date(t, "2021-01-01"))

	require.Len(t, weeks, 1)
	assert.Equal(t, date(t, "2020-12-28"), weeks[0].Start)
	assert.Equal(t, date(t, "2021-01-03"), weeks[0].End)
	assert.Equal(t, "2020-12-28-2021-01-03", weeks[0].Key())
}

// TestPartitionWeeksExactWeek - a range that already is Monday..Sunday is not widened
func TestPartitionWeeksExactWeek(t *testing.T) {
	weeks := entity.PartitionWeeks(date(t, "2021-01-04"), date(t, "2021-01-10"))

	require.Len(t, weeks, 1)
	assert.Equal(t, "2021-01-04-2021-01-10", weeks[0].Key())
}

// TestPartitionWeeksSundayToMonday - two adjacent days straddling a week boundary give two weeks
func TestPartitionWeeksSundayToMonday(t *testing.T) {
	weeks := entity.PartitionWeeks(date(t, "2021-01-10"), date(t, "2021-01-11"))

	require.Len(t, weeks, 2)
	assert.Equal(t, "2021-01-04-2021-01-10", weeks[0].Key())
	assert.Equal(t, "2021-01-11-2021-01-17", weeks[1].Key())
}

// TestPartitionWeeksCoverage - weeks are full, contiguous and cover both ends of the range
func TestPartitionWeeksCoverage(t *testing.T) {
	ranges := [][2]string{
		{"2020-02-26", "2020-03-02"}, // leap day
		{"2014-12-31", "2015-01-01"},
		{"2021-03-01", "2021-05-30"},
		{"2019-06-15", "2019-06-15"},
		{"2010-01-01", "2014-12-31"},
	}

	for _, r := range ranges {
		start, end := date(t, r[0]), date(t, r[1])
		weeks := entity.PartitionWeeks(start, end)
		require.NotEmpty(t, weeks, "range %v", r)

		assert.Equal(t, entity.ClosestPrevMonday(start), weeks[0].Start)
		assert.Equal(t, entity.ClosestNextSunday(end), weeks[len(weeks)-1].End)
		assert.True(t, weeks[0].Contains(start))
		assert.True(t, weeks[len(weeks)-1].Contains(end))

		for i, w := range weeks {
			assert.Equal(t, time.Monday, w.Start.Weekday())
			assert.Equal(t, time.Sunday, w.End.Weekday())
			assert.Equal(t, w.Start.AddDate(0, 0, 6), w.End)
			if i > 0 {
				assert.Equal(t, weeks[i-1].End.AddDate(0, 0, 1), w.Start, "gap or overlap in %v", r)
			}
		}
	}
}

// TestClosestMondaySunday - offsets for every day of one week
func TestClosestMondaySunday(t *testing.T) {
	for _, day := range []string{"2021-01-04", "2021-01-05", "2021-01-06", "2021-01-07", "2021-01-08", "2021-01-09", "2021-01-10"} {
		d := date(t, day)
		assert.Equal(t, date(t, "2021-01-04"), entity.ClosestPrevMonday(d), day)
		assert.Equal(t, date(t, "2021-01-10"), entity.ClosestNextSunday(d), day)
	}
}

// TestWeekContainingIgnoresClock - times late in the day still land in their calendar week
func TestWeekContainingIgnoresClock(t *testing.T) {
	d := time.Date(2021, time.January, 10, 23, 59, 59, 0, time.UTC)

	w := entity.WeekContaining(d)

	assert.Equal(t, "2021-01-04-2021-01-10", w.Key())
	assert.True(t, w.Contains(d))
	assert.False(t, w.Contains(d.Add(time.Second)))
}
