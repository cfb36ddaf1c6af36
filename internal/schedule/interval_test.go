package schedule_test

import (
	"testing"
	"time"

	"github.com/bartoszkordek/AGH-Praca-in-ynierska-back-end-sub004/internal/schedule"

	"github.com/stretchr/testify/require"
)

func at(hour, min int) time.Time {
	return time.Date(2025, time.March, 10, hour, min, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{"identical intervals", at(10, 0), at(11, 0), at(10, 0), at(11, 0), true},
		{"partial overlap", at(10, 0), at(11, 0), at(10, 30), at(11, 30), true},
		{"second inside first", at(10, 0), at(12, 0), at(10, 30), at(11, 0), true},
		{"first inside second", at(10, 30), at(11, 0), at(10, 0), at(12, 0), true},
		{"back to back, first then second", at(10, 0), at(11, 0), at(11, 0), at(12, 0), false},
		{"back to back, second then first", at(11, 0), at(12, 0), at(10, 0), at(11, 0), false},
		{"disjoint", at(8, 0), at(9, 0), at(10, 0), at(11, 0), false},
		{"one minute overlap", at(10, 0), at(11, 1), at(11, 0), at(12, 0), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, schedule.Overlaps(tc.s1, tc.e1, tc.s2, tc.e2))
			// overlap is symmetric
			require.Equal(t, tc.want, schedule.Overlaps(tc.s2, tc.e2, tc.s1, tc.e1))
		})
	}
}

func TestValidateInterval(t *testing.T) {
	now := at(9, 0)

	t.Run("valid interval", func(t *testing.T) {
		require.NoError(t, schedule.ValidateInterval(at(10, 0), at(11, 0), now))
	})

	t.Run("start in the past", func(t *testing.T) {
		err := schedule.ValidateInterval(at(8, 0), at(11, 0), now)
		require.ErrorIs(t, err, schedule.ErrPastDate)
	})

	t.Run("past date reported before ordering", func(t *testing.T) {
		err := schedule.ValidateInterval(at(8, 0), at(7, 0), now)
		require.ErrorIs(t, err, schedule.ErrPastDate)
	})

	t.Run("start equal to end", func(t *testing.T) {
		err := schedule.ValidateInterval(at(10, 0), at(10, 0), now)
		require.ErrorIs(t, err, schedule.ErrStartAfterEnd)
	})

	t.Run("start after end", func(t *testing.T) {
		err := schedule.ValidateInterval(at(11, 0), at(10, 0), now)
		require.ErrorIs(t, err, schedule.ErrStartAfterEnd)
	})

	t.Run("start equal to now is allowed", func(t *testing.T) {
		require.NoError(t, schedule.ValidateInterval(now, at(10, 0), now))
	})
}
