package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

func ts(t *testing.T, s string) types.TimeString {
	t.Helper()
	v, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return v
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestGenerateSlots_MorningScenario(t *testing.T) {
	counselor := uuid.New()

	slots, err := GenerateSlots(counselor, date(t, "2025-03-10"), ts(t, "09:00"), ts(t, "12:00"), 60)
	require.NoError(t, err)
	require.Len(t, slots, 3)

	want := [][2]string{{"09:00", "10:00"}, {"10:00", "11:00"}, {"11:00", "12:00"}}
	for i, s := range slots {
		assert.Equal(t, want[i][0], s.StartTime.String())
		assert.Equal(t, want[i][1], s.EndTime.String())
		assert.Equal(t, counselor, s.CounselorID)
		assert.Equal(t, "2025-03-10", s.Date.Format(DateFormat))
		assert.False(t, s.IsBooked)
	}
}

func TestGenerateSlots_CountContiguityAndBounds(t *testing.T) {
	cases := []struct {
		start, end string
		unit       int
	}{
		{"09:00", "12:00", 60},
		{"09:00", "12:30", 60},
		{"08:15", "17:45", 45},
		{"00:00", "24:00", 30},
		{"13:00", "13:15", 15},
		{"10:00", "14:59", 240},
	}

	for _, tc := range cases {
		t.Run(tc.start+"-"+tc.end, func(t *testing.T) {
			start, end := ts(t, tc.start), ts(t, tc.end)

			slots, err := GenerateSlots(uuid.New(), date(t, "2025-03-10"), start, end, tc.unit)
			require.NoError(t, err)

			assert.Len(t, slots, end.Sub(start)/tc.unit)
			for i, s := range slots {
				assert.Equal(t, tc.unit, s.EndTime.Sub(s.StartTime))
				assert.LessOrEqual(t, s.EndTime.Minutes(), end.Minutes())
				if i == 0 {
					assert.Equal(t, start, s.StartTime)
				} else {
					assert.Equal(t, slots[i-1].EndTime, s.StartTime)
				}
			}
		})
	}
}

func TestGenerateSlots_DropsTrailingPartialUnit(t *testing.T) {
	slots, err := GenerateSlots(uuid.New(), date(t, "2025-03-10"), ts(t, "09:00"), ts(t, "10:50"), 30)
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.Equal(t, "10:30", slots[2].EndTime.String())
}

func TestGenerateSlots_RangeShorterThanUnit(t *testing.T) {
	slots, err := GenerateSlots(uuid.New(), date(t, "2025-03-10"), ts(t, "09:00"), ts(t, "09:40"), 60)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlots_InvalidRange(t *testing.T) {
	d := date(t, "2025-03-10")

	_, err := GenerateSlots(uuid.New(), d, ts(t, "12:00"), ts(t, "09:00"), 60)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = GenerateSlots(uuid.New(), d, ts(t, "09:00"), ts(t, "09:00"), 60)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = GenerateSlots(uuid.New(), d, ts(t, "09:00"), ts(t, "12:00"), 0)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = GenerateSlots(uuid.New(), d, ts(t, "09:00"), ts(t, "12:00"), MaxSlotDurationMinutes+1)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = GenerateSlots(uuid.New(), d, types.TimeString("9am"), ts(t, "12:00"), 60)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestFilterNewSlots_RegenerationNeverGrows(t *testing.T) {
	counselor := uuid.New()
	d := date(t, "2025-03-10")

	first, err := GenerateSlots(counselor, d, ts(t, "09:00"), ts(t, "12:00"), 60)
	require.NoError(t, err)

	again, err := GenerateSlots(counselor, d, ts(t, "09:00"), ts(t, "12:00"), 60)
	require.NoError(t, err)
	assert.Empty(t, FilterNewSlots(again, first))

	shifted, err := GenerateSlots(counselor, d, ts(t, "09:30"), ts(t, "13:30"), 60)
	require.NoError(t, err)
	fresh := FilterNewSlots(shifted, first)
	require.Len(t, fresh, 1)
	assert.Equal(t, "12:30", fresh[0].StartTime.String())
}

func TestFilterNewSlots_OtherCounselorDoesNotConflict(t *testing.T) {
	d := date(t, "2025-03-10")

	existing, err := GenerateSlots(uuid.New(), d, ts(t, "09:00"), ts(t, "12:00"), 60)
	require.NoError(t, err)
	candidates, err := GenerateSlots(uuid.New(), d, ts(t, "09:00"), ts(t, "12:00"), 60)
	require.NoError(t, err)

	assert.Len(t, FilterNewSlots(candidates, existing), 3)
}

func TestExpandWeekly(t *testing.T) {
	// 2025-03-10 is a Monday
	dates, err := ExpandWeekly(time.Wednesday, date(t, "2025-03-10"), 3)
	require.NoError(t, err)
	require.Len(t, dates, 3)
	assert.Equal(t, "2025-03-12", dates[0].Format(DateFormat))
	assert.Equal(t, "2025-03-19", dates[1].Format(DateFormat))
	assert.Equal(t, "2025-03-26", dates[2].Format(DateFormat))

	dates, err = ExpandWeekly(time.Monday, date(t, "2025-03-10"), 1)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", dates[0].Format(DateFormat))

	_, err = ExpandWeekly(time.Monday, date(t, "2025-03-10"), 0)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = ExpandWeekly(time.Monday, date(t, "2025-03-10"), MaxRecurrenceWeeks+1)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestDeclaration_Slots(t *testing.T) {
	counselor := uuid.New()
	dow := time.Friday

	decl := AvailabilityDeclaration{
		CounselorID: counselor,
		DayOfWeek:   &dow,
		FromDate:    date(t, "2025-03-10"),
		Weeks:       2,
		StartTime:   ts(t, "14:00"),
		EndTime:     ts(t, "16:00"),
		UnitMinutes: 30,
	}

	slots, err := decl.Slots()
	require.NoError(t, err)
	require.Len(t, slots, 8)
	assert.Equal(t, "2025-03-14", slots[0].Date.Format(DateFormat))
	assert.Equal(t, "2025-03-21", slots[7].Date.Format(DateFormat))

	d := date(t, "2025-03-10")
	decl.Date = &d
	_, err = decl.Slots()
	assert.ErrorIs(t, err, ErrInvalidInput)

	decl.DayOfWeek = nil
	decl.UnitMinutes = 0
	slots, err = decl.Slots()
	require.NoError(t, err)
	assert.Len(t, slots, 2)
}
