package schedule

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, day := range Days {
		for _, tm := range Slots {
			code := Encode(day, tm)
			gotDay, gotTm, ok := Decode(code)
			if !ok || gotDay != day || gotTm != tm {
				t.Errorf("Decode(%q) = (%q, %q, %v); want (%q, %q, true)", code, gotDay, gotTm, ok, day, tm)
			}
		}
	}
}

func TestEncodePanicsOnInvalidInput(t *testing.T) {
	assert.Panics(t, func() { Encode("Monday", "09:00") })
	assert.Panics(t, func() { Encode("Mon", "07:00") })
	assert.Panics(t, func() { Encode("Mon", "09:30") })
	assert.NotPanics(t, func() { Encode("Sun", "20:00") })
}

func TestDecode(t *testing.T) {
	tests := []struct {
		code    string
		wantDay string
		wantTm  string
		wantOK  bool
	}{
		{code: "Mon 09:00", wantDay: "Mon", wantTm: "09:00", wantOK: true},
		{code: "Sun 20:00", wantDay: "Sun", wantTm: "20:00", wantOK: true},
		{code: "Tue 07:30", wantDay: "Tue", wantTm: "07:30", wantOK: true}, // off-grid but well formed
		{code: "Fri 9:00", wantDay: "Fri", wantTm: "09:00", wantOK: true},
		{code: ""},
		{code: "Mon"},
		{code: "Monday 09:00"},
		{code: "mon 09:00"},
		{code: "Mon 9am"},
		{code: "Mon 25:00"},
		{code: "Mon  09:00"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			day, tm, ok := Decode(tt.code)
			if ok != tt.wantOK || day != tt.wantDay || tm != tt.wantTm {
				t.Errorf("Decode() = (%q, %q, %v); want (%q, %q, %v)", day, tm, ok, tt.wantDay, tt.wantTm, tt.wantOK)
			}
		})
	}
}

func TestSortKey(t *testing.T) {
	assert.Equal(t, Key{Day: 0, Hour: 9}, SortKey("Mon 09:00"))
	assert.Equal(t, Key{Day: 6, Hour: 20}, SortKey("Sun 20:00"))
	assert.Equal(t, Key{Day: 7}, SortKey("whenever"))
	assert.Equal(t, Key{Day: 7}, SortKey("Xyz 10:00"))

	assert.True(t, Less("Mon 20:00", "Tue 08:00"))
	assert.True(t, Less("Sun 20:00", "garbage"))
	assert.False(t, Less("garbage", "Mon 08:00"))
	assert.False(t, Less("garbage", "nonsense"))
	assert.False(t, Less("Wed 10:00", "Wed 10:00"))
}

func TestSortReproducesCalendarOrder(t *testing.T) {
	want := make([]string, 0, len(Days)*len(Slots))
	for _, day := range Days {
		for _, tm := range Slots {
			want = append(want, Encode(day, tm))
		}
	}
	want = append(want, "bogus")

	got := make([]string, len(want))
	copy(got, want)
	r := rand.New(rand.NewSource(42))
	r.Shuffle(len(got), func(i, j int) { got[i], got[j] = got[j], got[i] })

	Sort(got)
	assert.Equal(t, want, got)
}

func TestNextOccurrence(t *testing.T) {
	loc := time.Local
	wed := time.Date(2024, time.May, 15, 10, 30, 0, 0, loc) // a Wednesday

	tests := []struct {
		name   string
		code   string
		ref    time.Time
		want   time.Time
		wantOK bool
	}{
		{
			name: "Wednesday to upcoming Monday", code: "Mon 09:00", ref: wed,
			want: time.Date(2024, time.May, 20, 9, 0, 0, 0, loc), wantOK: true,
		},
		{
			name: "later the same day", code: "Wed 14:00", ref: wed,
			want: time.Date(2024, time.May, 15, 14, 0, 0, 0, loc), wantOK: true,
		},
		{
			name: "earlier the same day rolls a week", code: "Wed 09:00", ref: wed,
			want: time.Date(2024, time.May, 22, 9, 0, 0, 0, loc), wantOK: true,
		},
		{
			name: "exactly the reference instant", code: "Wed 10:30", ref: wed,
			want: wed, wantOK: true,
		},
		{
			name: "Sunday from Wednesday", code: "Sun 20:00", ref: wed,
			want: time.Date(2024, time.May, 19, 20, 0, 0, 0, loc), wantOK: true,
		},
		{
			name: "Monday from Sunday night", code: "Mon 08:00", ref: time.Date(2024, time.May, 19, 23, 0, 0, 0, loc),
			want: time.Date(2024, time.May, 20, 8, 0, 0, 0, loc), wantOK: true,
		},
		{
			name: "across month end", code: "Fri 08:00", ref: time.Date(2024, time.May, 31, 9, 0, 0, 0, loc),
			want: time.Date(2024, time.June, 7, 8, 0, 0, 0, loc), wantOK: true,
		},
		{name: "invalid code", code: "someday", ref: wed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NextOccurrence(tt.code, tt.ref)
			if ok != tt.wantOK || !got.Equal(tt.want) {
				t.Errorf("NextOccurrence() = (%v, %v); want (%v, %v)", got, ok, tt.want, tt.wantOK)
			}
			if ok && got.Before(tt.ref) {
				t.Errorf("NextOccurrence() = %v is before the reference %v", got, tt.ref)
			}
		})
	}
}
