package calendar

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{
			name:  "Valid date",
			input: "2024-12-24",
			want:  NewDate(2024, time.December, 24),
		},
		{
			name:    "Time component rejected",
			input:   "2024-12-24T10:00:00Z",
			wantErr: true,
		},
		{
			name:    "Wrong separator rejected",
			input:   "2024/12/24",
			wantErr: true,
		},
		{
			name:    "Empty string rejected",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want))
		})
	}
}

func TestFromTimeNormalizesZone(t *testing.T) {
	// 2024-03-01 23:30 in UTC+7 is 2024-03-01 16:30 UTC: still March 1st.
	loc := time.FixedZone("UTC+7", 7*3600)
	got := FromTime(time.Date(2024, time.March, 1, 23, 30, 0, 0, loc))
	assert.Equal(t, "2024-03-01", got.String())

	// 2024-03-01 02:00 in UTC+7 is 2024-02-29 19:00 UTC: previous day.
	got = FromTime(time.Date(2024, time.March, 1, 2, 0, 0, 0, loc))
	assert.Equal(t, "2024-02-29", got.String())
}

func TestDateComparableAsMapKey(t *testing.T) {
	parsed, err := Parse("2024-06-15")
	require.NoError(t, err)

	m := map[Date]bool{parsed: true}

	// The same day built through a different constructor must hit the
	// same map entry.
	assert.True(t, m[NewDate(2024, time.June, 15)])
	assert.True(t, m[FromTime(time.Date(2024, time.June, 15, 18, 0, 0, 0, time.UTC))])
}

func TestAddDays(t *testing.T) {
	d := NewDate(2024, time.December, 31)
	assert.Equal(t, "2025-01-01", d.AddDays(1).String())
	assert.Equal(t, "2024-12-30", d.AddDays(-1).String())

	// Leap day
	assert.Equal(t, "2024-02-29", NewDate(2024, time.February, 28).AddDays(1).String())
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, time.July, 4)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-07-04"`, string(b))

	var got Date
	require.NoError(t, json.Unmarshal(b, &got))
	assert.True(t, got.Equal(d))

	assert.Error(t, json.Unmarshal([]byte(`"not-a-date"`), &got))
	assert.Error(t, json.Unmarshal([]byte(`123`), &got))
}
