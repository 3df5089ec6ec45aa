package task

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		priority Priority
		deadline time.Time
		wantErr  string
	}{
		{name: "no priority no deadline"},
		{name: "high priority", priority: PriorityHigh},
		{name: "low priority with deadline", priority: PriorityLow, deadline: Date(2025, 12, 25)},
		{name: "priority too high", priority: 4, wantErr: "priority"},
		{name: "negative priority", priority: -1, wantErr: "priority"},
		{name: "deadline with clock", deadline: time.Date(2025, 1, 1, 13, 30, 0, 0, time.UTC), wantErr: "deadline"},
		{name: "deadline in last four-digit year", deadline: Date(9999, 12, 31)},
		{name: "deadline past year 9999", deadline: Date(10000, 1, 1), wantErr: "deadline"},
		{name: "deadline before year 1", deadline: Date(-5, 1, 1), wantErr: "deadline"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New("Buy milk", false, tt.priority, tt.deadline)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrValidation))
				var ve *ValidationError
				require.True(t, errors.As(err, &ve))
				assert.Equal(t, tt.wantErr, ve.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Buy milk", got.Description)
			assert.Equal(t, tt.priority, got.Priority)
			assert.False(t, got.Done)
		})
	}
}

func TestNewDeadlineYearBounds(t *testing.T) {
	got, err := New("first", false, PriorityNone, Date(1, 1, 2))
	require.NoError(t, err)
	assert.Equal(t, "0001-01-02", got.DeadlineString())

	got, err = New("last", false, PriorityNone, Date(9999, 12, 31))
	require.NoError(t, err)
	back, err := ParseDate(got.DeadlineString())
	require.NoError(t, err)
	assert.True(t, back.Equal(got.Deadline))

	// 0001-01-01 is the zero time, which means no deadline.
	got, err = New("zero", false, PriorityNone, Date(1, 1, 1))
	require.NoError(t, err)
	assert.False(t, got.HasDeadline())
	assert.Equal(t, NoneLabel, got.DeadlineString())

	_, err = New("far", false, PriorityNone, Date(10000, 1, 1))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNewAllowsEmptyDescription(t *testing.T) {
	got, err := New("", false, PriorityNone, time.Time{})
	require.NoError(t, err)
	assert.Empty(t, got.Description)
}

func TestNewNormalizesDeadline(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	got, err := New("Pay bills", false, PriorityNone, time.Date(2025, 10, 30, 0, 0, 0, 0, loc))
	require.NoError(t, err)
	assert.Equal(t, time.UTC, got.Deadline.Location())
	assert.True(t, got.Equal(Task{Description: "Pay bills", Deadline: Date(2025, 10, 30)}))
}

func TestMarkAsDone(t *testing.T) {
	task := Task{Description: "Write report"}
	task.MarkAsDone()
	assert.True(t, task.Done)

	task.MarkAsDone()
	assert.True(t, task.Done)
}

func TestString(t *testing.T) {
	tests := []struct {
		name string
		task Task
		want string
	}{
		{
			name: "open with everything",
			task: Task{Description: "Buy milk", Priority: PriorityHigh, Deadline: Date(2025, 1, 1)},
			want: "[ ] Buy milk | Priority: High | Deadline: 2025-01-01",
		},
		{
			name: "done medium",
			task: Task{Description: "Write report", Done: true, Priority: PriorityMedium, Deadline: Date(2025, 12, 26)},
			want: "[X] Write report | Priority: Medium | Deadline: 2025-12-26",
		},
		{
			name: "low without deadline",
			task: Task{Description: "Call John", Priority: PriorityLow},
			want: "[ ] Call John | Priority: Low | Deadline: None",
		},
		{
			name: "nothing optional",
			task: Task{Description: "Pay bills"},
			want: "[ ] Pay bills | Priority: None | Deadline: None",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.task.String())
		})
	}
}

func TestEqual(t *testing.T) {
	base := Task{Description: "Buy groceries", Priority: PriorityHigh, Deadline: Date(2025, 12, 25)}

	assert.True(t, base.Equal(base))
	assert.True(t, base.Equal(&base))

	other := base
	other.Done = true
	assert.False(t, base.Equal(other))

	other = base
	other.Deadline = time.Time{}
	assert.False(t, base.Equal(other))

	assert.False(t, base.Equal("Buy groceries"))
	assert.False(t, base.Equal(nil))
	assert.False(t, base.Equal((*Task)(nil)))
}

func TestOverdue(t *testing.T) {
	today := Date(2025, 6, 15)

	assert.True(t, Task{Deadline: Date(2025, 6, 14)}.Overdue(today))
	assert.False(t, Task{Deadline: Date(2025, 6, 15)}.Overdue(today))
	assert.False(t, Task{Deadline: Date(2025, 6, 14), Done: true}.Overdue(today))
	assert.False(t, Task{}.Overdue(today))
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in      string
		want    Priority
		wantErr error
	}{
		{in: "", want: PriorityNone},
		{in: "None", want: PriorityNone},
		{in: "1", want: PriorityHigh},
		{in: " 3 ", want: PriorityLow},
		{in: "4", wantErr: ErrValidation},
		{in: "0", wantErr: ErrValidation},
		{in: "high", wantErr: ErrType},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePriority(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-01-01")
	require.NoError(t, err)
	assert.True(t, got.Equal(Date(2025, 1, 1)))

	got, err = ParseDate("None")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	_, err = ParseDate("01/02/2025")
	assert.ErrorIs(t, err, ErrType)

	_, err = ParseDate("2025-02-30")
	assert.ErrorIs(t, err, ErrType)
}
