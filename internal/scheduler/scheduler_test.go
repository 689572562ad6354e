package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

func TestNew(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)

	s, err := New(&mockLogger{})
	require.NoError(t, err)
	require.NotNil(t, s)
}

func TestScheduler_Schedule(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		wantErr bool
	}{
		{name: "every weekday morning", spec: "30 8 * * 1-5"},
		{name: "hourly", spec: "@hourly"},
		{name: "six fields rejected", spec: "0 30 8 * * 1-5", wantErr: true},
		{name: "garbage", spec: "not a cron spec", wantErr: true},
		{name: "empty", spec: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(&mockLogger{})
			require.NoError(t, err)

			err = s.Schedule(tt.spec, func() {})
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "failed to register schedule")
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestScheduler_StartStop(t *testing.T) {
	s, err := New(&mockLogger{})
	require.NoError(t, err)
	require.NoError(t, s.Schedule("0 0 1 1 *", func() {}))

	s.Start()
	s.Stop() // Must return promptly with no job running.
}
