package nodeid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name         string
		rawID        string
		expectErr    bool
		expectedAddr Address
	}{
		{
			name:         "task",
			rawID:        "task.laser_driver",
			expectedAddr: Task("laser_driver"),
		},
		{
			name:         "producer with index",
			rawID:        "producer.wheel-odometry[15]",
			expectedAddr: Producer("wheel-odometry", 15),
		},
		{
			name:         "zero index",
			rawID:        "producer.imu[0]",
			expectedAddr: Producer("imu", 0),
		},
		{
			name:      "error - empty string",
			rawID:     "",
			expectErr: true,
		},
		{
			name:      "error - no kind",
			rawID:     "laser",
			expectErr: true,
		},
		{
			name:      "error - unknown kind",
			rawID:     "step.laser",
			expectErr: true,
		},
		{
			name:      "error - nested name",
			rawID:     "task.a.b",
			expectErr: true,
		},
		{
			name:      "error - invalid index",
			rawID:     "producer.imu[x]",
			expectErr: true,
		},
		{
			name:      "error - just hyphen",
			rawID:     "task.-",
			expectErr: true,
		},
		{
			name:      "error - empty name",
			rawID:     "task.",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			addr, err := Parse(tc.rawID)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedAddr, addr)
		})
	}
}

func TestMustParse(t *testing.T) {
	assert.Equal(t, Task("a"), MustParse("task.a"))
	assert.Panics(t, func() { MustParse("nope") })
}
