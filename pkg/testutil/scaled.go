package testutil

import (
	"os"
	"strconv"
	"time"
)

// TimeScaleEnvName is the name of the environment variable used by Scaled to
// scale durations in timing-sensitive tests. Set it to a number greater than
// 1 on slow machines.
const TimeScaleEnvName = "MODELINE_TEST_TIME_SCALE"

// Scaled returns d scaled by $MODELINE_TEST_TIME_SCALE. If the environment
// variable does not exist or contains an invalid value, the scale defaults
// to 1.
func Scaled(d time.Duration) time.Duration {
	return time.Duration(float64(d) * testTimeScale())
}

func testTimeScale() float64 {
	env := os.Getenv(TimeScaleEnvName)
	if env == "" {
		return 1
	}
	scale, err := strconv.ParseFloat(env, 64)
	if err != nil || scale <= 0 {
		return 1
	}
	return scale
}
