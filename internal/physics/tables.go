package physics

import "math"

// SizeCount is the number of ball size classes. Size 0 is the smallest and
// never splits.
const SizeCount = 5

// ReferenceWidth is the field width the calibration data was measured at.
const ReferenceWidth = 890

// Calibration data for a 890 pixel wide field. Other widths scale linearly.
var (
	// sideDivisors give the ball side as width / divisor.
	sideDivisors = [SizeCount]float64{50.7273, 29.3684, 15.7627, 10.856, 8.2301}

	// accelFactors give the vertical acceleration as a multiple of field height.
	accelFactors = [SizeCount]float64{1, 1.03, 0.82, 0.95, 1}

	// bounceTimes are half the measured seconds between bounces.
	bounceTimes = [SizeCount - 1]float64{
		27.17 / 25 / 2,
		35.29 / 23 / 2,
		32.08 / 18 / 2,
		17.48 / 10 / 2,
	}

	// bounceHeights give floor-to-peak height as a fraction of field height.
	bounceHeights = [SizeCount]float64{0.1695, 0.3498, 0.4292, 0.515, 0.5966}
)

const (
	crossingSeconds = 9.5 // Seconds for a ball to drift across the field
	popSpeedCap     = 300 // Fastest child launch speed in reference pixels/second
	popSpeedFactor  = 30  // Scale of the vertex-timing launch boost
)

// Tables holds the calibration values resolved for a concrete field size.
type Tables struct {
	Width, Height float64
	Resize        float64 // Width / ReferenceWidth

	XSpeed      float64            // Horizontal drift speed
	Sides       [SizeCount]float64 // Ball side length per size
	YAcc        [SizeCount]float64 // Vertical acceleration per size (positive = down)
	LaunchSpeed [SizeCount]float64 // Platform bounce velocity per size (negative = up)
}

// NewTables resolves the calibration tables for a field of the given size.
func NewTables(width, height float64) Tables {
	t := Tables{
		Width:  width,
		Height: height,
		Resize: width / ReferenceWidth,
		XSpeed: width / crossingSeconds,
	}

	for s := range SizeCount {
		t.Sides[s] = math.Floor(width / sideDivisors[s])
		t.YAcc[s] = height * accelFactors[s]
	}

	for s, bt := range bounceTimes {
		t.LaunchSpeed[s] = -t.YAcc[s] * bt
	}
	// The largest size has no measured bounce time; launch it to its
	// measured bounce height instead.
	top := SizeCount - 1
	t.LaunchSpeed[top] = -math.Sqrt(2 * t.YAcc[top] * bounceHeights[top] * height)

	return t
}

// ValidSize reports whether size is a ball size class.
func ValidSize(size int) bool {
	return size >= 0 && size < SizeCount
}

// PopLaunchSpeed returns the vertical velocity given to the children of a ball
// popped timeFromVertex seconds away from the peak of its arc. Pops close to
// the peak launch the children faster, up to a fixed cap.
func (t Tables) PopLaunchSpeed(timeFromVertex float64) float64 {
	capped := -popSpeedCap * t.Resize
	if timeFromVertex <= 0 {
		return capped
	}
	return math.Max(capped, -popSpeedFactor/timeFromVertex*t.Resize)
}

// SideBounceSpeed returns the horizontal velocity after hitting a side: the
// ball always heads back toward the centre of the field.
func (t Tables) SideBounceSpeed(x float64) float64 {
	if x > t.Width/2 {
		return -t.XSpeed
	}
	return t.XSpeed
}
