// Package physics implements the ball kinematics: fixed-timestep integration
// under constant acceleration and the per-size calibration tables.
package physics

// Motion is the kinematic state of a body in play-field pixels and seconds.
// Positive Y points down, so a positive AY pulls the body toward the floor.
type Motion struct {
	X, Y   float64 // Top-left position
	VX, VY float64 // Velocity (pixels/second)
	AX, AY float64 // Acceleration (pixels/second²)
}

// Integrate advances the motion state by one timestep of dt seconds.
// Position uses the velocity at the start of the step; velocity is then
// updated from the acceleration:
//
//	y' = y + vy*dt + ½*ay*dt²,  vy' = vy + ay*dt
//	x' = x + vx*dt,             vx' = vx + ax*dt
//
// Repeated application with a fixed dt reproduces the closed-form vertical
// trajectory exactly (up to rounding), so runs are deterministic.
func Integrate(m Motion, dt float64) Motion {
	m.X += m.VX * dt
	m.Y += m.VY*dt + 0.5*m.AY*dt*dt
	m.VX += m.AX * dt
	m.VY += m.AY * dt
	return m
}

// ClosedForm returns the vertical position and velocity after t seconds of
// constant acceleration, starting from the given state.
func ClosedForm(m Motion, t float64) (y, vy float64) {
	return m.Y + m.VY*t + 0.5*m.AY*t*t, m.VY + m.AY*t
}

// TimeFromVertex returns how far, in seconds, a body is from the peak of its
// parabola. A zero acceleration has no vertex and yields 0.
func TimeFromVertex(vy, ay float64) float64 {
	if ay == 0 {
		return 0
	}
	t := vy / ay
	if t < 0 {
		return -t
	}
	return t
}
