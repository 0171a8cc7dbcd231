package motion

// axpy writes x + a*d into dst and returns it. dst may alias x.
func axpy(dst, x State, a float64, d State) State {
	for i := range dst {
		dst[i] = x[i] + a*d[i]
	}
	return dst
}

// grow returns buf resized to n, reusing its backing array when it can.
func grow(buf State, n int) State {
	if cap(buf) < n {
		return make(State, n)
	}
	return buf[:n]
}

// Euler is the explicit first order method.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys System, x State, t, dt float64) State {
	return axpy(make(State, len(x)), x, dt, sys.Derive(x, t))
}

// Classic fourth order tableau: stage s is evaluated at t+nodes[s]*dt from
// x pushed along the previous slope, and contributes weights[s]/6 of it.
var (
	rk4Nodes   = [4]float64{0, 0.5, 0.5, 1}
	rk4Weights = [4]float64{1, 2, 2, 1}
)

// RK4 keeps its slope buffers between steps, so one value should serve a
// single scene.
type RK4 struct {
	slopes [4]State
	at     State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Step(sys System, x State, t, dt float64) State {
	n := len(x)
	r.at = grow(r.at, n)
	out := x.Clone()
	for s, node := range rk4Nodes {
		at := x
		if s > 0 {
			at = axpy(r.at, x, node*dt, r.slopes[s-1])
		}
		r.slopes[s] = grow(r.slopes[s], n)
		copy(r.slopes[s], sys.Derive(at, t+node*dt))
		axpy(out, out, rk4Weights[s]*dt/6, r.slopes[s])
	}
	return out
}

// Verlet is velocity Verlet for states laid out as positions followed by
// velocities of equal length.
type Verlet struct {
	scratch State
}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) Step(sys System, x State, t, dt float64) State {
	n := len(x)
	half := n / 2
	v.scratch = grow(v.scratch, n)

	result := make(State, n)
	dx := sys.Derive(x, t)
	dt2 := dt * dt

	for i := 0; i < half; i++ {
		result[i] = x[i] + x[half+i]*dt + 0.5*dx[half+i]*dt2
	}

	for i := 0; i < half; i++ {
		v.scratch[i] = result[i]
		v.scratch[half+i] = x[half+i]
	}

	dxNew := sys.Derive(v.scratch, t+dt)

	halfDt := 0.5 * dt
	for i := 0; i < half; i++ {
		result[half+i] = x[half+i] + (dx[half+i]+dxNew[half+i])*halfDt
	}
	return result
}
