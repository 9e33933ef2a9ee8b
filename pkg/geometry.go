package triplet

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// CylinderIntersect intersects the infinite ray pos + t*vel with a finite
// cylinder centered at the origin, axis along Y, of the given radius and
// height. It returns the entry and exit ray parameters t0 <= t1 (time units
// when vel is a velocity). Both may be negative; callers decide what to do
// with intersections behind the ray origin. ok is false when the ray misses
// the lateral surface or the interval clipped by the end caps is empty.
func CylinderIntersect(pos, vel r3.Vec, radius, height float64) (t0, t1 float64, ok bool) {
	t0 = math.Inf(-1)
	t1 = math.Inf(1)

	// Lateral surface: quadratic in the XZ projection.
	a := vel.X*vel.X + vel.Z*vel.Z
	if a == 0 {
		// Ray parallel to the axis. Inside the radius or not at all.
		if pos.X*pos.X+pos.Z*pos.Z > radius*radius {
			return 0, 0, false
		}
	} else {
		b := 2 * (pos.X*vel.X + pos.Z*vel.Z)
		c := pos.X*pos.X + pos.Z*pos.Z - radius*radius
		disc := b*b - 4*a*c
		if disc < 0 {
			return 0, 0, false
		}
		sq := math.Sqrt(disc)
		t0 = (-b - sq) / (2 * a)
		t1 = (-b + sq) / (2 * a)
	}

	// Clip by the end caps at y = +-height/2.
	half := height / 2
	if vel.Y == 0 {
		if pos.Y < -half || pos.Y > half {
			return 0, 0, false
		}
	} else {
		tc0 := (-half - pos.Y) / vel.Y
		tc1 := (half - pos.Y) / vel.Y
		if tc0 > tc1 {
			tc0, tc1 = tc1, tc0
		}
		if tc0 > t0 {
			t0 = tc0
		}
		if tc1 < t1 {
			t1 = tc1
		}
	}

	if t0 > t1 {
		return 0, 0, false
	}
	return t0, t1, true
}

// Frame places a tube in assembly coordinates: a position offset followed by
// a tilt about X and a tilt about Z (radians). The trigonometry is computed
// once so the per-ray transform is a handful of multiplications.
type Frame struct {
	Offset   r3.Vec
	sinX     float64
	cosX     float64
	sinZ     float64
	cosZ     float64
	identity bool
}

// NewFrame builds a frame from an offset and the two tilt angles in radians.
func NewFrame(offset r3.Vec, tiltX, tiltZ float64) Frame {
	return Frame{
		Offset:   offset,
		sinX:     math.Sin(tiltX),
		cosX:     math.Cos(tiltX),
		sinZ:     math.Sin(tiltZ),
		cosZ:     math.Cos(tiltZ),
		identity: offset == (r3.Vec{}) && tiltX == 0 && tiltZ == 0,
	}
}

// Identity reports whether the frame is a no-op transform.
func (f Frame) Identity() bool {
	return f.identity
}

// ToLocal maps a ray from assembly coordinates into the tube frame:
// translate by -Offset, rotate by -tiltX about X, then by -tiltZ about Z.
// The velocity sees the rotations only.
func (f Frame) ToLocal(pos, vel r3.Vec) (r3.Vec, r3.Vec) {
	if f.identity {
		return pos, vel
	}
	return f.rotLocal(r3.Sub(pos, f.Offset)), f.rotLocal(vel)
}

func (f Frame) rotLocal(v r3.Vec) r3.Vec {
	// Rx(-tiltX)
	y := v.Y*f.cosX + v.Z*f.sinX
	z := -v.Y*f.sinX + v.Z*f.cosX
	// Rz(-tiltZ)
	x := v.X*f.cosZ + y*f.sinZ
	y = -v.X*f.sinZ + y*f.cosZ
	return r3.Vec{X: x, Y: y, Z: z}
}

// PointToGlobal maps a point from the tube frame back to assembly
// coordinates. Used when emitting display geometry.
func (f Frame) PointToGlobal(p r3.Vec) r3.Vec {
	if f.identity {
		return p
	}
	return r3.Add(f.DirToGlobal(p), f.Offset)
}

// DirToGlobal rotates a direction from the tube frame to assembly
// coordinates without translating.
func (f Frame) DirToGlobal(d r3.Vec) r3.Vec {
	if f.identity {
		return d
	}
	// Rz(tiltZ)
	x := d.X*f.cosZ - d.Y*f.sinZ
	y := d.X*f.sinZ + d.Y*f.cosZ
	// Rx(tiltX)
	z := y*f.sinX + d.Z*f.cosX
	y = y*f.cosX - d.Z*f.sinX
	return r3.Vec{X: x, Y: y, Z: z}
}
