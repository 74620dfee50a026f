package common

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

// Vec is an immutable 2D vector. Every operation returns a new value.
type Vec struct {
	X, Y float64
}

func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Splat returns a vector with v on both axes.
func Splat(v float64) Vec {
	return Vec{X: v, Y: v}
}

func Zero() Vec {
	return Vec{}
}

func (v Vec) Inverse() Vec {
	return Vec{X: -v.X, Y: -v.Y}
}

func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec) Sub(o Vec) Vec {
	return v.Add(o.Inverse())
}

func (v Vec) Mul(amount float64) Vec {
	return Vec{X: v.X * amount, Y: v.Y * amount}
}

// Div divides both axes by amount. Dividing by zero is logged and returns v
// unchanged.
func (v Vec) Div(amount float64) Vec {
	if amount == 0 {
		zap.L().Warn("vector: divide by zero", zap.Stringer("vec", v))
		return v
	}
	return v.Mul(1 / amount)
}

func (v Vec) Magnitude() float64 {
	return math.Hypot(v.X, v.Y)
}

func (v Vec) Normalize() Vec {
	m := v.Magnitude()
	if m == 0 {
		return v
	}
	return v.Div(m)
}

// Truncate returns a vector pointing the same way with the given length.
func (v Vec) Truncate(amount float64) Vec {
	return v.Normalize().Mul(amount)
}

func (v Vec) Round() Vec {
	return Vec{X: math.Round(v.X), Y: math.Round(v.Y)}
}

func (v Vec) Floor() Vec {
	return Vec{X: math.Floor(v.X), Y: math.Floor(v.Y)}
}

func (v Vec) Ceil() Vec {
	return Vec{X: math.Ceil(v.X), Y: math.Ceil(v.Y)}
}

func (v Vec) Equals(o Vec) bool {
	return v.X == o.X && v.Y == o.Y
}

func (v Vec) String() string {
	return fmt.Sprintf("[%v, %v]", v.X, v.Y)
}

// Serialize returns the vector as an ordered pair.
func (v Vec) Serialize() [2]float64 {
	return [2]float64{v.X, v.Y}
}

func Deserialize(p [2]float64) Vec {
	return Vec{X: p[0], Y: p[1]}
}

func Distance(a, b Vec) float64 {
	return a.Sub(b).Magnitude()
}

func Dot(a, b Vec) float64 {
	return a.X*b.X + a.Y*b.Y
}

func LerpVec(from, to Vec, t float64) Vec {
	return Vec{X: Lerp(from.X, to.X, t), Y: Lerp(from.Y, to.Y, t)}
}
