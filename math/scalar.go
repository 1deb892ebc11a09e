package math

import "math"

const (
	Pi  = float32(math.Pi)
	Tau = float32(2 * math.Pi)
)

func Sin(a float32) float32 { return float32(math.Sin(float64(a))) }
func Cos(a float32) float32 { return float32(math.Cos(float64(a))) }

func Tan(a float32) float32 { return float32(math.Tan(float64(a))) }

func Sqrt(a float32) float32 { return float32(math.Sqrt(float64(a))) }

func Abs(a float32) float32 { return float32(math.Abs(float64(a))) }

func Radians(deg float32) float32 {
	return deg * Pi / 180
}

func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Max(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func Min(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
