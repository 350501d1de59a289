// Package score computes the pixelwise objective functions that drive
// annealing acceptance: the plain sum-of-squares objective, the
// distance-weighted objective, and the Euclidean distance transform the
// latter is built from (spec.md §4.C).
package score

import "math"

const infDist = 1e20

// DistanceTransform computes, for every pixel, the Euclidean distance to
// the nearest pixel for which mask is true, using the two-pass squared
// distance transform of Felzenszwalt and Huttenlocher. mask is row-major
// over width x height.
func DistanceTransform(mask []bool, width, height int) []float64 {
	sq := make([]float64, width*height)
	for i, v := range mask {
		if v {
			sq[i] = 0
		} else {
			sq[i] = infDist
		}
	}

	col := make([]float64, height)
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			col[y] = sq[y*width+x]
		}
		edt1D(col)
		for y := 0; y < height; y++ {
			sq[y*width+x] = col[y]
		}
	}

	row := make([]float64, width)
	for y := 0; y < height; y++ {
		copy(row, sq[y*width:y*width+width])
		edt1D(row)
		copy(sq[y*width:y*width+width], row)
	}

	out := make([]float64, width*height)
	for i, v := range sq {
		out[i] = math.Sqrt(v)
	}
	return out
}

// edt1D computes the 1-D squared distance transform of f in place, per
// the lower-envelope-of-parabolas construction.
func edt1D(f []float64) {
	n := len(f)
	if n == 0 {
		return
	}
	d := make([]float64, n)
	v := make([]int, n)
	z := make([]float64, n+1)

	k := 0
	v[0] = 0
	z[0] = math.Inf(-1)
	z[1] = math.Inf(1)

	for q := 1; q < n; q++ {
		var s float64
		for {
			s = ((f[q] + float64(q*q)) - (f[v[k]] + float64(v[k]*v[k]))) / float64(2*q-2*v[k])
			if s <= z[k] {
				k--
				if k < 0 {
					break
				}
				continue
			}
			break
		}
		k++
		v[k] = q
		z[k] = s
		z[k+1] = math.Inf(1)
	}

	k = 0
	for q := 0; q < n; q++ {
		for z[k+1] < float64(q) {
			k++
		}
		dq := float64(q - v[k])
		d[q] = dq*dq + f[v[k]]
	}
	copy(f, d)
}

// BuildDistmap computes the weighted distance map used by the
// distance-weighted objective: the Euclidean distance transform of
// real < 0.5, scaled by 1/(distanceCostDivisor * pixelsPerMicron), then
// offset by +1 so background pixels carry weight >= 1 (spec.md §4.C).
func BuildDistmap(real []float64, width, height int, distanceCostDivisor, pixelsPerMicron float64) []float64 {
	mask := make([]bool, len(real))
	for i, v := range real {
		mask[i] = v < 0.5
	}
	dist := DistanceTransform(mask, width, height)

	scale := 1 / (distanceCostDivisor * pixelsPerMicron)
	out := make([]float64, len(dist))
	for i, v := range dist {
		out[i] = v*scale + 1
	}
	return out
}
