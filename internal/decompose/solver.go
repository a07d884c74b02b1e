package decompose

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/terrain-data/losdecomp/internal/monitoring"
)

// Geometry is the viewing geometry of one acquisition, degrees.
type Geometry struct {
	Heading   float64
	Incidence float64
}

// NormalizeAngle shifts a negative angle into [0, 360). The design matrix
// depends on the difference heading-azimuth, so heading and azimuth must be
// normalized the same way before conversion to radians.
func NormalizeAngle(deg float64) float64 {
	if deg < 0 {
		deg += 360
	}
	return deg
}

// DesignMatrix builds the 2x2 projection matrix for two acquisitions and a
// horizontal-motion azimuth. Row i is
//
//	[cos(inc_i), sin(inc_i)*sin(heading_i - azimuth)]
//
// mapping (vertical, horizontal) to the LOS observation of acquisition i.
// All angles are degrees; negative values are normalized first.
func DesignMatrix(geom [2]Geometry, azimuthDeg float64) *mat.Dense {
	az := NormalizeAngle(azimuthDeg) * math.Pi / 180
	a := mat.NewDense(2, 2, nil)
	for i, g := range geom {
		inc := NormalizeAngle(g.Incidence) * math.Pi / 180
		head := NormalizeAngle(g.Heading) * math.Pi / 180
		a.Set(i, 0, math.Cos(inc))
		a.Set(i, 1, math.Sin(inc)*math.Sin(head-az))
	}
	return a
}

// PseudoInverse computes the Moore-Penrose pseudo-inverse via SVD, zeroing
// singular values below max(m,n)*eps*sigma_max. A singular or near-singular
// matrix (poorly diversified viewing geometry) yields the minimum-norm
// least-squares projection instead of an error; the result degrades
// numerically but stays finite.
func PseudoInverse(a mat.Matrix) (*mat.Dense, error) {
	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return nil, fmt.Errorf("SVD factorization failed")
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	s := svd.Values(nil)

	// Same cutoff convention as standard pinv routines: values below
	// max(m,n)*eps*sigma_max are treated as zero.
	rows, cols := a.Dims()
	tol := float64(max(rows, cols)) * s[0] * 2.220446049250313e-16

	// pinv = V * S+ * U^T with S+ inverting only the significant values.
	sInv := mat.NewDense(len(s), len(s), nil)
	rank := 0
	for i, sv := range s {
		if sv > tol {
			sInv.Set(i, i, 1/sv)
			rank++
		}
	}
	if rank < len(s) {
		monitoring.Logf("design matrix is rank-deficient (rank %d of %d); results will be degraded", rank, len(s))
	}

	var vs, pinv mat.Dense
	vs.Mul(&v, sInv)
	pinv.Mul(&vs, u.T())
	return &pinv, nil
}

// Solve applies the pseudo-inverse of the design matrix to the two stacked
// LOS samples, producing the vertical and horizontal fields. The matrix is
// identical for every pixel because incidence and heading are representative
// scalars per acquisition, so the 2x2 projection is applied pointwise across
// the stack.
//
// los[0] and los[1] must have equal length. NaN no-data pixels propagate
// into both outputs at the same positions.
func Solve(geom [2]Geometry, azimuthDeg float64, los [2][]float64) (vertical, horizontal []float64, err error) {
	if len(los[0]) != len(los[1]) {
		return nil, nil, fmt.Errorf("internal: aligned samples differ in length (%d vs %d)", len(los[0]), len(los[1]))
	}

	a := DesignMatrix(geom, azimuthDeg)
	pinv, err := PseudoInverse(a)
	if err != nil {
		return nil, nil, err
	}

	p00, p01 := pinv.At(0, 0), pinv.At(0, 1)
	p10, p11 := pinv.At(1, 0), pinv.At(1, 1)

	n := len(los[0])
	vertical = make([]float64, n)
	horizontal = make([]float64, n)
	for j := 0; j < n; j++ {
		l0, l1 := los[0][j], los[1][j]
		vertical[j] = p00*l0 + p01*l1
		horizontal[j] = p10*l0 + p11*l1
	}
	return vertical, horizontal, nil
}
