package engine

import (
	"math"
	"math/rand"
)

// goldenAngle phase-shifts each spiral ring so sample angles never
// line up ring to ring, which would leave radial corridors unexplored.
const goldenAngle = 2.39996322972865332

// spiral generates candidate centroids ring by ring around a focus
// point. Ring zero is the focus itself; ring r sits at radius
// r*radialStep and is sampled every angularStep radians. Generation
// stops once the ring radius exceeds maxRadius, so the search always
// terminates even when nothing fits.
//
// With a positive jitterAmp each sample is perturbed by a seeded
// random fraction of the two step sizes, which breaks up the moire
// patterns a fully regular spiral produces on uniform shape mixes.
type spiral struct {
	cx, cy      float64
	radialStep  float64
	angularStep float64
	maxRadius   float64
	jitterAmp   float64
	rng         *rand.Rand

	ring    int
	sample  int
	perRing int
	phase   float64
}

func newSpiral(cx, cy, radialStep, angularStep, maxRadius, jitterAmp float64, rng *rand.Rand) *spiral {
	perRing := int(math.Round(2 * math.Pi / angularStep))
	if perRing < 1 {
		perRing = 1
	}
	return &spiral{
		cx:          cx,
		cy:          cy,
		radialStep:  radialStep,
		angularStep: angularStep,
		maxRadius:   maxRadius,
		jitterAmp:   jitterAmp,
		rng:         rng,
		perRing:     perRing,
	}
}

// next returns the following candidate position, or ok=false once the
// spiral has passed its radius bound. The first call always yields the
// focus point exactly.
func (sp *spiral) next() (x, y float64, ok bool) {
	if sp.ring == 0 {
		sp.advanceRing()
		return sp.cx, sp.cy, true
	}
	for {
		radius := float64(sp.ring) * sp.radialStep
		if radius > sp.maxRadius {
			return 0, 0, false
		}
		if sp.sample >= sp.perRing {
			sp.advanceRing()
			continue
		}
		angle := sp.phase + float64(sp.sample)*sp.angularStep
		sp.sample++
		if sp.jitterAmp > 0 && sp.rng != nil {
			radius += (sp.rng.Float64()*2 - 1) * sp.jitterAmp * sp.radialStep
			angle += (sp.rng.Float64()*2 - 1) * sp.jitterAmp * sp.angularStep
		}
		sin, cos := math.Sincos(angle)
		return sp.cx + radius*cos, sp.cy + radius*sin, true
	}
}

func (sp *spiral) advanceRing() {
	sp.ring++
	sp.sample = 0
	sp.phase = math.Mod(goldenAngle*float64(sp.ring), 2*math.Pi)
}
