package pipelines

import (
	"golang.org/x/exp/rand"

	"github.com/lettier/3d-game-shaders-for-beginners/engine/math"
)

// SSAOSamples builds a hemisphere kernel pointing up Z. Samples are
// scaled so more of them cluster near the origin.
func SSAOSamples(rng *rand.Rand, count int) []math.Vec3 {
	samples := make([]math.Vec3, 0, count)
	for i := 0; i < count; i++ {
		sample := math.NewVec3(
			rng.Float32()*2-1,
			rng.Float32()*2-1,
			rng.Float32(),
		)
		if sample.Len() > 0 {
			sample = sample.Normalize()
		}
		sample = sample.Mul(rng.Float32())

		scale := float32(i) / float32(count)
		sample = sample.Mul(math.Lerp(0.1, 1, scale*scale))
		samples = append(samples, sample)
	}
	return samples
}

// SSAONoise builds random rotation vectors in the XY plane.
func SSAONoise(rng *rand.Rand, count int) []math.Vec3 {
	noise := make([]math.Vec3, 0, count)
	for i := 0; i < count; i++ {
		noise = append(noise, math.NewVec3(rng.Float32()*2-1, rng.Float32()*2-1, 0))
	}
	return noise
}

func (b *builder) ssaoKernels() (samples, noise []math.Vec3) {
	samples = SSAOSamples(b.rng, b.settings.SSAOSamples)
	noise = SSAONoise(b.rng, b.settings.SSAONoise)
	return samples, noise
}
