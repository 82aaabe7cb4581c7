// SPDX-License-Identifier: EPL-2.0

package texture

import (
	"github.com/ojrac/opensimplex-go"

	"github.com/ik5/wavterrain/settings"
)

// fbm sums octaves of OpenSimplex noise. The seed comes from the settings
// only, so equal settings always give equal textures.
type fbm struct {
	noise  opensimplex.Noise
	params settings.Noise
}

func newFBM(params settings.Noise) *fbm {
	return &fbm{
		noise:  opensimplex.New(params.Seed),
		params: params,
	}
}

// Eval returns fractal noise at (x, y) mapped into [0, 1].
func (f *fbm) Eval(x, y float64) float64 {
	var total, maxValue float64
	frequency, amplitude := 1.0, 1.0

	for range max(f.params.Octaves, 1) {
		total += f.noise.Eval2(x*frequency, y*frequency) * amplitude
		maxValue += amplitude
		amplitude *= f.params.Persistence
		frequency *= f.params.Lacunarity
	}

	return (total/maxValue + 1) / 2
}
