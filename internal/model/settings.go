package model

// OrderingPolicy selects the order in which shape requests are placed.
type OrderingPolicy string

const (
	OrderInsertion    OrderingPolicy = "insertion"     // caller order
	OrderLargestFirst OrderingPolicy = "largest-first" // area descending, reduces fragmentation
)

// Settings holds engine configuration. Zero values select the
// documented defaults or auto-derivation where noted.
type Settings struct {
	CellSize          float64        `json:"cell_size" yaml:"cell_size"`                     // grid resolution; 0 = max shape bbox dimension
	SpiralAngularStep float64        `json:"spiral_angular_step" yaml:"spiral_angular_step"` // degrees between samples on a ring
	SpiralRadialStep  float64        `json:"spiral_radial_step" yaml:"spiral_radial_step"`   // ring spacing; 0 = quarter of the smallest shape dimension
	RotationTrials    int            `json:"rotation_trials" yaml:"rotation_trials"`         // rotations tried per candidate, in 15 degree steps
	Ordering          OrderingPolicy `json:"ordering" yaml:"ordering"`                       // "insertion" or "largest-first"
	Workers           int            `json:"workers" yaml:"workers"`                         // concurrent searchers; 1 = deterministic sequential
	Compact           bool           `json:"compact" yaml:"compact"`                         // run the centroid-ward density post-pass
	JitterAmp         float64        `json:"jitter_amp" yaml:"jitter_amp"`                   // polar candidate jitter amplitude; 0 = off
	Seed              int64          `json:"seed" yaml:"seed"`                               // jitter rng seed
	StrictSpecs       bool           `json:"strict_specs" yaml:"strict_specs"`               // abort the batch on the first invalid spec
}

func DefaultSettings() Settings {
	return Settings{
		CellSize:          0, // auto-derived from the request
		SpiralAngularStep: 15.0,
		SpiralRadialStep:  0, // auto-derived from the request
		RotationTrials:    6,
		Ordering:          OrderLargestFirst,
		Workers:           1,
		Compact:           false,
		JitterAmp:         0,
		Seed:              0,
		StrictSpecs:       false,
	}
}
