package pilot

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/flapsim/internal/flappy"
)

// Inputs is the number of values the network observes.
const Inputs = 4

//go:embed weights/default.yaml
var defaultWeights []byte

// ErrInvalidNetwork is returned for weight files with the wrong shape.
var ErrInvalidNetwork = errors.New("pilot: invalid network")

// Neuron is one weighted unit.
type Neuron struct {
	Weights []float64 `yaml:"weights"`
	Bias    float64   `yaml:"bias"`
}

func (n Neuron) activate(in []float64) float64 {
	sum := n.Bias
	for i, w := range n.Weights {
		sum += w * in[i]
	}
	return sum
}

// Network is a single-hidden-layer feed-forward network: tanh hidden units
// and a sigmoid output compared against Threshold.
type Network struct {
	Hidden    []Neuron `yaml:"hidden"`
	Output    Neuron   `yaml:"output"`
	Threshold float64  `yaml:"threshold"`
}

// DefaultNetwork returns the embedded network.
func DefaultNetwork() Network {
	n, err := ParseNetwork(defaultWeights)
	if err != nil {
		panic(fmt.Sprintf("pilot: embedded weights: %v", err))
	}
	return n
}

// LoadNetwork reads a network from a YAML file.
func LoadNetwork(path string) (Network, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Network{}, fmt.Errorf("pilot: read weights: %w", err)
	}
	return ParseNetwork(data)
}

// ParseNetwork decodes and validates a YAML network.
func ParseNetwork(data []byte) (Network, error) {
	var n Network
	if err := yaml.Unmarshal(data, &n); err != nil {
		return Network{}, fmt.Errorf("pilot: parse weights: %w", err)
	}
	if err := n.Validate(); err != nil {
		return Network{}, err
	}
	return n, nil
}

// Validate checks the layer shapes.
func (n Network) Validate() error {
	if len(n.Hidden) == 0 {
		return fmt.Errorf("%w: no hidden units", ErrInvalidNetwork)
	}
	for i, h := range n.Hidden {
		if len(h.Weights) != Inputs {
			return fmt.Errorf("%w: hidden unit %d has %d weights, want %d",
				ErrInvalidNetwork, i, len(h.Weights), Inputs)
		}
	}
	if len(n.Output.Weights) != len(n.Hidden) {
		return fmt.Errorf("%w: output has %d weights, want %d",
			ErrInvalidNetwork, len(n.Output.Weights), len(n.Hidden))
	}
	if n.Threshold <= 0 || n.Threshold >= 1 {
		return fmt.Errorf("%w: threshold must be in (0, 1)", ErrInvalidNetwork)
	}
	return nil
}

// Predict returns the output activation for the given inputs.
func (n Network) Predict(in [Inputs]float64) float64 {
	hidden := make([]float64, len(n.Hidden))
	for i, h := range n.Hidden {
		hidden[i] = math.Tanh(h.activate(in[:]))
	}
	return sigmoid(n.Output.activate(hidden))
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// Observe turns a frame into network inputs. Without a gap ahead the player
// aims for the middle of the playfield.
func Observe(f flappy.Frame) [Inputs]float64 {
	w, h := f.Canvas.Width, f.Canvas.Height
	p := f.Player

	x, _, top, bottom, ok := f.NextGap()
	if !ok {
		x = p.X + p.Width
		mid := (h - f.Canvas.FloorHeight) / 2
		top, bottom = mid-p.Height, mid+p.Height
	}

	return [Inputs]float64{
		(x - (p.X + p.Width)) / w,
		(p.Y + p.Height - bottom) / h,
		(p.Y - top) / h,
		p.Vel,
	}
}
