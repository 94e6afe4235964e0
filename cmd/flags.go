package cmd

import (
	"errors"

	"github.com/alexiusacademia/gosfd/internal/beam"
	"github.com/alexiusacademia/gosfd/internal/logger"
	"github.com/spf13/cobra"
)

// beamInput holds the three beam flags as typed text. They go through
// beam.Compute so every command rejects input with the same message.
type beamInput struct {
	length   string
	load     string
	position string
}

func (b *beamInput) register(c *cobra.Command) {
	c.Flags().StringVarP(&b.length, "length", "L", "", "Beam length L (m) [required]")
	c.Flags().StringVarP(&b.load, "load", "P", "", "Point load P (N) [required]")
	c.Flags().StringVarP(&b.position, "position", "a", "", "Load position a from the left support (m) [required]")
}

func (b *beamInput) compute() (*beam.Result, error) {
	return computeWithLoad(b.length, b.load, b.position)
}

func computeWithLoad(length, load, position string) (*beam.Result, error) {
	res, err := beam.Compute(length, load, position)
	if err != nil {
		var ie *beam.InputError
		if errors.As(err, &ie) {
			logger.L().Info("calc.invalid_input", "field", ie.Field, "cause", ie.Cause())
		}
		return nil, err
	}
	logger.L().Debug("calc.completed",
		"length", res.Input.L, "load", res.Input.P, "position", res.Input.A,
		"max_shear", res.MaxShear, "max_moment", res.MaxMoment)
	return res, nil
}
