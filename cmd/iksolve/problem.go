// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvlik/blockindex"
	"github.com/katalvlaran/lvlik/config"
	"github.com/katalvlaran/lvlik/constraint"
	"github.com/katalvlaran/lvlik/explicit"
	"github.com/katalvlaran/lvlik/kinematics"
	"github.com/katalvlaran/lvlik/linesearch"
	"github.com/katalvlaran/lvlik/se3"
	"github.com/katalvlaran/lvlik/solver"
)

var errProblem = errors.New("invalid problem")

type problem struct {
	Chain       chainSpec        `yaml:"chain"`
	Constraints []constraintSpec `yaml:"constraints"`
	Explicit    []affineSpec     `yaml:"explicit"`
	Free        []int            `yaml:"free"`
	Initial     []float64        `yaml:"initial"`
	Tuning      yaml.Node        `yaml:"tuning"`
}

type chainSpec struct {
	ExtraConfigDimension int         `yaml:"extra_config_dimension"`
	Joints               []jointSpec `yaml:"joints"`
}

type jointSpec struct {
	Name      string         `yaml:"name"`
	Kind      string         `yaml:"kind"`
	Parent    string         `yaml:"parent"` // empty for the world
	Axis      []float64      `yaml:"axis"`
	Placement *placementSpec `yaml:"placement"`
}

// placementSpec is a rigid transform: translation, then roll-pitch-yaw.
type placementSpec struct {
	Translation []float64 `yaml:"translation"`
	RPY         []float64 `yaml:"rpy"`
}

type constraintSpec struct {
	Name       string         `yaml:"name"`
	Kind       string         `yaml:"kind"`
	Priority   int            `yaml:"priority"`
	Joint1     string         `yaml:"joint1"`
	Joint2     string         `yaml:"joint2"`
	Reference  *placementSpec `yaml:"reference"`
	Frame1     *placementSpec `yaml:"frame1"`
	Frame2     *placementSpec `yaml:"frame2"`
	Mask       []bool         `yaml:"mask"`
	Comparison []string       `yaml:"comparison"`
	RHS        []float64      `yaml:"rhs"`
}

// affineSpec is out = A·in + b over Euclidean coordinates. Index lists are
// ascending.
type affineSpec struct {
	InputConf        []int       `yaml:"input_conf"`
	InputDerivative  []int       `yaml:"input_derivative"`
	OutputConf       []int       `yaml:"output_conf"`
	OutputDerivative []int       `yaml:"output_derivative"`
	A                [][]float64 `yaml:"a"`
	B                []float64   `yaml:"b"`
}

// setup is a problem ready to solve.
type setup struct {
	chain  *kinematics.Chain
	solver *solver.Solver
	policy linesearch.Policy
	q      []float64
}

func parseProblem(data []byte) (*problem, error) {
	var p problem
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: %w", errProblem, err)
	}
	return &p, nil
}

func (p *problem) build(logger *zap.Logger) (*setup, error) {
	tuning, err := p.tuning()
	if err != nil {
		return nil, err
	}
	chain, err := p.Chain.build()
	if err != nil {
		return nil, err
	}
	s, err := solver.New(chain.ConfigSize(), chain.NumberDof(), chain, tuning.SolverOptions(logger)...)
	if err != nil {
		return nil, err
	}

	for i, c := range p.Constraints {
		if err := c.add(s, chain); err != nil {
			return nil, fmt.Errorf("constraint %d (%s): %w", i, c.Name, err)
		}
	}
	if len(p.Explicit) > 0 {
		sys := explicit.NewSystem(chain.ConfigSize(), chain.NumberDof())
		for i, a := range p.Explicit {
			f, err := a.build()
			if err != nil {
				return nil, fmt.Errorf("explicit %d: %w", i, err)
			}
			if err := sys.Add(f); err != nil {
				return nil, fmt.Errorf("explicit %d: %w", i, err)
			}
		}
		if err := s.SetExplicitSystem(sys); err != nil {
			return nil, err
		}
	}
	if p.Free != nil {
		free, err := blockindex.New(p.Free...)
		if err != nil {
			return nil, fmt.Errorf("free: %w", err)
		}
		if err := s.SetFreeVariables(free); err != nil {
			return nil, fmt.Errorf("free: %w", err)
		}
	}

	q := chain.Neutral()
	if p.Initial != nil {
		if len(p.Initial) != len(q) {
			return nil, fmt.Errorf("%w: initial configuration has %d entries, want %d", errProblem, len(p.Initial), len(q))
		}
		copy(q, p.Initial)
	}

	policy, err := tuning.Policy(logger)
	if err != nil {
		return nil, err
	}
	return &setup{chain: chain, solver: s, policy: policy, q: q}, nil
}

// tuning re-encodes the tuning section for config.Load.
func (p *problem) tuning() (*config.Tuning, error) {
	var data []byte
	if !p.Tuning.IsZero() {
		var err error
		if data, err = yaml.Marshal(&p.Tuning); err != nil {
			return nil, fmt.Errorf("tuning: %w", err)
		}
	}
	return config.Load(data)
}

func (c chainSpec) build() (*kinematics.Chain, error) {
	if c.ExtraConfigDimension < 0 {
		return nil, fmt.Errorf("%w: negative extra configuration dimension", errProblem)
	}
	index := make(map[string]int, len(c.Joints))
	specs := make([]kinematics.JointSpec, len(c.Joints))
	for i, j := range c.Joints {
		kind, err := kinematics.ParseJointKind(j.Kind)
		if err != nil {
			return nil, fmt.Errorf("joint %q: %w", j.Name, err)
		}
		parent := -1
		if j.Parent != "" {
			k, ok := index[j.Parent]
			if !ok {
				return nil, fmt.Errorf("%w: joint %q has parent %q, not declared before it", errProblem, j.Name, j.Parent)
			}
			parent = k
		}
		axis, err := vec3(j.Axis)
		if err != nil {
			return nil, fmt.Errorf("joint %q axis: %w", j.Name, err)
		}
		placement, err := j.Placement.transform()
		if err != nil {
			return nil, fmt.Errorf("joint %q placement: %w", j.Name, err)
		}
		specs[i] = kinematics.JointSpec{Name: j.Name, Kind: kind, Parent: parent, Placement: placement, Axis: axis}
		index[j.Name] = i
	}
	return kinematics.NewChain(specs, kinematics.WithExtraConfigSpace(c.ExtraConfigDimension))
}

func (c constraintSpec) add(s *solver.Solver, chain *kinematics.Chain) error {
	kind, err := constraint.ParseKind(c.Kind)
	if err != nil {
		return err
	}
	var opts []constraint.Option
	if c.Joint1 != "" {
		j, err := chain.JointByName(c.Joint1)
		if err != nil {
			return err
		}
		opts = append(opts, constraint.WithJoint1(j))
	}
	if c.Joint2 != "" {
		j, err := chain.JointByName(c.Joint2)
		if err != nil {
			return err
		}
		opts = append(opts, constraint.WithJoint2(j))
	}
	if c.Reference != nil {
		if c.Frame1 != nil || c.Frame2 != nil {
			return fmt.Errorf("%w: reference excludes frame1 and frame2", errProblem)
		}
		ref, err := c.Reference.transform()
		if err != nil {
			return fmt.Errorf("reference: %w", err)
		}
		opts = append(opts, constraint.WithReference(ref))
	}
	if c.Frame1 != nil {
		f, err := c.Frame1.transform()
		if err != nil {
			return fmt.Errorf("frame1: %w", err)
		}
		opts = append(opts, constraint.WithFrame1InJoint1(f))
	}
	if c.Frame2 != nil {
		f, err := c.Frame2.transform()
		if err != nil {
			return fmt.Errorf("frame2: %w", err)
		}
		opts = append(opts, constraint.WithFrame2InJoint2(f))
	}
	if c.Mask != nil {
		opts = append(opts, constraint.WithMask(c.Mask))
	}

	g, err := constraint.New(c.Name, chain, kind, opts...)
	if err != nil {
		return err
	}
	cmp := make([]constraint.ComparisonType, len(c.Comparison))
	for i, name := range c.Comparison {
		if cmp[i], err = constraint.ParseComparisonType(name); err != nil {
			return err
		}
	}
	if err := s.Add(g, c.Priority, cmp...); err != nil {
		return err
	}
	if c.RHS != nil {
		return s.SetRightHandSide(g, c.RHS)
	}
	return nil
}

func (a affineSpec) build() (*explicit.Affine, error) {
	var idx [4]blockindex.Indices
	for i, raw := range [][]int{a.InputConf, a.InputDerivative, a.OutputConf, a.OutputDerivative} {
		var err error
		if idx[i], err = blockindex.New(raw...); err != nil {
			return nil, err
		}
		// A columns and rows follow the listed order, so it must be the set order
		for k, v := range raw {
			if k >= idx[i].Len() || idx[i][k] != v {
				return nil, fmt.Errorf("%w: explicit indices must be ascending and distinct", errProblem)
			}
		}
	}
	var m mat.Matrix
	if len(a.A) > 0 {
		cols := len(a.A[0])
		dense := mat.NewDense(len(a.A), cols, nil)
		for r, row := range a.A {
			if len(row) != cols {
				return nil, fmt.Errorf("%w: ragged linear part", errProblem)
			}
			dense.SetRow(r, row)
		}
		m = dense
	}
	return explicit.NewAffine(idx[0], idx[1], idx[2], idx[3], m, a.B)
}

// transform returns the identity for a nil placement.
func (p *placementSpec) transform() (se3.Transform, error) {
	if p == nil {
		return se3.IdentityTransform(), nil
	}
	t, err := vec3(p.Translation)
	if err != nil {
		return se3.Transform{}, err
	}
	rpy, err := vec3(p.RPY)
	if err != nil {
		return se3.Transform{}, err
	}
	return se3.NewTransform(se3.FromRPY(rpy.X, rpy.Y, rpy.Z), t), nil
}

// vec3 reads three coordinates; nil reads as zero.
func vec3(v []float64) (r3.Vec, error) {
	switch len(v) {
	case 0:
		return r3.Vec{}, nil
	case 3:
		return r3.Vec{X: v[0], Y: v[1], Z: v[2]}, nil
	default:
		return r3.Vec{}, fmt.Errorf("%w: want 3 coordinates, got %d", errProblem, len(v))
	}
}
