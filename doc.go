// Package lvlik is a hierarchical inverse-kinematics toolkit: pose-error
// functions with analytic Jacobians, and a prioritized Gauss-Newton solver
// driving them to zero.
//
// Packages:
//
//	se3/         3×3 rotations, rigid transforms, SO(3) log and its Jacobian
//	blockindex/  sorted coordinate index sets: gather, scatter, column selection
//	kinematics/  Device, Joint and Integrator contracts, and a serial Chain
//	constraint/  GenericTransformation: position / orientation / transformation errors, absolute or relative
//	explicit/    explicit functions whose outputs are eliminated from the unknowns
//	linesearch/  step policies: Constant, Backtracking, FixedSequence, ErrorNormBased
//	solver/      HierarchicalIterativeSolver: priority stacks, nested null-space steps
//	config/      koanf-loaded tuning (YAML + IKSOLVE_* environment)
//	cmd/iksolve  CLI solving a YAML problem file
//
// Quick start:
//
//	arm := kinematics.SampleArm()
//	slide, _ := arm.JointByName("slide")
//	reach, _ := constraint.New("reach", arm, constraint.AbsolutePosition,
//	             constraint.WithJoint2(slide),
//	             constraint.WithReference(se3.Translation(r3.Vec{X: 0.6, Z: 0.45})))
//
//	s, _ := solver.New(arm.ConfigSize(), arm.NumberDof(), arm)
//	_ = s.Add(reach, 0)
//	q := arm.Neutral()
//	status := s.Solve(q, linesearch.NewBacktracking())
//
// Jacobians are expressed in the local joint frame, linear rows before
// angular rows. Everything is pure Go on top of gonum.
package lvlik
