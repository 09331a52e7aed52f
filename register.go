package latentlab

import (
	"github.com/pkg/errors"
)

// Registries mapping type strings to blank constructors, used by Load to
// reassemble saved networks. The subpackages register their types in their
// init functions.
var (
	operatorNames   = make(map[string]func() Operator)
	optimizerNames  = make(map[string]func() Optimizer)
	costFuncNames   = make(map[string]func() CostFunction)
	hyperParamNames = make(map[string]func() HyperParameter)

	defaultOptimizer   func() Optimizer
	defaultInitializer Initializer
)

// SetDefaultOptimizer sets the Optimizer given to adjustable Nodes that were
// not given one. The subpackage "optimizers" sets this to SGD on import.
func SetDefaultOptimizer(f func() Optimizer) {
	defaultOptimizer = f
}

// SetDefaultInitializer sets the Initializer given to adjustable Nodes that
// were not given one. The subpackage "initializers" sets this to a uniform
// random Initializer on import.
func SetDefaultInitializer(init Initializer) {
	defaultInitializer = init
}

// RegisterOperator makes a constructor for an Operator type available to
// Load, under the type's TypeString. Re-registering a name overwrites it.
func RegisterOperator(name string, f func() Operator) error {
	if f == nil || f() == nil {
		return ErrRegisterNilReturn
	}

	operatorNames[name] = f
	return nil
}

// RegisterOptimizer is the Optimizer counterpart of RegisterOperator.
func RegisterOptimizer(name string, f func() Optimizer) error {
	if f == nil || f() == nil {
		return ErrRegisterNilReturn
	}

	optimizerNames[name] = f
	return nil
}

// RegisterCostFunction is the CostFunction counterpart of RegisterOperator.
func RegisterCostFunction(name string, f func() CostFunction) error {
	if f == nil || f() == nil {
		return ErrRegisterNilReturn
	}

	costFuncNames[name] = f
	return nil
}

// RegisterHyperParameter is the HyperParameter counterpart of
// RegisterOperator.
func RegisterHyperParameter(name string, f func() HyperParameter) error {
	if f == nil || f() == nil {
		return ErrRegisterNilReturn
	}

	hyperParamNames[name] = f
	return nil
}

// RegisterAll registers a mixed list of blank constructors, determining the
// registry for each by its type. Accepted element types are: func() Operator,
// func() Optimizer, func() CostFunction, and func() HyperParameter. Anything
// else returns ErrRegisterWrongType.
func RegisterAll(list []interface{}) error {
	for i, v := range list {
		var err error

		switch f := v.(type) {
		case func() Operator:
			err = RegisterOperator(f().TypeString(), f)
		case func() Optimizer:
			err = RegisterOptimizer(f().TypeString(), f)
		case func() CostFunction:
			err = RegisterCostFunction(f().TypeString(), f)
		case func() HyperParameter:
			err = RegisterHyperParameter(f().TypeString(), f)
		default:
			err = ErrRegisterWrongType
		}

		if err != nil {
			return errors.Wrapf(err, "Failed to register list element %d\n", i)
		}
	}

	return nil
}
