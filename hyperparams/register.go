package hyperparams

import (
	lab "latentlab"
)

func init() {
	list := []interface{}{
		func() lab.HyperParameter { return Constant(0) },
		func() lab.HyperParameter { return Step(0) },
	}

	if err := lab.RegisterAll(list); err != nil {
		panic(err)
	}
}
