package costfuncs

import (
	lab "latentlab"
)

func init() {
	list := []interface{}{
		func() lab.CostFunction { return MSE() },
		func() lab.CostFunction { return CrossEntropy() },
	}

	if err := lab.RegisterAll(list); err != nil {
		panic(err)
	}
}
