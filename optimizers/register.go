package optimizers

import (
	lab "latentlab"
)

func init() {
	list := []interface{}{
		func() lab.Optimizer { return SGD() },
		func() lab.Optimizer { return Adam() },
	}

	if err := lab.RegisterAll(list); err != nil {
		panic(err)
	}

	lab.SetDefaultOptimizer(func() lab.Optimizer { return SGD() })
}
