package latentlab

import (
	"fmt"
	"math"
)

// CorrectRound reports whether each output rounds to its target. It satisfies
// TrainArgs.IsCorrect for binary targets. Assumes len(outs) == len(targets).
func CorrectRound(outs, targets []float64) bool {
	for i := range outs {
		if math.Round(outs[i]) != targets[i] {
			return false
		}
	}

	return true
}

// CorrectHighest reports whether the largest output is at the same index as
// the largest target. It satisfies TrainArgs.IsCorrect for one-hot targets.
func CorrectHighest(outs, targets []float64) bool {
	return highest(outs) == highest(targets)
}

func highest(vs []float64) int {
	index := 0
	for i, v := range vs {
		if v > vs[index] {
			index = i
		}
	}

	return index
}

// TrainUntil returns a function satisfying TrainArgs.RunCondition that stops
// training after the given number of iterations.
func TrainUntil(maxIterations int) func(int) bool {
	return func(iteration int) bool {
		return iteration < maxIterations
	}
}

// Every returns a function satisfying TrainArgs.SendStatus or
// TrainArgs.ShouldTest. 'frequency' is in units of iterations.
func Every(frequency int) func(int) bool {
	return func(iteration int) bool {
		return iteration%frequency == 0
	}
}

// EndEvery returns a function satisfying DataSupplier.BatchEnded, marking the
// end of every run of 'frequency' iterations.
func EndEvery(frequency int) func(int) bool {
	if frequency == 1 {
		return func(iteration int) bool {
			return true
		}
	}

	return func(iteration int) bool {
		return (iteration+1)%frequency == 0
	}
}

// PrintResult returns an Update function for TrainArgs that prints each
// Result as a table row, and a closing function to print the table footer.
func PrintResult() (func(Result), func()) {
	fmt.Println("  Iteration  |    Cost    | % Correct  | Type")
	fmt.Println("-------------+------------+------------+-------")

	update := func(r Result) {
		typ := "status"
		if r.IsTest {
			typ = "test"
		}

		fmt.Printf(" %11d | %10.5f | %10.3f | %s\n", r.Iteration, r.Cost, 100*r.Correct, typ)
	}

	final := func() {
		fmt.Println("-------------+------------+------------+-------")
	}

	return update, final
}
