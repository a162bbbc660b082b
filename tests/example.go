package main

// This is an example of using pushvm as a library in a Go application

import (
	"context"
	"fmt"
	"math/big"

	"github.com/phroun/pushvm"
)

func main() {
	// Create an interpreter with a fixed seed so the random examples repeat
	config := pushvm.DefaultConfig()
	config.Seed = 2024
	config.EvalPushLimit = 500
	in := pushvm.New(config)

	// Register a custom instruction. It traces under the "user" log category.
	in.Instructions().Register("INTEGER.SQUARE", pushvm.TypeInteger, func(ctx *pushvm.Context) {
		if v, ok := ctx.State.Integer.Pop(); ok {
			ctx.Logger.TraceCat(pushvm.CatUser, "squaring %s", v)
			ctx.State.Integer.Push(new(big.Int).Mul(v, v))
		}
	})

	fmt.Println("=== pushvm Example ===")
	fmt.Println()

	// Example 1: Arithmetic
	fmt.Println("Example 1: Arithmetic")
	in.Execute("( 2 3 INTEGER.* 4.1 5.2 FLOAT.+ TRUE FALSE BOOLEAN.OR )")
	fmt.Print(in.State())
	fmt.Println()

	// Example 2: Custom instruction
	fmt.Println("Example 2: Custom instruction")
	in.Reset()
	in.Execute("7 INTEGER.SQUARE")
	fmt.Print(in.State())
	fmt.Println()

	// Example 3: Name bindings
	fmt.Println("Example 3: Name bindings")
	in.Reset()
	in.Execute("triple CODE.QUOTE ( 3 INTEGER.* ) CODE.DEFINE 5 triple triple")
	fmt.Print(in.State())
	fmt.Println()

	// Example 4: Counted loops
	fmt.Println("Example 4: Counted loops")
	in.Reset()
	in.Execute("0 6 EXEC.DO*COUNT INTEGER.+")
	fmt.Print(in.State())
	fmt.Println()

	// Example 5: Step limit
	fmt.Println("Example 5: Step limit")
	in.Reset()
	status, err := in.Execute("EXEC.Y ( 1 INTEGER.+ )")
	fmt.Printf("status: %v, err: %v\n", status, err)
	fmt.Println()

	// Example 6: Random code
	fmt.Println("Example 6: Random code")
	gen := pushvm.NewCodeGenerator(in.State(), in.Instructions())
	for i := 0; i < 3; i++ {
		code, _ := gen.RandomCode(12)
		fmt.Println(code)
	}
	fmt.Println()

	// Example 7: Evaluating a population against a fitness case
	fmt.Println("Example 7: Population")
	var programs []pushvm.List
	for i := 0; i < 4; i++ {
		code, _ := gen.RandomCode(20)
		programs = append(programs, pushvm.NewList(code))
	}
	outcomes, err := pushvm.EvaluatePopulation(context.Background(), programs, config, 2,
		func(i int, state *pushvm.State) {
			state.Integer.Push(big.NewInt(10))
		})
	if err != nil {
		fmt.Println("evaluation failed:", err)
		return
	}
	for i, outcome := range outcomes {
		fmt.Printf("program %d: %v after %d steps, INTEGER: %s\n", i, outcome.Status, outcome.Steps, outcome.State.Integer)
	}
	fmt.Println()

	fmt.Println("=== Examples Complete ===")
}
