package context_test

import (
	"errors"
	"fmt"

	"github.com/db47h/progcalc/decimal/context"
)

// Example shows how a Context records exceptional conditions while Err only
// reports the trapped ones.
func Example() {
	ctx := context.Decimal128()

	tenth, _ := ctx.NewString("0.1")
	sum := ctx.New()
	for i := 0; i < 10; i++ {
		ctx.Add(sum, sum, tenth)
	}
	fmt.Printf("0.1 × 10 = %g (%s)\n", sum, ctx.Status())

	third := ctx.Quo(ctx.New(), ctx.NewInt64(1), ctx.NewInt64(3))
	fmt.Printf("1 / 3 = %.10g (%s), err: %v\n", third, ctx.Status(), ctx.Err())

	ctx.Quo(ctx.New(), ctx.NewInt64(-1), ctx.New())
	err := ctx.Err()
	fmt.Println(err, errors.Is(err, context.DivisionByZero))

	// Output:
	// 0.1 × 10 = 1 (none)
	// 1 / 3 = 0.3333333333 (inexact), err: <nil>
	// division by zero true
}
