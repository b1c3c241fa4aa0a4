package zed_test

import (
	"fmt"

	"zedtex/zedtex/pkg/zed"
	"zedtex/zedtex/pkg/zed/generator"
)

func ExampleCompile() {
	out, err := zed.Compile("p and q => r", generator.Fuzz)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Print(out.Text)
	// Output: \[ p \land q \implies r \]
}
