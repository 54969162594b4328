package scriptvec_test

import (
	"fmt"

	"github.com/scriptvec/scriptvec"
	"github.com/scriptvec/scriptvec/safedouble"
)

func Example() {
	dom := safedouble.New()
	dom.Initialize()

	vec, _ := scriptvec.New(dom)
	_ = vec.Resize(4)
	_ = vec.Set(0, 3.14)

	x, _ := vec.Get(0)
	fmt.Println(x, vec.Length())

	// Indices arrive from the interpreter as doubles; unsafe ones are
	// rejected before they can address storage.
	_, err := vec.Get(9007199254740994.0)
	fmt.Println(err != nil)
	// Output:
	// 3.14 4
	// true
}

func ExampleRegistry() {
	reg := scriptvec.NewRegistry()

	vec, _ := reg.Create("samples")
	_ = vec.Append(1, 2, 3)

	fmt.Println(reg.Names(), vec.Sum())
	// Output:
	// [samples] 6
}
