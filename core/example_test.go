package isoline_test

import (
	"fmt"

	isoline "github.com/esimov/isoline/core"
)

func Example() {
	samples := isoline.NewSamples().
		MustAdd(isoline.Pt(0, 0), 0).
		MustAdd(isoline.Pt(10, 0), 0).
		MustAdd(isoline.Pt(10, 10), 10).
		MustAdd(isoline.Pt(0, 10), 10)

	tri, err := isoline.Triangulate(samples)
	if err != nil {
		fmt.Println(err)
		return
	}
	contours, err := isoline.NewContourExtractor(tri).Extract(4)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(tri.Len(), "triangles")
	for _, iso := range contours.Isolines() {
		fmt.Println(iso.Level, iso.Lines)
	}
	// Output:
	// 2 triangles
	// 2.5 [[(0,2.5) (2.5,2.5) (10,2.5)]]
	// 5 [[(0,5) (5,5) (10,5)]]
	// 7.5 [[(0,7.5) (7.5,7.5) (10,7.5)]]
}
