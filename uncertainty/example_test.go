// SPDX-License-Identifier: MIT

package uncertainty_test

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/katalvlaran/uncertainty/phase"
	"github.com/katalvlaran/uncertainty/uncertainty"
)

// ExampleGrid_Value interpolates a depth-independent travel-time table.
// Distances are passed in radians; the table is sampled in degrees.
func ExampleGrid_Value() {
	g, err := uncertainty.FromValues(phase.Pn, phase.TravelTime,
		[]float64{0, 5, 10}, nil, [][]float64{{1.0, 2.0, 4.0}})
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	deg := math.Pi / 180
	fmt.Printf("%.3f\n", g.Value(2.5*deg, 33))
	fmt.Printf("%.3f\n", g.Value(10*deg, 0))
	fmt.Printf("%.3f\n", g.Value(20*deg, 700))
	// Output:
	// 1.500
	// 4.000
	// 4.000
}

// ExampleReadText decodes a slowness table. File values are seconds per
// degree; the grid holds seconds per radian.
func ExampleReadText() {
	const content = "2 0\n0 10\n#\n1.5 2.5\n"
	g, err := uncertainty.ReadText(strings.NewReader(content), "inline", phase.Sn, phase.Slowness)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	fmt.Println(g)
	fmt.Printf("%.4f\n", g.Value(5*math.Pi/180, 0)*math.Pi/180)
	// Output:
	// Uncertainty{phase=Sn attribute=SH distances=2 depths=0 source=inline}
	// 2.0000
}

// ExampleOpenDir shows that a missing table is not an error.
func ExampleOpenDir() {
	dir, err := os.MkdirTemp("", "uncertainty")
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	defer os.RemoveAll(dir)

	g, err := uncertainty.OpenDir(dir, phase.Pg, phase.Azimuth)
	fmt.Println(g == nil, err)

	fmt.Println(uncertainty.FileName(phase.Pg, phase.Azimuth))
	// Output:
	// true <nil>
	// Uncertainty_Pg_AZ.txt
}
