package sequence_test

import (
	"fmt"

	"github.com/geofduf/frame-sequence/sequence"
)

func ExampleNewFromSpec() {
	s, err := sequence.NewFromSpec("1-10, 14, 20-48x4")
	if err != nil {
		fmt.Println("Parse failed:", err)
		return
	}
	fmt.Println(s, s.Len(), s.IsProgression())
	fmt.Println(s.To(":", "%", ";"))
	// Output:
	// 1-10,14,20-48x4 19 false
	// 1:10;14;20:48%4
}

func ExampleSequence_Chunks() {
	s := sequence.MustNew("1-20")
	s.SetChunkSize(8)
	s.SetChunkStrategy(sequence.StrategyCycle)

	for _, c := range s.Chunks() {
		fmt.Println(c)
	}
	// Output:
	// 1-19x3
	// 2-20x3
	// 3-18x3
}

func ExampleSequence_Expand() {
	s := sequence.MustNew(8, 10)

	names, err := s.Expand("image.####.exr")
	if err != nil {
		fmt.Println("Expand failed:", err)
		return
	}
	for _, name := range names {
		fmt.Println(name)
	}
	// Output:
	// image.0008.exr
	// image.0009.exr
	// image.0010.exr
}

func ExamplePermutations() {
	names, err := sequence.Permutations("tile_%(u)d_%(v)d.%(frame)04d.tif",
		sequence.Param{Name: "u", Spec: "1-2"},
		sequence.Param{Name: "v", Spec: "1"},
		sequence.Param{Name: "frame", Spec: "10-11"},
	)
	if err != nil {
		fmt.Println("Permutations failed:", err)
		return
	}
	for name := range names {
		fmt.Println(name)
	}
	// Output:
	// tile_1_1.0010.tif
	// tile_1_1.0011.tif
	// tile_2_1.0010.tif
	// tile_2_1.0011.tif
}
