package styles_test

import (
	"fmt"

	"github.com/matzehuels/salesmap/pkg/render/treemap/styles"
)

func ExampleSplitLabel() {
	fmt.Printf("%q\n", styles.SplitLabel("GrandTheftAutoV"))
	fmt.Printf("%q\n", styles.SplitLabel("GTAV"))
	fmt.Printf("%q\n", styles.SplitLabel("Wii Sports"))
	// Output:
	// ["Grand" "Theft" "Auto" "V"]
	// ["GTA" "V"]
	// ["Wii " "Sports"]
}

func ExampleParse() {
	s, _ := styles.Parse("")
	fmt.Println(s.Name())
	_, err := styles.Parse("neon")
	fmt.Println(err)
	// Output:
	// simple
	// INVALID_STYLE: unknown style "neon" (valid: simple, flat)
}
