package dokufy_test

import (
	"context"
	"fmt"
	"log"

	"github.com/alnah/go-dokufy"
)

func ExampleSubstitute() {
	out := dokufy.Substitute("Invoice {{ number }} for {{customer}}", map[string]any{
		"number":   42,
		"customer": "Ada",
	})
	fmt.Println(out)
	// Output: Invoice 42 for Ada
}

func ExampleParseMargin() {
	for _, m := range []string{"1in", "2.5cm", "10mm", "12"} {
		v, err := dokufy.ParseMargin(m)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%s = %.1fmm\n", m, v)
	}
	// Output:
	// 1in = 25.4mm
	// 2.5cm = 25.0mm
	// 10mm = 10.0mm
	// 12 = 12.0mm
}

func ExampleDokufy_Fake() {
	d, err := dokufy.New()
	if err != nil {
		log.Fatal(err)
	}
	defer d.Close()

	fake := d.Fake()
	_, err = d.HTML("<h1>Hello {{name}}</h1>").
		Data(map[string]any{"name": "Ada"}).
		ToPDF(context.Background(), "hello.pdf")
	if err != nil {
		log.Fatal(err)
	}

	for _, c := range fake.Calls() {
		fmt.Println(c.Method, c.Args[0])
	}
	fmt.Println(fake.GeneratedFiles())
	// Output:
	// HTMLToPDF <h1>Hello Ada</h1>
	// [hello.pdf]
}

func ExampleHandlerData() {
	handler := dokufy.PlaceholdersFunc(func() map[string]any {
		return map[string]any{"total": 99.5}
	})
	fmt.Println(dokufy.Substitute("Total: {{total}}", dokufy.HandlerData(handler)))
	// Output: Total: 99.5
}
