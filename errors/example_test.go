package errors_test

import (
	"context"
	"fmt"

	"github.com/robinvdvleuten/vesti/errors"
	"github.com/robinvdvleuten/vesti/parser"
)

const source = "docclass article\nstartdoc\nbegenv center\nHello\n"

// Example showing how to use TextFormatter for CLI output
func ExampleTextFormatter() {
	_, err := parser.ParseBytesWithFilename(context.Background(), "main.ves", []byte(source))

	formatter := errors.NewTextFormatter(errors.WithSource([]byte(source)))
	fmt.Println(formatter.Format(err))
	// Output:
	// error[E0108]: `begenv` is not closed
	//  --> main.ves:3:1
	//   |
	// 3 | begenv center
	//   | ^^^^^^
	//   = help: add `endenv` to close it
}

// Example showing how to use JSONFormatter for editor integrations
func ExampleJSONFormatter() {
	_, err := parser.ParseBytesWithFilename(context.Background(), "main.ves", []byte(source))

	formatter := errors.NewJSONFormatter()
	fmt.Println(formatter.Format(err))
	// Output:
	// {"type":"*parser.ParseError","code":"E0108","message":"`begenv` is not closed","position":{"filename":"main.ves","line":3,"column":1},"end":{"filename":"main.ves","line":3,"column":7},"details":{"help":["add `endenv` to close it"]}}
}
