// Large vesti File Generator
//
// This tool generates a large vesti document for performance testing and profiling.
// It mixes prose, math, environments and definitions to stress-test the lexer, parser and codegen.
//
// Usage:
//
//	go run main.go > large.ves
//	go run main.go 20000000 > large.ves  # Specify target size in bytes
package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultTargetSize = 10 * 1024 * 1024 // 10MB
)

var (
	words = []string{
		"lorem", "ipsum", "dolor", "sit", "amet", "consectetur",
		"adipiscing", "elit", "sed", "do", "eiusmod", "tempor",
		"incididunt", "ut", "labore", "et", "dolore", "magna",
		"aliqua", "enim", "minim", "veniam", "quis", "nostrud",
		"exercitation", "ullamco", "laboris", "nisi", "aliquip",
		"commodo", "consequat", "수학", "정리", "증명",
	}

	symbols = []string{"x", "y", "z", "a", "b", "n", `\alpha`, `\beta`, `\lambda`}

	operators = []string{"+", "-", `\cdot`, "=", "<", ">", `\leq`}

	listEnvs = []string{"itemize", "enumerate"}

	boxes = []string{"Remark", "Note", "Warning", "Example"}
)

func main() {
	targetSize := defaultTargetSize
	if len(os.Args) > 1 {
		if size, err := strconv.Atoi(os.Args[1]); err == nil {
			targetSize = size
		}
	}

	writeHeader()

	bytesWritten := 0
	sectionCount := 0

	for bytesWritten < targetSize {
		var output string

		switch rand.Intn(10) {
		case 0: // 10% - New section
			sectionCount++
			output = generateSection(sectionCount)
		case 1, 2, 3: // 30% - Prose paragraph
			output = generateParagraph()
		case 4, 5: // 20% - Paragraph with inline math
			output = generateMathParagraph()
		case 6: // 10% - Display equation
			output = generateEquation()
		case 7: // 10% - List in a phantom environment
			output = generateList()
		case 8: // 10% - Boxed note
			output = generateNote()
		case 9: // 10% - Raw LaTeX and numbers
			output = generateRaw()
		}

		fmt.Print(output)
		bytesWritten += len(output)
	}

	fmt.Println("enddoc")

	fmt.Fprintf(os.Stderr, "\nGenerated %d bytes with %d sections\n", bytesWritten, sectionCount)
}

func writeHeader() {
	fmt.Println("% Large vesti file for performance testing")
	fmt.Println("% Generated:", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Println("docclass article (11pt, a4paper)")
	fmt.Println("import {")
	fmt.Println("    geometry (margin=1in)")
	fmt.Println("    amsmath, amssymb")
	fmt.Println("}")
	fmt.Println()
	fmt.Println("defun R")
	fmt.Println(`\mathbb{R}`)
	fmt.Println("enddef")
	fmt.Println()
	fmt.Println("defenv note [1]")
	fmt.Println(`\begin{center}\textbf{#1}`)
	fmt.Println("endswith")
	fmt.Println(`\end{center}`)
	fmt.Println("endenv")
	fmt.Println()
	fmt.Println("startdoc")
	fmt.Println()
}

func generateSection(n int) string {
	return fmt.Sprintf("\\section{Part %d: %s}\n\n", n, sentence(3))
}

func generateParagraph() string {
	return sentence(rand.Intn(40)+10) + ".\n\n"
}

func generateMathParagraph() string {
	return fmt.Sprintf("%s $%s$ %s ${%s // %s}$.\n\n",
		sentence(rand.Intn(10)+3), expression(), sentence(rand.Intn(5)+1), expression(), expression())
}

func generateEquation() string {
	return fmt.Sprintf("begenv equation\n    %s = %s\nendenv\n\n", expression(), expression())
}

func generateList() string {
	env := listEnvs[rand.Intn(len(listEnvs))]

	var b strings.Builder
	fmt.Fprintf(&b, "pbegenv %s\n", env)
	for i := rand.Intn(4) + 2; i > 0; i-- {
		fmt.Fprintf(&b, "\\item %s\n", sentence(rand.Intn(8)+2))
	}
	fmt.Fprintf(&b, "pendenv %s\n\n", env)
	return b.String()
}

func generateNote() string {
	box := boxes[rand.Intn(len(boxes))]
	return fmt.Sprintf("useenv note (%s) { %s }\n\n", box, sentence(rand.Intn(12)+4))
}

func generateRaw() string {
	return fmt.Sprintf("#!\\vspace{%dpt}!# %s %d and %.2f.\n\n",
		rand.Intn(20)+1, sentence(4), rand.Intn(1000), rand.Float64()*100)
}

// Helper functions

func sentence(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = words[rand.Intn(len(words))]
	}
	return strings.Join(parts, " ")
}

func expression() string {
	var b strings.Builder
	b.WriteString(term())
	for i := rand.Intn(3); i > 0; i-- {
		fmt.Fprintf(&b, " %s %s", operators[rand.Intn(len(operators))], term())
	}
	return b.String()
}

func term() string {
	sym := symbols[rand.Intn(len(symbols))]
	switch rand.Intn(4) {
	case 0:
		return fmt.Sprintf("%s^%d", sym, rand.Intn(9)+2)
	case 1:
		return fmt.Sprintf("%s_{%d}", sym, rand.Intn(9))
	case 2:
		return fmt.Sprintf("\\frac{%s}{%d}", sym, rand.Intn(9)+1)
	default:
		return sym
	}
}
