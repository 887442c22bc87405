package error

import (
	"bufio"
	"fmt"
	"strings"
)

type SpecErrors []*SpecError

func (e SpecErrors) Error() string {
	if len(e) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%v", e[0])
	for _, err := range e[1:] {
		fmt.Fprintf(&b, "\n%v", err)
	}

	return b.String()
}

// SpecError is a rejection of a grammar specification. Production is the 1-based index of the production
// the error refers to and Row/Col locate it in a textual source; zero values mean unknown.
type SpecError struct {
	Cause      error
	Detail     string
	SourceName string
	Source     []byte
	Production int
	Row        int
	Col        int
}

func (e *SpecError) Error() string {
	var b strings.Builder
	if e.SourceName != "" {
		fmt.Fprintf(&b, "%v: ", e.SourceName)
	}
	if e.Row != 0 {
		if e.Col != 0 {
			fmt.Fprintf(&b, "%v:%v: ", e.Row, e.Col)
		} else {
			fmt.Fprintf(&b, "%v: ", e.Row)
		}
	}
	if e.Production != 0 {
		fmt.Fprintf(&b, "production %v: ", e.Production)
	}
	fmt.Fprintf(&b, "error: %v", e.Cause)
	if e.Detail != "" {
		fmt.Fprintf(&b, ": %v", e.Detail)
	}

	line := readLine(e.Source, e.Row)
	if line != "" {
		fmt.Fprintf(&b, "\n    %v", line)
	}

	return b.String()
}

func (e *SpecError) Unwrap() error {
	return e.Cause
}

func readLine(src []byte, row int) string {
	if len(src) == 0 || row <= 0 {
		return ""
	}

	i := 1
	s := bufio.NewScanner(strings.NewReader(string(src)))
	for s.Scan() {
		if i == row {
			return s.Text()
		}
		i++
	}

	return ""
}
