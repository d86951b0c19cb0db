package main

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/trezcool/carnet/core/screen"
)

const dateTimeLayout = "02/01/2006 15:04"

// consoleAlerter prints alerts and asks confirmations on the console.
type consoleAlerter struct {
	in        io.Reader
	out       io.Writer
	assumeYes bool
}

var _ screen.Alerter = (*consoleAlerter)(nil)

func (a *consoleAlerter) Alert(title, message string) {
	fmt.Fprintf(a.out, "%s : %s\n", title, message)
}

// Confirm asks a yes/no question. Without a terminal, only -yes confirms.
func (a *consoleAlerter) Confirm(title, message string) bool {
	if a.assumeYes {
		return true
	}
	if !isTerminalFunc() {
		fmt.Fprintf(a.out, "%s : confirmation impossible sans terminal, relancez avec -yes\n", title)
		return false
	}
	fmt.Fprintf(a.out, "%s : %s [o/N] ", title, message)
	answer, _ := bufio.NewReader(a.in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "o", "oui", "y", "yes":
		return true
	}
	return false
}

// consoleNavigator has nowhere to go back to: every command is a single screen.
type consoleNavigator struct{}

func (consoleNavigator) Back() {}

func newTable(out io.Writer, header ...string) *tabwriter.Writer {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(header, "\t"))
	return w
}

func printRow(w io.Writer, cols ...string) {
	fmt.Fprintln(w, strings.Join(cols, "\t"))
}

func printFieldErrors(out io.Writer, fldErrs map[string]string) {
	fields := make([]string, 0, len(fldErrs))
	for f := range fldErrs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		fmt.Fprintf(out, "  %s : %s\n", f, fldErrs[f])
	}
}
