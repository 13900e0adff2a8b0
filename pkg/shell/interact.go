package shell

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/luisbebop/histline/pkg/expand"
	"github.com/luisbebop/histline/pkg/session"
)

const prompt = "histline> "

// Reads and handles lines until EOF or exit. The prompt is only shown when the
// input is a terminal.
func interact(in io.Reader, stdout, stderr io.Writer, sess *session.Session, showPrompt bool) {
	scanner := bufio.NewScanner(in)
	for {
		if showPrompt {
			fmt.Fprint(stdout, prompt)
		}
		if !scanner.Scan() {
			if showPrompt {
				fmt.Fprintln(stdout)
			}
			break
		}
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "exit" {
			break
		}
		handleLine(stdout, stderr, sess, line)
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintln(stderr, "read error:", err)
	}
}

func handleLine(stdout, stderr io.Writer, sess *session.Session, line string) {
	out, err := sess.Submit(line)
	if err != nil {
		fmt.Fprintln(stderr, "histline:", err)
	}
	if out.Line == "" {
		return
	}
	if out.Result == expand.PrintOnly {
		fmt.Fprintln(stdout, out.Line)
		return
	}
	if ok, err := sess.Builtin(stdout, out.Line); ok {
		if err != nil {
			fmt.Fprintln(stderr, "histline:", err)
		}
		return
	}
	fmt.Fprintln(stdout, out.Line)
}
