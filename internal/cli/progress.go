package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"
)

// progress shows a spinner on terminals and plain lines otherwise.
type progress struct {
	spinner *spinner.Spinner
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func startProgress(msg string) *progress {
	p := &progress{}
	if !isTerminal() {
		fmt.Println(msg)
		return p
	}
	p.spinner = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	p.spinner.Suffix = " " + msg
	p.spinner.Start()
	return p
}

func (p *progress) done(msg string) {
	if p.spinner != nil {
		p.spinner.Stop()
		p.spinner = nil
	}
	fmt.Println(msg)
}
