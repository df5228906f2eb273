// Command pcalc is a terminal front-end for the progcalc calculator.
//
// Each line of input is split into keys: numbers, operators and function
// names, submitted one at a time as if typed on a pocket calculator:
//
//	i64> 10 + 2 * 3 =
//	16  0x10
//
// Lines starting with a colon are commands, see :help. Without file
// arguments, pcalc reads from the terminal with line editing, or from its
// standard input when it is not a terminal.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

var (
	flagConfig   = flag.String("config", "", "configuration `file` (YAML)")
	flagMode     = flag.String("mode", "int", "numeric mode: int or dec")
	flagWidth    = flag.Int("width", 64, "integer width: 8, 16, 32 or 64")
	flagUnsigned = flag.Bool("unsigned", false, "unsigned integers")
	flagAngle    = flag.String("angle", "deg", "angle unit: deg, rad or grad")
	flagRepeat   = flag.Bool("repeat", false, "enable repeated equals")
	flagDigits   = flag.Int("digits", defaultDigits, "significant digits displayed in decimal mode")
	flagDebug    = flag.Bool("debug", false, "trace evaluation on stderr")
)

func main() {
	flag.Parse()

	cfg, err := loadConfig(*flagConfig)
	if err != nil {
		fatal(err)
	}
	// command line flags override the configuration file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			cfg.Mode = *flagMode
		case "width":
			cfg.Width = *flagWidth
		case "unsigned":
			cfg.Unsigned = *flagUnsigned
		case "angle":
			cfg.Angle = *flagAngle
		case "repeat":
			cfg.RepeatedEquals = *flagRepeat
		case "digits":
			cfg.Digits = *flagDigits
		}
	})
	cc, err := cfg.calcConfig()
	if err != nil {
		fatal(err)
	}
	if *flagDebug {
		cc.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	s := newSession(cc, cfg.Digits, os.Stdout)
	if args := flag.Args(); len(args) > 0 {
		for _, name := range args {
			if err := runFile(s, name); err != nil {
				fatal(err)
			}
		}
		return
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		if err := runREPL(s); err != nil {
			fatal(err)
		}
		return
	}
	if err := run(s, os.Stdin, "stdin"); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "pcalc: %v\n", err)
	os.Exit(1)
}

func runFile(s *session, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return run(s, f, name)
}

// run executes the lines read from r and stops at the first error.
func run(s *session, r io.Reader, name string) error {
	sc := bufio.NewScanner(r)
	for n := 1; !s.quit && sc.Scan(); n++ {
		if err := s.exec(sc.Text()); err != nil {
			return fmt.Errorf("%s:%d: %w", name, n, err)
		}
	}
	return sc.Err()
}

func runREPL(s *session) error {
	rl, err := readline.New(s.prompt())
	if err != nil {
		return err
	}
	defer func() { _ = rl.Close() }()
	return repl(s, rl)
}

// lineReader is the part of *readline.Instance used by repl.
type lineReader interface {
	Readline() (string, error)
	SetPrompt(string)
}

// repl executes lines read from rl until :quit or end of input. Errors from
// the calculator are printed and do not stop the loop; read errors other than
// io.EOF and interrupts are returned.
func repl(s *session, rl lineReader) error {
	for !s.quit {
		line, err := rl.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return err
		}
		if err := s.exec(line); err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
		rl.SetPrompt(s.prompt())
	}
	return nil
}
