// REPL (Read-Eval-Print Loop) for interactive exact radical arithmetic.

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/goessl/sumofradicals/internal/parser"
	"github.com/goessl/sumofradicals/internal/radical"
	"github.com/goessl/sumofradicals/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Latex displays the LaTeX rendering next to each result.
	Latex bool
	// Float displays a floating-point approximation next to each result.
	Float bool
	// Seed seeds the generator behind the random command. Zero derives a
	// seed from the clock.
	Seed int64
	// RandTerms and RandPrecision shape values produced by the random command.
	RandTerms     int
	RandPrecision int
}

// REPL represents an interactive calculator session.
type REPL struct {
	config REPLConfig
	rng    *rand.Rand
	last   radical.Value
	in     io.Reader
	out    io.Writer
}

// NewREPL creates a new REPL instance.
//
// Parameters:
//   - config: REPL configuration.
//
// Returns:
//   - *REPL: A new REPL instance.
func NewREPL(config REPLConfig) *REPL {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &REPL{
		config: config,
		rng:    rand.New(rand.NewSource(seed)),
		in:     os.Stdin,
		out:    os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start begins the interactive REPL session.
// It continuously reads user input and processes commands until
// the user exits or EOF is reached.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"rad> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if !r.processCommand(input) {
			return // Exit command received
		}
	}
}

// printBanner displays the REPL welcome banner.
func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %s√ Radical Calculator - Interactive Mode%s              %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

// printHelp displays available commands.
func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sEnter any expression to evaluate it exactly, e.g. (1+sqrt(2))^3.%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "%sCommands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %ssign <expr>%s   - Determine the exact sign (square roots only)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %scmp <a> ; <b>%s - Compare two expressions exactly\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %srandom%s        - Evaluate a random value\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %slatex%s         - Toggle LaTeX display\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sfloat%s         - Toggle floating-point display\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s        - Display current configuration\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s          - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s   - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// processCommand parses and executes a user command.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(input string) bool {
	cmd, rest, _ := strings.Cut(input, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(cmd) {
	case "sign", "s":
		r.cmdSign(rest)
	case "cmp", "compare":
		r.cmdCompare(rest)
	case "random", "rnd":
		r.cmdRandom()
	case "latex":
		r.config.Latex = !r.config.Latex
		r.printToggle("LaTeX display", r.config.Latex)
	case "float":
		r.config.Float = !r.config.Float
		r.printToggle("Floating-point display", r.config.Float)
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		// Anything else is an expression
		r.evaluate(input)
	}

	return true
}

// evaluate parses an expression and displays the result.
func (r *REPL) evaluate(src string) {
	start := time.Now()
	v, err := parser.Parse(src)
	duration := time.Since(start)

	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	r.last = v
	r.printValue(v, duration)
}

// printValue renders a value according to the session's display toggles.
func (r *REPL) printValue(v radical.Value, duration time.Duration) {
	fmt.Fprintf(r.out, "  = %s%s%s\n", ui.ColorGreen(), v, ui.ColorReset())
	if r.config.Latex {
		fmt.Fprintf(r.out, "  latex: %s%s%s\n", ui.ColorCyan(), v.Latex(), ui.ColorReset())
	}
	if r.config.Float {
		fmt.Fprintf(r.out, "  ≈ %s%.12g%s\n", ui.ColorYellow(), v.Float64(), ui.ColorReset())
	}
	if duration > 0 {
		fmt.Fprintf(r.out, "  time: %s%s%s\n", ui.ColorGrey(), FormatExecutionDuration(duration), ui.ColorReset())
	}
}

// cmdSign handles the "sign" command.
func (r *REPL) cmdSign(arg string) {
	if arg == "" {
		fmt.Fprintf(r.out, "%sUsage: sign <expr>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	v, err := parser.Parse(arg)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	s, err := v.Sign()
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	switch {
	case s > 0:
		fmt.Fprintf(r.out, "  %spositive%s (%s > 0)\n", ui.ColorGreen(), ui.ColorReset(), v)
	case s < 0:
		fmt.Fprintf(r.out, "  %snegative%s (%s < 0)\n", ui.ColorRed(), ui.ColorReset(), v)
	default:
		fmt.Fprintf(r.out, "  %szero%s\n", ui.ColorCyan(), ui.ColorReset())
	}
}

// cmdCompare handles the "cmp" command. The two operands are separated by a
// semicolon so expressions may contain spaces.
func (r *REPL) cmdCompare(arg string) {
	lhs, rhs, found := strings.Cut(arg, ";")
	if !found {
		fmt.Fprintf(r.out, "%sUsage: cmp <a> ; <b>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	a, err := parser.Parse(strings.TrimSpace(lhs))
	if err != nil {
		fmt.Fprintf(r.out, "%sLeft operand: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	b, err := parser.Parse(strings.TrimSpace(rhs))
	if err != nil {
		fmt.Fprintf(r.out, "%sRight operand: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	c, err := a.Compare(b)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	rel := "="
	if c < 0 {
		rel = "<"
	} else if c > 0 {
		rel = ">"
	}
	fmt.Fprintf(r.out, "  %s%s %s %s%s\n", ui.ColorGreen(), a, rel, b, ui.ColorReset())
}

// cmdRandom generates and displays a random value.
func (r *REPL) cmdRandom() {
	v := radical.Rand(r.rng, r.config.RandTerms, r.config.RandPrecision)
	r.last = v
	r.printValue(v, 0)
}

// cmdStatus displays current REPL configuration.
func (r *REPL) cmdStatus() {
	onOff := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  LaTeX display:   %s%s%s\n", ui.ColorCyan(), onOff(r.config.Latex), ui.ColorReset())
	fmt.Fprintf(r.out, "  Float display:   %s%s%s\n", ui.ColorCyan(), onOff(r.config.Float), ui.ColorReset())
	fmt.Fprintf(r.out, "  Random terms:    %s%d%s\n", ui.ColorCyan(), r.config.RandTerms, ui.ColorReset())
	fmt.Fprintf(r.out, "  Random range:    %s±%d%s\n", ui.ColorCyan(), r.config.RandPrecision/2, ui.ColorReset())
	if !r.last.IsZero() {
		fmt.Fprintf(r.out, "  Last result:     %s%s%s\n", ui.ColorCyan(), r.last, ui.ColorReset())
	}
	fmt.Fprintln(r.out)
}

// printToggle reports the new state of a display toggle.
func (r *REPL) printToggle(name string, enabled bool) {
	status := "disabled"
	if enabled {
		status = "enabled"
	}
	fmt.Fprintf(r.out, "%s: %s%s%s\n", name, ui.ColorGreen(), status, ui.ColorReset())
}
