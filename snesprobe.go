// This file is part of Snesprobe.
//
// Snesprobe is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Snesprobe is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Snesprobe.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/jetsetilly/snesprobe/debugger"
	"github.com/jetsetilly/snesprobe/debugger/terminal"
	"github.com/jetsetilly/snesprobe/debugger/terminal/colorterm"
	"github.com/jetsetilly/snesprobe/debugger/terminal/plainterm"
	"github.com/jetsetilly/snesprobe/hardware/memory/bus"
	"github.com/jetsetilly/snesprobe/hardware/memory/image"
	"github.com/jetsetilly/snesprobe/logger"
	"github.com/jetsetilly/snesprobe/modalflag"
	"github.com/jetsetilly/snesprobe/notifications"
	"github.com/jetsetilly/snesprobe/prefs"
	"github.com/jetsetilly/snesprobe/schema"
	"github.com/jetsetilly/snesprobe/schema/loader"
	"github.com/jetsetilly/snesprobe/statsview"
)

// exit values
const (
	exitOK = iota
	exitHelp
	exitArgs
	exitMode
	exitInterrupt
)

func main() {
	// ctrl-c ends the program with a distinct exit value
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	go func() {
		<-intChan
		fmt.Print("\r")
		os.Exit(exitInterrupt)
	}()

	os.Exit(launch(os.Args[1:], os.Stdout))
}

// launch parses the arguments and runs the selected mode. Returns the exit
// value of the program.
func launch(args []string, output io.Writer) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.AddSubModes("RESOLVE", "TYPES", "EVAL", "TRACE")

	prefsFlag := md.AddString("prefs", "", "preferences for this session. eg. \"schema.strict::true; debugger.notifycolor::false\"")
	logFlag := md.AddBool("log", false, "echo log to stderr")
	statsFlag := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return exitHelp
	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return exitArgs
	}

	if *prefsFlag != "" {
		prefs.PushCommandLineStack(*prefsFlag)
		defer func() {
			if unused := prefs.PopCommandLineStack(); unused != "" {
				logger.Logf(logger.Allow, "snesprobe", "unused preferences: %s", unused)
			}
		}()
	}

	dbgPrefs, err := debugger.NewPreferences()
	if err != nil {
		fmt.Fprintf(output, "* error: %v\n", err)
		return exitArgs
	}

	term, err := newTerminal(output, dbgPrefs)
	if err != nil {
		fmt.Fprintf(output, "* error: %v\n", err)
		return exitArgs
	}
	defer term.CleanUp()

	if *logFlag {
		if term.IsRealTerminal() {
			logger.SetEcho(logger.NewColorizer(os.Stderr, "yellow"))
		} else {
			logger.SetEcho(os.Stderr)
		}
	}

	if *statsFlag {
		if statsview.Available() {
			statsview.Launch(terminal.Writer{Output: term, Style: terminal.StyleFeedback})
		} else {
			term.TermPrintLine(terminal.StyleError, "stats server not available in this build")
		}
	}

	switch md.Mode() {
	case "RESOLVE":
		err = resolve(md, term, output)
	case "TYPES":
		err = types(md, term)
	case "EVAL":
		err = eval(md, term, dbgPrefs)
	case "TRACE":
		err = trace(md, term, dbgPrefs)
	}

	if err != nil {
		term.TermPrintLine(terminal.StyleError, fmt.Sprintf("error in %s mode: %s", md, err))
		return exitMode
	}

	return exitOK
}

// newTerminal returns a color terminal if the output is a terminal device
// and the preferences allow it.
func newTerminal(output io.Writer, dbgPrefs *debugger.Preferences) (terminal.Terminal, error) {
	pt := plainterm.NewPlainTerminal(output)
	err := pt.Initialise()
	if err != nil {
		return nil, err
	}

	if pt.IsRealTerminal() && dbgPrefs.NotifyColor.Value() {
		ct := colorterm.NewColorTerminal(output)
		return ct, ct.Initialise()
	}

	return pt, nil
}

// parseAddress accepts hexadecimal addresses with an optional $ or 0x prefix.
func parseAddress(s string) (uint32, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(s), "$"), "0x")
	a, err := strconv.ParseUint(s, 16, 24)
	if err != nil {
		return 0, fmt.Errorf("address: %w", err)
	}
	return uint32(a), nil
}

func loadImage(dir string) (*image.Image, error) {
	if dir == "" {
		return image.NewImage(), nil
	}
	return image.Load(dir)
}

func loadSchema(filename string) (*schema.Schema, error) {
	if filename == "" {
		return nil, fmt.Errorf("a schema document is required")
	}

	p, err := loader.NewPreferences()
	if err != nil {
		return nil, err
	}

	sch := schema.NewSchema()
	err = loader.NewLoader(sch, p).LoadFile(filename)
	if err != nil {
		return nil, err
	}

	return sch, nil
}

func resolve(md *modalflag.Modes, term terminal.Terminal, output io.Writer) error {
	md.NewMode()

	schemaFile := md.AddString("schema", "", "schema document (JSON or YAML)")
	imageDir := md.AddString("image", "", "directory containing memory image")
	typeName := md.AddString("type", schema.GlobalVariables, "name of type to resolve")
	address := md.AddString("address", "0", "address of variable (hexadecimal)")
	dot := md.AddBool("dot", false, "output graph in dot format")
	deref := md.AddBool("deref", false, "resolve the target of pointers")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	sch, err := loadSchema(*schemaFile)
	if err != nil {
		return err
	}

	img, err := loadImage(*imageDir)
	if err != nil {
		return err
	}

	addr, err := parseAddress(*address)
	if err != nil {
		return err
	}

	v, err := sch.Resolve(*typeName, img, addr)
	if err != nil {
		return err
	}

	if *dot {
		schema.Graph(output, v)
		return nil
	}

	w := terminal.Writer{Output: term, Style: terminal.StyleSchema}
	schema.Print(w, v)

	if *deref {
		v.Walk(func(c *schema.Variable, _ int) {
			if d := sch.Dereference(c, img); d != nil {
				schema.Print(w, d)
			}
		})
	}

	return nil
}

func types(md *modalflag.Modes, term terminal.Terminal) error {
	md.NewMode()

	schemaFile := md.AddString("schema", "", "schema document (JSON or YAML)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	sch, err := loadSchema(*schemaFile)
	if err != nil {
		return err
	}

	schema.Definitions(terminal.Writer{Output: term, Style: terminal.StyleSchema}, sch)

	return nil
}

func eval(md *modalflag.Modes, term terminal.Terminal, dbgPrefs *debugger.Preferences) error {
	md.NewMode()

	imageDir := md.AddString("image", "", "directory containing memory image")
	busName := md.AddString("bus", bus.CPUBus.String(), "bus to evaluate the expression on")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) == 0 {
		return fmt.Errorf("expression required for %s mode", md)
	}

	b, err := bus.Parse(*busName)
	if err != nil {
		return err
	}

	img, err := loadImage(*imageDir)
	if err != nil {
		return err
	}

	dbg, err := newDebugger(img, term, dbgPrefs)
	if err != nil {
		return err
	}
	defer dbg.Close()

	r := dbg.Evaluate(b, strings.Join(md.RemainingArgs(), " "))
	term.TermPrintLine(terminal.StyleEvaluation, r.String())

	return nil
}

func trace(md *modalflag.Modes, term terminal.Terminal, dbgPrefs *debugger.Preferences) error {
	md.NewMode()

	imageDir := md.AddString("image", "", "directory containing memory image")
	breaks := md.AddString("breaks", "", "breakpoint definitions (YAML)")
	list := md.AddBool("list", false, "list breakpoints before replaying the trace")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("trace file required for %s mode", md)
	case 1:
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	img, err := loadImage(*imageDir)
	if err != nil {
		return err
	}

	dbg, err := newDebugger(img, term, dbgPrefs)
	if err != nil {
		return err
	}
	defer dbg.Close()

	if *breaks != "" {
		f, err := os.Open(*breaks)
		if err != nil {
			return err
		}
		defer f.Close()

		n, err := dbg.LoadDefinitions(f)
		if err != nil {
			return err
		}
		term.TermPrintLine(terminal.StyleFeedback, fmt.Sprintf("%d breakpoints defined", n))
	}

	if *list {
		dbg.List(terminal.Writer{Output: term, Style: terminal.StyleFeedback})
	}

	f, err := os.Open(md.GetArg(0))
	if err != nil {
		return err
	}
	defer f.Close()

	hits, err := dbg.Replay(f, func(h debugger.Hit) {
		term.TermPrintLine(terminal.StyleBreakpoint, h.String())
	})
	if err != nil {
		return err
	}

	term.TermPrintLine(terminal.StyleFeedback, fmt.Sprintf("%d breakpoint hits", len(hits)))

	return nil
}

// scheduler reports notices from the debugger to the terminal.
type scheduler struct {
	term terminal.Output
	path string
}

func (s *scheduler) Notify(notice notifications.Notice) error {
	switch notice {
	case notifications.NotifyDebugOutputOpened:
		s.term.TermPrintLine(terminal.StyleFeedback, fmt.Sprintf("debug output opened: %s", s.path))
	case notifications.NotifyBreakpointHit:
		logger.Log(logger.Allow, "snesprobe", "suspend requested")
	}
	return nil
}

func newDebugger(img *image.Image, term terminal.Terminal, dbgPrefs *debugger.Preferences) (*debugger.Debugger, error) {
	pth, err := dbgPrefs.DebugOutputPath()
	if err != nil {
		return nil, err
	}

	sched := &scheduler{term: term, path: pth}
	return debugger.NewDebugger(img, sched, terminal.Writer{Output: term, Style: terminal.StyleNotify}, pth), nil
}
