package cmd

import (
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"strings"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-tty"
	"github.com/pkg/errors"
	"github.com/shibukawa/configdir"

	psxcorn "github.com/psxcorn/psxcorn/go"
	"github.com/psxcorn/psxcorn/go/cpu/r3000"
	"github.com/psxcorn/psxcorn/go/cpu/unicorn"
	"github.com/psxcorn/psxcorn/go/loader"
	"github.com/psxcorn/psxcorn/go/models"
	"github.com/psxcorn/psxcorn/go/models/cpu"
	"github.com/psxcorn/psxcorn/go/models/psx"
	"github.com/psxcorn/psxcorn/go/models/trace"
)

var backends = map[string]cpu.Builder{
	"r3000":   &r3000.Builder{},
	"unicorn": &unicorn.Builder{},
}

// card image names inside the card directory, by port
var cardNames = [2]string{"card0.mcd", "card1.mcd"}

// PsxCmd is the flag handling and setup shared by every command that runs guest code.
type PsxCmd struct {
	Config *models.Config

	SetupFlags func() error
	// LoadImage turns the command's argument into a program
	LoadImage   func(arg string) (*loader.Image, error)
	RunEmulator func() error
	Teardown    func()

	// load address for raw binaries
	Entry uint64

	Emulator *psxcorn.Emulator
	Flags    *flag.FlagSet
}

func NewPsxCmd() *PsxCmd {
	fs := flag.NewFlagSet("cli", flag.ExitOnError)
	return &PsxCmd{Flags: fs, LoadImage: loader.LoadFile}
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

func (c *PsxCmd) PrintError(err error) {
	PrintError(os.Stderr, err)
}

// PrintError prints an error, and a stacktrace if available.
func PrintError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s\n", strings.Repeat("-", 40))
	fmt.Fprintf(w, "Error: %s\n", err)
	err2, ok := err.(stackTracer)
	if !ok {
		return
	}
	// parse full path and method name for each stack frame
	var frames [][]string
	for _, f := range err2.StackTrace() {
		fullpath := ""
		fileline := fmt.Sprintf("%s:%d", f, f)
		method := fmt.Sprintf("%n", f)

		frame := fmt.Sprintf("%+s", f)
		tmp := strings.SplitN(frame, "\n", 3)
		if len(tmp) == 2 {
			pathsplit := strings.Split(tmp[0], "/")
			method = pathsplit[len(pathsplit)-1]
			fullpath = strings.TrimSpace(tmp[1])
		}
		frames = append(frames, []string{fullpath, fileline, method})
		if method == "main.main" {
			break
		}
	}
	widths := make([]int, 2)
	for _, f := range frames {
		for i := range widths {
			if len(f[i]) > widths[i] {
				widths[i] = len(f[i])
			}
		}
	}
	for _, f := range frames {
		for i := range widths {
			if widths[i] > 0 {
				pad := strings.Repeat(" ", widths[i]-len(f[i]))
				fmt.Fprintf(w, "%s%s | ", f[i], pad)
			}
		}
		fmt.Fprintf(w, "%s()\n", f[2])
	}
}

// ttyReader feeds guest getchar from the controlling terminal.
type ttyReader struct {
	tty *tty.TTY
	buf []byte
}

func (r *ttyReader) Read(p []byte) (int, error) {
	if len(r.buf) == 0 {
		ch, err := r.tty.ReadRune()
		if err != nil {
			return 0, err
		}
		r.buf = []byte(string(ch))
	}
	n := copy(p, r.buf)
	r.buf = r.buf[n:]
	return n, nil
}

// features picks the HLE groups: an explicit -hle wins, then PSX_HLE_CONFIG_*
// variables, then everything.
func features(fs *flag.FlagSet, list string, env []string) (models.Features, error) {
	explicit := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "hle" {
			explicit = true
		}
	})
	if !explicit {
		for _, kv := range env {
			if strings.HasPrefix(kv, "PSX_HLE_CONFIG_") {
				return models.FeaturesFromEnv(env, os.Stderr), nil
			}
		}
	}
	return models.ParseFeatures(list)
}

// openCards loads or creates both memory card images in dir.
func openCards(dir string) ([2]*psx.Card, error) {
	var cards [2]*psx.Card
	if dir == "" {
		folder := configdir.New("psxcorn", "cards").QueryCacheFolder()
		if err := folder.MkdirAll(); err != nil {
			return cards, errors.Wrap(err, "creating card directory")
		}
		dir = folder.Path
	}
	for i, name := range cardNames {
		card, err := psx.OpenCard(filepath.Join(dir, name))
		if err != nil {
			return cards, err
		}
		cards[i] = card
	}
	return cards, nil
}

func dumpTrace(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "opening trace")
	}
	r, err := trace.NewReader(f)
	if err != nil {
		f.Close()
		return err
	}
	defer r.Close()
	for {
		c, err := r.Next()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return errors.Wrap(err, "reading trace")
		}
		mark := " "
		if !c.Handled {
			mark = "?"
		}
		fmt.Fprintf(w, "%s %s\n", mark, c)
	}
}

// Run parses argv, builds the emulator and runs it, returning the process exit code.
func (c *PsxCmd) Run(argv, env []string) int {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	fs := c.Flags
	strace := fs.Bool("strace", false, "trace BIOS calls")
	etrace := fs.Bool("etrace", false, "trace execution")
	tracefile := fs.String("to", "", "binary BIOS call trace output file")
	dump := fs.Bool("dump", false, "print the -to trace after execution")
	strsize := fs.Int("strsize", 30, "limited -strace'd strings to length (0 disables)")
	tnames := []string{"strace", "etrace", "to", "dump", "strsize"}

	verbose := fs.Bool("v", false, "verbose output")
	outfile := fs.String("o", "", "redirect debugging output to file (default stderr)")
	hle := fs.String("hle", "all", "comma-separated HLE groups: heap,fileio,rcnt,pad,gpu,mcd,loadexec,thread,entryint,event (or all, none)")
	cardDir := fs.String("cards", "", "memory card directory (default: user cache dir)")
	useTTY := fs.Bool("tty", false, "read guest getchar from the terminal")
	rom := fs.String("rom", "", "firmware image for calls without an HLE handler")
	vsync := fs.Int("vsync", 0, "raise vblank every N basic blocks (0 disables)")
	backend := fs.String("backend", "r3000", "cpu backend: r3000 or unicorn")
	cpuprofile := fs.String("cpuprofile", "", "write cpu profile to <file>")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <exe>\n\nOptions:\n", argv[0])
		var flags []*flag.Flag
		var tflags []*flag.Flag
		fs.VisitAll(func(f *flag.Flag) {
			for _, name := range tnames {
				if name == f.Name {
					tflags = append(tflags, f)
					return
				}
			}
			flags = append(flags, f)
		})
		models.PrintFlags(os.Stderr, flags)
		fmt.Fprintf(os.Stderr, "\nTrace Options:\n")
		models.PrintFlags(os.Stderr, tflags)
		fmt.Fprintf(os.Stderr, "\nExample:\n  %s -strace -v game.exe\n", argv[0])
	}
	if c.SetupFlags != nil {
		if err := c.SetupFlags(); err != nil {
			c.PrintError(err)
			return 1
		}
	}
	fs.Parse(argv[1:])
	args := fs.Args()
	if len(args) < 1 {
		fs.Usage()
		return 1
	}

	feat, err := features(fs, *hle, env)
	if err != nil {
		c.PrintError(err)
		return 1
	}
	builder, ok := backends[*backend]
	if !ok {
		c.PrintError(errors.Errorf("unknown cpu backend %q", *backend))
		return 1
	}
	if *dump && *tracefile == "" {
		c.PrintError(errors.New("-dump needs -to"))
		return 1
	}
	config := &models.Config{
		Features:    feat,
		Etrace:      *etrace,
		Strace:      *strace,
		Verbose:     *verbose,
		Strsize:     *strsize,
		Tracefile:   *tracefile,
		CardDir:     *cardDir,
		VsyncBlocks: *vsync,
	}
	if *outfile != "" {
		out, err := os.OpenFile(*outfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			c.PrintError(errors.Wrap(err, "opening output"))
			return 1
		}
		defer out.Close()
		config.Output = out
	} else if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		config.Color = true
		config.Output = colorable.NewColorableStderr()
	}
	if *useTTY {
		t, err := tty.Open()
		if err != nil {
			c.PrintError(errors.Wrap(err, "opening tty"))
			return 1
		}
		defer t.Close()
		config.Stdin = &ttyReader{tty: t}
	}
	c.Config = config.Init()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			c.PrintError(errors.Wrap(err, "creating cpu profile"))
			return 1
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	code, err := c.run(builder, args[0], *rom)
	if c.Teardown != nil {
		c.Teardown()
	}
	if err == nil && *dump {
		err = dumpTrace(c.Config.Output, *tracefile)
	}
	if err != nil {
		c.PrintError(err)
		return 1
	}
	return code
}

func (c *PsxCmd) run(builder cpu.Builder, arg, rom string) (int, error) {
	img, err := c.LoadImage(arg)
	if err != nil {
		return 1, err
	}
	cards, err := openCards(c.Config.CardDir)
	if err != nil {
		return 1, err
	}
	emu, err := psxcorn.New(c.Config, builder)
	if err != nil {
		return 1, err
	}
	defer emu.Close()
	c.Emulator = emu
	for port, card := range cards {
		emu.SetCard(port, card)
	}
	if rom != "" {
		data, err := ioutil.ReadFile(rom)
		if err != nil {
			return 1, errors.Wrap(err, "reading firmware")
		}
		if err := emu.LoadFirmware(data); err != nil {
			return 1, err
		}
	}
	if err := emu.Load(img); err != nil {
		return 1, err
	}
	if c.RunEmulator != nil {
		err = c.RunEmulator()
	} else {
		err = emu.Run()
	}
	if e, ok := err.(models.ExitStatus); ok {
		return int(e), emu.Close()
	}
	if err != nil {
		emu.CrashReport(c.Config.Output)
		return 1, err
	}
	return 0, emu.Close()
}
