package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-gl/gl/v4.2-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"

	"github.com/hexaflex/px65/asm/ar"
	"github.com/hexaflex/px65/devices/fffe/cpu"
	"github.com/hexaflex/px65/devices/fffe/fbd"
	"github.com/hexaflex/px65/devices/fffe/input"
	"github.com/hexaflex/px65/devices/fffe/rng"
	"github.com/hexaflex/px65/program"
)

// App defines application context.
type App struct {
	config       *Config        // Application configuration.
	window       *glfw.Window   // OpenGL/GLFW context.
	cpu          *CPUController // CPU with program to be run.
	display      *fbd.Device    // Framebuffer display peripheral.
	random       *rng.Device    // Random number source at $fe.
	input        *input.Device  // Last key register at $ff.
	debugData    *ar.Debug      // Debug data for the loaded program.
	titleUpdated time.Time      // Value used to periodically update window title.
	lastRendered time.Time      // Last time a frame was rendered.
}

// NewApp creates a new application instance using the given configuration.
func NewApp(config *Config) *App {
	var a App
	a.config = config
	a.display = fbd.New()
	a.random = rng.New(config.Seed)
	a.input = input.New(config.Gamepad)
	a.cpu = NewCPUController(a.printTrace, a.display, a.random, a.input)
	return &a
}

// Run runs the application and does not return until it is finished
// or an error occured during initialization.
func (a *App) Run() error {
	if err := a.initGL(); err != nil {
		return err
	}

	defer a.dispose()

	log.Println(Version())
	printHelp()

	if a.config.Palette != "" {
		pal, err := fbd.LoadPalette(a.config.Palette)
		if err != nil {
			return err
		}
		a.display.SetPalette(pal)
	}

	if err := a.cpu.Startup(); err != nil {
		return err
	}

	if err := a.loadProgram(); err != nil {
		return err
	}

	if !a.config.Debug {
		a.cpu.Start()
	}

	for !a.window.ShouldClose() {
		a.mainLoop()
	}

	return nil
}

// mainLoop performs all main loop operations.
//
// Once per display frame the program runs until it signals a complete
// frame or the step budget is spent. The framebuffer is then rendered
// and the frame-ready signal acknowledged.
func (a *App) mainLoop() {
	if time.Since(a.lastRendered) >= time.Second/60 {
		a.lastRendered = time.Now()

		if err := a.cpu.RunFrame(a.config.FrameSteps); err != nil {
			log.Println(err)
		}

		a.render()
	} else {
		time.Sleep(time.Millisecond)
	}

	// Periodically update the window title to show the current cpu clock frequency.
	if time.Since(a.titleUpdated) >= time.Second*2 {
		a.titleUpdated = time.Now()
		freq := prettyFrequency(a.cpu.Frequency())
		a.window.SetTitle(fmt.Sprintf("%s %s - %s", AppName, AppVersion, freq))
	}

	glfw.PollEvents()
	a.input.Update()
}

// render draws the framebuffer and acknowledges the frame.
func (a *App) render() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
	a.display.Draw(a.cpu.Framebuffer())
	a.cpu.ClearFrameReady()
	a.window.SwapBuffers()
}

// dispose ensures openGL/GLFW and other resources are cleaned up.
func (a *App) dispose() {
	a.cpu.Stop()
	a.cpu.Shutdown()

	if a.window != nil {
		a.window.Destroy()
		a.window = nil
	}

	glfw.Terminate()
}

func (a *App) keyCallback(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}

	var err error

	switch key {
	case glfw.KeyEscape:
		a.window.SetShouldClose(true)
	case glfw.KeyF1:
		printHelp()
	case glfw.KeyF2:
		a.config.Debug = !a.config.Debug
		log.Println("debug mode:", a.config.Debug)
	case glfw.KeyF5:
		err = a.loadProgram()
	case glfw.KeyF12:
		var name string
		name, err = saveScreenshot(".", a.display.Palette().Image(a.cpu.Framebuffer()), a.config.ScaleFactor)
		if err == nil {
			log.Println("saved", name)
		}
	case glfw.KeyF3:
		a.config.PrintTrace = !a.config.PrintTrace
	case glfw.KeyF6:
		a.input.Clear()
		a.cpu.Reset()
	case glfw.KeyF8:
		a.cpu.ToggleRun()
	case glfw.KeyF10:
		if !a.cpu.Running() {
			err = a.cpu.Step()
			a.render()
		}
	}

	if err != nil {
		log.Println(err)
	}
}

// initGL initializes GLFW and openGL.
func (a *App) initGL() error {
	err := glfw.Init()
	if err != nil {
		return errors.Wrapf(err, "glfw.Init failed")
	}

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.Visible, glfw.True)
	glfw.WindowHint(glfw.Focused, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 2)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	var monitor *glfw.Monitor

	width := cpu.FramebufferWidth * a.config.ScaleFactor
	height := cpu.FramebufferHeight * a.config.ScaleFactor

	if a.config.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
		mode := monitor.GetVideoMode()

		width = mode.Width
		height = mode.Height

		glfw.WindowHint(glfw.Decorated, glfw.False)
		glfw.WindowHint(glfw.Maximized, glfw.True)
	} else {
		glfw.WindowHint(glfw.Decorated, glfw.True)
		glfw.WindowHint(glfw.Maximized, glfw.False)
	}

	a.window, err = glfw.CreateWindow(width, height, AppName, monitor, nil)
	if err != nil {
		a.dispose()
		return errors.Wrapf(err, "glfw.CreateWindow failed")
	}

	a.window.MakeContextCurrent()
	a.window.SetKeyCallback(a.keyCallback)
	a.window.SetCharCallback(a.input.CharCallback)

	glfw.SwapInterval(1)

	err = gl.Init()
	if err != nil {
		a.dispose()
		return errors.Wrapf(err, "gl.Init failed")
	}

	fbw, fbh := a.window.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbw), int32(fbh))
	gl.ClearColor(0, 0, 0, 1.0)
	return nil
}

// loadProgram loads the current program from disk and restarts the cpu.
func (a *App) loadProgram() error {
	log.Println("loading", a.config.Program)

	archive, err := program.Open(a.config.Program)
	if err != nil {
		return err
	}

	if err := a.cpu.Load(archive.Instructions); err != nil {
		return err
	}

	a.debugData = &archive.Debug
	a.input.Clear()
	a.random.Reseed(a.config.Seed)
	log.Printf("loaded %d bytes at %04x, random seed %d", len(archive.Instructions), archive.Origin, a.random.Seed())
	return nil
}

// printTrace prints instruction trace data. This can be toggled
// on off through a.config.PrintTrace.
//
// It also ensures execution is stopped if the given instruction has a breakpoint
// associated with it. This only happens if a.config.Debug is true.
func (a *App) printTrace(i *cpu.Instruction) {
	var dbg *ar.DebugData

	if a.debugData != nil {
		dbg = a.debugData.Find(i.IP)
	}

	// Pause execution if we are in debug mode and this instruction has a breakpoint.
	if a.config.Debug && dbg != nil && dbg.Flags&ar.Breakpoint != 0 && a.cpu.Running() {
		log.Printf("breakpoint at %04x", i.IP)
		a.cpu.Stop()
	}

	if !a.config.PrintTrace {
		return
	}

	var sb strings.Builder
	sb.Grow(120)

	fmt.Fprintf(&sb, "%04x  %-14s %s", i.IP, i, a.cpu.Registers())

	// Add source context if it is available.
	if dbg != nil {
		pad(&sb, 70)
		fmt.Fprintf(&sb, " %s:%d:%d", a.debugData.File(dbg), dbg.Line, dbg.Col)
	}

	fmt.Println(sb.String())
}

// printHelp writes a short overview of supported shortcut keys.
func printHelp() {
	var sb strings.Builder
	sb.WriteString("shortcut keys:\n")
	sb.WriteString(" ESC      Exit the program.\n")
	sb.WriteString(" F1       Display this help.\n")
	sb.WriteString(" F2       Enable/Disable debug mode.\n")
	sb.WriteString(" F3       Enable/Disable debug trace output.\n")
	sb.WriteString(" F5       (re)load the program from disk and reset the cpu.\n")
	sb.WriteString(" F6       Reset the cpu without reloading the program.\n")
	sb.WriteString(" F8       Start/Stop program execution.\n")
	sb.WriteString(" F10      Perform a single execution step while stopped.\n")
	sb.WriteString(" F12      Save a screenshot.\n")
	sb.WriteString("Other typed keys are stored at $ff for the program to read.")
	log.Println(sb.String())
}

// pad pads sb with spaces until it reaches the given size.
var pad = func() func(*strings.Builder, int) {
	set := strings.Repeat(" ", 80)
	return func(sb *strings.Builder, size int) {
		if sb.Len() >= size {
			return
		}
		if size > len(set) {
			size = len(set)
		}
		if size < sb.Len() {
			size = sb.Len()
		}
		sb.WriteString(set[:size-sb.Len()])
	}
}()

// prettyFrequency returns a human-readable version of the given clock frequency in herz.
func prettyFrequency(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.2f GHz", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.2f MHz", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.2f KHz", v/1e3)
	default:
		return fmt.Sprintf("%.2f Hz", v)
	}
}
