package filelogger

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	colorable "github.com/mattn/go-colorable"
	isatty "github.com/mattn/go-isatty"

	"blurhash/lib/logx"
)

type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorOn
	ColorOff
)

func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "", "auto":
		return ColorAuto, nil
	case "on", "always", "yes":
		return ColorOn, nil
	case "off", "never", "no":
		return ColorOff, nil
	}
	return 0, fmt.Errorf("unknown color mode %q", s)
}

type logLevels [logx.LevelCount][]byte

var levelstrings = [2]logLevels{
	// uncolored
	{
		logx.DEBUG:    []byte("   DEBUG"),
		logx.INFO:     []byte("    INFO"),
		logx.NOTICE:   []byte("  NOTICE"),
		logx.WARN:     []byte(" WARNING"),
		logx.ERROR:    []byte("   ERROR"),
		logx.CRITICAL: []byte("CRITICAL"),
	},
	// colored
	{
		logx.DEBUG:    []byte("\033[37m   DEBUG\033[0m"),
		logx.INFO:     []byte("\033[34m    INFO\033[0m"),
		logx.NOTICE:   []byte("\033[32m  NOTICE\033[0m"),
		logx.WARN:     []byte("\033[33m WARNING\033[0m"),
		logx.ERROR:    []byte("\033[31m   ERROR\033[0m"),
		logx.CRITICAL: []byte("\033[35mCRITICAL\033[0m"),
	},
}

var formatstrings = [2]string{
	// uncolored
	" %s [%s] ",
	// colored
	" %s [\033[36m%s\033[0m] ",
}

var _ logx.LoggerX = (*FileLogger)(nil)

type FileLogger struct {
	w splitter
	l sync.Mutex
	t uint // 1 if colored
	m logx.Level
}

// NewFileLogger makes logger writing to f.
// In ColorAuto mode colors are used only if f is terminal.
func NewFileLogger(f *os.File, logLevel logx.Level, c ColorMode) *FileLogger {
	l := &FileLogger{m: logLevel}
	fd := f.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	var w io.Writer = f
	if tty {
		// translates escapes on windows consoles
		w = colorable.NewColorable(f)
	}
	if c == ColorOn || (c == ColorAuto && tty) {
		l.t = 1
	}
	l.w.w = bufio.NewWriter(w)
	return l
}

func (l *FileLogger) Level() logx.Level {
	return l.m
}

func (l *FileLogger) prepareWrite(section string, lvl logx.Level, t time.Time) {
	l.w.reset()
	fmt.Fprint(&l.w.p, t.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&l.w.p, formatstrings[l.t], levelstrings[l.t][lvl], section)
}

func (l *FileLogger) LogPrintX(section string, lvl logx.Level, v ...interface{}) {
	if l.m > lvl {
		return
	}

	t := time.Now().UTC()

	l.l.Lock()
	defer l.l.Unlock()

	l.prepareWrite(section, lvl, t)
	fmt.Fprint(&l.w, v...)
	l.w.finish()
}

func (l *FileLogger) LogPrintlnX(section string, lvl logx.Level, v ...interface{}) {
	if l.m > lvl {
		return
	}

	t := time.Now().UTC()

	l.l.Lock()
	defer l.l.Unlock()

	l.prepareWrite(section, lvl, t)
	fmt.Fprintln(&l.w, v...)
	l.w.finish()
}

func (l *FileLogger) LogPrintfX(section string, lvl logx.Level, fmts string, v ...interface{}) {
	if l.m > lvl {
		return
	}

	t := time.Now().UTC()

	l.l.Lock()
	defer l.l.Unlock()

	l.prepareWrite(section, lvl, t)
	fmt.Fprintf(&l.w, fmts, v...)
	l.w.finish()
}
