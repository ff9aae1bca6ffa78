package logx

import "testing"

func TestParseLevel(t *testing.T) {
	for l := DEBUG; l < LevelCount; l++ {
		got, err := ParseLevel(l.String())
		if err != nil || got != l {
			t.Errorf("ParseLevel(%q) exp %v got %v err %v", l.String(), l, got, err)
		}
	}
	if got, err := ParseLevel(" Warning "); err != nil || got != WARN {
		t.Errorf("exp WARN got %v err %v", got, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Errorf("expected error for unknown level")
	}
}

type recX struct {
	sections []string
}

func (r *recX) Level() Level { return INFO }
func (r *recX) LogPrintX(section string, lvl Level, v ...interface{}) {
	r.sections = append(r.sections, section)
}
func (r *recX) LogPrintlnX(section string, lvl Level, v ...interface{}) {
	r.sections = append(r.sections, section)
}
func (r *recX) LogPrintfX(section string, lvl Level, fmt string, v ...interface{}) {
	r.sections = append(r.sections, section)
}

func TestLogToX(t *testing.T) {
	r := &recX{}
	l := NewLogToX(r, "imageio")
	l.LogPrint(INFO, "a")
	l.LogPrintln(WARN, "b")
	l.LogPrintf(ERROR, "%d", 1)
	if len(r.sections) != 3 {
		t.Fatalf("exp 3 records got %d", len(r.sections))
	}
	for _, s := range r.sections {
		if s != "imageio" {
			t.Errorf("exp section %q got %q", "imageio", s)
		}
	}
	if l.Level() != INFO {
		t.Errorf("level not forwarded")
	}
}
