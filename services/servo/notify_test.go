package servo

import (
	"bytes"
	"errors"
	"testing"
)

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) { return 0, errors.New("stalled") }

func TestFanout_MirrorsToEverySink(t *testing.T) {
	var a, b bytes.Buffer
	f := NewFanout(&a, failWriter{}, &b)
	f.Notify("DONE:A=90")
	f.Notify("READY")

	want := "DONE:A=90\r\nREADY\r\n"
	if a.String() != want || b.String() != want {
		t.Fatalf("a=%q b=%q", a.String(), b.String())
	}
	if f.Errors() != 2 {
		t.Fatalf("Errors = %d, want 2", f.Errors())
	}
}

func TestNotifyFunc(t *testing.T) {
	var got []string
	n := NotifyFunc(func(l string) { got = append(got, l) })
	n.Notify("x")
	if len(got) != 1 || got[0] != "x" {
		t.Fatalf("got %v", got)
	}
}
