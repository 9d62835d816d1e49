package settings

import (
	"testing"
)

func TestNewCliParams(t *testing.T) {
	want := Run{
		MinLogLevel: 0,
		Output:      "auto",
		Indent:      2,
		ExitOnError: true,
	}
	got := NewCliParams()
	if *got != want {
		t.Errorf("NewCliParams() = %+v, want %+v", got, want)
	}
	if NewCliParams() == got {
		t.Error("NewCliParams() should return a fresh value on each call")
	}
}
