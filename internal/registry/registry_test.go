package registry

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-pilas/internal/world"
)

type stubEngine struct{ name string }

func (e stubEngine) Name() string { return e.name }

func (e stubEngine) Run(context.Context, *world.World, Env) error { return nil }

func TestEngineRegistry(t *testing.T) {
	RegisterEngine("stub-a", func() Engine { return stubEngine{name: "stub-a"} })
	RegisterEngine("stub-b", func() Engine { return stubEngine{name: "stub-b"} })

	e, err := NewEngine("stub-a")
	if err != nil {
		t.Fatalf("NewEngine() failed: %v", err)
	}
	if e.Name() != "stub-a" {
		t.Errorf("Name() = %q", e.Name())
	}

	names := Engines()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("Engines() not sorted: %v", names)
		}
	}

	_, err = NewEngine("qtgl")
	if !errors.Is(err, ErrUnknownEngine) {
		t.Fatalf("NewEngine(qtgl) error = %v, expected ErrUnknownEngine", err)
	}
	if !strings.Contains(err.Error(), "stub-a") || !strings.Contains(err.Error(), "stub-b") {
		t.Errorf("error does not list engines: %v", err)
	}
}

func TestRegisterEngineDuplicatePanics(t *testing.T) {
	RegisterEngine("stub-dup", func() Engine { return stubEngine{} })
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate engine")
		}
	}()
	RegisterEngine("stub-dup", func() Engine { return stubEngine{} })
}

func TestExampleRegistry(t *testing.T) {
	RegisterExample(Example{ID: "zz-test", Title: "Z"})
	RegisterExample(Example{ID: "aa-test", Title: "A"})

	ex, err := LookupExample("aa-test")
	if err != nil || ex.Title != "A" {
		t.Errorf("LookupExample() = %+v, %v", ex, err)
	}
	if _, err := LookupExample("missing"); !errors.Is(err, ErrUnknownExample) {
		t.Errorf("LookupExample(missing) error = %v", err)
	}

	list := Examples()
	if len(list) < 2 || list[0].ID > list[len(list)-1].ID {
		t.Errorf("Examples() = %+v, expected sorted", list)
	}
}
