package linker

import (
	stderrors "errors"
	"testing"

	epic "github.com/epixode/epic-linker"
	"github.com/epixode/epic-linker/errors"
	"github.com/epixode/epic-linker/view"
)

func sealedErr() error {
	return &errors.Error{Phase: errors.PhaseSeal, Kind: errors.KindSealed}
}

func TestBundle_DeclarationsAfterSealFail(t *testing.T) {
	var leaked *Bundle
	_, err := Link(func(b *Bundle, scope *Scope) error {
		leaked = b
		return nil
	})
	if err != nil {
		t.Fatalf("Link() = %v", err)
	}

	noop := func(state any, _ epic.Action) any { return state }
	renderer := view.RenderFunc(func(any) string { return "" })

	calls := []struct {
		name string
		call func() error
	}{
		{"include", func() error { _, err := leaked.Include(func(*Bundle, *Scope) error { return nil }); return err }},
		{"use", func() error { return leaked.Use("x") }},
		{"pack", func() error { _, err := leaked.Pack("x"); return err }},
		{"defineValue", func() error { return leaked.DefineValue("x", 1) }},
		{"defineSelector", func() error { return leaked.DefineSelector("s", func(any) any { return nil }) }},
		{"defineAction", func() error { return leaked.DefineAction("a", "t/A") }},
		{"defineView", func() error { return leaked.DefineView("v", renderer) }},
		{"defineViewWith", func() error { return leaked.DefineViewWith("v", SelectorName("s"), renderer) }},
		{"addReducer", func() error { return leaked.AddReducer("a", noop) }},
		{"addEarlyReducer", func() error { return leaked.AddEarlyReducer(noop) }},
		{"addLateReducer", func() error { return leaked.AddLateReducer(noop) }},
		{"addSaga", func() error { return leaked.AddSaga(nil) }},
		{"addEnhancer", func() error { return leaked.AddEnhancer(nil) }},
		{"defer", func() error { return leaked.Defer(func(...any) error { return nil }) }},
	}

	for _, tt := range calls {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !stderrors.Is(err, sealedErr()) {
				t.Errorf("%s after seal = %v, want sealed error", tt.name, err)
			}
		})
	}
}

func TestBundle_SealPropagatesToChildren(t *testing.T) {
	var child *Bundle
	_, err := Link(func(b *Bundle, scope *Scope) error {
		_, err := b.Include(func(c *Bundle, _ *Scope) error {
			child = c
			return nil
		})
		return err
	})
	if err != nil {
		t.Fatalf("Link() = %v", err)
	}

	if err := child.DefineValue("x", 1); !stderrors.Is(err, sealedErr()) {
		t.Errorf("child declaration after seal = %v, want sealed error", err)
	}
}

func TestBundle_UseArgumentShape(t *testing.T) {
	_, err := Link(func(b *Bundle, scope *Scope) error {
		return b.Use()
	})
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseDeclare, Kind: errors.KindInvalidUse}) {
		t.Errorf("Use() = %v, want invalid_use error", err)
	}

	_, err = Link(func(b *Bundle, scope *Scope) error {
		return b.Use("ok", "")
	})
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseDeclare, Kind: errors.KindInvalidUse}) {
		t.Errorf("Use with empty name = %v, want invalid_use error", err)
	}
}

func TestBundle_AddSagaNilTask(t *testing.T) {
	_, err := Link(func(b *Bundle, scope *Scope) error {
		return b.AddSaga(nil)
	})
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseDeclare, Kind: errors.KindInvalidUse}) {
		t.Errorf("AddSaga(nil) = %v, want invalid_use error", err)
	}
}

func TestBundle_PackReturnsIndependentView(t *testing.T) {
	var packed *Scope
	app, err := Link(func(b *Bundle, scope *Scope) error {
		if err := b.DefineValue("x", 1); err != nil {
			return err
		}
		var perr error
		packed, perr = b.Pack("x")
		return perr
	})
	if err != nil {
		t.Fatalf("Link() = %v", err)
	}

	if v, err := packed.Get("x"); err != nil || v != 1 {
		t.Errorf("packed Get(x) = %v, %v; want 1, nil", v, err)
	}
	// The packed view is distinct from the global namespace and from the
	// bundle's own locals.
	if packed == app.Scope {
		t.Error("Pack returned the global scope")
	}
}

func TestBundle_IncludeReturnsChildLocals(t *testing.T) {
	var childLocals *Scope
	_, err := Link(func(b *Bundle, scope *Scope) error {
		locals, err := b.Include(func(c *Bundle, cs *Scope) error {
			childLocals = cs
			return c.DefineValue("shared", "yes")
		})
		if err != nil {
			return err
		}
		if locals != childLocals {
			t.Error("Include did not return the child's local view")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Link() = %v", err)
	}

	if v, err := childLocals.Get("shared"); err != nil || v != "yes" {
		t.Errorf("child locals Get(shared) = %v, %v; want yes, nil", v, err)
	}
}

func TestBundle_Lookup(t *testing.T) {
	_, err := Link(func(b *Bundle, scope *Scope) error {
		if err := b.DefineValue("x", 123); err != nil {
			return err
		}
		v, err := b.Lookup("x")
		if err != nil {
			return err
		}
		if v != 123 {
			t.Errorf("Lookup(x) = %v, want 123", v)
		}
		if _, err := b.Lookup("missing"); err == nil {
			t.Error("Lookup of unknown name should fail")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Link() = %v", err)
	}
}

func TestBundle_BuilderErrorAbortsLink(t *testing.T) {
	sentinel := stderrors.New("builder failed")
	_, err := Link(func(b *Bundle, scope *Scope) error {
		return sentinel
	})
	if !stderrors.Is(err, sentinel) {
		t.Errorf("Link() = %v, want %v", err, sentinel)
	}
}

func TestBundle_ChildBuilderErrorAbortsLink(t *testing.T) {
	sentinel := stderrors.New("child failed")
	_, err := Link(func(b *Bundle, scope *Scope) error {
		_, err := b.Include(func(*Bundle, *Scope) error { return sentinel })
		return err
	})
	if !stderrors.Is(err, sentinel) {
		t.Errorf("Link() = %v, want %v", err, sentinel)
	}
}
