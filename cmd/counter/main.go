package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	epic "github.com/epixode/epic-linker"
	"github.com/epixode/epic-linker/linker"
	"github.com/epixode/epic-linker/saga"
	"github.com/epixode/epic-linker/view"
)

func main() {
	var (
		steps       = flag.Int("n", 0, "Number of increments to dispatch")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Verbose link logging")
	)
	flag.Parse()

	if *verbose {
		log, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		linker.SetLogger(log)
	}

	if *interactive {
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*steps); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(steps int) error {
	app, err := buildApp()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	handle := app.Start(ctx)

	for i := 0; i < steps; i++ {
		app.Store.Dispatch(epic.Action{Type: actionInc})
	}

	v, err := app.Scope.Get("counterView")
	if err != nil {
		return err
	}
	fmt.Println(v.(*view.Bound).Render(app.Store.GetState()))

	cancel()
	<-handle.Done()
	return app.Finalize()
}

const (
	actionInc = "counter/INC"
	actionDec = "counter/DEC"
	actionAdd = "counter/ADD"
)

// counterState is the whole store state for this demo.
type counterState struct {
	Count   int
	Touches int
}

// buildApp links the counter bundle tree: a core bundle owning the counter
// actions and reducer, plus an audit bundle layering early/late reducers and
// a saga over it.
func buildApp() (*linker.App, error) {
	l := linker.New(linker.Options{InitialState: counterState{}})
	return l.Link(func(b *linker.Bundle, scope *linker.Scope) error {
		if _, err := b.Include(counterBundle); err != nil {
			return err
		}
		_, err := b.Include(auditBundle)
		return err
	})
}

func counterBundle(b *linker.Bundle, scope *linker.Scope) error {
	if err := b.DefineAction("inc", actionInc); err != nil {
		return err
	}
	if err := b.DefineAction("dec", actionDec); err != nil {
		return err
	}
	if err := b.DefineAction("add", actionAdd); err != nil {
		return err
	}

	if err := b.AddReducer("inc", func(state any, _ epic.Action) any {
		s := state.(counterState)
		s.Count++
		return s
	}); err != nil {
		return err
	}
	if err := b.AddReducer("dec", func(state any, _ epic.Action) any {
		s := state.(counterState)
		s.Count--
		return s
	}); err != nil {
		return err
	}
	if err := b.AddReducer("add", func(state any, act epic.Action) any {
		s := state.(counterState)
		if n, ok := act.Payload.(int); ok {
			s.Count += n
		}
		return s
	}); err != nil {
		return err
	}

	if err := b.DefineSelector("getCount", func(state any) any {
		return state.(counterState).Count
	}); err != nil {
		return err
	}

	return b.DefineViewWith("counterView", linker.SelectorName("getCount"),
		view.RenderFunc(func(props any) string {
			return fmt.Sprintf("count = %v", props)
		}))
}

// auditBundle counts every dispatched action in a late reducer and keeps a
// saga waiting on counter/ADD to demonstrate task wiring.
func auditBundle(b *linker.Bundle, scope *linker.Scope) error {
	if err := b.AddLateReducer(func(state any, _ epic.Action) any {
		s := state.(counterState)
		s.Touches++
		return s
	}); err != nil {
		return err
	}

	return b.AddSaga(func(ctx context.Context, env *saga.Env) error {
		for {
			act, err := env.Take(ctx, actionAdd)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
			linker.Logger().Info("add observed", zap.Any("payload", act.Payload))
		}
	})
}
