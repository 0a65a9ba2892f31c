package linker

import (
	"context"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	epic "github.com/epixode/epic-linker"
	"github.com/epixode/epic-linker/errors"
	"github.com/epixode/epic-linker/saga"
	"github.com/epixode/epic-linker/store"
	"github.com/epixode/epic-linker/view"
)

// Options configures linker behavior.
type Options struct {
	InitialState any
	CreateStore  store.Creator
}

// DefaultOptions returns default linker configuration.
func DefaultOptions() Options {
	return Options{
		CreateStore: store.New,
	}
}

// Linker owns the state of one link invocation: the global namespace, the
// action-type registry, the enhancer list and the use queue. A Linker links
// one bundle tree; create a new one per application.
type Linker struct {
	scope     *Scope
	types     map[string]string // action-type string -> declaring name
	uses      []useEntry
	enhancers []store.Enhancer
	options   Options
}

type useEntry struct {
	target *Scope
	names  []string
}

// New creates a Linker with the given options.
func New(opts Options) *Linker {
	if opts.CreateStore == nil {
		opts.CreateStore = store.New
	}
	return &Linker{
		scope:   NewScope("global"),
		types:   make(map[string]string),
		options: opts,
	}
}

// NewWithDefaults creates a Linker with default options.
func NewWithDefaults() *Linker {
	return New(DefaultOptions())
}

// Options returns the configuration.
func (l *Linker) Options() Options {
	return l.options
}

// Scope returns the global namespace.
func (l *Linker) Scope() *Scope {
	return l.scope
}

// Link runs the root builder with a fresh Linker using default options.
func Link(root Builder) (*App, error) {
	return NewWithDefaults().Link(root)
}

// Link executes the root builder, seals the tree, resolves dependencies in
// two passes (non-view names, then views), composes the reducer and enhancer
// chains and the aggregate background task, and constructs the store.
func (l *Linker) Link(root Builder) (*App, error) {
	b := newBundle(l, "local")
	if err := root(b, b.locals); err != nil {
		return nil, err
	}
	b.seal()

	parts := &linkedParts{}
	if err := collect(b, parts); err != nil {
		return nil, err
	}
	Logger().Debug("bundle tree sealed",
		zap.Int("names", len(l.scope.entries)),
		zap.Int("action_types", len(l.types)),
		zap.Int("sagas", len(parts.sagas)),
		zap.Int("views", len(parts.views)))

	if err := l.resolveUses(false); err != nil {
		return nil, err
	}
	if err := l.linkViews(parts.views); err != nil {
		return nil, err
	}
	if err := l.resolveUses(true); err != nil {
		return nil, err
	}

	actions, err := l.buildActionMap(parts.actions)
	if err != nil {
		return nil, err
	}

	reducer := Chain(
		Chain(parts.earlies...),
		dispatchReducer(actions),
		ChainReverse(parts.lates...),
	)

	runner := saga.NewRunner()
	enhancers := make([]store.Enhancer, 0, len(l.enhancers)+1)
	enhancers = append(enhancers, store.ApplyMiddleware(runner.Middleware()))
	enhancers = append(enhancers, l.enhancers...)

	create := store.ComposeEnhancers(enhancers...)(l.options.CreateStore)
	st := create(reducer, l.options.InitialState)

	Logger().Debug("link complete",
		zap.Int("action_reducers", len(actions)),
		zap.Int("enhancers", len(enhancers)))

	return &App{
		Scope:   l.scope,
		Store:   st,
		Reducer: reducer,
		runner:  runner,
		task:    saga.All(parts.sagas...),
		defers:  parts.defers,
	}, nil
}

// linkedParts partitions the tree's directives in depth-first declaration
// order: each bundle's own directives before any child's.
type linkedParts struct {
	earlies []epic.Reducer
	lates   []epic.Reducer
	actions []actionBinding
	views   []viewBinding
	sagas   []saga.Task
	defers  []DeferFunc
}

type actionBinding struct {
	owner   *Bundle
	name    string
	reducer epic.Reducer
}

type viewBinding struct {
	owner *Bundle
	decl  directive
}

func collect(b *Bundle, parts *linkedParts) error {
	for _, d := range b.directives {
		switch d.kind {
		case directiveEarlyReducer:
			parts.earlies = append(parts.earlies, d.reducer)
		case directiveActionReducer:
			parts.actions = append(parts.actions, actionBinding{owner: b, name: d.name, reducer: d.reducer})
		case directiveLateReducer:
			parts.lates = append(parts.lates, d.reducer)
		case directiveView:
			parts.views = append(parts.views, viewBinding{owner: b, decl: d})
		case directiveSaga:
			parts.sagas = append(parts.sagas, d.task)
		case directiveDefer:
			parts.defers = append(parts.defers, d.deferred)
		default:
			return errors.UnknownDirective(d.kind.String())
		}
	}
	for _, c := range b.children {
		if err := collect(c, parts); err != nil {
			return err
		}
	}
	return nil
}

// publish claims a name under a kind and binds its value immediately.
func (l *Linker) publish(name string, kind Kind, value any) error {
	if err := l.scope.declare(name, kind); err != nil {
		return err
	}
	l.scope.bind(name, value)
	return nil
}

// claim reserves a name whose value is bound later (views).
func (l *Linker) claim(name string, kind Kind) error {
	return l.scope.declare(name, kind)
}

func (l *Linker) claimActionType(actionType, name string) error {
	if actionType == "" {
		return errors.InvalidUse("defineAction with empty type string")
	}
	if prev, ok := l.types[actionType]; ok {
		return errors.DuplicateType(actionType, prev)
	}
	l.types[actionType] = name
	return nil
}

func (l *Linker) enqueueUse(target *Scope, names []string) {
	l.uses = append(l.uses, useEntry{target: target, names: names})
}

// resolveUses drains the use queue. The first pass copies every non-view
// name into its requesting view and fails on names no bundle publishes;
// view names stay queued for the second pass, which runs after view linking.
func (l *Linker) resolveUses(viewPass bool) error {
	var remaining []useEntry
	for _, e := range l.uses {
		var pending []string
		for _, name := range e.names {
			kind, ok := l.scope.Kind(name)
			if !ok {
				return errors.Unresolved(name)
			}
			if !viewPass && kind == KindView {
				pending = append(pending, name)
				continue
			}
			v, err := l.scope.Get(name)
			if err != nil {
				return err
			}
			e.target.put(name, kind, v)
		}
		if len(pending) > 0 {
			remaining = append(remaining, useEntry{target: e.target, names: pending})
		}
	}
	l.uses = remaining
	return nil
}

// linkViews binds each queued view to its selector and publishes the bound
// view into the global namespace. A selector name resolves against the
// declaring bundle's locals, not the global namespace, so a view may use a
// selector it imported via Use.
func (l *Linker) linkViews(views []viewBinding) error {
	for _, vb := range views {
		sel, err := resolveSelector(vb.owner, vb.decl.selector)
		if err != nil {
			return err
		}
		bound := view.Bind(vb.decl.name, sel, vb.decl.renderer)
		l.scope.bind(vb.decl.name, bound)
		Logger().Debug("view linked", zap.String("view", bound.DisplayName()))
	}
	return nil
}

func resolveSelector(owner *Bundle, ref SelectorRef) (epic.Selector, error) {
	switch {
	case ref.isZero():
		return nil, nil
	case ref.fn != nil:
		return ref.fn, nil
	default:
		v, err := owner.locals.Get(ref.name)
		if err != nil {
			return nil, errors.BadSelector(ref.name, "selector name not resolvable in declaring bundle")
		}
		sel, ok := v.(epic.Selector)
		if !ok {
			return nil, errors.BadSelector(ref.name, "resolved value is not a selector function")
		}
		return sel, nil
	}
}

// buildActionMap resolves each action-scoped reducer's type string through
// the declaring bundle's locals and composes chains in registration order:
// the first-registered reducer for a type runs first.
func (l *Linker) buildActionMap(bindings []actionBinding) (map[string]epic.Reducer, error) {
	actions := make(map[string]epic.Reducer)
	for _, ab := range bindings {
		v, err := ab.owner.locals.Get(ab.name)
		if err != nil {
			return nil, err
		}
		creator, ok := v.(epic.ActionCreator)
		if !ok {
			return nil, errors.New(errors.PhaseCompose, errors.KindInvalidUse).
				Name(ab.name).
				Detail("addReducer target is not an action").
				Build()
		}
		actions[creator.Type] = Compose(ab.reducer, actions[creator.Type])
	}
	return actions, nil
}

// dispatchReducer looks up the incoming action's type in the composed map;
// a type with no registered reducer passes state through unchanged.
func dispatchReducer(actions map[string]epic.Reducer) epic.Reducer {
	if len(actions) == 0 {
		return identityReducer
	}
	return func(state any, act epic.Action) any {
		if r, ok := actions[act.Type]; ok {
			return r(state, act)
		}
		return state
	}
}

// App is the linked result.
type App struct {
	Scope   *Scope
	Store   store.Store
	Reducer epic.Reducer

	runner *saga.Runner
	task   saga.Task
	defers []DeferFunc
}

// Start begins executing the aggregate background task: every registered
// saga from every bundle runs concurrently, and the handle completes only
// once all of them complete or any one fails.
func (a *App) Start(ctx context.Context) *saga.Handle {
	return a.runner.Run(ctx, a.task)
}

// Env returns the task environment, for dispatching into running sagas.
func (a *App) Env() *saga.Env {
	return a.runner.Env()
}

// Finalize forwards its arguments to every bundle's deferred callbacks,
// depth-first. All callbacks run even if some fail; failures are aggregated
// under a single finalize-phase error.
func (a *App) Finalize(args ...any) error {
	var err error
	for _, fn := range a.defers {
		err = multierr.Append(err, fn(args...))
	}
	if err != nil {
		return errors.Wrap(errors.PhaseFinalize, errors.KindTaskFailed, err, "deferred callback failed")
	}
	return nil
}
