package linker

import (
	epic "github.com/epixode/epic-linker"
)

// identityReducer passes state through unchanged.
func identityReducer(state any, _ epic.Action) any { return state }

// Compose combines two reducers so f's effects apply before g's:
// the result computes g(f(state, act), act). A nil operand acts as the
// identity; if both are nil the result is an identity no-op.
func Compose(g, f epic.Reducer) epic.Reducer {
	if g == nil && f == nil {
		return identityReducer
	}
	if g == nil {
		return f
	}
	if f == nil {
		return g
	}
	return func(state any, act epic.Action) any {
		return g(f(state, act), act)
	}
}

// Chain folds reducers so earlier elements take effect first.
func Chain(reducers ...epic.Reducer) epic.Reducer {
	var acc epic.Reducer
	for _, r := range reducers {
		acc = Compose(r, acc)
	}
	if acc == nil {
		return identityReducer
	}
	return acc
}

// ChainReverse folds reducers in mirrored order: later elements take effect
// first, earlier elements last. Used for the late stage so outer bundles
// wrap inner bundles' late processing.
func ChainReverse(reducers ...epic.Reducer) epic.Reducer {
	var acc epic.Reducer
	for _, r := range reducers {
		acc = Compose(acc, r)
	}
	if acc == nil {
		return identityReducer
	}
	return acc
}
