package epiclinker

// Action is a message dispatched against the store. Type is the wire-level
// identifier reducers match on; Payload carries optional action data.
type Action struct {
	Payload any
	Type    string
}

// Reducer is a unary state transition: it maps the current state and an
// action to the next state. Reducers must not mutate their input.
type Reducer func(state any, act Action) any

// Selector extracts a slice of state for a consumer such as a bound view.
type Selector func(state any) any

// ActionCreator is the value published into the namespace for a declared
// action. It carries the claimed wire-level type string.
type ActionCreator struct {
	Type string
}

// New builds an action of this creator's type with the given payload.
func (c ActionCreator) New(payload any) Action {
	return Action{Type: c.Type, Payload: payload}
}
