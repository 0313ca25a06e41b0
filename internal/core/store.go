package core

// Listener is notified after every dispatch with the action and the
// resulting state.
type Listener func(a Action, s GameState)

// Store owns the state of a single session. Actions are applied one at a
// time, in the order Dispatch is called. A Store is not safe for concurrent
// use; create one per session and hand it to whoever needs it.
type Store struct {
	state     GameState
	listeners []Listener
}

// NewStore creates a store holding InitialState.
func NewStore() *Store {
	return NewStoreFrom(InitialState())
}

// NewStoreFrom creates a store holding a copy of s.
func NewStoreFrom(s GameState) *Store {
	return &Store{state: s.Clone()}
}

// State returns a copy of the current state.
func (st *Store) State() GameState {
	return st.state.Clone()
}

// Dispatch applies a and returns the new state.
func (st *Store) Dispatch(a Action) GameState {
	st.state = Reduce(st.state, a)

	for _, l := range st.listeners {
		l(a, st.state.Clone())
	}
	return st.State()
}

// Subscribe registers l to be called after each dispatch.
func (st *Store) Subscribe(l Listener) {
	if l == nil {
		return
	}
	st.listeners = append(st.listeners, l)
}
