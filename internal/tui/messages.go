package tui

// loadedMsg reports the end of an initial load or reload. The new state is
// read from the store.
type loadedMsg struct {
	err error
}

type moreLoadedMsg struct {
	err error
}

type openErrMsg struct {
	err error
}
