package appstate

// State is the navigation state shared by every screen. It is passed by
// pointer; nothing in the application keeps it globally.
type State struct {
	View               View
	SelectedDeviceID   string
	SelectedRoomID     string
	SelectedCategoryID string
}

// NewState starts on the dashboard for a signed-in user and on the welcome
// screen otherwise.
func NewState(signedIn bool) *State {
	st := &State{View: ViewWelcome}
	if signedIn {
		st.View = ViewDashboard
	}
	return st
}

// Navigate switches to view. Private views fall back to the welcome screen
// when nobody is signed in.
func (s *State) Navigate(view View, signedIn bool) {
	if !signedIn && !view.Public() {
		view = ViewWelcome
	}
	s.View = view
}

func (s *State) SelectDevice(id string) {
	s.SelectedDeviceID = id
	s.View = ViewDeviceDetail
}

func (s *State) SelectRoom(id string) {
	s.SelectedRoomID = id
	s.View = ViewRoomDetail
}

func (s *State) SelectCategory(id string) {
	s.SelectedCategoryID = id
	s.View = ViewCategoryDetail
}

// SignedIn moves to the dashboard after a login or registration.
func (s *State) SignedIn() {
	s.View = ViewDashboard
}

// SignedOut clears selections and returns to the welcome screen.
func (s *State) SignedOut() {
	*s = State{View: ViewWelcome}
}
