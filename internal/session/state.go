// Package session holds the client-side conversation state: the backend
// session id, the flow the user picked, the chat transcripts and the latest
// business profile snapshot.
package session

// Flow is the user's one-time choice of conversational path.
type Flow string

const (
	FlowUnset      Flow = ""
	FlowIndividual Flow = "individual"
	FlowBusiness   Flow = "business"
)

// Phase is the nested state of the business flow. It moves to PhaseAnalyzed
// the first time the backend reports the profile complete and only a full
// reset brings it back.
type Phase string

const (
	PhaseDiscovering Phase = "discovering"
	PhaseAnalyzed    Phase = "analyzed"
)

// Message roles match what the backend uses in conversation history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a conversation transcript.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// State is the per-interaction conversation state. It is an explicit object
// passed to whoever needs it; nothing here touches globals. It is not safe
// for concurrent use, matching the single-threaded interaction model.
type State struct {
	sessionID       string
	profileComplete bool
	profile         map[string]any
	flow            Flow
	phase           Phase
	individual      []Message
	business        []Message
}

func New() *State {
	return &State{phase: PhaseDiscovering}
}

// Begin records the backend-issued session identifier.
func (s *State) Begin(sessionID string) {
	s.sessionID = sessionID
}

func (s *State) SessionID() string { return s.sessionID }

func (s *State) HasActiveSession() bool { return s.sessionID != "" }

// Select fixes the flow choice. Once set it persists until Reset; a second
// select is ignored.
func (s *State) Select(flow Flow) {
	if s.flow != FlowUnset {
		return
	}
	s.flow = flow
}

func (s *State) Flow() Flow { return s.flow }

func (s *State) Phase() Phase { return s.phase }

// ObserveDiscovery records the outcome of one plan-discovery turn. The
// first complete=true observation moves the business flow to PhaseAnalyzed;
// later observations never move it back.
func (s *State) ObserveDiscovery(profile map[string]any, complete bool) {
	s.profile = profile
	s.profileComplete = complete
	if complete {
		s.phase = PhaseAnalyzed
	}
}

func (s *State) ProfileComplete() bool { return s.profileComplete }

// Profile returns the latest profile snapshot, nil before any discovery
// turn reported one.
func (s *State) Profile() map[string]any { return s.profile }

// AppendIndividual adds one turn to the individual transcript.
func (s *State) AppendIndividual(role, content string) {
	s.individual = append(s.individual, Message{Role: role, Content: content})
}

// AppendBusiness adds one turn to the business transcript.
func (s *State) AppendBusiness(role, content string) {
	s.business = append(s.business, Message{Role: role, Content: content})
}

func (s *State) IndividualTranscript() []Message { return s.individual }

func (s *State) BusinessTranscript() []Message { return s.business }

// ClearIndividualTranscript empties the individual chat history without
// touching the session or flow.
func (s *State) ClearIndividualTranscript() {
	s.individual = nil
}

// Reset forgets everything: session id, completion flag, profile snapshot,
// both transcripts and the flow selector. There is no partial reset.
func (s *State) Reset() {
	s.sessionID = ""
	s.profileComplete = false
	s.profile = nil
	s.flow = FlowUnset
	s.phase = PhaseDiscovering
	s.individual = nil
	s.business = nil
}
