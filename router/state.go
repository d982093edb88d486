package router

// Exchange is one user/system turn recorded while filling slots
type Exchange struct {
	User   string `json:"user"`
	System string `json:"system,omitempty"`
}

// TaskState tracks a partially filled simple action across conversational
// turns: which action is in flight, which arguments are collected, and which
// required arguments are still missing. One TaskState belongs to one session.
type TaskState struct {
	ActionName    string
	RequiredArgs  []string
	OptionalArgs  []string
	CollectedArgs map[string]interface{}
	MissingArgs   []string
	History       []Exchange
}

// NewTaskState creates an empty task state
func NewTaskState() *TaskState {
	s := &TaskState{}
	s.Reset()
	return s
}

// StartAction begins slot-filling for an action, discarding any prior state
func (s *TaskState) StartAction(name string, required, optional []string) {
	s.ActionName = name
	s.RequiredArgs = append([]string(nil), required...)
	s.OptionalArgs = append([]string(nil), optional...)
	s.CollectedArgs = make(map[string]interface{})
	s.MissingArgs = append([]string(nil), required...)
	s.History = nil
}

// UpdateArgument records a collected value and clears it from the missing list
func (s *TaskState) UpdateArgument(name string, value interface{}) {
	s.CollectedArgs[name] = value
	for i, missing := range s.MissingArgs {
		if missing == name {
			s.MissingArgs = append(s.MissingArgs[:i], s.MissingArgs[i+1:]...)
			break
		}
	}
}

// AddHistory appends one exchange to the slot-filling transcript
func (s *TaskState) AddHistory(user, system string) {
	s.History = append(s.History, Exchange{User: user, System: system})
}

// IsComplete reports whether every required argument has been collected
func (s *TaskState) IsComplete() bool {
	return len(s.MissingArgs) == 0
}

// NextMissingArg returns the next required argument to ask for, or ""
func (s *TaskState) NextMissingArg() string {
	if len(s.MissingArgs) == 0 {
		return ""
	}
	return s.MissingArgs[0]
}

// Active reports whether an action is currently being slot-filled
func (s *TaskState) Active() bool {
	return s.ActionName != ""
}

// Reset clears all task state
func (s *TaskState) Reset() {
	s.ActionName = ""
	s.RequiredArgs = nil
	s.OptionalArgs = nil
	s.CollectedArgs = make(map[string]interface{})
	s.MissingArgs = nil
	s.History = nil
}
