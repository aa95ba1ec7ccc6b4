package kernel

type JobID string

func NewJobID(id string) JobID { return JobID(id) }
func (j JobID) String() string { return string(j) }
func (j JobID) IsEmpty() bool  { return string(j) == "" }

type CandidateID string

func NewCandidateID(id string) CandidateID { return CandidateID(id) }
func (c CandidateID) String() string       { return string(c) }
func (c CandidateID) IsEmpty() bool        { return string(c) == "" }

type MatchID string

func NewMatchID(id string) MatchID { return MatchID(id) }
func (m MatchID) String() string   { return string(m) }
func (m MatchID) IsEmpty() bool    { return string(m) == "" }

type EmailID string

func NewEmailID(id string) EmailID { return EmailID(id) }
func (e EmailID) String() string   { return string(e) }
func (e EmailID) IsEmpty() bool    { return string(e) == "" }

type IntakeJobID string

func NewIntakeJobID(id string) IntakeJobID { return IntakeJobID(id) }
func (i IntakeJobID) String() string       { return string(i) }
func (i IntakeJobID) IsEmpty() bool        { return string(i) == "" }

type APIKeyID string

func NewAPIKeyID(id string) APIKeyID { return APIKeyID(id) }
func (a APIKeyID) String() string    { return string(a) }
func (a APIKeyID) IsEmpty() bool     { return string(a) == "" }
