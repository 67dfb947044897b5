package kernel

import "strings"

// CandidateID identifica a un candidato en el ATS
type CandidateID string

func NewCandidateID(id string) CandidateID {
	return CandidateID(strings.TrimSpace(id))
}

func (id CandidateID) String() string {
	return string(id)
}

func (id CandidateID) IsEmpty() bool {
	return id == ""
}

// JobID identifica a una oferta de trabajo (job description)
type JobID string

func NewJobID(id string) JobID {
	return JobID(strings.TrimSpace(id))
}

func (id JobID) String() string {
	return string(id)
}

func (id JobID) IsEmpty() bool {
	return id == ""
}
