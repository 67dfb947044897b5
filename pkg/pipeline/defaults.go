package pipeline

// Stage keys of the default hiring funnel
const (
	StageScreening            StageKey = "SCREENING"
	StageL1Interview          StageKey = "L1_INTERVIEW"
	StageL2Interview          StageKey = "L2_INTERVIEW"
	StageHRRound              StageKey = "HR_ROUND"
	StageDocumentVerification StageKey = "DOCUMENT_VERIFICATION"
	StageOffer                StageKey = "OFFER"
	StageJoined               StageKey = "JOINED"
)

// DefaultDefinition returns the seven-stage funnel the ATS ships with.
// Each call returns a fresh copy.
func DefaultDefinition() *Definition {
	return &Definition{
		StageOrder: []string{
			StageScreening.String(),
			StageL1Interview.String(),
			StageL2Interview.String(),
			StageHRRound.String(),
			StageDocumentVerification.String(),
			StageOffer.String(),
			StageJoined.String(),
		},
		StageNames: map[string]string{
			StageScreening.String():            "Screening",
			StageL1Interview.String():          "L1 Interview",
			StageL2Interview.String():          "L2 Interview",
			StageHRRound.String():              "HR Round",
			StageDocumentVerification.String(): "Documents",
			StageOffer.String():                "Offer",
			StageJoined.String():               "Joined",
		},
		StageGroups: map[string][]string{
			StageScreening.String():            {StatusATSShortlisted, StatusResumeDeclined},
			StageL1Interview.String():          {StatusL1InterviewScheduled, StatusL1Selected, StatusL1Rejected},
			StageL2Interview.String():          {StatusL2InterviewScheduled, StatusL2Selected, StatusL2Rejected},
			StageHRRound.String():              {StatusHRScheduled, StatusHRRoundSelected, StatusHRRoundRejected},
			StageDocumentVerification.String(): {StatusDocVerificationPending, StatusDocumentsCleared, StatusDocumentsRejected},
			StageOffer.String():                {StatusOfferLetterIssued, StatusOfferAccepted, StatusOfferRejected, StatusCandidateNotJoined},
			StageJoined.String():               {StatusCandidateJoined},
		},
	}
}

// DefaultConfig builds the validated default funnel
func DefaultConfig() *Config {
	cfg, err := NewConfig(DefaultDefinition(), WithStrictMembership())
	if err != nil {
		panic("pipeline: default definition is invalid: " + err.Error())
	}
	return cfg
}
