package pipeline

// Canonical status descriptions recorded against candidates
const (
	StatusCandidateEnteredBySystem = "Candidate Entered by System"
	StatusATSShortlisted           = "ATS Shortlisted"
	StatusResumeDeclined           = "Resume declined"
	StatusResumeSubmitted          = "Resume submitted"
	StatusResumeAccepted           = "Resume Accepted"

	StatusL1InterviewScheduled     = "L1 interview scheduled"
	StatusL1Rescheduled            = "L1 Re-scheduled"
	StatusL1SecondInterviewResched = "L1 second interview Re-scheduled"
	StatusInterviewAttended        = "Came to interview"
	StatusL1Selected               = "L1 Selected"
	StatusL1Rejected               = "L1 Rejected"
	StatusL2InterviewScheduled     = "L2 interview scheduled"
	StatusL2Rescheduled            = "L2 interview Re-scheduled"
	StatusL2SecondInterviewResched = "L2 second interview Re-scheduled"
	StatusL2Selected               = "L2 Selected"
	StatusL2Rejected               = "L2 Rejected"
	StatusHRScheduled              = "HR scheduled"
	StatusHRRescheduled            = "HR Re-scheduled"
	StatusHRRoundSelected          = "HR Round Selected"
	StatusHRRoundRejected          = "HR Round Rejected"
	StatusDocVerificationPending   = "Document Verification Pending"
	StatusDocumentsCleared         = "Documents Cleared"
	StatusDocumentsRejected        = "Documents Rejected"
	StatusBGCleared                = "BG Cleared"
	StatusBGFailed                 = "BG Failed"
	StatusOfferLetterOnHold        = "Offer Letter On Hold"
	StatusOfferLetterIssued        = "Offer Letter Issued"
	StatusOfferAccepted            = "Offer Accepted"
	StatusOfferRejected            = "Offer Rejected"
	StatusCandidateJoined          = "Candidate Joined"
	StatusCandidateNotJoined       = "Candidate Not Joined"
	StatusMessageNotSent           = "Message Not Sent"
	StatusMessageSent              = "Message Sent"
	StatusMessageDelivered         = "Message Delivered"
	StatusSentMessageViewed        = "Sent Message Viewed"
	StatusCandidateResponded       = "Candidate Responded"
	StatusCandidateNotInterested   = "Candidate not interested"
	StatusCandidateIsInterested    = "Candidate is interested"
	StatusInvoiceRaised            = "Invoice Raised"
	StatusInvoiceRejected          = "Invoice Rejected"
	StatusPaymentReceived          = "Payment Received"
)

// StatusEntry pairs a status description with its numeric code
type StatusEntry struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
}

// catalog is ordered by funnel progression, not by code
var catalog = []StatusEntry{
	{10, StatusCandidateEnteredBySystem},
	{25, StatusATSShortlisted},
	{75, StatusResumeDeclined},
	{70, StatusResumeSubmitted},
	{80, StatusResumeAccepted},
	{90, StatusL1InterviewScheduled},
	{92, StatusL1Rescheduled},
	{94, StatusL1SecondInterviewResched},
	{5, StatusInterviewAttended},
	{100, StatusL1Selected},
	{95, StatusL1Rejected},
	{110, StatusL2InterviewScheduled},
	{112, StatusL2Rescheduled},
	{114, StatusL2SecondInterviewResched},
	{120, StatusL2Selected},
	{115, StatusL2Rejected},
	{130, StatusHRScheduled},
	{132, StatusHRRescheduled},
	{140, StatusHRRoundSelected},
	{135, StatusHRRoundRejected},
	{142, StatusDocVerificationPending},
	{144, StatusDocumentsCleared},
	{146, StatusDocumentsRejected},
	{102, StatusBGCleared},
	{105, StatusBGFailed},
	{145, StatusOfferLetterOnHold},
	{150, StatusOfferLetterIssued},
	{160, StatusOfferAccepted},
	{155, StatusOfferRejected},
	{170, StatusCandidateJoined},
	{165, StatusCandidateNotJoined},
	{15, StatusMessageNotSent},
	{20, StatusMessageSent},
	{30, StatusMessageDelivered},
	{40, StatusSentMessageViewed},
	{50, StatusCandidateResponded},
	{55, StatusCandidateNotInterested},
	{60, StatusCandidateIsInterested},
	{180, StatusInvoiceRaised},
	{185, StatusInvoiceRejected},
	{200, StatusPaymentReceived},
}

var (
	codeByDescription = make(map[string]int, len(catalog))
	descriptionByCode = make(map[int]string, len(catalog))
)

func init() {
	for _, e := range catalog {
		codeByDescription[e.Description] = e.Code
		descriptionByCode[e.Code] = e.Description
	}
}

// StatusCode looks up the numeric code of a status description (exact match)
func StatusCode(description string) (int, bool) {
	code, ok := codeByDescription[description]
	return code, ok
}

// StatusDescription looks up the description registered for a code
func StatusDescription(code int) (string, bool) {
	d, ok := descriptionByCode[code]
	return d, ok
}

// Statuses returns a copy of the catalog
func Statuses() []StatusEntry {
	out := make([]StatusEntry, len(catalog))
	copy(out, catalog)
	return out
}
