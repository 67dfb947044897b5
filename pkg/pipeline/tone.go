package pipeline

import "strings"

// Tone is the colour family a status pill is drawn with
type Tone string

const (
	ToneShortlisted Tone = "shortlisted"
	ToneInterview   Tone = "interview"
	ToneOffer       Tone = "offer"
	ToneJoined      Tone = "joined"
	ToneRejected    Tone = "rejected"
	ToneDefault     Tone = "default"
)

// ToneOf picks a tone from keywords in the status. The first matching
// keyword wins, so "Offer Rejected" is an offer tone.
func ToneOf(status string) Tone {
	s := strings.ToLower(status)
	switch {
	case strings.Contains(s, "shortlisted"):
		return ToneShortlisted
	case strings.Contains(s, "interview"):
		return ToneInterview
	case strings.Contains(s, "offer"):
		return ToneOffer
	case strings.Contains(s, "joined"):
		return ToneJoined
	case IsRejectedStatus(s):
		return ToneRejected
	default:
		return ToneDefault
	}
}
