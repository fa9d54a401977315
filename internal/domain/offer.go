package domain

type OfferStatus string

const (
	OfferStatusPending  OfferStatus = "pending"
	OfferStatusAccepted OfferStatus = "accepted"
	OfferStatusRejected OfferStatus = "rejected"
)

// Offer is a volunteer's proposal against an open request. At most one offer
// per request ever holds the accepted status; accepting one rejects the rest.
type Offer struct {
	ID          int32       `json:"id"`
	RequestID   int32       `json:"request_id"`
	VolunteerID int32       `json:"volunteer_id"`
	Message     string      `json:"message"`
	Status      OfferStatus `json:"status"`
	CreatedOn   string      `json:"created_on"`
}
