package contact

import (
	"time"

	"github.com/google/uuid"

	"github.com/ana-yet/soulmate-server-side-code/internal/biodata"
)

// Status is the request state. The only transition is pending -> approved;
// approval never reverts. A pending request can instead be deleted by its
// requester, which permits an identical re-request.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
)

// Request asks for disclosure of a profile's private contact fields. At most
// one request may exist per (requesterEmail, requestedBiodataID,
// requesterName) triple at a time. The id is an unguessable storage key.
type Request struct {
	ID                 uuid.UUID `json:"_id"`
	RequesterEmail     string    `json:"requesterEmail"`
	RequestedBiodataID int64     `json:"requestedBiodataId"`
	RequesterName      string    `json:"requesterName"`
	Status             Status    `json:"status"`
	Price              int64     `json:"price"`
	RequestedAt        time.Time `json:"requestedAt"`
}

// DisclosureView is the requester-facing projection of a request joined
// with its target profile. Mobile and Email stay nil until the request is
// approved; nothing else of the full record crosses into the view.
type DisclosureView struct {
	RequestID   uuid.UUID `json:"_id"`
	BiodataID   int64     `json:"biodataId"`
	Status      Status    `json:"status"`
	RequestedAt time.Time `json:"requestedAt"`
	Name        string    `json:"name"`
	Mobile      *string   `json:"mobile"`
	Email       *string   `json:"email"`
}

// Reveal projects a request against its target profile. It is the single
// place private contact fields can enter a response, which makes the
// disclosure invariant hold by construction: callers only ever see the
// view, never the full record.
func Reveal(req *Request, target *biodata.Biodata) DisclosureView {
	view := DisclosureView{
		RequestID:   req.ID,
		BiodataID:   req.RequestedBiodataID,
		Status:      req.Status,
		RequestedAt: req.RequestedAt,
		Name:        target.Name,
	}
	if req.Status == StatusApproved {
		mobile := target.MobileNumber
		email := target.ContactEmail
		view.Mobile = &mobile
		view.Email = &email
	}
	return view
}
