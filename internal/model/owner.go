package model

// Owner is the single account or contact an activity belongs to. The only
// implementations are AccountOwner and ContactOwner.
type Owner interface {
	OwnerID() int64
	isOwner()
}

type AccountOwner struct {
	ID int64
}

func (o AccountOwner) OwnerID() int64 { return o.ID }
func (AccountOwner) isOwner()         {}

type ContactOwner struct {
	ID int64
}

func (o ContactOwner) OwnerID() int64 { return o.ID }
func (ContactOwner) isOwner()         {}
