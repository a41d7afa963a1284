package enums

type ContentStatus string

const (
	ContentStatusPending  ContentStatus = "PENDING"
	ContentStatusApproved ContentStatus = "APPROVED"
	ContentStatusRejected ContentStatus = "REJECTED"
)

func (s ContentStatus) Valid() bool {
	switch s {
	case ContentStatusPending, ContentStatusApproved, ContentStatusRejected:
		return true
	}
	return false
}
