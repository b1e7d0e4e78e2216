package services

import (
	"fmt"
)

// ViewerIdentity identifies who is reading a page: an authenticated user id,
// or a best-effort network address for anonymous visitors. The address is
// advisory only (proxies can spoof forwarded headers); it is not a security
// control.
type ViewerIdentity struct {
	UserID *uint
	IP     string
}

func UserViewer(id uint) ViewerIdentity {
	return ViewerIdentity{UserID: &id}
}

func AnonymousViewer(ip string) ViewerIdentity {
	return ViewerIdentity{IP: ip}
}

// Key is the canonical form stored in EphemeralReading.ViewerKey and covered
// by the (page_id, viewer_key) unique index.
func (v ViewerIdentity) Key() string {
	if v.UserID != nil {
		return fmt.Sprintf("u:%d", *v.UserID)
	}
	return "ip:" + v.IP
}
