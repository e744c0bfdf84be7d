package query

import (
	"sync"

	"github.com/goliatone/go-masker"
	"github.com/goliatone/go-polls/pkg/types"
)

var defaultMaskerOnce sync.Once

// DefaultMasker returns the shared masker with the profile contact fields
// registered.
func DefaultMasker() *masker.Masker {
	defaultMaskerOnce.Do(func() {
		if masker.Default == nil {
			return
		}
		masker.Default.RegisterMaskField("email", "filled4")
	})
	return masker.Default
}

// maskProfile hides the contact fields of a profile payload shown to someone
// other than its owner. Without a usable masker the email is dropped.
func maskProfile(mask *masker.Masker, payload types.ProfilePayload) types.ProfilePayload {
	if payload.Email == "" {
		return payload
	}
	if mask == nil {
		mask = DefaultMasker()
	}
	if mask == nil {
		payload.Email = ""
		return payload
	}
	masked, err := mask.Mask(map[string]any{"email": payload.Email})
	if err != nil {
		payload.Email = ""
		return payload
	}
	fields, ok := masked.(map[string]any)
	if !ok {
		payload.Email = ""
		return payload
	}
	email, _ := fields["email"].(string)
	if email == payload.Email {
		email = ""
	}
	payload.Email = email
	return payload
}
