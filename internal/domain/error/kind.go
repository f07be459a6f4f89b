// Package error defines domain-specific errors for the Organiza application.
package error

import "errors"

// Kind classifies domain errors independently of the area that raised them.
type Kind string

const (
	KindUnknown    Kind = ""
	KindValidation Kind = "validation"
	KindRemote     Kind = "remote"
	KindAuth       Kind = "auth"
	KindNotFound   Kind = "not_found"
	KindForbidden  Kind = "forbidden"
	KindConflict   Kind = "conflict"
)

type kinded interface {
	ErrorKind() Kind
}

// KindOf returns the kind of the first classified error in the chain.
func KindOf(err error) Kind {
	var k kinded
	if errors.As(err, &k) {
		return k.ErrorKind()
	}
	return KindUnknown
}

// IsValidation reports whether err was rejected before reaching any collaborator.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsRemote reports whether err is a failure of the remote persistence collaborator.
func IsRemote(err error) bool { return KindOf(err) == KindRemote }

// IsAuth reports whether err is an authentication failure.
func IsAuth(err error) bool { return KindOf(err) == KindAuth }
