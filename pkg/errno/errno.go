package errno

import "net/http"

// Kind classifies an error for transport mapping and for callers that only
// care about the failure class, not the exact code.
type Kind string

const (
	KindInvalidInput    Kind = "invalid_input"
	KindUnauthenticated Kind = "unauthenticated"
	KindForbidden       Kind = "forbidden"
	KindNotFound        Kind = "not_found"
	KindConflict        Kind = "conflict"
	KindUnavailable     Kind = "unavailable"
	KindInternal        Kind = "internal"
)

// HTTPStatus maps a kind to its HTTP status code.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Errno defines the error code logic
type Errno struct {
	Code    int
	Kind    Kind
	Message string
}

func (e Errno) Error() string {
	return e.Message
}

// Is lets errors.Is match an Errno by code regardless of pointer-ness.
func (e Errno) Is(target error) bool {
	switch typed := target.(type) {
	case *Errno:
		return typed.Code == e.Code
	case Errno:
		return typed.Code == e.Code
	default:
		return false
	}
}

// Decode tries to convert an error to Errno
func Decode(err error) (int, string) {
	if err == nil {
		return OK.Code, OK.Message
	}

	switch typed := err.(type) {
	case *Errno:
		return typed.Code, typed.Message
	case Errno:
		return typed.Code, typed.Message
	default:
		return InternalServerError.Code, err.Error()
	}
}

// KindOf returns the kind of an error, KindInternal for anything foreign.
func KindOf(err error) Kind {
	switch typed := err.(type) {
	case *Errno:
		return typed.Kind
	case Errno:
		return typed.Kind
	default:
		return KindInternal
	}
}

// Common Errors
var (
	OK                  = Errno{Code: 0, Message: "Success"}
	InternalServerError = Errno{Code: 10001, Kind: KindInternal, Message: "Internal server error"}
	ErrBind             = Errno{Code: 10002, Kind: KindInvalidInput, Message: "Error occurred while binding the request body to the struct"}
	ErrTokenInvalid     = Errno{Code: 10003, Kind: KindUnauthenticated, Message: "Token invalid"}
	ErrDatabase         = Errno{Code: 10004, Kind: KindInternal, Message: "Database error"}
	ErrMissingID        = Errno{Code: 10005, Kind: KindInvalidInput, Message: "Missing or malformed id"}
)

// Actor / authorization errors (201xx)
var (
	ErrUserNotFound    = Errno{Code: 20101, Kind: KindNotFound, Message: "User not found"}
	ErrUserInactive    = Errno{Code: 20102, Kind: KindUnauthenticated, Message: "User account is not active"}
	ErrRoleNotAllowed  = Errno{Code: 20103, Kind: KindForbidden, Message: "Role is not allowed to perform this action"}
	ErrNotClaimParty   = Errno{Code: 20104, Kind: KindForbidden, Message: "Actor is neither the claim collector nor the item donor"}
	ErrNotItemDonor    = Errno{Code: 20105, Kind: KindForbidden, Message: "Only the item donor or an admin may do this"}
	ErrUserUnavailable = Errno{Code: 20106, Kind: KindUnavailable, Message: "User lookup failed"}
)

// Item errors (202xx)
var (
	ErrItemNotFound       = Errno{Code: 20201, Kind: KindNotFound, Message: "Item not found"}
	ErrItemNotClaimable   = Errno{Code: 20202, Kind: KindConflict, Message: "Item is not open for claims"}
	ErrShopMismatch       = Errno{Code: 20203, Kind: KindForbidden, Message: "Scan shop does not match the item drop-off location"}
	ErrShopNotFound       = Errno{Code: 20204, Kind: KindNotFound, Message: "Shop not found"}
	ErrNotPendingDropoff  = Errno{Code: 20205, Kind: KindConflict, Message: "Item is not pending drop-off"}
	ErrNotRecycleItem     = Errno{Code: 20206, Kind: KindConflict, Message: "Item is not a recycle item"}
	ErrRecycleSequence    = Errno{Code: 20207, Kind: KindConflict, Message: "Recycle steps must run in order"}
	ErrItemNotCompletable = Errno{Code: 20208, Kind: KindConflict, Message: "Item lifecycle does not allow completion"}
)

// Claim errors (203xx)
var (
	ErrClaimNotFound       = Errno{Code: 20301, Kind: KindNotFound, Message: "Claim not found"}
	ErrClaimExists         = Errno{Code: 20302, Kind: KindConflict, Message: "Collector already has a claim on this item"}
	ErrClaimNotApproved    = Errno{Code: 20303, Kind: KindConflict, Message: "Claim must be approved before completion"}
	ErrClaimTerminal       = Errno{Code: 20304, Kind: KindConflict, Message: "Rejected or cancelled claims cannot be completed"}
	ErrClaimNotCompletable = Errno{Code: 20305, Kind: KindConflict, Message: "Claim is not in a completable state"}
	ErrClaimNotPending     = Errno{Code: 20306, Kind: KindConflict, Message: "Claim is not pending approval"}
	ErrItemClaimApproved   = Errno{Code: 20307, Kind: KindConflict, Message: "Item already has an approved claim"}
)

// Wallet errors (204xx)
var (
	ErrWalletNotFound = Errno{Code: 20401, Kind: KindNotFound, Message: "Wallet not found"}
	ErrWalletFrozen   = Errno{Code: 20402, Kind: KindConflict, Message: "Wallet is frozen"}
)
