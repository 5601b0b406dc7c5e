package auth

// Principal is the in-process identity of an authenticated caller, derived
// exclusively from verified token claims. It lives for one request and holds
// no reference to any stored user record: outside the auth service the
// claims are the only ground truth about the caller.
type Principal struct {
	ID            int64
	Name          string
	Authenticated bool
}
