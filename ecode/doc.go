// Package ecode defines the business codes carried in every response envelope
// and the typed error used to move a classified failure from the store or the
// request pipeline up to the response layer.
//
// # Code Convention
//
//   - 0: Success (OK)
//   - -400 to -499: Request errors (bad input, missing resource, conflict)
//   - -500+: Server errors
//
// # Usage
//
//	err := ecode.ErrNotFound.Wrap(sql.ErrNoRows)
//	if ecode.Is(err, ecode.NothingFound) {
//	    status := ecode.ToHTTPStatus(ecode.NothingFound) // 404
//	}
//
// Human-readable text for a code:
//
//	ecode.Text(ecode.Conflict) // "Resource conflict"
package ecode
