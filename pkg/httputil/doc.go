// Package httputil holds the retry and wait helpers used for dataset
// downloads.
//
// A [Policy] re-runs an operation with doubling waits, but only for errors
// the caller marked as transient by wrapping them in [RetryableError]:
//
//	p := httputil.Policy{Attempts: 3, Initial: 500 * time.Millisecond, Max: 8 * time.Second}
//	err := p.Do(ctx, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    ...
//	})
//
// Everything else (4xx responses, malformed JSON) fails on the first
// attempt. [Retry] is the short form for a policy without a cap.
package httputil
