// Package httpapi implements the CatalogGateway driven port against the
// remote recipe catalog and favorites services over HTTP/JSON.
//
// Failures are mapped onto the domain error taxonomy: transport errors
// and timeouts become domain.ErrNetwork (transient, retryable), non-2xx
// responses become domain.ErrRemote. Favorite pushes are retried with
// bounded exponential backoff on transient failures only and are rate
// limited so toggle bursts do not hammer the favorites service.
package httpapi
