// Package summaries provides the authenticated HTTP client for the
// summarization backend.
//
// # Overview
//
// The backend is an opaque HTTP service with six POST endpoints. Client
// exposes one method per endpoint, attaches the bearer token from a
// TokenSource, and classifies every outcome the same way.
//
//	tokens := credential.NewStore(storage, nil, logger)
//	client, err := summaries.NewClient("http://localhost:8008", tokens)
//	if err != nil {
//		return err
//	}
//	raw, err := client.GetSummary(ctx, "42")
//	if summaries.IsNotFound(err) {
//		// show "not found"
//	}
//
// # Endpoints
//
//   - POST /get_summaries: body {}
//   - POST /get_summary: body {"id"}
//   - POST /remove_summary: body {"audio_file_name"}
//   - POST /update_title: body {"audio_file_name", "recording_name"}
//   - POST /summarizing_completed: caller-supplied body
//   - POST /upload: multipart form, file under "file"
//
// # Request Handling
//
// JSON requests carry Content-Type: application/json and
// Authorization: Bearer <token>. The token is resolved on first use and
// cached until Logout. An absent token is sent as the literal "Bearer null";
// this layer does not validate credentials. Uploads carry only the
// Authorization header (plus the multipart content type) and resolve the
// token fresh on each call.
//
// Every request also carries a User-Agent and a random X-Request-ID that
// appears in the log line for the outcome.
//
// There are no retries, no request timeouts and no queuing here. Bound a
// call with the context you pass in.
//
// # Outcomes
//
// A 2xx response returns the body as json.RawMessage without schema checks.
// Failures are one of three types, each logged at error level before it is
// returned:
//
//   - *TransportError: no response. Error() is the cause's own message.
//   - *APIError: non-2xx. Error() is the body's "message" field, or a
//     generic "<endpoint> failed with status N" when there is none.
//   - *ParseError: 2xx with a body that is not JSON.
//
// DecodeSummaries, DecodeSummary and DecodeStatus give typed access for
// callers that want it.
package summaries
