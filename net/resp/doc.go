// Package resp provides the response envelope every posts endpoint returns,
// the classifier that turns a failure into an envelope, and the writers that
// put either on the wire.
//
// # Envelope
//
//	{
//	  "code": 0,                 // Business code (0 = success)
//	  "is_success": true,
//	  "message": "ok",           // Optional summary
//	  "error_messages": [],      // Non-empty whenever a fault was caught
//	  "result": {...}            // Payload, absent on failure
//	}
//
// # Building
//
//	resp.Write(w, resp.Success(dto))
//	resp.Write(w, resp.Created(dto))
//	resp.Write(w, resp.NotFound("resource not found"))
//	resp.Write(w, resp.Classify(err))
//
// Field-level validation failures are not enveloped; they are written as a
// plain field to messages map with WriteJSON:
//
//	resp.WriteJSON(w, http.StatusBadRequest, violations)
package resp
