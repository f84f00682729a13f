package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Result is the backend's reply envelope for mutating endpoints. OK false
// means the backend refused the request; Msg carries its reason either way.
type Result struct {
	OK  bool
	Msg string
}

// ErrNoBrands covers every way /brands can come back unusable: empty list,
// non-array payload, or a rejected request.
var ErrNoBrands = errors.New("api: no brands available")

// StatusError is a non-2xx reply whose body was not a valid envelope.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api: backend returned %d: %s", e.Code, e.Body)
}

// MalformedError is a reply that parsed as JSON but is missing required
// envelope fields, or did not parse at all.
type MalformedError struct {
	Reason string
}

func (e *MalformedError) Error() string {
	return "api: malformed backend response: " + e.Reason
}

// rawResult keeps both fields as pointers so a missing key is
// distinguishable from a zero value.
type rawResult struct {
	OK  *bool   `json:"ok"`
	Msg *string `json:"msg"`
}

func decodeResult(body []byte) (Result, error) {
	var raw rawResult
	if err := json.Unmarshal(body, &raw); err != nil {
		return Result{}, &MalformedError{Reason: "not a JSON object"}
	}
	if raw.OK == nil {
		return Result{}, &MalformedError{Reason: `missing "ok"`}
	}
	if raw.Msg == nil {
		return Result{}, &MalformedError{Reason: `missing "msg"`}
	}
	return Result{OK: *raw.OK, Msg: *raw.Msg}, nil
}
