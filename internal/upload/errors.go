package upload

import (
	"context"
	"errors"
	"fmt"
)

// ErrorKind classifies an upload failure
type ErrorKind string

const (
	KindInvalidCredential     ErrorKind = "invalid_credential"
	KindServerInfoUnavailable ErrorKind = "server_info_unavailable"
	KindEmptyFile             ErrorKind = "empty_file"
	KindNetwork               ErrorKind = "network"
	KindDecode                ErrorKind = "decode_error"
	KindProtocolMismatch      ErrorKind = "protocol_mismatch"
	KindUnknown               ErrorKind = "unknown"
)

// Error is the failure outcome of an upload. Detail is the human-readable message;
// for protocol mismatches it carries the raw response payload.
type Error struct {
	Kind    ErrorKind
	Service ServiceID
	Detail  string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Detail
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg = msg + ": " + e.Err.Error()
		}
	}
	return fmt.Sprintf("%s: %s", e.Service, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of err. Errors not produced by an adapter are KindUnknown,
// and a cancelled context is reported as KindNetwork.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var uerr *Error
	if errors.As(err, &uerr) {
		return uerr.Kind
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return KindNetwork
	}
	return KindUnknown
}

func failure(service ServiceID, kind ErrorKind, detail string, err error) *Error {
	return &Error{Kind: kind, Service: service, Detail: detail, Err: err}
}
