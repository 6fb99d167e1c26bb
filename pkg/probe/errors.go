package probe

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net"
	"net/url"
	"os"
	"strings"
	"syscall"
)

// ErrorKind is the probe failure taxonomy. The classifier never inspects
// kinds beyond "is an error present"; kinds exist for output and triage.
type ErrorKind string

const (
	KindTimeout     ErrorKind = "timeout"
	KindDNS         ErrorKind = "dns_failure"
	KindTLS         ErrorKind = "tls_error"
	KindConnRefused ErrorKind = "connection_refused"
	KindNetwork     ErrorKind = "network_error"
)

// Error is a structured probe failure.
type Error struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// classifyErr maps a transport error onto the probe error taxonomy.
// url.Error wrappers from http.Client.Do are unwrapped first.
func classifyErr(err error) *Error {
	msg := err.Error()
	var uerr *url.Error
	if errors.As(err, &uerr) {
		err = uerr.Err
	}

	switch {
	case isTimeout(err):
		return &Error{Kind: KindTimeout, Message: msg}
	case isDNS(err):
		return &Error{Kind: KindDNS, Message: msg}
	case isTLS(err):
		return &Error{Kind: KindTLS, Message: msg}
	case errors.Is(err, syscall.ECONNREFUSED):
		return &Error{Kind: KindConnRefused, Message: msg}
	default:
		return &Error{Kind: KindNetwork, Message: msg}
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}

func isDNS(err error) bool {
	var derr *net.DNSError
	return errors.As(err, &derr)
}

func isTLS(err error) bool {
	var (
		record tls.RecordHeaderError
		verify *tls.CertificateVerificationError
		cert   x509.CertificateInvalidError
		host   x509.HostnameError
		auth   x509.UnknownAuthorityError
	)
	if errors.As(err, &record) || errors.As(err, &verify) ||
		errors.As(err, &cert) || errors.As(err, &host) || errors.As(err, &auth) {
		return true
	}
	// Handshake alerts surface as opaque errors; fall back to the message.
	return strings.Contains(err.Error(), "tls:")
}
