// Package logline assembles the one-line summary written for each inbound request.
package logline

import (
	"net"
	"net/http"
	"strings"

	"request-logger/internal/settings"
)

// Request is the read-only part of an inbound request the log line is built from.
type Request struct {
	RemoteAddr string
	Method     string
	URI        string
	RawQuery   string
	// HasQuery is false when the request line carried no "?" at all.
	HasQuery bool
}

// FromHTTP extracts a Request from r. The port is stripped from the remote address
// and the path is kept in its escaped form, as the client sent it.
func FromHTTP(r *http.Request) Request {
	addr := r.RemoteAddr
	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}

	return Request{
		RemoteAddr: addr,
		Method:     r.Method,
		URI:        r.URL.EscapedPath(),
		RawQuery:   r.URL.RawQuery,
		HasQuery:   r.URL.RawQuery != "" || r.URL.ForceQuery,
	}
}

// Build returns the log line for req under snap, or ok=false when nothing is configured to be logged.
// An error means snap is missing a key.
func Build(req Request, snap *settings.Snapshot) (line string, ok bool, err error) {
	tmpl := snap.Template()

	ip, hasIP, err := ipElement(req, snap)
	if err != nil {
		return "", false, err
	}
	method, hasMethod, err := methodPart(req, snap)
	if err != nil {
		return "", false, err
	}
	uri, hasURI, err := uriPart(req, snap)
	if err != nil {
		return "", false, err
	}
	query, err := queryPart(req, snap)
	if err != nil {
		return "", false, err
	}

	elements := make([]string, 0, 2)
	if hasIP {
		elements = append(elements, ip)
	}

	switch {
	case hasMethod && hasURI:
		elements = append(elements, tmpl.Format("URI", method+" "+uri+query))
	case hasURI:
		elements = append(elements, tmpl.Format("URI", uri+query))
	case hasMethod:
		// query is dropped together with the URI
		elements = append(elements, tmpl.Format("URI", method))
	}

	if len(elements) == 0 {
		return "", false, nil
	}
	return strings.Join(elements, ", "), true, nil
}

func ipElement(req Request, snap *settings.Snapshot) (string, bool, error) {
	enabled, err := snap.Bool(settings.KeyIPAddressEnabled)
	if err != nil || !enabled {
		return "", false, err
	}
	return snap.Template().Format("IP", req.RemoteAddr), true, nil
}

func methodPart(req Request, snap *settings.Snapshot) (string, bool, error) {
	enabled, err := snap.Bool(settings.KeyHTTPMethodEnabled)
	if err != nil || !enabled {
		return "", false, err
	}

	logged, err := snap.String(settings.KeyHTTPMethodsLogged)
	if err != nil {
		return "", false, err
	}
	if logged == settings.Wildcard {
		return req.Method, true, nil
	}
	// entries are compared as written, without trimming
	for _, m := range strings.Split(logged, ",") {
		if strings.EqualFold(m, req.Method) {
			return req.Method, true, nil
		}
	}
	return "", false, nil
}

func uriPart(req Request, snap *settings.Snapshot) (string, bool, error) {
	enabled, err := snap.Bool(settings.KeyURIEnabled)
	if err != nil || !enabled {
		return "", false, err
	}
	if !snap.MatchURI(req.URI) {
		return "", false, nil
	}
	return req.URI, true, nil
}

func queryPart(req Request, snap *settings.Snapshot) (string, error) {
	enabled, err := snap.Bool(settings.KeyURIQueryParamsEnabled)
	if err != nil || !enabled || !req.HasQuery {
		return "", err
	}
	return "?" + req.RawQuery, nil
}
