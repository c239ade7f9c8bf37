package api

import (
	"fmt"
	"net/http"
	"net/netip"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/turris-cz/turrishw/src/internal/log"
)

// AccessPolicy restricts the API to clients on local networks.
//
// A request is attributed to its TCP peer. X-Forwarded-For is only read when
// the peer is a trusted proxy; it is then walked from the right, skipping
// further trusted hops, so entries a client prepends are never used.
type AccessPolicy struct {
	proxies []netip.Prefix
}

// NewAccessPolicy creates a policy trusting the given proxy CIDRs. No
// proxies means forwarding headers are ignored.
func NewAccessPolicy(trustedProxies []string) (*AccessPolicy, error) {
	p := &AccessPolicy{}
	for _, s := range trustedProxies {
		prefix, err := netip.ParsePrefix(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", s, err)
		}
		p.proxies = append(p.proxies, prefix.Masked())
	}
	return p, nil
}

func (p *AccessPolicy) isProxy(addr netip.Addr) bool {
	if p == nil {
		return false
	}
	for _, prefix := range p.proxies {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// ClientAddr returns the address r is attributed to. It reports false when
// the peer or a forwarded hop cannot be parsed.
func (p *AccessPolicy) ClientAddr(r *http.Request) (netip.Addr, bool) {
	client, ok := parseAddr(r.RemoteAddr)
	if !ok || !p.isProxy(client) {
		return client, ok
	}

	hops := forwardedHops(r.Header.Values("X-Forwarded-For"))
	for i := len(hops) - 1; i >= 0; i-- {
		addr, ok := parseAddr(hops[i])
		if !ok {
			return netip.Addr{}, false
		}
		client = addr
		if !p.isProxy(addr) {
			break
		}
	}
	return client, true
}

// LocalOnly rejects clients outside the loopback, private and link-local
// ranges.
func (p *AccessPolicy) LocalOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		addr, ok := p.ClientAddr(r)
		switch {
		case !ok:
			log.WithField("remote", r.RemoteAddr).Warnf("Rejecting request with unparsable client address")
			WriteForbidden(w, "Access denied")
		case !isLocal(addr):
			log.WithField("remote", r.RemoteAddr).Warnf("Rejecting request from %s", addr)
			WriteForbidden(w, "Access denied: only local networks are allowed")
		default:
			next.ServeHTTP(w, r)
		}
	})
}

func isLocal(addr netip.Addr) bool {
	return addr.IsLoopback() || addr.IsPrivate() || addr.IsLinkLocalUnicast()
}

// parseAddr accepts both "host:port" and a bare address. IPv4-mapped IPv6
// addresses are reduced to IPv4.
func parseAddr(s string) (netip.Addr, bool) {
	s = strings.TrimSpace(s)
	if ap, err := netip.ParseAddrPort(s); err == nil {
		return ap.Addr().Unmap(), true
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.Unmap(), true
}

// forwardedHops flattens X-Forwarded-For values, oldest hop first.
func forwardedHops(values []string) []string {
	var hops []string
	for _, v := range values {
		for _, hop := range strings.Split(v, ",") {
			if hop = strings.TrimSpace(hop); hop != "" {
				hops = append(hops, hop)
			}
		}
	}
	return hops
}

// Logger logs one line per request.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		log.WithField("remote", r.RemoteAddr).Infof("%s %s - %d %dB (%v)",
			r.Method, r.URL.RequestURI(), status, ww.BytesWritten(), time.Since(start))
	})
}

// Recovery turns a handler panic into a 500 response.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			log.WithField("path", r.URL.Path).Errorf("Handler panic: %v", rec)
			log.Debugf("%s", debug.Stack())
			WriteInternalError(w, "Internal server error")
		}()
		next.ServeHTTP(w, r)
	})
}

// CORS allows read-only cross-origin requests and answers preflights.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
