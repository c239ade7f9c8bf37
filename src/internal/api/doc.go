// Package api provides the read-only REST API of turrishw.
//
// Endpoints:
//   - GET /api/v1/interfaces[?type=eth&type=wifi] classified interfaces
//   - GET /api/v1/interfaces/{name} a single interface
//   - GET /api/v1/board detected board
//   - GET /api/v1/health usability of the hardware view, 503 when unhealthy
//   - GET /metrics Prometheus metrics
//
// Every request reads the hardware again; nothing is cached between requests.
// Access is restricted to loopback, private and link-local clients, judged by
// the TCP peer. X-Forwarded-For is only honored from configured trusted
// proxies, see AccessPolicy.
//
// # Response Format
//
// All successful responses wrap data in a "data" field:
//
//	{
//	  "data": { /* response payload */ }
//	}
//
// The interfaces payload is an object keyed by interface name in natural
// order.
//
// Error responses use the following format:
//
//	{
//	  "error": {
//	    "code": "ERROR_CODE",
//	    "message": "Human-readable error message",
//	    "details": { /* optional context */ }
//	  }
//	}
package api
