package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"net/http/pprof"

	"github.com/go-chi/chi/v5"
)

// RegisterPprof mounts the /debug/pprof endpoints behind an IP allowlist.
// With an empty allowlist nothing can reach them.
func RegisterPprof(r chi.Router, allowedCIDRs []string, logger *slog.Logger) {
	r.Group(func(g chi.Router) {
		g.Use(IPAllowlist(allowedCIDRs, logger))
		g.HandleFunc("/debug/pprof/*", pprof.Index)
		g.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		g.HandleFunc("/debug/pprof/profile", pprof.Profile)
		g.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		g.HandleFunc("/debug/pprof/trace", pprof.Trace)
	})
}

// IPAllowlist rejects requests whose client IP falls outside every given
// CIDR with a 403. Unparseable CIDRs are logged and dropped from the list;
// an unparseable client address is treated as outside.
func IPAllowlist(cidrs []string, logger *slog.Logger) func(http.Handler) http.Handler {
	var allowed []*net.IPNet
	for _, c := range cidrs {
		_, ipNet, err := net.ParseCIDR(c)
		if err != nil {
			logger.Warn("dropping malformed allowlist CIDR",
				slog.String("cidr", c),
				slog.String("error", err.Error()),
			)
			continue
		}
		allowed = append(allowed, ipNet)
	}

	permitted := func(remoteAddr string) bool {
		host, _, err := net.SplitHostPort(remoteAddr)
		if err != nil {
			host = remoteAddr
		}
		ip := net.ParseIP(host)
		if ip == nil {
			return false
		}
		for _, n := range allowed {
			if n.Contains(ip) {
				return true
			}
		}
		return false
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !permitted(r.RemoteAddr) {
				logger.Warn("blocked by IP allowlist",
					slog.String("remote_addr", r.RemoteAddr),
					slog.String("path", r.URL.Path),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error":{"code":"FORBIDDEN","message":"access restricted by IP allowlist"}}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
