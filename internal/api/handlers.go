package api

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/rileyhilliard/pingdeck/internal/stats"
	"github.com/rileyhilliard/pingdeck/internal/supervisor"
)

// Health is the /api/health response.
type Health struct {
	Status  string `json:"status"`
	Mode    string `json:"mode"`
	Paused  bool   `json:"paused"`
	Running int    `json:"running"`
	Hosts   int    `json:"hosts"`
}

// HostStatus is one host in /api/hosts.
type HostStatus struct {
	supervisor.Host
	Stats stats.Summary `json:"stats"`
}

func (s *Server) getHealth(c echo.Context) error {
	store := s.session.Store()
	return c.JSON(http.StatusOK, Health{
		Status:  "ok",
		Mode:    store.Kind().String(),
		Paused:  s.session.Paused(),
		Running: s.session.Running(),
		Hosts:   len(store.Hosts()),
	})
}

func (s *Server) listHosts(c echo.Context) error {
	snapshot := s.session.Store().Snapshot()
	hosts := s.session.Hosts()

	out := make([]HostStatus, 0, len(hosts))
	for _, h := range hosts {
		out = append(out, HostStatus{Host: h, Stats: snapshot[h.Addr].Summary()})
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) getHost(c echo.Context) error {
	addr, err := url.PathUnescape(c.Param("addr"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid host address")
	}

	for _, h := range s.session.Hosts() {
		if h.Addr != addr {
			continue
		}
		st, _ := s.session.Store().Get(addr)
		return c.JSON(http.StatusOK, HostStatus{Host: h, Stats: st.Summary()})
	}
	return echo.NewHTTPError(http.StatusNotFound, "unknown host "+addr)
}
