package status

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danmuck/gbhost/internal/bus"
)

func (s *Server) registerRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  s.Appeared,
			"service": s.Name,
			"hosts":   len(s.hosts),
		})
	})

	s.router.GET("/hosts", func(c *gin.Context) {
		out := make([]gin.H, 0, len(s.hosts))
		for _, h := range s.hosts {
			out = append(out, hostSummary(h))
		}
		c.JSON(http.StatusOK, out)
	})

	s.router.GET("/hosts/:id", func(c *gin.Context) {
		id := c.Param("id")
		for _, h := range s.hosts {
			if h.ID.String() != id {
				continue
			}
			c.JSON(http.StatusOK, hostDetail(h))
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown host"})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func hostSummary(h *bus.Host) gin.H {
	return gin.H{
		"id":          h.ID.String(),
		"connections": h.ConnectionCount(),
		"cports_used": h.CPortsUsed(),
		"interfaces":  len(h.Interfaces()),
	}
}

func hostDetail(h *bus.Host) gin.H {
	conns := h.Connections()
	connsOut := make([]gin.H, 0, len(conns))
	for _, conn := range conns {
		connsOut = append(connsOut, gin.H{
			"local_cport":  conn.LocalCPort(),
			"remote_cport": conn.RemoteCPort(),
			"protocol":     uint8(conn.Protocol()),
			"interface":    conn.InterfaceID().String(),
			"pending_ops":  conn.PendingOperations(),
		})
	}

	intfs := h.Interfaces()
	intfsOut := make([]gin.H, 0, len(intfs))
	for _, intf := range intfs {
		m := intf.Module()
		intfsOut = append(intfsOut, gin.H{
			"id":          intf.ID.String(),
			"iface_id":    intf.IfaceID,
			"vendor":      m.Vendor,
			"product":     m.Product,
			"version":     m.Version,
			"serial":      m.SerialNumber,
			"cports":      intf.CPorts(),
			"connections": intf.ConnectionCount(),
		})
	}

	out := hostSummary(h)
	out["connections_detail"] = connsOut
	out["interfaces_detail"] = intfsOut
	return out
}
