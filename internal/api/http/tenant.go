package http

import (
	"strings"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"

	"github.com/rise-and-shine/docstore/http/server"
	"github.com/rise-and-shine/docstore/meta"
)

const (
	// CodeTenantUnresolved is returned when no tenant can be derived from
	// the request.
	CodeTenantUnresolved = "TENANT_UNRESOLVED"

	headerTenantID = "X-Tenant-ID"
	headerUserID   = "X-User-ID"

	tenantMWPriority = 650

	// minHostLabels is the label count of "<tenant>.<domain>.<tld>".
	minHostLabels = 3
)

// NewTenantResolveMW resolves the tenant namespace for every request before
// any catalog or storage access. The first label of the request host is the
// tenant; an explicit X-Tenant-ID header overrides it. The acting user id is
// taken from the X-User-ID header set by the authenticating proxy.
//
// Editor callback routes are exempt: the external editor calls them from
// outside any tenant host, and they carry the tenant in their path instead.
func NewTenantResolveMW() server.Middleware {
	return server.Middleware{
		Priority: tenantMWPriority,
		Handler: func(c *fiber.Ctx) error {
			if strings.HasPrefix(c.Path(), "/v1/editor/callback/") {
				return c.Next()
			}

			tenantID := c.Get(headerTenantID)
			if tenantID == "" {
				tenantID = tenantFromHost(c.Hostname())
			}
			if tenantID == "" {
				return errx.New(
					"tenant could not be resolved from request",
					errx.WithCode(CodeTenantUnresolved),
					errx.WithType(errx.T_Authentication),
				)
			}

			actorID := c.Get(headerUserID)

			ctx := meta.InjectMetaToContext(c.UserContext(), map[meta.ContextKey]string{
				meta.TenantID: tenantID,
				meta.ActorID:  actorID,
			})
			c.SetUserContext(ctx)
			c.Locals(meta.TenantID, tenantID)
			c.Locals(meta.ActorID, actorID)

			return c.Next()
		},
	}
}

// tenantFromHost extracts the tenant label from a host like
// "acme.docs.example.com". Hosts without a tenant label yield "".
func tenantFromHost(host string) string {
	host = strings.ToLower(host)
	if h, _, ok := strings.Cut(host, ":"); ok {
		host = h
	}

	labels := strings.Split(host, ".")
	if len(labels) < minHostLabels || labels[0] == "" || labels[0] == "www" {
		return ""
	}
	return labels[0]
}
