package middleware

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"mediaapi/internal/repository"
	"mediaapi/internal/route"
)

const (
	// AccessKeyHeader authenticates a store-api call against a sales channel.
	AccessKeyHeader = "sw-access-key"
	// ContextTokenHeader carries the storefront session token.
	ContextTokenHeader = "sw-context-token"
	// SalesChannelLocalKey is the Fiber locals key holding the route.SalesChannelContext.
	SalesChannelLocalKey = "sales_channel_context"
)

// SalesChannel resolves the sw-access-key header to a sales channel and stores a
// route.SalesChannelContext in locals. Unknown or missing keys are rejected with 401.
func SalesChannel(repo repository.SalesChannelRepository, log *zap.Logger) fiber.Handler {
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *fiber.Ctx) error {
		key := c.Get(AccessKeyHeader)
		if key == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing "+AccessKeyHeader+" header")
		}

		sc, err := repo.FindByAccessKey(c.UserContext(), key)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fiber.NewError(fiber.StatusUnauthorized, "invalid "+AccessKeyHeader)
			}
			log.Error("sales channel lookup failed", zap.String("request_id", GetRequestID(c)), zap.Error(err))
			return err
		}

		token := c.Get(ContextTokenHeader)
		c.Locals(SalesChannelLocalKey, route.SalesChannelContext{
			SalesChannelID: sc.ID,
			LanguageID:     sc.DefaultLanguageID,
			Token:          token,
		})
		if token != "" {
			c.Set(ContextTokenHeader, token)
		}
		return c.Next()
	}
}

// GetSalesChannelContext returns the context stored by SalesChannel.
func GetSalesChannelContext(c *fiber.Ctx) (route.SalesChannelContext, bool) {
	sc, ok := c.Locals(SalesChannelLocalKey).(route.SalesChannelContext)
	return sc, ok
}
