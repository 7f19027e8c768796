package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"mediaapi/internal/http/middleware"
	"mediaapi/internal/route"
)

// LoadLanguages answers the store-api language listing for the resolved sales channel.
//
// @Summary  List languages of a sales channel
// @Tags     store-api
// @Produce  json
// @Param    sw-access-key    header string true  "sales channel access key"
// @Param    sw-context-token header string false "context token"
// @Param    page   query int    false "page"  default(1)
// @Param    limit  query int    false "limit" default(100)
// @Param    filter query string false "name or locale prefix"
// @Success  200 {object} route.LanguageRouteResponse
// @Failure  401 {object} errorPayload
// @Router   /store-api/language [get]
func LoadLanguages(rt route.LanguageRoute) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sc, ok := middleware.GetSalesChannelContext(c)
		if !ok {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "sales channel could not be resolved")
		}

		page, err := strconv.Atoi(c.Query("page", "1"))
		if err != nil || page < 1 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAGE", "page must be a positive integer")
		}
		limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(route.DefaultLanguageLimit)))
		if err != nil || limit < 1 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "limit must be a positive integer")
		}

		res, err := rt.Load(c.UserContext(), route.LanguageRequest{
			Page:   page,
			Limit:  limit,
			Filter: c.Query("filter"),
		}, sc)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}
