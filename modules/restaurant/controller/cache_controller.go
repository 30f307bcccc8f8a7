package controller

import (
	"github.com/labstack/echo/v4"
)

// PrivateGetCacheStats godoc
// @Summary Redis statistics for the restaurant cache
// @Tags cache
// @Security BearerAuth
// @Success 200 {object} controller.SuccessResponse{data=dto.CacheStatsResponse}
// @Router /private/cache/stats [get]
func (controller *RestaurantController) PrivateGetCacheStats(c echo.Context) error {
	stats := controller.RestaurantService.CacheStats(c.Request().Context())
	return controller.SuccessResponse(c, stats, "get cache stats success")
}

// PrivateWarmUpCache godoc
// @Summary Load every restaurant into the cache
// @Tags cache
// @Security BearerAuth
// @Success 200 {object} controller.SuccessResponse{data=dto.WarmUpResponse}
// @Failure 503 {object} controller.ErrorResponse
// @Router /private/cache/warm-up [post]
func (controller *RestaurantController) PrivateWarmUpCache(c echo.Context) error {
	result, err := controller.RestaurantService.WarmUpCache(c.Request().Context())
	if err != nil {
		return controller.ErrorResponse(c, err)
	}
	return controller.SuccessResponse(c, result, "warm up cache success")
}

// PrivateClearCache godoc
// @Summary Remove every restaurant cache entry
// @Tags cache
// @Security BearerAuth
// @Success 200 {object} controller.SuccessResponse{data=dto.ClearCacheResponse}
// @Failure 503 {object} controller.ErrorResponse
// @Router /private/cache [delete]
func (controller *RestaurantController) PrivateClearCache(c echo.Context) error {
	result, err := controller.RestaurantService.ClearCache(c.Request().Context())
	if err != nil {
		return controller.ErrorResponse(c, err)
	}
	return controller.SuccessResponse(c, result, "clear cache success")
}
