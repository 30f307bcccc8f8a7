package controller

import (
	"restaurant-directory/core/errors"
	"restaurant-directory/core/params"
	"restaurant-directory/core/utils"
	"restaurant-directory/modules/restaurant/dto"
	"restaurant-directory/modules/restaurant/validator"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// PublicGetRestaurants godoc
// @Summary List restaurants
// @Description Filter by name substring, weekday and time of day
// @Tags restaurants
// @Produce json
// @Param name query string false "Name contains (case-insensitive)"
// @Param day query string false "Weekday, e.g. Monday or Mon"
// @Param time query string false "Time of day, HH:MM (24h)"
// @Param page_number query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} controller.SuccessResponse{data=dto.RestaurantListResponse}
// @Failure 400 {object} controller.ErrorResponse
// @Router /restaurants [get]
func (controller *RestaurantController) PublicGetRestaurants(c echo.Context) error {
	ctx := c.Request().Context()

	queryParams := params.NewQueryParams(c)
	name := c.QueryParam("name")
	if name == "" {
		name = queryParams.Search
	}

	query, validationResult := validator.ValidateListQuery(name, c.QueryParam("day"), c.QueryParam("time"))
	if validationResult.HasError() {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	restaurants, err := controller.RestaurantService.List(ctx, query, queryParams)
	if err != nil {
		return controller.ErrorResponse(c, err)
	}

	return controller.SuccessResponse(c, restaurants, "get restaurants success")
}

// PublicGetRestaurantById godoc
// @Summary Get a restaurant
// @Tags restaurants
// @Produce json
// @Param id path string true "Restaurant ID"
// @Success 200 {object} controller.SuccessResponse{data=dto.RestaurantResponse}
// @Failure 404 {object} controller.ErrorResponse
// @Router /restaurants/{id} [get]
func (controller *RestaurantController) PublicGetRestaurantById(c echo.Context) error {
	ctx := c.Request().Context()

	restaurantId, errParam := controller.restaurantID(c)
	if errParam != nil {
		return errParam
	}

	restaurant, err := controller.RestaurantService.Get(ctx, restaurantId)
	if err != nil {
		return controller.ErrorResponse(c, err)
	}

	return controller.SuccessResponse(c, restaurant, "get restaurant success")
}

// PublicGetRestaurantBySlug godoc
// @Summary Get a restaurant by slug
// @Tags restaurants
// @Produce json
// @Param slug path string true "Restaurant slug"
// @Success 200 {object} controller.SuccessResponse{data=dto.RestaurantResponse}
// @Failure 404 {object} controller.ErrorResponse
// @Router /restaurants/slug/{slug} [get]
func (controller *RestaurantController) PublicGetRestaurantBySlug(c echo.Context) error {
	ctx := c.Request().Context()

	restaurant, err := controller.RestaurantService.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		return controller.ErrorResponse(c, err)
	}

	return controller.SuccessResponse(c, restaurant, "get restaurant success")
}

// PublicGetOpeningHours godoc
// @Summary Show how a restaurant's opening hours were parsed
// @Tags restaurants
// @Produce json
// @Param id path string true "Restaurant ID"
// @Success 200 {object} controller.SuccessResponse{data=dto.OpeningHoursResponse}
// @Router /restaurants/{id}/opening-hours [get]
func (controller *RestaurantController) PublicGetOpeningHours(c echo.Context) error {
	ctx := c.Request().Context()

	restaurantId, errParam := controller.restaurantID(c)
	if errParam != nil {
		return errParam
	}

	openingHours, err := controller.RestaurantService.OpeningHours(ctx, restaurantId)
	if err != nil {
		return controller.ErrorResponse(c, err)
	}

	return controller.SuccessResponse(c, openingHours, "get opening hours success")
}

// PublicCheckOpen godoc
// @Summary Check whether a restaurant is open
// @Tags restaurants
// @Produce json
// @Param id path string true "Restaurant ID"
// @Param day query string false "Weekday"
// @Param time query string false "Time of day, HH:MM"
// @Success 200 {object} controller.SuccessResponse{data=dto.CheckOpenResponse}
// @Failure 400 {object} controller.ErrorResponse
// @Router /restaurants/{id}/check-open [get]
func (controller *RestaurantController) PublicCheckOpen(c echo.Context) error {
	ctx := c.Request().Context()

	restaurantId, errParam := controller.restaurantID(c)
	if errParam != nil {
		return errParam
	}

	query, validationResult := validator.ValidateListQuery("", c.QueryParam("day"), c.QueryParam("time"))
	if validationResult.HasError() {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	result, err := controller.RestaurantService.CheckOpen(ctx, restaurantId, query)
	if err != nil {
		return controller.ErrorResponse(c, err)
	}

	return controller.SuccessResponse(c, result, "check open success")
}

// PrivateCreateRestaurant godoc
// @Summary Create a restaurant
// @Tags restaurants-admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateRestaurantRequest true "Restaurant"
// @Success 201 {object} controller.SuccessResponse{data=dto.RestaurantResponse}
// @Failure 400 {object} controller.ErrorResponse
// @Router /private/restaurants [post]
func (controller *RestaurantController) PrivateCreateRestaurant(c echo.Context) error {
	ctx := c.Request().Context()

	requestData := new(dto.CreateRestaurantRequest)
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}

	validationResult := validator.ValidateCreateRestaurant(requestData)
	if validationResult.HasError() {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	restaurant, err := controller.RestaurantService.Create(ctx, requestData)
	if err != nil {
		return controller.ErrorResponse(c, err)
	}

	return controller.CreatedResponse(c, restaurant, "create restaurant success")
}

// PrivateUpdateRestaurant godoc
// @Summary Update a restaurant
// @Tags restaurants-admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Restaurant ID"
// @Param body body dto.UpdateRestaurantRequest true "Fields to change"
// @Success 200 {object} controller.SuccessResponse{data=dto.RestaurantResponse}
// @Router /private/restaurants/{id} [put]
func (controller *RestaurantController) PrivateUpdateRestaurant(c echo.Context) error {
	ctx := c.Request().Context()

	restaurantId, errParam := controller.restaurantID(c)
	if errParam != nil {
		return errParam
	}

	requestData := new(dto.UpdateRestaurantRequest)
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}

	validationResult := validator.ValidateUpdateRestaurant(requestData)
	if validationResult.HasError() {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	restaurant, err := controller.RestaurantService.Update(ctx, restaurantId, requestData)
	if err != nil {
		return controller.ErrorResponse(c, err)
	}

	return controller.SuccessResponse(c, restaurant, "update restaurant success")
}

// PrivateDeleteRestaurant godoc
// @Summary Delete a restaurant
// @Tags restaurants-admin
// @Security BearerAuth
// @Param id path string true "Restaurant ID"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/restaurants/{id} [delete]
func (controller *RestaurantController) PrivateDeleteRestaurant(c echo.Context) error {
	ctx := c.Request().Context()

	restaurantId, errParam := controller.restaurantID(c)
	if errParam != nil {
		return errParam
	}

	if err := controller.RestaurantService.Delete(ctx, restaurantId); err != nil {
		return controller.ErrorResponse(c, err)
	}

	return controller.SuccessResponse(c, nil, "delete restaurant success")
}

// PrivateGetUnparseable godoc
// @Summary List restaurants whose opening hours cannot be parsed
// @Tags restaurants-admin
// @Security BearerAuth
// @Success 200 {object} controller.SuccessResponse{data=dto.UnparseableResponse}
// @Router /private/restaurants/unparseable [get]
func (controller *RestaurantController) PrivateGetUnparseable(c echo.Context) error {
	ctx := c.Request().Context()

	report, err := controller.RestaurantService.Unparseable(ctx)
	if err != nil {
		return controller.ErrorResponse(c, err)
	}

	return controller.SuccessResponse(c, report, "get unparseable restaurants success")
}

// PrivateExportRestaurants godoc
// @Summary Export the directory to object storage
// @Tags restaurants-admin
// @Security BearerAuth
// @Param async query bool false "Queue the export for a worker"
// @Success 200 {object} controller.SuccessResponse{data=dto.ExportResponse}
// @Failure 503 {object} controller.ErrorResponse
// @Router /private/restaurants/export [post]
func (controller *RestaurantController) PrivateExportRestaurants(c echo.Context) error {
	ctx := c.Request().Context()

	async, _ := strconv.ParseBool(c.QueryParam("async"))
	if async {
		result, err := controller.RestaurantService.ScheduleExport(ctx)
		if err != nil {
			return controller.ErrorResponse(c, err)
		}
		return controller.SuccessResponse(c, result, "export queued")
	}

	result, err := controller.RestaurantService.Export(ctx)
	if err != nil {
		return controller.ErrorResponse(c, err)
	}

	return controller.SuccessResponse(c, result, "export success")
}

func (controller *RestaurantController) restaurantID(c echo.Context) (uuid.UUID, error) {
	id := utils.ToUUID(c.Param("id"))
	if id == uuid.Nil {
		return uuid.Nil, controller.BadRequest(errors.ErrInvalidInput, "Invalid restaurant id", nil)
	}
	return id, nil
}
