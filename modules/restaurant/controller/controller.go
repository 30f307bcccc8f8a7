package controller

import (
	"restaurant-directory/core/controller"
	"restaurant-directory/modules/restaurant/service"
)

type RestaurantController struct {
	controller.BaseController
	RestaurantService service.RestaurantServiceInterface
}

func NewRestaurantController(service service.RestaurantServiceInterface) *RestaurantController {
	return &RestaurantController{
		BaseController:    controller.NewBaseController(),
		RestaurantService: service,
	}
}
