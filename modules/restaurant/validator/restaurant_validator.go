package validator

import (
	"errors"
	"restaurant-directory/core/controller"
	"restaurant-directory/modules/restaurant/dto"
	"restaurant-directory/modules/restaurant/hours"
	"strings"
	"unicode/utf8"
)

const maxNameLength = 255

func ValidateCreateRestaurant(req *dto.CreateRestaurantRequest) *controller.ValidationResult {
	result := &controller.ValidationResult{}
	validateName(result, req.Name)
	if strings.TrimSpace(req.OpeningHours) == "" {
		result.Add("opening_hours", "opening_hours is required")
	}
	return result
}

func ValidateUpdateRestaurant(req *dto.UpdateRestaurantRequest) *controller.ValidationResult {
	result := &controller.ValidationResult{}
	if req.Name == nil && req.OpeningHours == nil {
		result.Add("body", "at least one of name or opening_hours is required")
		return result
	}
	if req.Name != nil {
		validateName(result, *req.Name)
	}
	if req.OpeningHours != nil && strings.TrimSpace(*req.OpeningHours) == "" {
		result.Add("opening_hours", "opening_hours must not be empty")
	}
	return result
}

// ValidateListQuery parses the list filters with hours.ParseQuery and maps
// a failure onto the offending fields.
func ValidateListQuery(name, day, clock string) (hours.Query, *controller.ValidationResult) {
	result := &controller.ValidationResult{}

	q, err := hours.ParseQuery(name, day, clock)
	if err == nil {
		return q, result
	}
	// ParseQuery stops at the first bad field; check each on its own so
	// both are reported.
	if _, err := hours.ParseQuery("", day, ""); errors.Is(err, hours.ErrInvalidDayToken) {
		result.Add("day", "day must be a weekday name such as Monday or Mon")
	}
	if _, err := hours.ParseQuery("", "", clock); errors.Is(err, hours.ErrInvalidTimeFormat) {
		result.Add("time", "time must be in HH:MM format")
	}
	if !result.HasError() {
		result.Add("query", err.Error())
	}
	return hours.Query{}, result
}

func validateName(result *controller.ValidationResult, name string) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		result.Add("name", "name is required")
	case utf8.RuneCountInString(name) > maxNameLength:
		result.Add("name", "name must be at most 255 characters")
	}
}
