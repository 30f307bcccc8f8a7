package validator

import (
	"restaurant-directory/core/controller"
	"restaurant-directory/modules/restaurant/dto"
	"strings"
	"testing"
)

func fields(result *controller.ValidationResult) string {
	out := make([]string, len(result.Errors))
	for i, e := range result.Errors {
		out[i] = e.Field
	}
	return strings.Join(out, ",")
}

func TestValidateListQuery(t *testing.T) {
	tests := []struct {
		name       string
		day, clock string
		wantFields string
	}{
		{"no filters", "", "", ""},
		{"day and time", "fri", "21:15", ""},
		{"full day name", " Friday ", "", ""},
		{"bad day", "someday", "", "day"},
		{"hour out of range", "", "25:00", "time"},
		{"twelve hour clock", "", "9pm", "time"},
		{"both bad", "someday", "9pm", "day,time"},
		{"bad time with good day", "Mon", "7:5x", "time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, result := ValidateListQuery(" sushi ", tt.day, tt.clock)
			if got := fields(result); got != tt.wantFields {
				t.Fatalf("error fields = %q, want %q", got, tt.wantFields)
			}
			if tt.wantFields != "" {
				if q.Name != "" || q.HasSchedule() {
					t.Fatalf("expected empty query on error, got %+v", q)
				}
				return
			}
			if q.Name != "sushi" {
				t.Fatalf("name = %q, want trimmed", q.Name)
			}
			if (tt.day != "") != (q.Day != nil) || (tt.clock != "") != (q.Time != nil) {
				t.Fatalf("unexpected query %+v", q)
			}
		})
	}
}

func TestValidateListQueryParsesValues(t *testing.T) {
	q, result := ValidateListQuery("", "fri", "21:15")
	if result.HasError() {
		t.Fatalf("unexpected errors %+v", result.Errors)
	}
	if q.Day.String() != "Friday" || q.Time.Clock() != "21:15" {
		t.Fatalf("unexpected query day=%s time=%s", q.Day, q.Time.Clock())
	}
}

func TestValidateUpdateRestaurant(t *testing.T) {
	empty := "  "
	name := "Kushi Tsuru"

	tests := []struct {
		name       string
		req        dto.UpdateRestaurantRequest
		wantFields string
	}{
		{"nothing to update", dto.UpdateRestaurantRequest{}, "body"},
		{"name only", dto.UpdateRestaurantRequest{Name: &name}, ""},
		{"blank name", dto.UpdateRestaurantRequest{Name: &empty}, "name"},
		{"blank hours", dto.UpdateRestaurantRequest{OpeningHours: &empty}, "opening_hours"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fields(ValidateUpdateRestaurant(&tt.req)); got != tt.wantFields {
				t.Fatalf("error fields = %q, want %q", got, tt.wantFields)
			}
		})
	}
}
