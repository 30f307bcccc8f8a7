package main

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestCheckOpenWithHours(t *testing.T) {
	tests := []struct {
		name  string
		hours string
		day   string
		time  string
		want  bool
	}{
		{"weekday lunch", "Mon-Fri 11 am - 10 pm / Sat 5 pm - 11 pm", "Wednesday", "13:00", true},
		{"before opening", "Mon-Fri 11 am - 10 pm / Sat 5 pm - 11 pm", "Sat", "13:00", false},
		{"closed day", "Mon-Fri 11 am - 10 pm", "Sun", "13:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			app := newApp()
			app.Writer = &out

			err := app.Run([]string{"restaurantctl", "check-open", "--hours", tt.hours, "--day", tt.day, "--time", tt.time})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var got struct {
				IsOpen bool `json:"is_open"`
			}
			if err := json.Unmarshal(out.Bytes(), &got); err != nil {
				t.Fatalf("decode %q: %v", out.String(), err)
			}
			if got.IsOpen != tt.want {
				t.Errorf("is_open = %v, want %v", got.IsOpen, tt.want)
			}
		})
	}
}

func TestCheckOpenRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad time", []string{"--hours", "Mon 9 am - 5 pm", "--day", "Mon", "--time", "25:00"}},
		{"bad day", []string{"--hours", "Mon 9 am - 5 pm", "--day", "Funday", "--time", "10:00"}},
		{"no hours or id", []string{"--day", "Mon", "--time", "10:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newApp()
			app.Writer = &bytes.Buffer{}
			args := append([]string{"restaurantctl", "check-open"}, tt.args...)
			if err := app.Run(args); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}
