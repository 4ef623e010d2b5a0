package api

import (
	"testing"

	"example.com/internal/models"
)

func TestKeyed(t *testing.T) {
	want := models.Envelope{StatusCode: 500, Success: false}
	if keyed().StatusCode != want.StatusCode {
		t.Fatal("unexpected status")
	}
}
